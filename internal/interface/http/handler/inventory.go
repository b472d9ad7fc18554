package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/bookstore-ledger/internal/application/inventory"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
	"github.com/xiebiao/bookstore-ledger/pkg/response"
)

// InventoryHandler 库存HTTP处理器
type InventoryHandler struct {
	addItem    *appinventory.AddItemUseCase
	removeItem *appinventory.RemoveItemUseCase
	purchase   *appinventory.PurchaseUseCase
	query      *appinventory.QueryItemsUseCase
}

func NewInventoryHandler(
	addItem *appinventory.AddItemUseCase,
	removeItem *appinventory.RemoveItemUseCase,
	purchase *appinventory.PurchaseUseCase,
	query *appinventory.QueryItemsUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		addItem:    addItem,
		removeItem: removeItem,
		purchase:   purchase,
		query:      query,
	}
}

// AddItem 入库
// @Summary      入库
// @Description  新增一个库存条目,ID重复时返回409
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body dto.AddItemRequest true "商品信息"
// @Success      201 {object} response.Response{data=appinventory.ItemResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "ID已存在"
// @Router       /api/v1/items [post]
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.addItem.Execute(c.Request.Context(), appinventory.AddItemRequest{
		ID:       req.ID,
		Title:    req.Title,
		Author:   req.Author,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// SearchItems 查询库存
// @Summary      查询库存
// @Description  书名/作者不区分大小写子串匹配,ID精确匹配,多个条件取交集,结果按ID排序
// @Tags         库存
// @Produce      json
// @Param        title  query string false "书名关键字"
// @Param        author query string false "作者关键字"
// @Param        id     query string false "商品ID"
// @Success      200 {object} response.Response{data=appinventory.SearchItemsResponse}
// @Router       /api/v1/items [get]
func (h *InventoryHandler) SearchItems(c *gin.Context) {
	var req dto.SearchItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.query.Search(c.Request.Context(), appinventory.SearchItemsRequest{
		Title:  req.Title,
		Author: req.Author,
		ID:     req.ID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetItem 商品详情
// @Summary      商品详情
// @Tags         库存
// @Produce      json
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response{data=appinventory.ItemResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/items/{id} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	result, err := h.query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ItemExists 只判断是否存在,不返回内容
// @Summary      商品是否存在
// @Tags         库存
// @Param        id path string true "商品ID"
// @Success      200 "存在"
// @Failure      404 "不存在"
// @Router       /api/v1/items/{id} [head]
func (h *InventoryHandler) ItemExists(c *gin.Context) {
	ok, err := h.query.Exists(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// RemoveItem 下架
// @Summary      下架
// @Description  幂等,不存在也返回200;同时清除该商品的折扣
// @Tags         库存
// @Produce      json
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response{data=appinventory.RemoveItemResponse}
// @Router       /api/v1/items/{id} [delete]
func (h *InventoryHandler) RemoveItem(c *gin.Context) {
	result, err := h.removeItem.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Purchase 直接购买
// @Summary      直接购买
// @Description  按原价扣减库存并返回金额,不生成订单
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        id      path string              true "商品ID"
// @Param        request body dto.PurchaseRequest true "购买数量"
// @Success      200 {object} response.Response{data=appinventory.PurchaseResponse}
// @Failure      400 {object} response.Response "数量非法"
// @Failure      404 {object} response.Response "商品不存在"
// @Failure      409 {object} response.Response "已售罄"
// @Failure      422 {object} response.Response "库存不足"
// @Router       /api/v1/items/{id}/purchase [post]
func (h *InventoryHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.purchase.Execute(c.Request.Context(), appinventory.PurchaseRequest{
		ID:       c.Param("id"),
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// InventoryValue 库存总价值
// @Summary      库存总价值
// @Description  Σ 原价 × 库存,不考虑折扣
// @Tags         库存
// @Produce      json
// @Success      200 {object} response.Response{data=appinventory.InventoryValueResponse}
// @Router       /api/v1/inventory/value [get]
func (h *InventoryHandler) InventoryValue(c *gin.Context) {
	result, err := h.query.TotalValue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
