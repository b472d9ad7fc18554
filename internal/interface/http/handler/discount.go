package handler

import (
	"github.com/gin-gonic/gin"

	appdiscount "github.com/xiebiao/bookstore-ledger/internal/application/discount"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
	"github.com/xiebiao/bookstore-ledger/pkg/response"
)

// DiscountHandler 折扣HTTP处理器
type DiscountHandler struct {
	setDiscount *appdiscount.SetDiscountUseCase
	promotion   *appdiscount.PromotionUseCase
	query       *appdiscount.QueryDiscountUseCase
}

func NewDiscountHandler(
	setDiscount *appdiscount.SetDiscountUseCase,
	promotion *appdiscount.PromotionUseCase,
	query *appdiscount.QueryDiscountUseCase,
) *DiscountHandler {
	return &DiscountHandler{setDiscount: setDiscount, promotion: promotion, query: query}
}

// SetDiscount 设置折扣
// @Summary      设置折扣
// @Description  百分比 0-100,0 表示取消折扣;商品原价不变
// @Tags         折扣
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "商品ID"
// @Param        request body dto.SetDiscountRequest true "折扣百分比"
// @Success      200 {object} response.Response{data=appdiscount.DiscountResponse}
// @Failure      400 {object} response.Response "百分比超出范围"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/discounts/{id} [put]
func (h *DiscountHandler) SetDiscount(c *gin.Context) {
	var req dto.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.setDiscount.Execute(c.Request.Context(), appdiscount.SetDiscountRequest{
		ID:         c.Param("id"),
		Percentage: req.Percentage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetDiscount 查询折扣
// @Summary      查询折扣
// @Description  未设置折扣时百分比为0
// @Tags         折扣
// @Produce      json
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response{data=appdiscount.DiscountResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/discounts/{id} [get]
func (h *DiscountHandler) GetDiscount(c *gin.Context) {
	result, err := h.query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SetPromotion 批量设置折扣
// @Summary      批量设置折扣
// @Description  任意一条不合法时整批不生效
// @Tags         折扣
// @Accept       json
// @Produce      json
// @Param        request body dto.PromotionRequest true "商品ID→折扣百分比"
// @Success      200 {object} response.Response{data=appdiscount.PromotionResponse}
// @Failure      400 {object} response.Response "百分比超出范围"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/discounts/promotion [post]
func (h *DiscountHandler) SetPromotion(c *gin.Context) {
	var req dto.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.promotion.Execute(c.Request.Context(), appdiscount.PromotionRequest{Discounts: req.Discounts})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ApplyToBasket 购物车试算
// @Summary      购物车试算
// @Description  按折后价计算总额,不检查库存
// @Tags         折扣
// @Accept       json
// @Produce      json
// @Param        request body dto.BasketRequest true "购物车"
// @Success      200 {object} response.Response{data=appdiscount.BasketResponse}
// @Failure      400 {object} response.Response "数量非法"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/discounts/basket [post]
func (h *DiscountHandler) ApplyToBasket(c *gin.Context) {
	var req dto.BasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	lines := make([]appdiscount.BasketLine, len(req.Items))
	for i, it := range req.Items {
		lines[i] = appdiscount.BasketLine{ID: it.ID, Quantity: it.Quantity}
	}
	result, err := h.query.ApplyToBasket(c.Request.Context(), lines)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
