package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-ledger/internal/application/order"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
	"github.com/xiebiao/bookstore-ledger/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrder  *apporder.CreateOrderUseCase
	updateStatus *apporder.UpdateStatusUseCase
	query        *apporder.QueryOrdersUseCase
}

func NewOrderHandler(
	createOrder *apporder.CreateOrderUseCase,
	updateStatus *apporder.UpdateStatusUseCase,
	query *apporder.QueryOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{createOrder: createOrder, updateStatus: updateStatus, query: query}
}

// CreateOrder 下单
// @Summary      下单
// @Description  全部明细校验通过才扣减库存,任意一行失败整单失败;apply_discounts=true 时按折后价
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "商品不存在"
// @Failure      409 {object} response.Response "已售罄"
// @Failure      422 {object} response.Response "库存不足"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = apporder.CreateOrderItem{ID: it.ID, Quantity: it.Quantity}
	}
	result, err := h.createOrder.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		CustomerName:   req.CustomerName,
		Address:        req.Address,
		Contact:        req.Contact,
		Items:          items,
		ApplyDiscounts: req.ApplyDiscounts,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	result, err := h.query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 修改订单状态
// @Summary      修改订单状态
// @Description  可选值 Processing / Shipped / Completed,不限制流转顺序
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "订单ID"
// @Param        request body dto.UpdateStatusRequest true "新状态"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "状态非法"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateStatus.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID: c.Param("id"),
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOrders 订单列表
// @Summary      订单列表
// @Description  按客户或按状态查询(二选一),按下单先后排序
// @Tags         订单
// @Produce      json
// @Param        customer query string false "客户姓名(精确匹配)"
// @Param        status   query string false "订单状态"
// @Success      200 {object} response.Response{data=apporder.OrderListResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	var (
		result *apporder.OrderListResponse
		err    error
	)
	switch {
	case req.Customer != "" && req.Status != "":
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "customer 和 status 只能指定一个")
		return
	case req.Customer != "":
		result, err = h.query.ListByCustomer(c.Request.Context(), req.Customer)
	case req.Status != "":
		result, err = h.query.ListByStatus(c.Request.Context(), req.Status)
	default:
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "需要指定 customer 或 status")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
