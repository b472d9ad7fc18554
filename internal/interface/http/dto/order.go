package dto

// CreateOrderRequest HTTP下单请求
// 客户名和明细在领域层校验,这里只做格式限制
type CreateOrderRequest struct {
	CustomerName   string      `json:"customer_name" binding:"max=100" example:"张三"`
	Address        string      `json:"address" binding:"max=255" example:"北京市海淀区"`
	Contact        string      `json:"contact" binding:"max=100" example:"13800000000"`
	Items          []OrderLine `json:"items" binding:"dive"`
	ApplyDiscounts bool        `json:"apply_discounts" example:"true"`
}

type OrderLine struct {
	ID       string `json:"id" binding:"required" example:"9787115428028"`
	Quantity int    `json:"quantity" example:"1"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Shipped"`
}

// ListOrdersRequest customer 和 status 二选一
type ListOrdersRequest struct {
	Customer string `form:"customer" example:"张三"`
	Status   string `form:"status" example:"Processing"`
}
