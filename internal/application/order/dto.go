package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
)

const tracerName = "application/order"

// OrderResponse 订单响应DTO
type OrderResponse struct {
	OrderID      string              `json:"order_id"`
	CustomerName string              `json:"customer_name"`
	Address      string              `json:"address"`
	Contact      string              `json:"contact"`
	ContactInfo  string              `json:"contact_info"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Status       string              `json:"status"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}

// OrderItemResponse Price 是下单时锁定的单价
type OrderItemResponse struct {
	ID       string          `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type OrderListResponse struct {
	List  []OrderResponse `json:"list"`
	Total int             `json:"total"`
}

func toOrderResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID:       it.ItemID,
			Quantity: it.Quantity,
			Price:    it.UnitPrice,
			Subtotal: it.Subtotal(),
		}
	}
	return OrderResponse{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Address:      o.Address,
		Contact:      o.Contact,
		ContactInfo:  o.ContactInfo(),
		Items:        items,
		TotalAmount:  o.Total,
		Status:       o.Status.String(),
		CreatedAt:    o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    o.UpdatedAt.Format(time.RFC3339),
	}
}

func toOrderList(orders []order.Order) *OrderListResponse {
	list := make([]OrderResponse, len(orders))
	for i, o := range orders {
		list[i] = toOrderResponse(o)
	}
	return &OrderListResponse{List: list, Total: len(list)}
}
