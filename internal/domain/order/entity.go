package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
// 教学要点:
// 1. 只有三个合法值,更新时不强制流转顺序(Processing→Shipped→Completed只是约定)
// 2. 用字符串类型,序列化后就是对外展示的值
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusCompleted  Status = "Completed"
)

// Statuses 全部合法状态
func Statuses() []Status {
	return []Status{StatusProcessing, StatusShipped, StatusCompleted}
}

func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus 解析状态,非法值返回 ErrInvalidStatus
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", ErrInvalidStatus.WithDetail("%q", s)
	}
	return status, nil
}

// Order 订单(聚合根)
// 教学要点:
// 1. Items 里的单价是下单时的价格快照,之后改价或改折扣都不影响历史订单
// 2. Total 冗余存储,创建时一次算好
// 3. 订单从不删除
// 4. Revision 每次状态变更加1,下单时为1,事件带上它以便消费方按订单排序
type Order struct {
	ID           string
	CustomerName string
	Address      string
	Contact      string
	Items        []Item
	Total        decimal.Decimal
	Status       Status
	Revision     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Item 订单明细
type Item struct {
	ItemID    string
	Quantity  int
	UnitPrice decimal.Decimal // 下单时的单价(应用折扣后)
}

// Subtotal 单价 × 数量
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建订单(工厂方法),初始状态 Processing
func NewOrder(id, customer, address, contact string, items []Item, now time.Time) *Order {
	o := &Order{
		ID:           id,
		CustomerName: customer,
		Address:      address,
		Contact:      contact,
		Items:        items,
		Status:       StatusProcessing,
		Revision:     1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	o.Total = o.CalculateTotal()
	return o
}

// CalculateTotal 根据明细实时计算总金额
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ContactInfo 地址和联系方式合成一个字符串
func (o *Order) ContactInfo() string {
	return o.Address + ", " + o.Contact
}

// SetStatus 直接覆盖状态,不检查流转顺序
func (o *Order) SetStatus(status Status, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus.WithDetail("%q", string(status))
	}
	o.Status = status
	o.Revision++
	o.UpdatedAt = now
	return nil
}

// clone 深拷贝,对外只暴露副本
func (o *Order) clone() Order {
	c := *o
	c.Items = append([]Item(nil), o.Items...)
	return c
}
