package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
)

// Inventory 下单依赖的库存操作(由 inventory.Ledger 实现)
type Inventory interface {
	Get(id string) (inventory.Item, error)
	Check(lines []inventory.Line) ([]inventory.Line, error)
	Withdraw(lines []inventory.Line) error
}

// Pricer 折后单价查询(由 discount.Table 实现)
type Pricer interface {
	UnitPrice(id string) (decimal.Decimal, error)
}

// CreateParams 下单参数
type CreateParams struct {
	CustomerName   string
	Address        string
	Contact        string
	Lines          []inventory.Line
	ApplyDiscounts bool // 为true时按折后单价记录明细
}

// Book 订单簿: 订单号 → 订单
// 教学要点:
// 1. 订单从不删除,ids 记录插入顺序,列表查询按下单先后返回
// 2. 和 Ledger 一样不自带锁,由 Store 统一串行化
type Book struct {
	inventory Inventory
	pricer    Pricer
	orders    map[string]*Order
	ids       []string
	newID     IDGenerator
	now       func() time.Time
}

// Option 订单簿可选配置
type Option func(*Book)

// WithIDGenerator 替换订单号生成器(测试时用固定序列)
func WithIDGenerator(gen IDGenerator) Option {
	return func(b *Book) { b.newID = gen }
}

// WithClock 替换时间源
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

func NewBook(inv Inventory, pricer Pricer, opts ...Option) *Book {
	b := &Book{
		inventory: inv,
		pricer:    pricer,
		orders:    make(map[string]*Order),
		newID:     GenerateOrderID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Create 创建订单
// 教学重点:先校验,再修改
//  1. 校验全部明细(存在性 + 库存),这一步不改任何状态
//  2. 计算每一行的单价快照和总金额
//  3. 全部通过后才扣减库存、写入订单
//
// 任何一行失败都直接返回,库存保持原样
func (b *Book) Create(p CreateParams) (Order, error) {
	if strings.TrimSpace(p.CustomerName) == "" {
		return Order{}, ErrInvalidCustomer
	}
	if len(p.Lines) == 0 {
		return Order{}, ErrEmptyOrder
	}

	// 步骤1:校验(重复ISBN在这里合并)
	lines, err := b.inventory.Check(p.Lines)
	if err != nil {
		return Order{}, err
	}

	// 步骤2:锁定单价
	items := make([]Item, len(lines))
	for i, line := range lines {
		unit, err := b.unitPrice(line.ItemID, p.ApplyDiscounts)
		if err != nil {
			return Order{}, err
		}
		items[i] = Item{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: unit,
		}
	}

	id, err := b.nextID()
	if err != nil {
		return Order{}, err
	}

	// 步骤3:扣减库存,Withdraw 内部会再校验一遍,失败时同样不改状态
	if err := b.inventory.Withdraw(lines); err != nil {
		return Order{}, err
	}

	o := NewOrder(id, p.CustomerName, p.Address, p.Contact, items, b.now())
	b.orders[id] = o
	b.ids = append(b.ids, id)
	return o.clone(), nil
}

func (b *Book) unitPrice(id string, applyDiscounts bool) (decimal.Decimal, error) {
	if applyDiscounts && b.pricer != nil {
		return b.pricer.UnitPrice(id)
	}
	item, err := b.inventory.Get(id)
	if err != nil {
		return decimal.Zero, err
	}
	return item.Price, nil
}

// nextID 生成一个未被占用的订单号
func (b *Book) nextID() (string, error) {
	const maxAttempts = 3
	for i := 0; i < maxAttempts; i++ {
		id := b.newID()
		if _, ok := b.orders[id]; !ok && id != "" {
			return id, nil
		}
	}
	return "", ErrDuplicateOrderID
}

// UpdateStatus 覆盖订单状态,返回更新后的订单和更新前的状态
func (b *Book) UpdateStatus(id string, status Status) (Order, Status, error) {
	if !status.Valid() {
		return Order{}, "", ErrInvalidStatus.WithDetail("%q", string(status))
	}
	o, ok := b.orders[id]
	if !ok {
		return Order{}, "", ErrOrderNotFound.WithDetail("order_id=%s", id)
	}
	previous := o.Status
	if err := o.SetStatus(status, b.now()); err != nil {
		return Order{}, "", err
	}
	return o.clone(), previous, nil
}

func (b *Book) Get(id string) (Order, error) {
	o, ok := b.orders[id]
	if !ok {
		return Order{}, ErrOrderNotFound.WithDetail("order_id=%s", id)
	}
	return o.clone(), nil
}

// ListByCustomer 按客户姓名精确匹配
func (b *Book) ListByCustomer(customer string) []Order {
	return b.filter(func(o *Order) bool {
		return o.CustomerName == customer
	})
}

// ListByStatus 状态非法时返回 ErrInvalidStatus
func (b *Book) ListByStatus(status Status) ([]Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus.WithDetail("%q", string(status))
	}
	return b.filter(func(o *Order) bool {
		return o.Status == status
	}), nil
}

// All 全部订单(按下单顺序)
func (b *Book) All() []Order {
	return b.filter(func(*Order) bool { return true })
}

// Rebind 切换到新的库存和折扣表(恢复快照时使用)
func (b *Book) Rebind(inv Inventory, pricer Pricer) {
	b.inventory = inv
	b.pricer = pricer
}

func (b *Book) Len() int {
	return len(b.ids)
}

func (b *Book) filter(keep func(*Order) bool) []Order {
	result := make([]Order, 0)
	for _, id := range b.ids {
		o := b.orders[id]
		if keep(o) {
			result = append(result, o.clone())
		}
	}
	return result
}

// Restore 从快照恢复订单,校验订单号唯一和状态合法
func (b *Book) Restore(orders []Order) error {
	restored := make(map[string]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for i := range orders {
		o := orders[i].clone()
		if o.ID == "" {
			return ErrMissingOrderID
		}
		if !o.Status.Valid() {
			return ErrInvalidStatus.WithDetail("order_id=%s, status=%q", o.ID, string(o.Status))
		}
		if _, ok := restored[o.ID]; ok {
			return ErrDuplicateOrderID.WithDetail("order_id=%s", o.ID)
		}
		// 旧快照没有记录版本
		if o.Revision < 1 {
			o.Revision = 1
		}
		restored[o.ID] = &o
		ids = append(ids, o.ID)
	}
	b.orders = restored
	b.ids = ids
	return nil
}
