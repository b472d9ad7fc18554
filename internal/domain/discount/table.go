package discount

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
)

var (
	hundred = decimal.NewFromInt(100)
)

// Catalog 折扣表依赖的库存视图(由 inventory.Ledger 实现)
type Catalog interface {
	Exists(id string) bool
	Get(id string) (inventory.Item, error)
}

// Table 折扣表: ISBN → 折扣百分比
// 设计说明:
// 1. 折扣只在计价时生效,不会修改台账里的单价
// 2. 重复设置是覆盖,不是累加
// 3. 没有条目等价于 0%
type Table struct {
	catalog Catalog
	entries map[string]decimal.Decimal
}

func NewTable(catalog Catalog) *Table {
	return &Table{
		catalog: catalog,
		entries: make(map[string]decimal.Decimal),
	}
}

// Set 设置单本图书的折扣
func (t *Table) Set(id string, percentage decimal.Decimal) error {
	if err := validatePercentage(percentage); err != nil {
		return err
	}
	if !t.catalog.Exists(id) {
		return ErrItemNotFound.WithDetail("isbn=%s", id)
	}
	t.entries[id] = percentage
	return nil
}

// SetMany 批量设置折扣(促销活动)
// 先校验全部条目,任何一条不合法都不会写入
func (t *Table) SetMany(entries map[string]decimal.Decimal) error {
	for id, pct := range entries {
		if err := validatePercentage(pct); err != nil {
			return err.WithDetail("isbn=%s", id)
		}
		if !t.catalog.Exists(id) {
			return ErrItemNotFound.WithDetail("isbn=%s", id)
		}
	}
	for id, pct := range entries {
		t.entries[id] = pct
	}
	return nil
}

// Get 未设置时返回0
func (t *Table) Get(id string) decimal.Decimal {
	pct, ok := t.entries[id]
	if !ok {
		return decimal.Zero
	}
	return pct
}

// Remove 清除折扣(图书下架时调用)
func (t *Table) Remove(id string) {
	delete(t.entries, id)
}

// UnitPrice 折后单价 = 单价 × (1 - 折扣/100)
func (t *Table) UnitPrice(id string) (decimal.Decimal, error) {
	item, err := t.catalog.Get(id)
	if err != nil {
		return decimal.Zero, err
	}
	return Apply(item.Price, t.Get(id)), nil
}

// ApplyToBasket 计算购物篮折后总价,空购物篮返回0
// 只读操作,不检查库存
func (t *Table) ApplyToBasket(lines []inventory.Line) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return decimal.Zero, ErrInvalidQuantity.WithDetail("isbn=%s", line.ItemID)
		}
		unit, err := t.UnitPrice(line.ItemID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

// Entry 折扣表中的一条记录
type Entry struct {
	ItemID     string
	Percentage decimal.Decimal
}

// Entries 按ISBN排序的快照
func (t *Table) Entries() []Entry {
	result := make([]Entry, 0, len(t.entries))
	for id, pct := range t.entries {
		result = append(result, Entry{ItemID: id, Percentage: pct})
	}
	slices.SortFunc(result, func(a, b Entry) int {
		return strings.Compare(a.ItemID, b.ItemID)
	})
	return result
}

// Restore 从快照恢复。快照里的图书可能已被删除,这里只校验百分比范围
func (t *Table) Restore(entries []Entry) error {
	restored := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		if err := validatePercentage(e.Percentage); err != nil {
			return err.WithDetail("isbn=%s", e.ItemID)
		}
		restored[e.ItemID] = e.Percentage
	}
	t.entries = restored
	return nil
}

// Apply 对单价应用折扣百分比
func Apply(price, percentage decimal.Decimal) decimal.Decimal {
	return price.Mul(hundred.Sub(percentage)).Div(hundred)
}
