package inventory

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// SearchParams 搜索条件,空字符串表示不限制该条件
type SearchParams struct {
	Title  string // 标题子串(大小写不敏感)
	Author string // 作者子串(大小写不敏感)
	ID     string // ISBN精确匹配
}

// Ledger 库存台账: ISBN → 库存条目
// 教学要点:
// 1. 台账本身不加锁,并发控制由上层 Store 统一负责(一把粗粒度锁)
// 2. 对外只返回值拷贝,调用方拿到的是快照,不是内部状态的引用
// 3. 任何失败路径都直接返回错误,不修改状态
type Ledger struct {
	items map[string]*Item
}

func NewLedger() *Ledger {
	return &Ledger{items: make(map[string]*Item)}
}

// Add 入库
// 同一ISBN已存在时返回 ErrDuplicateID,不合并数量
func (l *Ledger) Add(id, title, author string, price decimal.Decimal, quantity int) (Item, error) {
	item, err := NewItem(id, title, author, price, quantity)
	if err != nil {
		return Item{}, err
	}
	if _, ok := l.items[id]; ok {
		return Item{}, ErrDuplicateID.WithDetail("isbn=%s", id)
	}
	l.items[id] = item
	return *item, nil
}

// Remove 删除条目,不存在时什么都不做。返回是否真的删除了
func (l *Ledger) Remove(id string) bool {
	if _, ok := l.items[id]; !ok {
		return false
	}
	delete(l.items, id)
	return true
}

func (l *Ledger) Exists(id string) bool {
	_, ok := l.items[id]
	return ok
}

func (l *Ledger) Get(id string) (Item, error) {
	item, ok := l.items[id]
	if !ok {
		return Item{}, ErrItemNotFound.WithDetail("isbn=%s", id)
	}
	return *item, nil
}

// Search 线性扫描,按ISBN排序返回匹配结果的拷贝
func (l *Ledger) Search(p SearchParams) []Item {
	result := make([]Item, 0)
	for _, item := range l.items {
		if item.matches(p) {
			result = append(result, *item)
		}
	}
	sortByID(result)
	return result
}

// Items 全部条目的快照
func (l *Ledger) Items() []Item {
	return l.Search(SearchParams{})
}

// Len 条目数
func (l *Ledger) Len() int {
	return len(l.items)
}

// Purchase 单本购买,成功时返回 quantity × 单价
// 错误区分: 不存在 / 售罄(库存为0) / 库存不足
func (l *Ledger) Purchase(id string, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	item, ok := l.items[id]
	if !ok {
		return decimal.Zero, ErrItemNotFound.WithDetail("isbn=%s", id)
	}
	if err := item.DecrStock(quantity); err != nil {
		return decimal.Zero, err
	}
	return item.Cost(quantity), nil
}

// TotalValue 所有条目 单价 × 库存 之和
func (l *Ledger) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.items {
		total = total.Add(item.Value())
	}
	return total
}

// Check 校验一组购物行,不修改任何状态
// 教学要点:
// 1. 同一ISBN出现多次时先合并数量再校验,否则每行单独够、合起来不够的情况会漏掉
// 2. 返回合并后的行(保持首次出现的顺序),后续扣减和计价都用它
func (l *Ledger) Check(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyBasket
	}

	merged := make([]Line, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity.WithDetail("isbn=%s", line.ItemID)
		}
		if i, ok := index[line.ItemID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ItemID] = len(merged)
		merged = append(merged, line)
	}

	for _, line := range merged {
		item, ok := l.items[line.ItemID]
		if !ok {
			return nil, ErrItemNotFound.WithDetail("isbn=%s", line.ItemID)
		}
		if err := item.CheckAvailable(line.Quantity); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// Withdraw 批量扣减库存,全部校验通过才会扣减(要么全成功,要么什么都不变)
func (l *Ledger) Withdraw(lines []Line) error {
	merged, err := l.Check(lines)
	if err != nil {
		return err
	}
	for _, line := range merged {
		// Check 已经保证每一行都够扣
		l.items[line.ItemID].Quantity -= line.Quantity
	}
	return nil
}

// Restore 用快照替换台账内容,任意一条不合法则保持原状
func (l *Ledger) Restore(items []Item) error {
	restored := make(map[string]*Item, len(items))
	for _, it := range items {
		item, err := NewItem(it.ID, it.Title, it.Author, it.Price, it.Quantity)
		if err != nil {
			return err
		}
		if _, ok := restored[it.ID]; ok {
			return ErrDuplicateID.WithDetail("isbn=%s", it.ID)
		}
		restored[it.ID] = item
	}
	l.items = restored
	return nil
}

func sortByID(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		return strings.Compare(a.ID, b.ID)
	})
}
