package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item 库存条目
// 设计说明:
// 1. ID 即 ISBN,创建后不可变,是台账里的唯一键
// 2. 价格用 decimal 存储,折扣只在计价时生效,不回写单价
// 3. 数量只会被购买/下单扣减,任何时候都不能为负
type Item struct {
	ID       string
	Title    string
	Author   string
	Price    decimal.Decimal
	Quantity int
}

// MaxScale 单价最多保留的小数位数
// 折后单价 = 单价 × (100-折扣)/100,两者都不超过4位时结果不超过10位,
// 快照表按这个上限建列,保存后读回的金额与内存中完全一致
const MaxScale = 4

// NewItem 创建库存条目(工厂方法,校验数值不变量)
func NewItem(id, title, author string, price decimal.Decimal, quantity int) (*Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidID
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if !price.Equal(price.Truncate(MaxScale)) {
		return nil, ErrInvalidPrice.WithDetail("最多%d位小数: %s", MaxScale, price.String())
	}
	if quantity < 0 {
		return nil, ErrInvalidStock
	}
	return &Item{
		ID:       id,
		Title:    title,
		Author:   author,
		Price:    price,
		Quantity: quantity,
	}, nil
}

// Value 单价 × 库存
func (i *Item) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cost 按当前单价计算 quantity 本的金额
func (i *Item) Cost(quantity int) decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

// CheckAvailable 检查能否取出 quantity 本,不修改状态
// 库存为0和库存不够是两种不同的错误
func (i *Item) CheckAvailable(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.Quantity == 0 {
		return ErrOutOfStock.WithDetail("isbn=%s", i.ID)
	}
	if quantity > i.Quantity {
		return ErrInsufficientStock.WithDetail("isbn=%s, 当前库存:%d, 需要:%d", i.ID, i.Quantity, quantity)
	}
	return nil
}

// DecrStock 扣减库存
func (i *Item) DecrStock(quantity int) error {
	if err := i.CheckAvailable(quantity); err != nil {
		return err
	}
	i.Quantity -= quantity
	return nil
}

// matches 标题/作者大小写不敏感子串匹配,ID精确匹配,条件之间取交集
func (i *Item) matches(p SearchParams) bool {
	if p.ID != "" && i.ID != p.ID {
		return false
	}
	if p.Title != "" && !containsFold(i.Title, p.Title) {
		return false
	}
	if p.Author != "" && !containsFold(i.Author, p.Author) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Line 购物篮中的一行(图书ID + 数量)
type Line struct {
	ItemID   string
	Quantity int
}
