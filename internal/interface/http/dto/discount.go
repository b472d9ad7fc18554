package dto

import "github.com/shopspring/decimal"

// SetDiscountRequest 百分比取值 [0,100]
type SetDiscountRequest struct {
	Percentage decimal.Decimal `json:"percentage" swaggertype:"string" example:"20"`
}

// PromotionRequest 商品ID → 折扣百分比
type PromotionRequest struct {
	Discounts map[string]decimal.Decimal `json:"discounts" binding:"required" swaggertype:"object,string"`
}

type BasketLine struct {
	ID       string `json:"id" binding:"required" example:"9787115428028"`
	Quantity int    `json:"quantity" example:"1"`
}

type BasketRequest struct {
	Items []BasketLine `json:"items" binding:"dive"`
}
