package dto

import "github.com/shopspring/decimal"

// AddItemRequest HTTP入库请求
// 价格可以传字符串("39.90")也可以传数字,统一按 decimal 解析
type AddItemRequest struct {
	ID       string          `json:"id" binding:"required,max=64" example:"9787115428028"`
	Title    string          `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author   string          `json:"author" binding:"max=100" example:"威廉·肯尼迪"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"59.00"`
	Quantity int             `json:"quantity" binding:"min=0" example:"100"`
}

// SearchItemsRequest 查询条件取交集,全部为空时返回全部商品
type SearchItemsRequest struct {
	Title  string `form:"title" binding:"max=200" example:"go"`
	Author string `form:"author" binding:"max=100" example:"kennedy"`
	ID     string `form:"id" binding:"max=64" example:"9787115428028"`
}

type PurchaseRequest struct {
	Quantity int `json:"quantity" example:"2"`
}
