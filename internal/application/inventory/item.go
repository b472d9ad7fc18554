package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
	"github.com/xiebiao/bookstore-ledger/pkg/metrics"
)

const tracerName = "application/inventory"

// ItemResponse 库存条目响应DTO
type ItemResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func toItemResponse(it inventory.Item) ItemResponse {
	return ItemResponse{
		ID:       it.ID,
		Title:    it.Title,
		Author:   it.Author,
		Price:    it.Price,
		Quantity: it.Quantity,
	}
}

func toItemResponses(items []inventory.Item) []ItemResponse {
	list := make([]ItemResponse, len(items))
	for i, it := range items {
		list[i] = toItemResponse(it)
	}
	return list
}

// observeInventory 刷新库存相关的Gauge,必须在锁内调用
func observeInventory(tx *store.Tx) {
	metrics.SetGauge(metrics.InventoryItems, float64(tx.Ledger.Len()))
	metrics.SetGauge(metrics.InventoryValue, tx.Ledger.TotalValue().InexactFloat64())
}
