package inventory

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
	"github.com/xiebiao/bookstore-ledger/pkg/metrics"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// PurchaseUseCase 直接购买(不生成订单)
// 教学要点:
// 1. 按原价计费,不走折扣表
// 2. 检查和扣减在同一把写锁里完成,不会超卖
type PurchaseUseCase struct {
	store *store.Store
}

func NewPurchaseUseCase(s *store.Store) *PurchaseUseCase {
	return &PurchaseUseCase{store: s}
}

type PurchaseRequest struct {
	ID       string
	Quantity int
}

type PurchaseResponse struct {
	ID        string          `json:"id"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Remaining int             `json:"remaining"`
}

func (uc *PurchaseUseCase) Execute(ctx context.Context, req PurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Purchase")
	defer span.End()

	var resp PurchaseResponse
	err := uc.store.Transaction(ctx, func(tx *store.Tx) error {
		cost, err := tx.Ledger.Purchase(req.ID, req.Quantity)
		if err != nil {
			return err
		}
		item, err := tx.Ledger.Get(req.ID)
		if err != nil {
			return err
		}
		observeInventory(tx)
		resp = PurchaseResponse{ID: req.ID, Quantity: req.Quantity, Cost: cost, Remaining: item.Quantity}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		metrics.IncCounterVec(metrics.PurchasesTotal, map[string]string{"result": resultLabel(err)})
		return nil, err
	}

	metrics.IncCounterVec(metrics.PurchasesTotal, map[string]string{"result": "success"})
	slog.InfoContext(ctx, "item purchased", "id", req.ID, "quantity", req.Quantity, "cost", resp.Cost)
	return &resp, nil
}

// resultLabel 失败原因作为指标标签,取值有限
func resultLabel(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Kind().String()
	}
	return apperrors.KindInternal.String()
}
