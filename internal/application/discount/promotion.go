package discount

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// PromotionUseCase 批量设置折扣(促销活动)
// 教学要点: 任意一条不合法则整批不生效
type PromotionUseCase struct {
	store *store.Store
}

func NewPromotionUseCase(s *store.Store) *PromotionUseCase {
	return &PromotionUseCase{store: s}
}

type PromotionRequest struct {
	Discounts map[string]decimal.Decimal
}

type PromotionResponse struct {
	List []DiscountResponse `json:"list"`
}

func (uc *PromotionUseCase) Execute(ctx context.Context, req PromotionRequest) (*PromotionResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SetPromotion")
	defer span.End()

	ids := make([]string, 0, len(req.Discounts))
	for id := range req.Discounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	resp := &PromotionResponse{List: make([]DiscountResponse, 0, len(ids))}
	err := uc.store.Transaction(ctx, func(tx *store.Tx) error {
		if err := tx.Discounts.SetMany(req.Discounts); err != nil {
			return err
		}
		for _, id := range ids {
			d, err := describe(tx, id)
			if err != nil {
				return err
			}
			resp.List = append(resp.List, *d)
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	slog.InfoContext(ctx, "promotion applied", "items", len(ids))
	return resp, nil
}
