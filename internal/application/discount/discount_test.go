package discount

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	require.NoError(t, s.Transaction(context.Background(), func(tx *store.Tx) error {
		if _, err := tx.Ledger.Add("A", "Go", "x", d("20.00"), 2); err != nil {
			return err
		}
		_, err := tx.Ledger.Add("B", "Rust", "y", d("15.00"), 3)
		return err
	}))
	return s
}

func TestSetAndGetDiscount(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	resp, err := NewSetDiscountUseCase(s).Execute(ctx, SetDiscountRequest{ID: "A", Percentage: d("20")})
	require.NoError(t, err)
	assert.True(t, resp.DiscountedPrice.Equal(d("16")))
	assert.True(t, resp.Price.Equal(d("20")), "原价不变")

	got, err := NewQueryDiscountUseCase(s).Get(ctx, "B")
	require.NoError(t, err)
	assert.True(t, got.Percentage.IsZero())

	_, err = NewSetDiscountUseCase(s).Execute(ctx, SetDiscountRequest{ID: "A", Percentage: d("100.5")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))

	_, err = NewSetDiscountUseCase(s).Execute(ctx, SetDiscountRequest{ID: "Z", Percentage: d("10")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestPromotionIsAllOrNothing(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	uc := NewPromotionUseCase(s)

	_, err := uc.Execute(ctx, PromotionRequest{Discounts: map[string]decimal.Decimal{"A": d("10"), "Z": d("10")}})
	require.Error(t, err)

	q := NewQueryDiscountUseCase(s)
	got, err := q.Get(ctx, "A")
	require.NoError(t, err)
	assert.True(t, got.Percentage.IsZero())

	resp, err := uc.Execute(ctx, PromotionRequest{Discounts: map[string]decimal.Decimal{"B": d("50"), "A": d("10")}})
	require.NoError(t, err)
	require.Len(t, resp.List, 2)
	assert.Equal(t, "A", resp.List[0].ID)
	assert.True(t, resp.List[1].DiscountedPrice.Equal(d("7.5")))
}

func TestApplyToBasket(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_, err := NewSetDiscountUseCase(s).Execute(ctx, SetDiscountRequest{ID: "A", Percentage: d("20")})
	require.NoError(t, err)

	q := NewQueryDiscountUseCase(s)
	resp, err := q.ApplyToBasket(ctx, []BasketLine{{ID: "A", Quantity: 2}, {ID: "B", Quantity: 1}})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("47")), resp.Total.String())

	// 不检查库存
	resp, err = q.ApplyToBasket(ctx, []BasketLine{{ID: "B", Quantity: 100}})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("1500")))

	resp, err = q.ApplyToBasket(ctx, nil)
	require.NoError(t, err)
	assert.True(t, resp.Total.IsZero())

	_, err = q.ApplyToBasket(ctx, []BasketLine{{ID: "Z", Quantity: 1}})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
