package discount

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

// MaxScale 折扣百分比最多保留的小数位数
const MaxScale = 4

var (
	ErrInvalidPercentage = apperrors.ErrInvalidDiscount
	ErrInvalidQuantity   = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")
	ErrItemNotFound      = apperrors.ErrBookNotFound
)

func validatePercentage(pct decimal.Decimal) *apperrors.AppError {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return ErrInvalidPercentage.WithDetail("%s", pct.String())
	}
	if !pct.Equal(pct.Truncate(MaxScale)) {
		return ErrInvalidPercentage.WithDetail("最多%d位小数: %s", MaxScale, pct.String())
	}
	return nil
}
