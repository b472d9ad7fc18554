package inventory

import (
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

// 库存领域错误定义
var (
	ErrItemNotFound = apperrors.ErrBookNotFound

	// ErrDuplicateID 同一ISBN不允许重复入库(不合并数量)
	ErrDuplicateID = apperrors.ErrISBNDuplicate

	ErrInvalidID       = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN不能为空")
	ErrInvalidPrice    = apperrors.ErrInvalidPrice
	ErrInvalidStock    = apperrors.ErrInvalidStock
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")

	ErrOutOfStock        = apperrors.ErrOutOfStock
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	ErrEmptyBasket = apperrors.ErrEmptyBasket
)
