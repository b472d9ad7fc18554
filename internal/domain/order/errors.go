package order

import (
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	ErrInvalidStatus = apperrors.ErrInvalidStatus

	ErrInvalidCustomer = apperrors.New(apperrors.ErrCodeInvalidParams, "客户姓名不能为空")

	ErrEmptyOrder = apperrors.ErrEmptyBasket

	ErrMissingOrderID = apperrors.New(apperrors.ErrCodeInvalidParams, "订单号不能为空")

	ErrDuplicateOrderID = apperrors.New(apperrors.ErrCodeDuplicateEntry, "订单号重复")
)
