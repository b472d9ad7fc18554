package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 应用错误
// Code 面向客户端（业务码，不是HTTP状态码），Message 给人看，
// Err 只进日志，不会序列化给调用方。
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按业务码比较，WithDetail 派生出来的错误仍然能被 errors.Is 匹配到预定义错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Kind 返回错误码所属的错误类别
func (e *AppError) Kind() Kind {
	return KindOf(e.Code)
}

// HTTPStatus 把业务错误类别映射成HTTP状态码
func (e *AppError) HTTPStatus() int {
	return e.Kind().HTTPStatus()
}

// WithDetail 基于预定义错误派生一个带上下文的新错误，不修改原变量
func (e *AppError) WithDetail(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message + ": " + fmt.Sprintf(format, args...),
		Err:     e.Err,
	}
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 把底层错误（数据库、网络）包装成内部错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误类别
// =========================================

// Kind 调用方需要区分的错误类别，每一类对应一个不同的HTTP状态
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindDuplicateKey
	KindNotFound
	KindOutOfStock
	KindInsufficientQuantity
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindDuplicateKey:
		return "DuplicateKey"
	case KindNotFound:
		return "NotFound"
	case KindOutOfStock:
		return "OutOfStock"
	case KindInsufficientQuantity:
		return "InsufficientQuantity"
	default:
		return "Internal"
	}
}

func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindDuplicateKey, KindOutOfStock:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInsufficientQuantity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// KindOf 根据错误码区间判断类别
func KindOf(code int) Kind {
	switch {
	case code == ErrCodeOutOfStock:
		return KindOutOfStock
	case code == ErrCodeInsufficientStock:
		return KindInsufficientQuantity
	case code == ErrCodeDuplicateEntry || code == ErrCodeISBNDuplicate:
		return KindDuplicateKey
	case code >= 40400 && code <= 40499:
		return KindNotFound
	case code >= 40900 && code <= 40999:
		return KindInvalidArgument
	default:
		return KindInternal
	}
}

// =========================================
// 错误码
// =========================================
// 4xxxx 客户端错误，5xxxx 服务端错误

const (
	// 系统级（50000-50099）
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002
	ErrCodeBrokerError   = 50003

	// 资源不存在（40400-40499）
	ErrCodeNotFound      = 40400
	ErrCodeBookNotFound  = 40402
	ErrCodeOrderNotFound = 40403

	// 业务规则（40000-40099）
	ErrCodeInsufficientStock = 40001 // 请求数量超过库存
	ErrCodeISBNDuplicate     = 40004
	ErrCodeOutOfStock        = 40006 // 库存为0
	ErrCodeDuplicateEntry    = 40009

	// 参数错误（40900-40999）
	ErrCodeInvalidParams   = 40900
	ErrCodeBindError       = 40901
	ErrCodeInvalidPrice    = 40902
	ErrCodeInvalidQuantity = 40903
	ErrCodeInvalidDiscount = 40904
	ErrCodeInvalidStatus   = 40905
	ErrCodeEmptyBasket     = 40906
	ErrCodeInvalidStock    = 40907
)

var (
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")
	ErrBrokerError   = New(ErrCodeBrokerError, "消息服务错误")

	ErrNotFound      = New(ErrCodeNotFound, "资源不存在")
	ErrBookNotFound  = New(ErrCodeBookNotFound, "图书不存在")
	ErrOrderNotFound = New(ErrCodeOrderNotFound, "订单不存在")

	ErrInsufficientStock = New(ErrCodeInsufficientStock, "库存不足")
	ErrOutOfStock        = New(ErrCodeOutOfStock, "图书已售罄")
	ErrISBNDuplicate     = New(ErrCodeISBNDuplicate, "ISBN号已存在")
	ErrDuplicateEntry    = New(ErrCodeDuplicateEntry, "重复记录")

	ErrInvalidParams   = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError       = New(ErrCodeBindError, "参数格式错误")
	ErrInvalidPrice    = New(ErrCodeInvalidPrice, "价格不能为负数")
	ErrInvalidQuantity = New(ErrCodeInvalidQuantity, "数量不合法")
	ErrInvalidDiscount = New(ErrCodeInvalidDiscount, "折扣必须在0到100之间")
	ErrInvalidStatus   = New(ErrCodeInvalidStatus, "订单状态不合法")
	ErrEmptyBasket     = New(ErrCodeEmptyBasket, "订单至少包含一件商品")
	ErrInvalidStock    = New(ErrCodeInvalidStock, "库存不能为负数")
)

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError，不是的话包装成内部错误
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// IsKind 判断错误链上是否有指定类别的AppError
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Kind() == kind
}
