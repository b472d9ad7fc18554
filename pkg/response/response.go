package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

// Response 统一响应结构
// Code 是业务码（0表示成功），HTTP状态码按错误类别单独设置
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 资源创建成功（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
// 用法：
//
//	order, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只进日志
	if appErr.Err != nil {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"code", appErr.Code,
			"path", c.FullPath(),
			"error", appErr.Err,
		)
	}

	c.JSON(appErr.HTTPStatus(), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息，HTTP状态由错误码推导
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.KindOf(code).HTTPStatus(), Response{
		Code:    code,
		Message: message,
	})
}
