package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		kind   Kind
		status int
	}{
		{ErrInvalidPrice, KindInvalidArgument, http.StatusBadRequest},
		{ErrInvalidStatus, KindInvalidArgument, http.StatusBadRequest},
		{ErrISBNDuplicate, KindDuplicateKey, http.StatusConflict},
		{ErrBookNotFound, KindNotFound, http.StatusNotFound},
		{ErrOrderNotFound, KindNotFound, http.StatusNotFound},
		{ErrOutOfStock, KindOutOfStock, http.StatusConflict},
		{ErrInsufficientStock, KindInsufficientQuantity, http.StatusUnprocessableEntity},
		{ErrDatabaseError, KindInternal, http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.kind.String(), func(t *testing.T) {
			assert.Equal(t, c.kind, c.err.Kind())
			assert.Equal(t, c.status, c.err.HTTPStatus())
		})
	}
}

func TestWithDetailKeepsIdentity(t *testing.T) {
	err := ErrBookNotFound.WithDetail("isbn=%s", "978-1")

	assert.True(t, errors.Is(err, ErrBookNotFound))
	assert.False(t, errors.Is(err, ErrOrderNotFound))
	assert.Contains(t, err.Error(), "isbn=978-1")
	// 原变量不受影响
	assert.Equal(t, "图书不存在", ErrBookNotFound.Message)
}

func TestGetAppErrorWrapsPlainError(t *testing.T) {
	plain := fmt.Errorf("boom")
	appErr := GetAppError(plain)

	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, plain)

	wrapped := fmt.Errorf("外层: %w", ErrOutOfStock)
	assert.Same(t, ErrOutOfStock, GetAppError(wrapped))
	assert.True(t, IsKind(wrapped, KindOutOfStock))
	assert.False(t, IsKind(plain, KindOutOfStock))
}
