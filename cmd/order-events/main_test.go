package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/pkg/mq"
)

func TestHandleEvent(t *testing.T) {
	body, err := json.Marshal(order.Event{
		Type:       order.EventCreated,
		OrderID:    "o-1",
		Status:     order.StatusProcessing,
		Total:      decimal.NewFromInt(10),
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	assert.NoError(t, handleEvent(context.Background(), mq.Message{RoutingKey: "order.created", Body: body}))

	err = handleEvent(context.Background(), mq.Message{Body: []byte("{broken")})
	assert.True(t, errors.Is(err, mq.ErrPermanent))
}
