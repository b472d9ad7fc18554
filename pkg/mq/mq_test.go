package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchange: "bookstore.events"}

	event := map[string]string{"order_id": "o-1", "status": "Processing"}
	require.NoError(t, p.Publish(context.Background(), "order.created", event))

	require.Len(t, ch.published, 1)
	assert.Equal(t, "order.created", ch.keys[0])
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var got map[string]string
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &got))
	assert.Equal(t, event, got)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishErrors(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := &Publisher{channel: ch, exchange: "bookstore.events"}

	err := p.Publish(context.Background(), "order.created", "x")
	assert.ErrorIs(t, err, amqp.ErrClosed)

	err = p.Publish(context.Background(), "order.created", make(chan int))
	assert.Error(t, err, "不能序列化的消息应该报错")
}

// fakeAck 记录确认结果
type fakeAck struct {
	mu      sync.Mutex
	results []string
}

func (a *fakeAck) record(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, s)
}

func (a *fakeAck) Ack(uint64, bool) error        { a.record("ack"); return nil }
func (a *fakeAck) Nack(uint64, bool, bool) error { a.record("nack"); return nil }
func (a *fakeAck) Reject(uint64, bool) error     { a.record("reject"); return nil }

func (a *fakeAck) snapshot() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.results...)
}

func TestDispatch(t *testing.T) {
	ack := &fakeAck{}
	deliveries := make(chan amqp.Delivery, 4)
	deliveries <- amqp.Delivery{Acknowledger: ack, RoutingKey: "order.created", Body: []byte("ok")}
	deliveries <- amqp.Delivery{Acknowledger: ack, RoutingKey: "order.created", Body: []byte("retry")}
	deliveries <- amqp.Delivery{Acknowledger: ack, RoutingKey: "order.created", Body: []byte("retry"), Redelivered: true}
	deliveries <- amqp.Delivery{Acknowledger: ack, RoutingKey: "order.created", Body: []byte("bad")}
	close(deliveries)

	handler := func(_ context.Context, msg Message) error {
		switch string(msg.Body) {
		case "ok":
			return nil
		case "bad":
			return fmt.Errorf("decode: %w", ErrPermanent)
		default:
			return errors.New("temporary")
		}
	}

	err := dispatch(context.Background(), "q", deliveries, handler)
	assert.Error(t, err, "Channel关闭后应该返回错误")
	assert.Equal(t, []string{"ack", "nack", "reject", "reject"}, ack.snapshot())
}

func TestDispatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	deliveries := make(chan amqp.Delivery)

	done := make(chan error, 1)
	go func() {
		done <- dispatch(ctx, "q", deliveries, func(context.Context, Message) error { return nil })
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("取消后消费者没有退出")
	}
}
