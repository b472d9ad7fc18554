package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errUnavailable = errors.New("broker unavailable")

// fakeClock 手动推进的时钟,避免测试里 sleep
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New("test", cfg)
	cb.now = clock.now
	cb.resetWindow(clock.now())
	return cb, clock
}

func succeed(context.Context) error { return nil }
func fail(context.Context) error    { return errUnavailable }

func TestCircuitBreaker_StaysClosedOnSuccess(t *testing.T) {
	cb, _ := newTestBreaker(Config{})

	for i := 0; i < 10; i++ {
		if err := cb.Execute(context.Background(), succeed); err != nil {
			t.Fatalf("期望成功,实际失败: %v", err)
		}
	}
	if cb.State() != StateClosed {
		t.Errorf("期望CLOSED,实际%s", cb.State())
	}
	if got := cb.Counts().TotalSuccesses; got != 10 {
		t.Errorf("期望成功10次,实际%d次", got)
	}
}

func TestCircuitBreaker_TripsAndRejects(t *testing.T) {
	cb, _ := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(3)})

	for i := 0; i < 3; i++ {
		if err := cb.Execute(context.Background(), fail); !errors.Is(err, errUnavailable) {
			t.Fatalf("第%d次期望返回原始错误,实际%v", i+1, err)
		}
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望OPEN,实际%s", cb.State())
	}

	called := false
	err := cb.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望ErrOpenState,实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(Config{
		Timeout:     time.Second,
		ReadyToTrip: ConsecutiveFailures(1),
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(context.Background(), fail)
	if cb.State() != StateOpen {
		t.Fatalf("期望OPEN,实际%s", cb.State())
	}

	clock.advance(time.Second)
	if cb.State() != StateHalfOpen {
		t.Fatalf("超时后期望HALF_OPEN,实际%s", cb.State())
	}

	if err := cb.Execute(context.Background(), succeed); err != nil {
		t.Fatalf("半开试探期望成功,实际%v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("试探成功后期望CLOSED,实际%s", cb.State())
	}

	want := []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}
	if len(transitions) != len(want) {
		t.Fatalf("状态变化 = %v, 期望 %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("第%d次状态变化 = %s, 期望 %s", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(Config{Timeout: time.Second, ReadyToTrip: ConsecutiveFailures(1)})

	_ = cb.Execute(context.Background(), fail)
	clock.advance(time.Second)

	_ = cb.Execute(context.Background(), fail)
	if cb.State() != StateOpen {
		t.Errorf("半开试探失败后期望OPEN,实际%s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb, clock := newTestBreaker(Config{Timeout: time.Second, ReadyToTrip: ConsecutiveFailures(1), MaxRequests: 1})

	_ = cb.Execute(context.Background(), fail)
	clock.advance(time.Second)

	// 试探请求进行中,第二个请求应被拒绝
	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		return cb.Execute(ctx, succeed)
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("半开名额用完时期望ErrOpenState,实际%v", err)
	}
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{Interval: time.Minute, ReadyToTrip: ConsecutiveFailures(3)})

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	clock.advance(time.Minute)
	_ = cb.Execute(context.Background(), fail)

	if cb.State() != StateClosed {
		t.Errorf("窗口清零后不应熔断,实际%s", cb.State())
	}
	if got := cb.Counts().ConsecutiveFailures; got != 1 {
		t.Errorf("期望连续失败1次,实际%d", got)
	}
}

func TestCircuitBreaker_CancelIsNotFailure(t *testing.T) {
	cb, _ := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(1)})

	err := cb.Execute(context.Background(), func(context.Context) error { return context.Canceled })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("期望返回context.Canceled,实际%v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("取消不应触发熔断,实际%s", cb.State())
	}
}

func TestCounts_FailureRate(t *testing.T) {
	if rate := (Counts{}).FailureRate(); rate != 0 {
		t.Errorf("无请求时失败率应为0,实际%f", rate)
	}
	c := Counts{Requests: 4, TotalFailures: 1}
	if rate := c.FailureRate(); rate != 0.25 {
		t.Errorf("期望0.25,实际%f", rate)
	}
}
