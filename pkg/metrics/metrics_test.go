package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// 指标是全局的,测试只比较前后差值

func TestCounter(t *testing.T) {
	before := counterValue(t, OrdersCreatedTotal)

	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)

	if got := counterValue(t, OrdersCreatedTotal) - before; got != 3 {
		t.Errorf("Counter增量错误: expected=3, got=%f", got)
	}
}

func TestCounterVec(t *testing.T) {
	labels := map[string]string{"method": "GET", "path": "/api/v1/items/:id", "status": "200"}
	other := map[string]string{"method": "POST", "path": "/api/v1/orders", "status": "201"}

	before := counterValue(t, HTTPRequestsTotal.With(labels))
	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, other)
	IncCounterVec(HTTPRequestsTotal, labels)

	if got := counterValue(t, HTTPRequestsTotal.With(labels)) - before; got != 2 {
		t.Errorf("GET计数错误: expected=2, got=%f", got)
	}
}

func TestGauge(t *testing.T) {
	SetGauge(InventoryItems, 10)
	IncGauge(InventoryItems)
	DecGauge(InventoryItems)
	DecGauge(InventoryItems)

	if got := gaugeValue(t, InventoryItems); got != 9 {
		t.Errorf("Gauge值错误: expected=9, got=%f", got)
	}

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "test"}, 1)
	if got := gaugeValue(t, CircuitBreakerState.With(map[string]string{"name": "test"})); got != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", got)
	}
}

func TestHistogram(t *testing.T) {
	before := histogramCount(t, OrderCreationDuration)

	ObserveHistogram(OrderCreationDuration, 0.0002)
	ObserveHistogram(OrderCreationDuration, 0.003)

	if got := histogramCount(t, OrderCreationDuration) - before; got != 2 {
		t.Errorf("Histogram样本数错误: expected=2, got=%d", got)
	}

	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/ping"}, 0.001)
}

func TestHandlerExposesMetrics(t *testing.T) {
	IncCounterVec(PurchasesTotal, map[string]string{"result": "success"})

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bookstore_purchases_total") {
		t.Error("/metrics 输出中缺少 bookstore_purchases_total")
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("读取Counter失败: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("读取Gauge失败: %v", err)
	}
	return m.GetGauge().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("读取Histogram失败: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
