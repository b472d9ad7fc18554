// Package metrics 基于Prometheus的指标定义
//
// 三类指标:
//   - Counter: 只增不减,以 _total 结尾(请求数、订单数)
//   - Gauge: 瞬时值(库存条目数、库存总值、熔断器状态)
//   - Histogram: 分布,以单位结尾(耗时 _seconds)
//
// 所有指标在包加载时通过 promauto 注册到默认 Registry,
// /metrics 端点用 Handler() 暴露。标签只用有限取值的维度
// (method、路由模板、错误类别),不要用 ISBN、订单号这类高基数字段。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

var (
	// HTTP

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时(秒)",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		},
	)

	// 订单

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "订单创建总数",
		},
	)

	// OrdersFailedTotal 标签 reason 取错误类别(NotFound/OutOfStock/...)
	OrdersFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_failed_total",
			Help:      "订单创建失败总数",
		},
		[]string{"reason"},
	)

	OrderCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_creation_duration_seconds",
			Help:      "订单创建耗时(秒)",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	OrderStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "订单状态变更次数",
		},
		[]string{"status"},
	)

	// 库存

	// PurchasesTotal 标签 result 取 success 或错误类别
	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "单本购买次数",
		},
		[]string{"result"},
	)

	InventoryItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_items",
			Help:      "库存台账中的条目数",
		},
	)

	InventoryValue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_value",
			Help:      "库存总值(单价×数量之和),最近一次查询的结果",
		},
	)

	// StoreLockSeconds 写锁持有时间(含等待)
	StoreLockSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_write_lock_seconds",
			Help:      "写事务耗时(秒)",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
	)

	// 快照

	SnapshotOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_operations_total",
			Help:      "快照加载/保存次数",
		},
		[]string{"driver", "op", "result"},
	)

	// 熔断器

	// CircuitBreakerState 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "经过熔断器的请求数",
		},
		[]string{"name", "result"}, // success/failure/rejected
	)

	// 消息队列

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_processing_duration_seconds",
			Help:      "消息处理耗时(秒)",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
)

// Handler /metrics 端点
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增带标签的Counter
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
