package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/logger"
	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/router"
	"github.com/xiebiao/bookstore-ledger/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-ledger/pkg/mq"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// main 主程序入口
// 启动顺序: 配置 → 日志 → 链路追踪 → 状态加载 → MQ → HTTP
// 退出顺序相反,HTTP 停止接收请求后再保存快照
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if err := runWithLogger(cfg, run); err != nil {
		os.Exit(1)
	}
}

// runWithLogger 初始化日志后执行 fn
// fn 的错误要在关闭日志输出之前写入,log.output 为文件时才不会丢
func runWithLogger(cfg *config.Config, fn func(ctx context.Context, cfg *config.Config) error) error {
	logCloser, err := logger.Init(cfg.Log)
	if err != nil {
		slog.Error("init logger failed", "error", err)
		return err
	}
	defer logCloser.Close()

	if err := fn(context.Background(), cfg); err != nil {
		slog.Error("service exited with error", "error", err)
		return err
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"persistence", cfg.Persistence.Driver,
		"mq", cfg.MQ.Enabled,
		"tracing", cfg.Tracing.Enabled,
	)

	// 2. 链路追踪
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				slog.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	// 3. 内存状态 + 快照
	st := store.New()
	repo, closeRepo, err := openSnapshotRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()
	if err := loadSnapshot(ctx, st, repo, cfg.Persistence.Driver); err != nil {
		return err
	}

	// 4. 订单事件
	publisher, closePublisher, err := newEventPublisher(cfg.MQ)
	if err != nil {
		return err
	}
	defer closePublisher()

	// 5. HTTP
	engine := router.New(router.Options{
		Mode:           cfg.Server.Mode,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		SwaggerEnabled: cfg.Server.Mode != "release",
	}, router.NewHandlers(st, publisher))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server forced to shutdown", "error", err)
	}

	// 请求都处理完了再保存
	return saveSnapshot(shutdownCtx, st, repo, cfg.Persistence.Driver)
}

// newEventPublisher MQ 未启用时返回 NopPublisher
func newEventPublisher(cfg config.MQConfig) (order.EventPublisher, func(), error) {
	if !cfg.Enabled {
		return messaging.NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(mq.Config{
		URL:          cfg.URL,
		Exchange:     cfg.Exchange,
		ExchangeType: cfg.ExchangeType,
	})
	if err != nil {
		return nil, nil, err
	}
	breaker := circuitbreaker.New("order-events", circuitbreaker.Config{
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(cfg.BreakerFailures),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	slog.Info("order events enabled", "exchange", cfg.Exchange)

	closeFn := func() {
		if err := pub.Close(); err != nil {
			slog.Warn("close mq publisher failed", "error", err)
		}
	}
	return messaging.NewOrderEventPublisher(pub, breaker), closeFn, nil
}
