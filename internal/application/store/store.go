package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/xiebiao/bookstore-ledger/internal/domain/discount"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/internal/domain/snapshot"
	"github.com/xiebiao/bookstore-ledger/pkg/metrics"
)

// Tx 一次临界区内可以访问的三张表
// 只在 Transaction / View 的回调里有效,不要把它带出回调
type Tx struct {
	Ledger    *inventory.Ledger
	Discounts *discount.Table
	Orders    *order.Book
}

// Store 进程内唯一的书店状态
// 教学要点:
// 1. 三张表由同一把读写锁保护,写操作互斥,读操作共享
// 2. 不做更细粒度的锁: 下单要同时读写库存、折扣、订单,一把锁最简单也不会死锁
// 3. 生命周期和进程一致,由 main 创建后注入各用例,不是全局单例
type Store struct {
	mu sync.RWMutex
	tx *Tx
}

func New(opts ...order.Option) *Store {
	ledger := inventory.NewLedger()
	discounts := discount.NewTable(ledger)
	return &Store{
		tx: &Tx{
			Ledger:    ledger,
			Discounts: discounts,
			Orders:    order.NewBook(ledger, discounts, opts...),
		},
	}
}

// Transaction 在写锁内执行 fn
// 领域对象保证失败路径不改状态,所以这里没有回滚逻辑:
// fn 返回错误时,之前已成功的步骤不会被撤销,一个 fn 里只应该有一个会失败的修改
//
// 使用示例:
//
//	err := store.Transaction(ctx, func(tx *store.Tx) error {
//	    created, err = tx.Orders.Create(params)
//	    return err
//	})
func (s *Store) Transaction(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	s.mu.Lock()
	defer func() {
		s.mu.Unlock()
		metrics.ObserveHistogram(metrics.StoreLockSeconds, time.Since(start).Seconds())
	}()
	return fn(s.tx)
}

// View 在读锁内执行 fn,fn 里不能修改任何状态
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.tx)
}

// Snapshot 读锁内拷贝三张表
func (s *Store) Snapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	var snap *snapshot.Snapshot
	err := s.View(ctx, func(tx *Tx) error {
		snap = &snapshot.Snapshot{
			Items:     tx.Ledger.Items(),
			Discounts: tx.Discounts.Entries(),
			Orders:    tx.Orders.All(),
			TakenAt:   time.Now(),
		}
		return nil
	})
	return snap, err
}

// Restore 用快照整体替换当前状态
// 先在临时对象上恢复,全部成功才替换,失败时当前状态不变
func (s *Store) Restore(ctx context.Context, snap *snapshot.Snapshot) error {
	ledger := inventory.NewLedger()
	if err := ledger.Restore(snap.Items); err != nil {
		return err
	}
	discounts := discount.NewTable(ledger)
	if err := discounts.Restore(snap.Discounts); err != nil {
		return err
	}

	return s.Transaction(ctx, func(tx *Tx) error {
		// 保留订单簿的配置(订单号生成器、时钟),只替换数据
		if err := tx.Orders.Restore(snap.Orders); err != nil {
			return err
		}
		tx.Orders.Rebind(ledger, discounts)
		tx.Ledger = ledger
		tx.Discounts = discounts
		metrics.SetGauge(metrics.InventoryItems, float64(ledger.Len()))
		return nil
	})
}

// Load 启动时从仓储加载快照,没有快照时保持空状态
func (s *Store) Load(ctx context.Context, repo snapshot.Repository) error {
	snap, err := repo.Load(ctx)
	if errors.Is(err, snapshot.ErrNotFound) {
		slog.InfoContext(ctx, "no snapshot found, starting empty")
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.Restore(ctx, snap); err != nil {
		return err
	}
	slog.InfoContext(ctx, "snapshot loaded",
		"items", len(snap.Items),
		"discounts", len(snap.Discounts),
		"orders", len(snap.Orders),
		"taken_at", snap.TakenAt,
	)
	return nil
}

// Save 退出前保存快照
func (s *Store) Save(ctx context.Context, repo snapshot.Repository) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, snap); err != nil {
		return err
	}
	slog.InfoContext(ctx, "snapshot saved",
		"items", len(snap.Items),
		"discounts", len(snap.Discounts),
		"orders", len(snap.Orders),
	)
	return nil
}
