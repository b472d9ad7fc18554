package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/snapshot"
	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-ledger/pkg/metrics"
)

// openSnapshotRepository 按配置选择快照存储,driver=none 时返回 nil
func openSnapshotRepository(ctx context.Context, cfg *config.Config) (snapshot.Repository, func(), error) {
	switch cfg.Persistence.Driver {
	case config.DriverMySQL:
		db, err := mysql.NewDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return mysql.NewSnapshotRepository(db), closeFn, nil

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSnapshotStore(client, cfg.Persistence.RedisKey), func() { client.Close() }, nil

	default:
		slog.Info("snapshot persistence disabled, state lives in memory only")
		return nil, func() {}, nil
	}
}

func loadSnapshot(ctx context.Context, st *store.Store, repo snapshot.Repository, driver string) error {
	if repo == nil {
		return nil
	}
	err := st.Load(ctx, repo)
	observeSnapshot(driver, "load", err)
	return err
}

func saveSnapshot(ctx context.Context, st *store.Store, repo snapshot.Repository, driver string) error {
	if repo == nil {
		return nil
	}
	err := st.Save(ctx, repo)
	observeSnapshot(driver, "save", err)
	if err != nil {
		return errors.Join(errors.New("保存快照失败"), err)
	}
	return nil
}

func observeSnapshot(driver, op string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.SnapshotOperationsTotal, map[string]string{
		"driver": driver,
		"op":     op,
		"result": result,
	})
}
