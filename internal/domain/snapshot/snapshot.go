package snapshot

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-ledger/internal/domain/discount"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

// Snapshot 三张表在某一时刻的完整拷贝
// 只在进程启动(加载)和优雅退出(保存)时使用
type Snapshot struct {
	Items     []inventory.Item
	Discounts []discount.Entry
	Orders    []order.Order
	TakenAt   time.Time
}

// Empty 没有任何数据
func (s *Snapshot) Empty() bool {
	return len(s.Items) == 0 && len(s.Discounts) == 0 && len(s.Orders) == 0
}

// ErrNotFound 存储中还没有快照(首次启动)
var ErrNotFound = apperrors.New(apperrors.ErrCodeNotFound, "快照不存在")

// Repository 快照仓储接口(依赖倒置,由 infrastructure 层实现)
type Repository interface {
	// Load 读取最近一次保存的快照,没有时返回 ErrNotFound
	Load(ctx context.Context) (*Snapshot, error)

	// Save 整体覆盖保存
	Save(ctx context.Context, s *Snapshot) error
}
