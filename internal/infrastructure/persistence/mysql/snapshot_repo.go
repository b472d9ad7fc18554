package mysql

import (
	"context"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-ledger/internal/domain/discount"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/internal/domain/snapshot"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

const (
	batchSize  = 500
	// MySQL 错误码 ER_DUP_ENTRY
	erDupEntry = 1062
)

// snapshotRepository 快照的MySQL实现
// 教学要点:
// 1. Save 在一个事务里先清空再整体写入,要么全写成功要么保持旧快照
// 2. GORM 不允许无条件删除,需要 AllowGlobalUpdate
// 3. 领域实体 ↔ GORM模型 的转换集中在 toModels/toSnapshot,便于不连库测试
type snapshotRepository struct {
	db *gorm.DB
	tx *TxManager
}

func NewSnapshotRepository(db *gorm.DB) snapshot.Repository {
	return &snapshotRepository{db: db, tx: NewTxManager(db)}
}

func (r *snapshotRepository) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	db := dbFrom(ctx, r.db)

	var meta SnapshotMetaModel
	if err := db.First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, snapshot.ErrNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithDetail("读取快照元信息: %v", err)
	}

	var m models
	m.meta = meta
	if err := db.Order("id").Find(&m.items).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithDetail("读取库存: %v", err)
	}
	if err := db.Order("item_id").Find(&m.discounts).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithDetail("读取折扣: %v", err)
	}
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Order("seq").Find(&m.orders).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithDetail("读取订单: %v", err)
	}
	return m.toSnapshot(), nil
}

func (r *snapshotRepository) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	m := toModels(snap)
	return r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := dbFrom(ctx, r.db).Session(&gorm.Session{AllowGlobalUpdate: true})

		// 先删明细再删订单
		for _, model := range []interface{}{&OrderItemModel{}, &OrderModel{}, &DiscountModel{}, &ItemModel{}, &SnapshotMetaModel{}} {
			if err := db.Delete(model).Error; err != nil {
				return apperrors.ErrDatabaseError.WithDetail("清空快照表: %v", err)
			}
		}

		if err := db.Create(&m.meta).Error; err != nil {
			return apperrors.ErrDatabaseError.WithDetail("写入快照元信息: %v", err)
		}
		// 空切片 Create 会报错,需要跳过
		if len(m.items) > 0 {
			if err := db.CreateInBatches(m.items, batchSize).Error; err != nil {
				return writeError("写入库存", err)
			}
		}
		if len(m.discounts) > 0 {
			if err := db.CreateInBatches(m.discounts, batchSize).Error; err != nil {
				return apperrors.ErrDatabaseError.WithDetail("写入折扣: %v", err)
			}
		}
		if len(m.orders) > 0 {
			// Items 关联会随订单一起插入
			if err := db.CreateInBatches(m.orders, batchSize).Error; err != nil {
				return writeError("写入订单", err)
			}
		}
		return nil
	})
}

// models 一次快照对应的全部行
type models struct {
	meta      SnapshotMetaModel
	items     []ItemModel
	discounts []DiscountModel
	orders    []OrderModel
}

func toModels(s *snapshot.Snapshot) models {
	m := models{
		meta:      SnapshotMetaModel{ID: 1, TakenAt: s.TakenAt},
		items:     make([]ItemModel, len(s.Items)),
		discounts: make([]DiscountModel, len(s.Discounts)),
		orders:    make([]OrderModel, len(s.Orders)),
	}
	for i, it := range s.Items {
		m.items[i] = ItemModel{ID: it.ID, Title: it.Title, Author: it.Author, Price: it.Price, Quantity: it.Quantity}
	}
	for i, d := range s.Discounts {
		m.discounts[i] = DiscountModel{ItemID: d.ItemID, Percentage: d.Percentage}
	}
	for i, o := range s.Orders {
		items := make([]OrderItemModel, len(o.Items))
		for j, it := range o.Items {
			items[j] = OrderItemModel{OrderID: o.ID, ItemID: it.ItemID, Quantity: it.Quantity, Price: it.UnitPrice}
		}
		m.orders[i] = OrderModel{
			ID:           o.ID,
			Seq:          i,
			CustomerName: o.CustomerName,
			Address:      o.Address,
			Contact:      o.Contact,
			Total:        o.Total,
			Status:       string(o.Status),
			Revision:     o.Revision,
			Items:        items,
			CreatedAt:    o.CreatedAt,
			UpdatedAt:    o.UpdatedAt,
		}
	}
	return m
}

func (m models) toSnapshot() *snapshot.Snapshot {
	s := &snapshot.Snapshot{
		TakenAt:   m.meta.TakenAt,
		Items:     make([]inventory.Item, len(m.items)),
		Discounts: make([]discount.Entry, len(m.discounts)),
		Orders:    make([]order.Order, len(m.orders)),
	}
	for i, it := range m.items {
		s.Items[i] = inventory.Item{ID: it.ID, Title: it.Title, Author: it.Author, Price: it.Price, Quantity: it.Quantity}
	}
	for i, d := range m.discounts {
		s.Discounts[i] = discount.Entry{ItemID: d.ItemID, Percentage: d.Percentage}
	}
	for i, o := range m.orders {
		items := make([]order.Item, len(o.Items))
		for j, it := range o.Items {
			items[j] = order.Item{ItemID: it.ItemID, Quantity: it.Quantity, UnitPrice: it.Price}
		}
		s.Orders[i] = order.Order{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			Address:      o.Address,
			Contact:      o.Contact,
			Items:        items,
			Total:        o.Total,
			Status:       order.Status(o.Status),
			Revision:     o.Revision,
			CreatedAt:    o.CreatedAt,
			UpdatedAt:    o.UpdatedAt,
		}
	}
	return s
}

// writeError 唯一键冲突说明快照本身有重复ID,其余归为数据库错误
func writeError(op string, err error) error {
	if isDuplicateError(err) {
		return apperrors.ErrDuplicateEntry.WithDetail("%s: %v", op, err)
	}
	return apperrors.ErrDatabaseError.WithDetail("%s: %v", op, err)
}

// isDuplicateError 未开启 TranslateError 时驱动返回 *MySQLError
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == erDupEntry
}
