package mysql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. MySQL 只用于保存快照,运行时所有读写都在内存里
// 2. 开发环境打印SQL,生产环境关闭
// 3. 启动时 AutoMigrate 快照表
func NewDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	slog.InfoContext(ctx, "mysql connected", "host", cfg.Database.Host, "db", cfg.Database.DBName)

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

// autoMigrate 只建表/加字段,不删字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SnapshotMetaModel{},
		&ItemModel{},
		&DiscountModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// SnapshotMetaModel 快照元信息,只有一行
// 没有这一行就当作从未保存过快照
type SnapshotMetaModel struct {
	ID      uint      `gorm:"primaryKey"`
	TakenAt time.Time `gorm:"not null;comment:快照时间"`
}

func (SnapshotMetaModel) TableName() string {
	return "snapshot_meta"
}

// ItemModel 库存条目
// 价格用 DECIMAL 存储,decimal.Decimal 实现了 Scanner/Valuer
type ItemModel struct {
	ID       string          `gorm:"primaryKey;size:64;comment:商品ID"`
	Title    string          `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author   string          `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Price    decimal.Decimal `gorm:"type:decimal(20,4);not null;comment:单价"`
	Quantity int             `gorm:"not null;default:0;comment:库存数量"`
}

func (ItemModel) TableName() string {
	return "items"
}

type DiscountModel struct {
	ItemID     string          `gorm:"primaryKey;size:64;comment:商品ID"`
	Percentage decimal.Decimal `gorm:"type:decimal(7,4);not null;comment:折扣百分比(0-100)"`
}

func (DiscountModel) TableName() string {
	return "discounts"
}

// OrderModel 订单,与 OrderItemModel 一对多
// Seq 记录插入顺序,按客户/状态列出时要保持这个顺序
type OrderModel struct {
	ID           string           `gorm:"primaryKey;size:64;comment:订单ID"`
	Seq          int              `gorm:"index;not null;comment:创建顺序"`
	CustomerName string           `gorm:"index;size:100;not null;comment:客户名"`
	Address      string           `gorm:"size:255;comment:收货地址"`
	Contact      string           `gorm:"size:100;comment:联系方式"`
	Total        decimal.Decimal  `gorm:"type:decimal(32,10);not null;comment:订单总金额"`
	Status       string           `gorm:"index;size:20;not null;comment:订单状态(Processing/Shipped/Completed)"`
	Revision     int              `gorm:"not null;default:1;comment:状态版本"`
	Items        []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time        `gorm:"comment:创建时间"`
	UpdatedAt    time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细,Price 是下单时的单价快照
// 折后单价最多10位小数(见 inventory.MaxScale),列宽按此设置,读回后 Total 仍等于各行小计之和
type OrderItemModel struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  string          `gorm:"index;size:64;not null;comment:订单ID"`
	ItemID   string          `gorm:"size:64;not null;comment:商品ID"`
	Quantity int             `gorm:"not null;comment:购买数量"`
	Price    decimal.Decimal `gorm:"type:decimal(32,10);not null;comment:下单时单价"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
