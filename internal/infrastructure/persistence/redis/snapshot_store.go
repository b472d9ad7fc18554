package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/domain/discount"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/internal/domain/snapshot"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

// SnapshotStore 把整个快照序列化成一个JSON字符串存到单个key
// 设计说明:
// 1. 快照只在启停时读写,一个key足够,不需要拆成多个hash
// 2. 存储格式是独立的 document 结构,领域类型改名不影响已保存的数据
// 3. 不设置过期时间
type SnapshotStore struct {
	client kv
	key    string
}

// kv 快照存储用到的命令(*redis.Client 满足)
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func NewSnapshotStore(client kv, key string) *SnapshotStore {
	return &SnapshotStore{client: client, key: key}
}

var _ snapshot.Repository = (*SnapshotStore)(nil)

func (s *SnapshotStore) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.ErrRedisError.WithDetail("读取快照: %v", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(err, "快照格式错误")
	}
	return doc.toSnapshot(), nil
}

func (s *SnapshotStore) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	data, err := json.Marshal(fromSnapshot(snap))
	if err != nil {
		return apperrors.Wrap(err, "快照序列化失败")
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return apperrors.ErrRedisError.WithDetail("保存快照: %v", err)
	}
	return nil
}

// =========================================
// 存储格式
// =========================================

type document struct {
	Version   int           `json:"version"`
	TakenAt   time.Time     `json:"taken_at"`
	Items     []itemDoc     `json:"items"`
	Discounts []discountDoc `json:"discounts"`
	Orders    []orderDoc    `json:"orders"`
}

type itemDoc struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type discountDoc struct {
	ID         string          `json:"id"`
	Percentage decimal.Decimal `json:"percentage"`
}

type orderDoc struct {
	ID           string          `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Address      string          `json:"address"`
	Contact      string          `json:"contact"`
	Items        []orderItemDoc  `json:"items"`
	Total        decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	Revision     int             `json:"revision"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type orderItemDoc struct {
	ID       string          `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

const documentVersion = 1

func fromSnapshot(s *snapshot.Snapshot) document {
	doc := document{
		Version:   documentVersion,
		TakenAt:   s.TakenAt,
		Items:     make([]itemDoc, len(s.Items)),
		Discounts: make([]discountDoc, len(s.Discounts)),
		Orders:    make([]orderDoc, len(s.Orders)),
	}
	for i, it := range s.Items {
		doc.Items[i] = itemDoc{ID: it.ID, Title: it.Title, Author: it.Author, Price: it.Price, Quantity: it.Quantity}
	}
	for i, d := range s.Discounts {
		doc.Discounts[i] = discountDoc{ID: d.ItemID, Percentage: d.Percentage}
	}
	for i, o := range s.Orders {
		items := make([]orderItemDoc, len(o.Items))
		for j, it := range o.Items {
			items[j] = orderItemDoc{ID: it.ItemID, Quantity: it.Quantity, Price: it.UnitPrice}
		}
		doc.Orders[i] = orderDoc{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			Address:      o.Address,
			Contact:      o.Contact,
			Items:        items,
			Total:        o.Total,
			Status:       string(o.Status),
			Revision:     o.Revision,
			CreatedAt:    o.CreatedAt,
			UpdatedAt:    o.UpdatedAt,
		}
	}
	return doc
}

func (doc document) toSnapshot() *snapshot.Snapshot {
	s := &snapshot.Snapshot{
		TakenAt:   doc.TakenAt,
		Items:     make([]inventory.Item, len(doc.Items)),
		Discounts: make([]discount.Entry, len(doc.Discounts)),
		Orders:    make([]order.Order, len(doc.Orders)),
	}
	for i, it := range doc.Items {
		s.Items[i] = inventory.Item{ID: it.ID, Title: it.Title, Author: it.Author, Price: it.Price, Quantity: it.Quantity}
	}
	for i, d := range doc.Discounts {
		s.Discounts[i] = discount.Entry{ItemID: d.ID, Percentage: d.Percentage}
	}
	for i, o := range doc.Orders {
		items := make([]order.Item, len(o.Items))
		for j, it := range o.Items {
			items[j] = order.Item{ItemID: it.ID, Quantity: it.Quantity, UnitPrice: it.Price}
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
