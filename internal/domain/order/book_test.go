package order

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-ledger/internal/domain/discount"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("order-%d", n)
	}
}

type fixture struct {
	ledger    *inventory.Ledger
	discounts *discount.Table
	book      *Book
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ledger := inventory.NewLedger()
	_, err := ledger.Add("A", "A", "x", d("20.00"), 2)
	require.NoError(t, err)
	_, err = ledger.Add("B", "B", "y", d("15.00"), 3)
	require.NoError(t, err)
	table := discount.NewTable(ledger)
	book := NewBook(ledger, table,
		WithIDGenerator(sequentialIDs()),
		WithClock(func() time.Time { return fixedNow }),
	)
	return &fixture{ledger: ledger, discounts: table, book: book}
}

func lines(ls ...inventory.Line) []inventory.Line { return ls }

func TestBook_Create(t *testing.T) {
	t.Run("下单成功扣减库存", func(t *testing.T) {
		f := newFixture(t)
		o, err := f.book.Create(CreateParams{
			CustomerName: "张三",
			Address:      "北京市海淀区",
			Contact:      "13800000000",
			Lines:        lines(inventory.Line{ItemID: "A", Quantity: 1}, inventory.Line{ItemID: "B", Quantity: 2}),
		})
		require.NoError(t, err)

		assert.Equal(t, "order-1", o.ID)
		assert.Equal(t, StatusProcessing, o.Status)
		assert.True(t, o.Total.Equal(d("50.00")), "got %s", o.Total)
		assert.Equal(t, "北京市海淀区, 13800000000", o.ContactInfo())
		assert.Equal(t, fixedNow, o.CreatedAt)

		a, _ := f.ledger.Get("A")
		b, _ := f.ledger.Get("B")
		assert.Equal(t, 1, a.Quantity)
		assert.Equal(t, 1, b.Quantity)
	})

	t.Run("默认不应用折扣", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.discounts.Set("A", d("20")))

		o, err := f.book.Create(CreateParams{CustomerName: "c", Lines: lines(inventory.Line{ItemID: "A", Quantity: 2})})
		require.NoError(t, err)
		assert.True(t, o.Total.Equal(d("40")))
		assert.True(t, o.Items[0].UnitPrice.Equal(d("20")))
	})

	t.Run("应用折扣时记录折后单价", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.discounts.Set("A", d("20")))

		o, err := f.book.Create(CreateParams{
			CustomerName:   "c",
			Lines:          lines(inventory.Line{ItemID: "A", Quantity: 2}, inventory.Line{ItemID: "B", Quantity: 1}),
			ApplyDiscounts: true,
		})
		require.NoError(t, err)
		assert.True(t, o.Items[0].UnitPrice.Equal(d("16")))
		assert.True(t, o.Total.Equal(d("47")), "got %s", o.Total)
	})

	t.Run("重复行合并", func(t *testing.T) {
		f := newFixture(t)
		o, err := f.book.Create(CreateParams{
			CustomerName: "c",
			Lines:        lines(inventory.Line{ItemID: "B", Quantity: 1}, inventory.Line{ItemID: "B", Quantity: 2}),
		})
		require.NoError(t, err)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 3, o.Items[0].Quantity)
	})
}

func TestBook_CreateIsAllOrNothing(t *testing.T) {
	cases := []struct {
		name  string
		lines []inventory.Line
		kind  apperrors.Kind
	}{
		{"库存不足", lines(inventory.Line{ItemID: "A", Quantity: 1}, inventory.Line{ItemID: "B", Quantity: 5}), apperrors.KindInsufficientQuantity},
		{"图书不存在", lines(inventory.Line{ItemID: "A", Quantity: 1}, inventory.Line{ItemID: "nope", Quantity: 1}), apperrors.KindNotFound},
		{"空订单", nil, apperrors.KindInvalidArgument},
		{"数量为负", lines(inventory.Line{ItemID: "A", Quantity: -1}), apperrors.KindInvalidArgument},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			before := f.ledger.Items()

			_, err := f.book.Create(CreateParams{CustomerName: "c", Lines: c.lines})
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, c.kind), "got %v", err)
			assert.Equal(t, before, f.ledger.Items())
			assert.Equal(t, 0, f.book.Len())
		})
	}

	t.Run("售罄", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Purchase("A", 2)
		require.NoError(t, err)

		_, err = f.book.Create(CreateParams{CustomerName: "c", Lines: lines(inventory.Line{ItemID: "B", Quantity: 1}, inventory.Line{ItemID: "A", Quantity: 1})})
		assert.True(t, apperrors.IsKind(err, apperrors.KindOutOfStock))
		b, _ := f.ledger.Get("B")
		assert.Equal(t, 3, b.Quantity)
	})

	t.Run("客户姓名为空", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.book.Create(CreateParams{CustomerName: " ", Lines: lines(inventory.Line{ItemID: "A", Quantity: 1})})
		assert.ErrorIs(t, err, ErrInvalidCustomer)
	})
}

func TestBook_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	o, err := f.book.Create(CreateParams{CustomerName: "c", Lines: lines(inventory.Line{ItemID: "A", Quantity: 1})})
	require.NoError(t, err)
	assert.Equal(t, 1, o.Revision)

	_, _, err = f.book.UpdateStatus("missing", StatusShipped)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, _, err = f.book.UpdateStatus(o.ID, Status("Lost"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// 不强制流转顺序
	updated, prev, err := f.book.UpdateStatus(o.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, prev)
	assert.Equal(t, StatusCompleted, updated.Status)
	// 非法状态没有改动订单,版本只加了一次
	assert.Equal(t, 2, updated.Revision)

	_, prev, err = f.book.UpdateStatus(o.ID, StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, prev)

	got, err := f.book.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, got.Status)
	assert.Equal(t, 3, got.Revision)
}

func TestBook_RestoreDefaultsRevision(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Restore([]Order{
		{ID: "old", CustomerName: "c", Status: StatusShipped},
		{ID: "new", CustomerName: "c", Status: StatusCompleted, Revision: 4},
	}))

	old, err := f.book.Get("old")
	require.NoError(t, err)
	assert.Equal(t, 1, old.Revision)

	updated, _, err := f.book.UpdateStatus("new", StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Revision)
}

func TestBook_Lists(t *testing.T) {
	f := newFixture(t)
	for _, customer := range []string{"alice", "bob", "alice"} {
		_, err := f.book.Create(CreateParams{CustomerName: customer, Lines: lines(inventory.Line{ItemID: "B", Quantity: 1})})
		require.NoError(t, err)
	}
	_, _, err := f.book.UpdateStatus("order-2", StatusShipped)
	require.NoError(t, err)

	ids := func(orders []Order) []string {
		out := make([]string, 0, len(orders))
		for _, o := range orders {
			out = append(out, o.ID)
		}
		return out
	}

	assert.Equal(t, []string{"order-1", "order-3"}, ids(f.book.ListByCustomer("alice")))
	assert.Empty(t, f.book.ListByCustomer("carol"))

	processing, err := f.book.ListByStatus(StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, []string{"order-1", "order-3"}, ids(processing))

	_, err = f.book.ListByStatus(Status("processing"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	t.Run("返回的是副本", func(t *testing.T) {
		list := f.book.ListByCustomer("bob")
		require.Len(t, list, 1)
		list[0].Items[0].Quantity = 100
		list[0].Status = StatusCompleted

		got, _ := f.book.Get("order-2")
		assert.Equal(t, 1, got.Items[0].Quantity)
		assert.Equal(t, StatusShipped, got.Status)
	})
}

func TestBook_Restore(t *testing.T) {
	f := newFixture(t)
	_, err := f.book.Create(CreateParams{CustomerName: "c", Lines: lines(inventory.Line{ItemID: "A", Quantity: 1})})
	require.NoError(t, err)
	all := f.book.All()

	other := NewBook(f.ledger, f.discounts)
	require.NoError(t, other.Restore(all))
	assert.Equal(t, all, other.All())

	bad := append(all, all[0])
	assert.ErrorIs(t, other.Restore(bad), ErrDuplicateOrderID)
	assert.Equal(t, all, other.All())
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStatus("Cancelled")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestGenerateOrderIDIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateOrderID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestBook_NextIDRetriesOnCollision(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.book.newID = func() string {
		calls++
		if calls <= 2 {
			return "same"
		}
		return fmt.Sprintf("id-%d", calls)
	}

	o1, err := f.book.Create(CreateParams{CustomerName: "c", Lines: lines(inventory.Line{ItemID: "B", Quantity: 1})})
	require.NoError(t, err)
	assert.Equal(t, "same", o1.ID)

	o2, err := f.book.Create(CreateParams{CustomerName: "c", Lines: lines(inventory.Line{ItemID: "B", Quantity: 1})})
	require.NoError(t, err)
	assert.Equal(t, "id-3", o2.ID)
}
