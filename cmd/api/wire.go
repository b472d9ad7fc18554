//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成 wire_gen.go 后,可以用 InitializeHandlers 替代 router.NewHandlers
// Provider 按层分组: 应用层用例 → 接口层处理器

package main

import (
	"github.com/google/wire"

	appdiscount "github.com/xiebiao/bookstore-ledger/internal/application/discount"
	appinventory "github.com/xiebiao/bookstore-ledger/internal/application/inventory"
	apporder "github.com/xiebiao/bookstore-ledger/internal/application/order"
	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/router"
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appinventory.NewAddItemUseCase,
	appinventory.NewRemoveItemUseCase,
	appinventory.NewPurchaseUseCase,
	appinventory.NewQueryItemsUseCase,
	appdiscount.NewSetDiscountUseCase,
	appdiscount.NewPromotionUseCase,
	appdiscount.NewQueryDiscountUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewQueryOrdersUseCase,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewInventoryHandler,
	handler.NewDiscountHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeHandlers Store 和事件发布器由 main 按配置创建后传入
func InitializeHandlers(s *store.Store, publisher order.EventPublisher) router.Handlers {
	wire.Build(applicationSet, handlerSet)
	return router.Handlers{}
}
