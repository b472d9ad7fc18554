package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookstore-ledger/docs"
	appdiscount "github.com/xiebiao/bookstore-ledger/internal/application/discount"
	appinventory "github.com/xiebiao/bookstore-ledger/internal/application/inventory"
	apporder "github.com/xiebiao/bookstore-ledger/internal/application/order"
	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-ledger/pkg/metrics"
	"github.com/xiebiao/bookstore-ledger/pkg/response"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Inventory *handler.InventoryHandler
	Discount  *handler.DiscountHandler
	Order     *handler.OrderHandler
}

// NewHandlers 手动组装 用例 → 处理器
// 依赖链: Store ← UseCase ← Handler
func NewHandlers(s *store.Store, publisher order.EventPublisher) Handlers {
	return Handlers{
		Inventory: handler.NewInventoryHandler(
			appinventory.NewAddItemUseCase(s),
			appinventory.NewRemoveItemUseCase(s),
			appinventory.NewPurchaseUseCase(s),
			appinventory.NewQueryItemsUseCase(s),
		),
		Discount: handler.NewDiscountHandler(
			appdiscount.NewSetDiscountUseCase(s),
			appdiscount.NewPromotionUseCase(s),
			appdiscount.NewQueryDiscountUseCase(s),
		),
		Order: handler.NewOrderHandler(
			apporder.NewCreateOrderUseCase(s, publisher),
			apporder.NewUpdateStatusUseCase(s, publisher),
			apporder.NewQueryOrdersUseCase(s),
		),
	}
}

type Options struct {
	Mode           string // debug | release | test
	MetricsEnabled bool
	MetricsPath    string
	SwaggerEnabled bool
}

// New 创建Gin引擎并注册路由
// 中间件顺序: Recovery → Tracing → Logger → Metrics
// Tracing 在 Logger 之前,日志才能带上 trace_id
func New(opts Options, h Handlers) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Tracing(), middleware.Logger(), middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(metrics.Handler()))
	}
	if opts.SwaggerEnabled {
		// 访问 /swagger/index.html
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		items := v1.Group("/items")
		{
			items.POST("", h.Inventory.AddItem)
			items.GET("", h.Inventory.SearchItems)
			items.GET("/:id", h.Inventory.GetItem)
			items.HEAD("/:id", h.Inventory.ItemExists)
			items.DELETE("/:id", h.Inventory.RemoveItem)
			items.POST("/:id/purchase", h.Inventory.Purchase)
		}

		v1.GET("/inventory/value", h.Inventory.InventoryValue)

		discounts := v1.Group("/discounts")
		{
			// 静态路由优先于 /:id
			discounts.POST("/promotion", h.Discount.SetPromotion)
			discounts.POST("/basket", h.Discount.ApplyToBasket)
			discounts.PUT("/:id", h.Discount.SetDiscount)
			discounts.GET("/:id", h.Discount.GetDiscount)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", h.Order.CreateOrder)
			orders.GET("", h.Order.ListOrders)
			orders.GET("/:id", h.Order.GetOrder)
			orders.PATCH("/:id/status", h.Order.UpdateStatus)
		}
	}

	return r
}
