// Package gateway is the storefront HTTP API.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "github.com/example/pizzaria/docs"
	"github.com/example/pizzaria/pkg/account"
	"github.com/example/pizzaria/pkg/cart"
	"github.com/example/pizzaria/pkg/cep"
	"github.com/example/pizzaria/pkg/checkout"
	"github.com/example/pizzaria/pkg/config"
	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/repository"
	"github.com/example/pizzaria/pkg/tracking"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const sessionHeader = "X-Session-ID"

type CatalogService interface {
	List(ctx context.Context, category models.Category) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, c checkout.Cart, req *checkout.Request) (*checkout.Result, error)
	Quote(ctx context.Context, c checkout.Cart, couponCode string) (*checkout.Quote, error)
	DeliveryFee() decimal.Decimal
}

type OrderService interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
	Cancel(ctx context.Context, id string) (*models.Order, error)
}

type StatusWatcher interface {
	Watch(ctx context.Context, orderID string, baseline tracking.Baseline) (<-chan tracking.Update, func(), error)
}

// OrderHistory serves the audit trail of an order.
type OrderHistory interface {
	OrderHistory(ctx context.Context, orderID string) ([]repository.AuditLog, error)
}

type CEPLookup interface {
	Lookup(ctx context.Context, cep string) (*cep.Address, error)
}

type FavoriteService interface {
	Add(ctx context.Context, phone, productID string) error
	Remove(ctx context.Context, phone, productID string) error
	ProductIDs(ctx context.Context, phone string) ([]string, error)
}

type AddressService interface {
	Save(ctx context.Context, addr *models.Address) error
	List(ctx context.Context, phone string) ([]models.Address, error)
	Delete(ctx context.Context, phone, id string) error
}

type TimeClockService interface {
	ClockIn(ctx context.Context, employeeID string) (*models.TimeClockEntry, error)
	ClockOut(ctx context.Context, employeeID string) (*models.TimeClockEntry, error)
	History(ctx context.Context, employeeID string) ([]models.TimeClockEntry, error)
}

// Services are the domain services behind the routes.
type Services struct {
	Carts     *cart.Registry
	Catalog   CatalogService
	Checkout  CheckoutService
	Orders    OrderService
	Tracking  StatusWatcher
	History   OrderHistory // optional
	CEP       CEPLookup
	Favorites FavoriteService
	Addresses AddressService
	TimeClock TimeClockService
}

var (
	_ FavoriteService  = (*account.Favorites)(nil)
	_ AddressService   = (*account.Addresses)(nil)
	_ TimeClockService = (*account.TimeClock)(nil)
)

type Gateway struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	server   *http.Server
	services Services
}

func NewGateway(cfg *config.Config, logger *zap.Logger, services Services) *Gateway {
	if cfg.Gateway.Mode != "" {
		gin.SetMode(cfg.Gateway.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	g := &Gateway{
		config:   cfg,
		logger:   logger.Named("gateway"),
		router:   router,
		services: services,
	}
	g.SetupRoutes()
	return g
}

func (g *Gateway) Handler() http.Handler {
	return g.router
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := g.router.Group("/api/v1")
	{
		v1.GET("/products", g.listProducts)
		v1.GET("/products/:id", g.getProduct)
		v1.GET("/options", g.listOptions)

		session := v1.Group("", sessionMiddleware())
		{
			session.POST("/pricing/quote", g.quotePizza)

			carts := session.Group("/cart")
			carts.GET("", g.getCart)
			carts.DELETE("", g.clearCart)
			carts.POST("/items", g.addCartItem)
			carts.POST("/custom", g.addCustomPizza)
			carts.PUT("/items/:id/:size", g.updateCartItem)
			carts.DELETE("/items/:id/:size", g.removeCartItem)

			session.POST("/coupons/validate", g.validateCoupon)
			session.POST("/checkout", g.checkout)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", g.listOrders)
			orders.GET("/number/:number", g.getOrderByNumber)
			orders.GET("/:id", g.getOrder)
			orders.GET("/:id/tracking", g.getTracking)
			orders.GET("/:id/events", g.streamOrderEvents)
			orders.PUT("/:id/status", g.updateOrderStatus)
			orders.POST("/:id/cancel", g.cancelOrder)
			if g.services.History != nil {
				orders.GET("/:id/history", g.orderHistory)
			}
		}

		v1.GET("/cep/:cep", g.lookupCEP)

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", g.listFavorites)
			favorites.POST("", g.addFavorite)
			favorites.DELETE("/:product_id", g.removeFavorite)
		}

		addresses := v1.Group("/addresses")
		{
			addresses.GET("", g.listAddresses)
			addresses.POST("", g.saveAddress)
			addresses.DELETE("/:id", g.deleteAddress)
		}

		clock := v1.Group("/timeclock/:employee")
		{
			clock.GET("", g.timeClockHistory)
			clock.POST("/in", g.clockIn)
			clock.POST("/out", g.clockOut)
		}
	}

	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Start() error {
	addr := g.config.GatewayAddr()
	g.server = &http.Server{
		Addr:              addr,
		Handler:           g.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.logger.Info("Gateway starting", zap.String("address", addr))
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Shutdown(ctx)
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if session := c.GetHeader(sessionHeader); session != "" {
			fields = append(fields, zap.String("session", session))
		}
		logger.Info("HTTP request", fields...)
	}
}

// sessionMiddleware requires the header that identifies the buyer's cart.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(sessionHeader) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": sessionHeader + " header is required"})
			return
		}
		c.Next()
	}
}

func (g *Gateway) cart(c *gin.Context) *cart.Store {
	return g.services.Carts.Get(c.GetHeader(sessionHeader))
}
