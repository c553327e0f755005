package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/pizzaria/pkg/account"
	"github.com/example/pizzaria/pkg/cart"
	"github.com/example/pizzaria/pkg/catalog"
	"github.com/example/pizzaria/pkg/cep"
	"github.com/example/pizzaria/pkg/checkout"
	"github.com/example/pizzaria/pkg/config"
	"github.com/example/pizzaria/pkg/coupon"
	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/orders"
	"github.com/example/pizzaria/pkg/repository"
	"github.com/example/pizzaria/pkg/tracking"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalog struct{}

// soldOut is served by Get but hidden from the menu.
const soldOut = "98"

func (fakeCatalog) List(_ context.Context, category models.Category) ([]models.Product, error) {
	var out []models.Product
	for _, p := range catalog.Products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (fakeCatalog) Get(_ context.Context, id string) (*models.Product, error) {
	if id == soldOut {
		p := catalog.Products[0]
		p.ID = soldOut
		p.Available = false
		return &p, nil
	}
	for _, p := range catalog.Products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

type MockCheckout struct {
	CheckoutFunc func(ctx context.Context, c checkout.Cart, req *checkout.Request) (*checkout.Result, error)
	QuoteFunc    func(ctx context.Context, c checkout.Cart, code string) (*checkout.Quote, error)
}

func (m *MockCheckout) Checkout(ctx context.Context, c checkout.Cart, req *checkout.Request) (*checkout.Result, error) {
	return m.CheckoutFunc(ctx, c, req)
}

func (m *MockCheckout) Quote(ctx context.Context, c checkout.Cart, code string) (*checkout.Quote, error) {
	return m.QuoteFunc(ctx, c, code)
}

func (m *MockCheckout) DeliveryFee() decimal.Decimal {
	return decimal.RequireFromString("8.00")
}

type MockOrders struct {
	GetFunc          func(ctx context.Context, id string) (*models.Order, error)
	UpdateStatusFunc func(ctx context.Context, id, status string) (*models.Order, error)
	CancelFunc       func(ctx context.Context, id string) (*models.Order, error)
}

func (m *MockOrders) Get(ctx context.Context, id string) (*models.Order, error) {
	return m.GetFunc(ctx, id)
}

func (m *MockOrders) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	return nil, repository.ErrNotFound
}

func (m *MockOrders) ListByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	return []models.Order{{ID: "o1", Phone: phone}}, nil
}

func (m *MockOrders) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *MockOrders) Cancel(ctx context.Context, id string) (*models.Order, error) {
	return m.CancelFunc(ctx, id)
}

type MockWatcher struct {
	WatchFunc func(ctx context.Context, orderID string, baseline tracking.Baseline) (<-chan tracking.Update, func(), error)
}

func (m *MockWatcher) Watch(ctx context.Context, orderID string, baseline tracking.Baseline) (<-chan tracking.Update, func(), error) {
	return m.WatchFunc(ctx, orderID, baseline)
}

// feed is a status source whose events are buffered from the moment of
// subscription.
type feed struct {
	events chan models.StatusEvent
	once   sync.Once
}

func newFeed() *feed {
	return &feed{events: make(chan models.StatusEvent, 8)}
}

func (f *feed) SubscribeStatus(context.Context, string) (<-chan models.StatusEvent, func(), error) {
	return f.events, func() { f.once.Do(func() { close(f.events) }) }, nil
}

func (f *feed) publish(orderID, status string) {
	f.events <- models.StatusEvent{OrderID: orderID, Status: status, UpdatedAt: time.Now()}
}

type MockCEP struct {
	LookupFunc func(ctx context.Context, code string) (*cep.Address, error)
}

func (m *MockCEP) Lookup(ctx context.Context, code string) (*cep.Address, error) {
	return m.LookupFunc(ctx, code)
}

type testEnv struct {
	gateway  *Gateway
	checkout *MockCheckout
	orders   *MockOrders
	watcher  *MockWatcher
	cep      *MockCEP
	carts    *cart.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		checkout: &MockCheckout{},
		orders:   &MockOrders{},
		watcher:  &MockWatcher{},
		cep:      &MockCEP{},
		carts:    cart.NewRegistry(),
	}
	cfg := &config.Config{Gateway: config.GatewayConfig{Mode: gin.TestMode}}
	env.gateway = NewGateway(cfg, zap.NewNop(), Services{
		Carts:     env.carts,
		Catalog:   fakeCatalog{},
		Checkout:  env.checkout,
		Orders:    env.orders,
		Tracking:  env.watcher,
		CEP:       env.cep,
		Favorites: account.NewFavorites(nil),
		Addresses: account.NewAddresses(nil),
		TimeClock: account.NewTimeClock(nil),
	})
	return env
}

func (e *testEnv) do(method, path, session string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}
	w := httptest.NewRecorder()
	e.gateway.Handler().ServeHTTP(w, req)
	return w
}

type cartBody struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
	Added *cart.Item      `json:"added"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListProductsByCategory(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/products?category=special", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Products []models.Product `json:"products"`
		Total    int              `json:"total"`
	}
	decode(t, w, &body)
	assert.Equal(t, 2, body.Total)

	w = env.do(http.MethodGet, "/api/v1/products?category=salad", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/v1/products/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptions(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/v1/options", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sizes []struct {
			Size       models.Size `json:"size"`
			MaxFlavors int         `json:"max_flavors"`
		} `json:"sizes"`
		DeliveryFee decimal.Decimal `json:"delivery_fee"`
	}
	decode(t, w, &body)
	require.Len(t, body.Sizes, 4)
	assert.Equal(t, models.SizeGG, body.Sizes[3].Size)
	assert.Equal(t, 4, body.Sizes[3].MaxFlavors)
	assert.True(t, body.DeliveryFee.Equal(decimal.RequireFromString("8")))
}

func TestSessionHeaderRequired(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), sessionHeader)
}

func TestAddCartItemMergesAndPricesBySize(t *testing.T) {
	env := newTestEnv(t)
	req := addItemRequest{ProductID: "1", Size: "g"}

	w := env.do(http.MethodPost, "/api/v1/cart/items", "s1", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = env.do(http.MethodPost, "/api/v1/cart/items", "s1", req)
	require.Equal(t, http.StatusCreated, w.Code)

	var body cartBody
	decode(t, w, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, models.SizeG, body.Items[0].Size)
	assert.Equal(t, "55.77", body.Items[0].Price.StringFixed(2))
	assert.Equal(t, "111.54", body.Total.StringFixed(2))

	// other sessions keep their own cart
	w = env.do(http.MethodGet, "/api/v1/cart", "s2", nil)
	decode(t, w, &body)
	assert.Empty(t, body.Items)
}

func TestAddCartItemErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  addItemRequest
		want int
	}{
		{"missing product", addItemRequest{}, http.StatusBadRequest},
		{"unknown product", addItemRequest{ProductID: "99"}, http.StatusNotFound},
		{"negative quantity", addItemRequest{ProductID: "1", Quantity: -1}, http.StatusBadRequest},
		{"bad size", addItemRequest{ProductID: "1", Size: "XL"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/v1/cart/items", "s1", tt.req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodPost, "/api/v1/cart/items", "s1", addItemRequest{ProductID: "2"})
	env.do(http.MethodPost, "/api/v1/cart/items", "s1", addItemRequest{ProductID: "3"})

	w := env.do(http.MethodPut, "/api/v1/cart/items/2/M", "s1", quantityRequest{Quantity: 3})
	require.Equal(t, http.StatusOK, w.Code)
	var body cartBody
	decode(t, w, &body)
	assert.Equal(t, 4, body.Count)

	w = env.do(http.MethodDelete, "/api/v1/cart/items/3/M", "s1", nil)
	decode(t, w, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "2", body.Items[0].ProductID)

	w = env.do(http.MethodDelete, "/api/v1/cart", "s1", nil)
	decode(t, w, &body)
	assert.Zero(t, body.Count)
}

func TestQuotePizza(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/pricing/quote", "s1", customizeRequest{
		Size:      "G",
		FlavorIDs: []string{"1", "2"},
		Border:    "catupiry",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body quoteResponse
	decode(t, w, &body)
	assert.Len(t, body.Flavors, 2)
	assert.Equal(t, 3, body.MaxFlavors)
	assert.Equal(t, "68.57", body.Price.StringFixed(2))

	w = env.do(http.MethodPost, "/api/v1/pricing/quote", "s1", customizeRequest{Border: "gold"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuotePizzaRejectsRepeatedFlavor(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/pricing/quote", "s1", customizeRequest{
		FlavorIDs: []string{"1", "1"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errDuplicateFlavor.Error())

	w = env.do(http.MethodPost, "/api/v1/cart/custom", "s1", customizeRequest{
		FlavorIDs: []string{"2", "1", "2"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.carts.Get("s1").Count())
}

func TestCustomPizzaRejectsUnavailableFlavor(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/pricing/quote", "s1", customizeRequest{
		FlavorIDs: []string{"1", soldOut},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errUnavailable.Error())

	w = env.do(http.MethodPost, "/api/v1/cart/custom", "s1", customizeRequest{
		FlavorIDs: []string{soldOut},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.carts.Get("s1").Count())

	w = env.do(http.MethodPost, "/api/v1/cart/items", "s1", addItemRequest{ProductID: soldOut, Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCustomPizza(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/cart/custom", "s1", customizeRequest{
		FlavorIDs: []string{"4"},
		Sauces:    []string{"bbq"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body cartBody
	decode(t, w, &body)
	require.NotNil(t, body.Added)
	assert.Equal(t, "57.90", body.Added.Price.StringFixed(2))
	assert.Equal(t, []string{"Molho Barbecue"}, body.Added.Extras)
	assert.Equal(t, 1, body.Count)

	w = env.do(http.MethodPost, "/api/v1/cart/custom", "s1", customizeRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateCoupon(t *testing.T) {
	env := newTestEnv(t)
	env.checkout.QuoteFunc = func(_ context.Context, _ checkout.Cart, code string) (*checkout.Quote, error) {
		if code == "NOPE" {
			return nil, coupon.ErrNotFound
		}
		return &checkout.Quote{Discount: decimal.RequireFromString("5")}, nil
	}

	w := env.do(http.MethodPost, "/api/v1/coupons/validate", "s1", couponRequest{Code: "BEMVINDO10"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/api/v1/coupons/validate", "s1", couponRequest{Code: "NOPE"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/api/v1/coupons/validate", "s1", couponRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	var gotCart checkout.Cart
	env.checkout.CheckoutFunc = func(_ context.Context, c checkout.Cart, req *checkout.Request) (*checkout.Result, error) {
		gotCart = c
		if req.Name == "" {
			return nil, &checkout.ValidationError{Field: "name"}
		}
		return &checkout.Result{
			Order:        &models.Order{ID: "o1", OrderNumber: "IZI00001"},
			TrackingPath: checkout.TrackingPath("IZI00001"),
		}, nil
	}

	w := env.do(http.MethodPost, "/api/v1/checkout", "s1", checkout.Request{Name: "Ana"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Same(t, env.carts.Get("s1"), gotCart)

	var result checkout.Result
	decode(t, w, &result)
	assert.Equal(t, "IZI00001", result.Order.OrderNumber)
	assert.Equal(t, "/order-tracking/IZI00001", result.TrackingPath)

	w = env.do(http.MethodPost, "/api/v1/checkout", "s1", checkout.Request{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.orders.GetFunc = func(_ context.Context, id string) (*models.Order, error) {
		switch id {
		case "o1":
			return &models.Order{ID: "o1", Status: models.StatusPreparing}, nil
		case "broken":
			return nil, errors.New("connection reset")
		}
		return nil, repository.ErrNotFound
	}
	env.orders.CancelFunc = func(_ context.Context, id string) (*models.Order, error) {
		return nil, orders.ErrCannotCancel
	}
	env.orders.UpdateStatusFunc = func(_ context.Context, id, status string) (*models.Order, error) {
		if status == "" {
			return nil, orders.ErrEmptyStatus
		}
		return &models.Order{ID: id, Status: status}, nil
	}

	w := env.do(http.MethodGet, "/api/v1/orders/o1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/orders/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/v1/orders/broken", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")

	w = env.do(http.MethodGet, "/api/v1/orders/number/IZI00009", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodGet, "/api/v1/orders?phone=11999990000", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/orders/o1/tracking", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var u tracking.Update
	decode(t, w, &u)
	assert.Equal(t, tracking.StagePreparing, u.Stage)
	assert.Equal(t, 50, u.Progress)

	w = env.do(http.MethodPost, "/api/v1/orders/o1/cancel", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodPut, "/api/v1/orders/o1/status", "", statusRequest{Status: models.StatusOnTheWay})
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodPut, "/api/v1/orders/o1/status", "", statusRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamOrderEvents(t *testing.T) {
	env := newTestEnv(t)
	env.orders.GetFunc = func(_ context.Context, id string) (*models.Order, error) {
		return &models.Order{ID: id, Status: models.StatusPending, UpdatedAt: time.Now()}, nil
	}
	unsubscribed := false
	env.watcher.WatchFunc = func(ctx context.Context, orderID string, baseline tracking.Baseline) (<-chan tracking.Update, func(), error) {
		current, err := baseline(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, current)
		ch := make(chan tracking.Update, 3)
		ch <- tracking.NewUpdate(orderID, models.StatusPreparing, time.Now())
		ch <- tracking.NewUpdate(orderID, models.StatusDelivered, time.Now())
		ch <- tracking.NewUpdate(orderID, models.StatusCancelled, time.Now())
		return ch, func() { unsubscribed = true }, nil
	}

	w := env.do(http.MethodGet, "/api/v1/orders/o1/events", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event:status"), body)
	assert.Contains(t, body, fmt.Sprintf("%q", tracking.StageDelivered))
	assert.NotContains(t, body, `"cancelled":true`)
	assert.True(t, unsubscribed)
}

func TestStreamOrderEventsFinishedOrder(t *testing.T) {
	env := newTestEnv(t)
	env.orders.GetFunc = func(_ context.Context, id string) (*models.Order, error) {
		return &models.Order{ID: id, Status: models.StatusCancelled}, nil
	}
	env.watcher.WatchFunc = func(ctx context.Context, _ string, baseline tracking.Baseline) (<-chan tracking.Update, func(), error) {
		if _, err := baseline(ctx); err != nil {
			return nil, nil, err
		}
		return make(chan tracking.Update), func() {}, nil
	}

	w := env.do(http.MethodGet, "/api/v1/orders/o1/events", "", nil)
	assert.Equal(t, 1, strings.Count(w.Body.String(), "event:status"))
}

func TestStreamOrderEventsKeepsChangeMadeWhileLoading(t *testing.T) {
	env := newTestEnv(t)
	src := newFeed()
	env.gateway.services.Tracking = tracking.NewProjector(src)

	// Staff move the order on while the handler is still reading it.
	env.orders.GetFunc = func(_ context.Context, id string) (*models.Order, error) {
		src.publish(id, models.StatusPreparing)
		src.publish(id, models.StatusDelivered)
		return &models.Order{ID: id, Status: models.StatusPending, UpdatedAt: time.Now()}, nil
	}

	w := env.do(http.MethodGet, "/api/v1/orders/o1/events", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event:status"), body)
	received := strings.Index(body, fmt.Sprintf("%q", tracking.StageReceived))
	preparing := strings.Index(body, fmt.Sprintf("%q", tracking.StagePreparing))
	delivered := strings.Index(body, fmt.Sprintf("%q", tracking.StageDelivered))
	require.True(t, received >= 0 && preparing >= 0 && delivered >= 0, body)
	assert.True(t, received < preparing && preparing < delivered, body)
}

func TestStreamOrderEventsUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.services.Tracking = tracking.NewProjector(newFeed())
	env.orders.GetFunc = func(context.Context, string) (*models.Order, error) {
		return nil, repository.ErrNotFound
	}

	w := env.do(http.MethodGet, "/api/v1/orders/missing/events", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "event:status")
}

func TestLookupCEP(t *testing.T) {
	env := newTestEnv(t)
	env.cep.LookupFunc = func(_ context.Context, code string) (*cep.Address, error) {
		if code == "123" {
			return nil, cep.ErrInvalidCEP
		}
		return &cep.Address{CEP: "01310-100", City: "São Paulo", State: "SP"}, nil
	}

	w := env.do(http.MethodGet, "/api/v1/cep/01310100", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var addr cep.Address
	decode(t, w, &addr)
	assert.Equal(t, "SP", addr.State)

	w = env.do(http.MethodGet, "/api/v1/cep/123", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesRequirePhone(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/api/v1/favorites", "", favoriteRequest{ProductID: "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&checkout.ValidationError{Field: "phone"}, http.StatusBadRequest},
		{checkout.ErrEmptyCart, http.StatusBadRequest},
		{fmt.Errorf("apply: %w", coupon.ErrBelowMinimum), http.StatusBadRequest},
		{coupon.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("get order: %w", repository.ErrNotFound), http.StatusNotFound},
		{orders.ErrCannotCancel, http.StatusConflict},
		{account.ErrShiftOpen, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

type MockHistory struct {
	OrderHistoryFunc func(ctx context.Context, orderID string) ([]repository.AuditLog, error)
}

func (m *MockHistory) OrderHistory(ctx context.Context, orderID string) ([]repository.AuditLog, error) {
	return m.OrderHistoryFunc(ctx, orderID)
}

func TestOrderHistoryRoute(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/v1/orders/o1/history", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "route is absent without an audit store")

	history := &MockHistory{
		OrderHistoryFunc: func(_ context.Context, orderID string) ([]repository.AuditLog, error) {
			return []repository.AuditLog{{EntityID: orderID, Action: repository.AuditStatusChanged}}, nil
		},
	}
	services := env.gateway.services
	services.History = history
	env.gateway = NewGateway(env.gateway.config, zap.NewNop(), services)

	w = env.do(http.MethodGet, "/api/v1/orders/o1/history", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Entries []repository.AuditLog `json:"entries"`
	}
	decode(t, w, &body)
	require.Len(t, body.Entries, 1)
	assert.Equal(t, "o1", body.Entries[0].EntityID)
}
