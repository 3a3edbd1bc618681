package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcatalog "github.com/pdv/terminal/internal/application/catalog"
	appcheckout "github.com/pdv/terminal/internal/application/checkout"
	"github.com/pdv/terminal/internal/domain/catalog"
	"github.com/pdv/terminal/internal/domain/shared"
	"github.com/pdv/terminal/internal/domain/shared/valueobject"
	"github.com/pdv/terminal/internal/infrastructure/api"
	"github.com/pdv/terminal/internal/infrastructure/cache"
	"github.com/pdv/terminal/internal/infrastructure/session"
	"github.com/pdv/terminal/internal/interfaces/http/dto"
)

// fixedSource serves a fixed snapshot
type fixedSource struct {
	products []catalog.Product
	tables   []catalog.Table
}

func (s *fixedSource) GetProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	return s.products, nil
}

func (s *fixedSource) GetTables(ctx context.Context) ([]catalog.Table, error) {
	return s.tables, nil
}

func (s *fixedSource) GetCategories(ctx context.Context) ([]catalog.Category, error) {
	return nil, nil
}

// stubGateway scripts the submission result
type stubGateway struct {
	receipt *api.Receipt
	err     error
	calls   int
}

func (g *stubGateway) SubmitCheckout(ctx context.Context, req api.CheckoutRequest) (*api.Receipt, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.receipt, nil
}

// nopPublisher drops events
type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error { return nil }

type checkoutFixture struct {
	router  *gin.Engine
	gateway *stubGateway
	product catalog.Product
	table   catalog.Table
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	product := catalog.Product{
		ID:     uuid.New(),
		Name:   "Cerveja",
		Price:  valueobject.NewMoneyMZNFromFloat(150),
		Active: true,
	}
	table := catalog.Table{Number: 3, Capacity: 4, Status: catalog.TableStatusFree}

	sessions := session.NewMemoryStoreWith(session.State{TenantID: "tenant-a"})
	source := &fixedSource{products: []catalog.Product{product}, tables: []catalog.Table{table}}
	loader := appcatalog.NewLoader(source, cache.NewNoopSnapshotCache(), sessions, time.Minute, zap.NewNop())
	loader.Refresh(context.Background())

	gateway := &stubGateway{receipt: &api.Receipt{Reference: "sale-1"}}
	service := appcheckout.NewService(gateway, sessions, nopPublisher{}, loader, zap.NewNop())

	router := gin.New()
	NewCheckoutHandler(service, loader).RegisterRoutes(router.Group("/api"))

	return &checkoutFixture{router: router, gateway: gateway, product: product, table: table}
}

func (f *checkoutFixture) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAddProductEndpoint(t *testing.T) {
	t.Run("adds a catalog product", func(t *testing.T) {
		f := newCheckoutFixture(t)

		w := f.request(t, http.MethodPost, "/api/checkout/cart/items",
			gin.H{"produto_id": f.product.ID})
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		f := newCheckoutFixture(t)

		w := f.request(t, http.MethodPost, "/api/checkout/cart/items",
			gin.H{"produto_id": uuid.New()})
		assert.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("missing product id is 400", func(t *testing.T) {
		f := newCheckoutFixture(t)

		w := f.request(t, http.MethodPost, "/api/checkout/cart/items", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFinalizeEndpoint(t *testing.T) {
	t.Run("empty cart maps to 400 EMPTY_CART", func(t *testing.T) {
		f := newCheckoutFixture(t)

		w := f.request(t, http.MethodPost, "/api/checkout/finalize", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "EMPTY_CART", resp.Error.Code)
		assert.Zero(t, f.gateway.calls)
	})

	t.Run("incomplete table assignment maps to 400 TABLE_REQUIRED", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.request(t, http.MethodPost, "/api/checkout/cart/items", gin.H{"produto_id": f.product.ID})
		w := f.request(t, http.MethodPut, "/api/checkout/table", gin.H{"mesa_id": f.table.Number})
		require.Equal(t, http.StatusOK, w.Code)

		w = f.request(t, http.MethodPost, "/api/checkout/finalize", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "TABLE_REQUIRED", resp.Error.Code)
		assert.Zero(t, f.gateway.calls)
	})

	t.Run("counter sale succeeds with 201", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.request(t, http.MethodPost, "/api/checkout/cart/items", gin.H{"produto_id": f.product.ID})
		w := f.request(t, http.MethodPost, "/api/checkout/finalize", nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, f.gateway.calls)
	})

	t.Run("backend error passes its status through", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.gateway.err = &api.APIError{StatusCode: http.StatusConflict, Message: "mesa ocupada"}

		f.request(t, http.MethodPost, "/api/checkout/cart/items", gin.H{"produto_id": f.product.ID})
		w := f.request(t, http.MethodPost, "/api/checkout/finalize", nil)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "mesa ocupada", resp.Error.Message)
	})

	t.Run("unreachable backend maps to 502", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.gateway.err = api.ErrBackendUnavailable

		f.request(t, http.MethodPost, "/api/checkout/cart/items", gin.H{"produto_id": f.product.ID})
		w := f.request(t, http.MethodPost, "/api/checkout/finalize", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestTableFlowEndpoints(t *testing.T) {
	f := newCheckoutFixture(t)

	f.request(t, http.MethodPost, "/api/checkout/cart/items", gin.H{"produto_id": f.product.ID})

	w := f.request(t, http.MethodPut, "/api/checkout/table", gin.H{"mesa_id": f.table.Number})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, http.MethodPut, "/api/checkout/table/seat", gin.H{"lugar_numero": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, http.MethodPut, "/api/checkout/table/customer",
		gin.H{"cliente_id": uuid.New(), "cliente_nome": "C1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, http.MethodPost, "/api/checkout/finalize", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSetModeEndpointValidation(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.request(t, http.MethodPut, "/api/checkout/mode", gin.H{"modo": "drive-through"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(t, http.MethodPut, "/api/checkout/mode", gin.H{"modo": "table"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownTableIs404(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.request(t, http.MethodPut, "/api/checkout/table", gin.H{"mesa_id": 99})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
