package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/alesweet/order-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOrderService struct {
	createOrder       func(ctx context.Context, p *params.CreateOrder) (*entities.Order, error)
	getOrders         func(ctx context.Context) ([]*entities.Order, error)
	getOrdersByStatus func(ctx context.Context, status string) ([]*entities.Order, error)
	getOrderByID      func(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	updateOrderStatus func(ctx context.Context, id uuid.UUID, status string) (*entities.Order, error)
	updateOrder       func(ctx context.Context, id uuid.UUID, p *params.UpdateOrder) (*entities.Order, error)
	deleteOrder       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockOrderService) CreateOrder(ctx context.Context, p *params.CreateOrder) (*entities.Order, error) {
	return m.createOrder(ctx, p)
}

func (m *mockOrderService) GetOrders(ctx context.Context) ([]*entities.Order, error) {
	return m.getOrders(ctx)
}

func (m *mockOrderService) GetOrdersByStatus(ctx context.Context, status string) ([]*entities.Order, error) {
	return m.getOrdersByStatus(ctx, status)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	return m.getOrderByID(ctx, id)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entities.Order, error) {
	return m.updateOrderStatus(ctx, id, status)
}

func (m *mockOrderService) UpdateOrder(ctx context.Context, id uuid.UUID, p *params.UpdateOrder) (*entities.Order, error) {
	return m.updateOrder(ctx, id, p)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.deleteOrder(ctx, id)
}

func newOrderRouter(service *mockOrderService) *chi.Mux {
	router := chi.NewRouter()
	NewOrderController(service, logger.NewWithZap(zap.NewNop()), ChiServerOptions{
		BaseRouter: router,
		BaseURL:    "/api",
	})
	return router
}

func orderFixture() *entities.Order {
	return &entities.Order{
		ID:              uuid.New(),
		Number:          "000001",
		CustomerKind:    entities.KindRetail,
		CustomerName:    "Maria Lopez",
		CustomerPhone:   "555-0101",
		CustomerTaxID:   "XAXX010101000",
		DeliveryAddress: "Av. Central 12",
		LineItems: entities.LineItems{
			{Product: json.RawMessage(`{"name":"tres leches","price":25}`), Quantity: 2},
		},
		DeliveryDate: time.Now().Add(48 * time.Hour),
		Total:        decimal.NewFromInt(50),
		Status:       entities.StatusPending,
		Priority:     entities.DefaultPriority,
	}
}

func TestOrderController_Create(t *testing.T) {
	fixture := orderFixture()

	service := &mockOrderService{
		createOrder: func(_ context.Context, p *params.CreateOrder) (*entities.Order, error) {
			assert.Equal(t, "Maria Lopez", p.CustomerName)
			assert.Len(t, p.LineItems, 1)
			return fixture, nil
		},
	}
	router := newOrderRouter(service)

	body := `{
		"customerName": "Maria Lopez",
		"customerPhone": "555-0101",
		"customerTaxId": "XAXX010101000",
		"deliveryAddress": "Av. Central 12",
		"deliveryDate": "2026-09-01T12:00:00Z",
		"lineItems": [{"product": {"name": "tres leches", "price": 25}, "quantity": 2}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		Message string `json:"message"`
		Order   struct {
			Number string  `json:"number"`
			Total  float64 `json:"total"`
			Status string  `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "order created successfully", got.Message)
	assert.Equal(t, "000001", got.Order.Number)
	assert.Equal(t, float64(50), got.Order.Total)
	assert.Equal(t, "pending", got.Order.Status)
}

func TestOrderController_CreateErrors(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		serviceErr  error
		wantCode    int
	}{
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        "{}",
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        "{",
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "missing required field",
			contentType: "application/json",
			body:        "{}",
			serviceErr:  &errs.RequiredJSONBodyParamError{ParamName: "customerName"},
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "unknown status",
			contentType: "application/json",
			body:        `{"status":"bogus"}`,
			serviceErr:  fmt.Errorf("%w: %q", errs.ErrInvalidOrderStatus, "bogus"),
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "allocation exhausted",
			contentType: "application/json",
			body:        "{}",
			serviceErr:  fmt.Errorf("create order: %w", errs.ErrDataConflict),
			wantCode:    http.StatusConflict,
		},
		{
			name:        "storage failure",
			contentType: "application/json",
			body:        "{}",
			serviceErr:  errors.New("connection reset"),
			wantCode:    http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockOrderService{
				createOrder: func(context.Context, *params.CreateOrder) (*entities.Order, error) {
					return nil, tt.serviceErr
				},
			}
			router := newOrderRouter(service)

			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)

			var got errs.JSON
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestOrderController_List(t *testing.T) {
	service := &mockOrderService{
		getOrders: func(context.Context) ([]*entities.Order, error) {
			return []*entities.Order{orderFixture(), orderFixture()}, nil
		},
	}
	router := newOrderRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestOrderController_ListByStatus(t *testing.T) {
	service := &mockOrderService{
		getOrdersByStatus: func(_ context.Context, status string) ([]*entities.Order, error) {
			if status != "ready" {
				return nil, fmt.Errorf("%w: %q", errs.ErrInvalidOrderStatus, status)
			}
			return []*entities.Order{orderFixture()}, nil
		},
	}
	router := newOrderRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/status/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/orders/status/bogus", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderController_Get(t *testing.T) {
	fixture := orderFixture()

	service := &mockOrderService{
		getOrderByID: func(_ context.Context, id uuid.UUID) (*entities.Order, error) {
			if id != fixture.ID {
				return nil, errs.ErrNotFound
			}
			return fixture, nil
		},
	}
	router := newOrderRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/orders/"+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed id is indistinguishable from a missing record.
	req = httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderController_UpdateStatus(t *testing.T) {
	fixture := orderFixture()
	fixture.Status = entities.StatusReady

	service := &mockOrderService{
		updateOrderStatus: func(_ context.Context, _ uuid.UUID, status string) (*entities.Order, error) {
			assert.Equal(t, "ready", status)
			return fixture, nil
		},
	}
	router := newOrderRouter(service)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+fixture.ID.String()+"/status",
		strings.NewReader(`{"status":"ready"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Message string `json:"message"`
		Order   struct {
			Status string `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "status updated", got.Message)
	assert.Equal(t, "ready", got.Order.Status)
}

func TestOrderController_Update(t *testing.T) {
	fixture := orderFixture()
	fixture.CustomerName = "Pedro Ruiz"

	service := &mockOrderService{
		updateOrder: func(_ context.Context, _ uuid.UUID, p *params.UpdateOrder) (*entities.Order, error) {
			require.NotNil(t, p.CustomerName)
			assert.Equal(t, "Pedro Ruiz", *p.CustomerName)
			assert.Nil(t, p.Status)
			return fixture, nil
		},
	}
	router := newOrderRouter(service)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+fixture.ID.String(),
		strings.NewReader(`{"customerName":"Pedro Ruiz"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderController_Delete(t *testing.T) {
	fixture := orderFixture()

	service := &mockOrderService{
		deleteOrder: func(_ context.Context, id uuid.UUID) error {
			if id != fixture.ID {
				return errs.ErrNotFound
			}
			return nil
		},
	}
	router := newOrderRouter(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "order deleted successfully", got.Message)

	req = httptest.NewRequest(http.MethodDelete, "/api/orders/"+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
