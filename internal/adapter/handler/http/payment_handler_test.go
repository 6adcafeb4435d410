package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sandboxpay/gateway/internal/domain/model"
	"github.com/sandboxpay/gateway/internal/domain/repository"
	"github.com/sandboxpay/gateway/internal/idgen"
	"github.com/sandboxpay/gateway/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore is an in-memory stand-in for the payment and order tables.
type memoryStore struct {
	mu       sync.Mutex
	payments map[string]*model.Payment
	orders   map[string]*model.Order
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		payments: make(map[string]*model.Payment),
		orders:   make(map[string]*model.Order),
	}
}

func (s *memoryStore) Create(ctx context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[payment.ID]; ok {
		return repository.ErrDuplicateID
	}
	s.payments[payment.ID] = payment
	return nil
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments[id], nil
}

func (s *memoryStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.payments[id]
	return ok, nil
}

func (s *memoryStore) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Payment
	for _, p := range s.payments {
		if p.MerchantID == merchantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryStore) Resolve(ctx context.Context, id string, status model.PaymentStatus, errorCode, errorDescription *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok || p.Status != model.PaymentStatusProcessing {
		return repository.ErrNotFound
	}
	p.Status = status
	p.ErrorCode = errorCode
	p.ErrorDescription = errorDescription
	return nil
}

func (s *memoryStore) StatsByMerchant(ctx context.Context, merchantID uuid.UUID) (*repository.PaymentStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &repository.PaymentStats{}
	for _, p := range s.payments {
		if p.MerchantID != merchantID {
			continue
		}
		stats.Total++
		if p.Status == model.PaymentStatusSuccess {
			stats.Successes++
			stats.SuccessAmount += p.Amount
		}
	}
	return stats, nil
}

type orderStore struct{ *memoryStore }

func (s orderStore) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; ok {
		return repository.ErrDuplicateID
	}
	s.orders[order.ID] = order
	return nil
}

func (s orderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id], nil
}

type noTx struct{}

func (noTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopScheduler struct{}

func (noopScheduler) Schedule(paymentID string, method model.PaymentMethod) {}

type testValidator struct{ validator *validator.Validate }

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newHandlerFixture(t *testing.T) (*echo.Echo, *PaymentHandler, *memoryStore) {
	t.Helper()

	store := newMemoryStore()
	logger := zap.NewNop()
	ids := idgen.NewPaymentIDAllocator(store, logger)
	u := usecase.NewPaymentUsecase(store, orderStore{store}, nil, noTx{}, ids, noopScheduler{}, logger, 0)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	return e, NewPaymentHandler(u, logger), store
}

func seedOrder(store *memoryStore, merchantID uuid.UUID) *model.Order {
	order := &model.Order{
		ID:         "order_test000000000000",
		MerchantID: merchantID,
		Amount:     10000,
		Currency:   "INR",
		Status:     model.OrderStatusCreated,
	}
	store.orders[order.ID] = order
	return order
}

func postJSON(e *echo.Echo, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) (code, description string) {
	t.Helper()
	var body struct {
		Error struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code, body.Error.Description
}

func TestCreatePaymentPublic_UPI(t *testing.T) {
	e, handler, store := newHandlerFixture(t)
	order := seedOrder(store, uuid.New())

	rec, c := postJSON(e, "/api/v1/payments/public",
		`{"order_id":"`+order.ID+`","method":"upi","vpa":"alice@upi"}`)
	require.NoError(t, handler.CreatePaymentPublic(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Regexp(t, `^pay_[A-Za-z0-9]{16}$`, body["id"])
	assert.Equal(t, "processing", body["status"])
	assert.Equal(t, order.ID, body["order_id"])
	assert.Equal(t, float64(10000), body["amount"])
	assert.Equal(t, "alice@upi", body["vpa"])
}

func TestCreatePaymentPublic_ErrorBodies(t *testing.T) {
	tests := []struct {
		name                string
		body                string
		expectedStatus      int
		expectedCode        string
		expectedDescription string
	}{
		{
			name:                "missing required fields",
			body:                `{"method":"upi"}`,
			expectedStatus:      http.StatusBadRequest,
			expectedCode:        "BAD_REQUEST_ERROR",
			expectedDescription: "order_id and method are required",
		},
		{
			name:                "malformed json",
			body:                `{"order_id":`,
			expectedStatus:      http.StatusBadRequest,
			expectedCode:        "BAD_REQUEST_ERROR",
			expectedDescription: "Invalid request body",
		},
		{
			name:                "unknown order",
			body:                `{"order_id":"order_nope","method":"upi","vpa":"alice@upi"}`,
			expectedStatus:      http.StatusNotFound,
			expectedCode:        "NOT_FOUND_ERROR",
			expectedDescription: "Order not found",
		},
		{
			name:                "bad vpa",
			body:                `{"order_id":"order_test000000000000","method":"upi","vpa":"nope"}`,
			expectedStatus:      http.StatusBadRequest,
			expectedCode:        "INVALID_VPA",
			expectedDescription: "VPA format invalid",
		},
		{
			name:                "card without details",
			body:                `{"order_id":"order_test000000000000","method":"card"}`,
			expectedStatus:      http.StatusBadRequest,
			expectedCode:        "INVALID_CARD",
			expectedDescription: "Card details missing",
		},
		{
			name:                "unsupported method",
			body:                `{"order_id":"order_test000000000000","method":"wallet"}`,
			expectedStatus:      http.StatusBadRequest,
			expectedCode:        "BAD_REQUEST_ERROR",
			expectedDescription: "Invalid payment method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, handler, store := newHandlerFixture(t)
			seedOrder(store, uuid.New())

			rec, c := postJSON(e, "/api/v1/payments/public", tt.body)
			require.NoError(t, handler.CreatePaymentPublic(c))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			code, description := decodeErrorBody(t, rec)
			assert.Equal(t, tt.expectedCode, code)
			assert.Equal(t, tt.expectedDescription, description)
		})
	}
}

func TestGetPaymentPublic_Wire(t *testing.T) {
	e, handler, store := newHandlerFixture(t)
	merchantID := uuid.New()
	vpa := "alice@upi"
	store.payments["pay_known0000000000000"] = &model.Payment{
		ID:         "pay_known0000000000000",
		OrderID:    "order_test000000000000",
		MerchantID: merchantID,
		Amount:     10000,
		Currency:   "INR",
		Method:     model.MethodUPI,
		Status:     model.PaymentStatusProcessing,
		VPA:        &vpa,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/pay_known0000000000000/public", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("paymentId")
	c.SetParamValues("pay_known0000000000000")

	require.NoError(t, handler.GetPaymentPublic(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "merchant_id")
	assert.NotContains(t, rec.Body.String(), merchantID.String())

	// Unknown ids are plain 404s.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/payments/pay_unknown/public", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("paymentId")
	c.SetParamValues("pay_unknown")

	require.NoError(t, handler.GetPaymentPublic(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	code, description := decodeErrorBody(t, rec)
	assert.Equal(t, "NOT_FOUND_ERROR", code)
	assert.Equal(t, "Payment not found", description)
}
