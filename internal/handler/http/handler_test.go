package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/isaac-evs/catalog-service/internal/domain"
	"github.com/isaac-evs/catalog-service/internal/repository"
	"github.com/isaac-evs/catalog-service/internal/service"
	"github.com/isaac-evs/catalog-service/pkg/health"
	"github.com/isaac-evs/catalog-service/pkg/middleware"
)

// Fixed UUIDs used across handler tests.
const (
	testCustomerID = "7b69c7b4-9df6-4f8e-9a3a-1c2d3e4f5a6b"
	testAddressID  = "2f9e8d7c-6b5a-4c3d-8e1f-0a9b8c7d6e5f"
	testProductID  = "c4a5b6d7-e8f9-4a1b-9c2d-3e4f5a6b7c8d"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAddressRepo struct {
	mock.Mock
}

func (m *mockAddressRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.Address, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockAddressRepo) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockAddressRepo) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockAddressRepo) Create(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepo) Update(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// noopPublisher discards all events.
type noopPublisher struct{}

func (noopPublisher) PublishCustomerCreated(context.Context, *domain.Customer) error { return nil }
func (noopPublisher) PublishCustomerUpdated(context.Context, *domain.Customer) error { return nil }
func (noopPublisher) PublishCustomerDeleted(context.Context, string) error           { return nil }
func (noopPublisher) PublishProductCreated(context.Context, *domain.Product) error   { return nil }
func (noopPublisher) PublishProductUpdated(context.Context, *domain.Product) error   { return nil }
func (noopPublisher) PublishProductDeleted(context.Context, string) error            { return nil }

// ============================================================================
// Test Fixtures
// ============================================================================

type testFixture struct {
	router       http.Handler
	customerRepo *mockCustomerRepo
	addressRepo  *mockAddressRepo
	productRepo  *mockProductRepo
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	customerRepo := new(mockCustomerRepo)
	addressRepo := new(mockAddressRepo)
	productRepo := new(mockProductRepo)

	customerService := service.NewCustomerService(customerRepo, noopPublisher{}, logger)
	addressService := service.NewAddressService(addressRepo, customerRepo, logger)
	productService := service.NewProductService(productRepo, noopPublisher{}, logger)

	router := NewRouter(
		customerService,
		addressService,
		productService,
		health.NewHandler(),
		logger,
		middleware.DefaultCORSConfig(),
	)

	return &testFixture{
		router:       router,
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		productRepo:  productRepo,
	}
}

func testCustomer() *domain.Customer {
	now := time.Now().UTC()
	return &domain.Customer{
		ID:        testCustomerID,
		Name:      "Alice Smith",
		Email:     "alice@example.com",
		Phone:     "+1234567890",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testAddress() *domain.Address {
	now := time.Now().UTC()
	return &domain.Address{
		ID:         testAddressID,
		CustomerID: testCustomerID,
		Street:     "123 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
		IsDefault:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func testProduct() *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:             testProductID,
		Name:           "Wireless Mouse",
		Description:    "Ergonomic 2.4GHz mouse",
		Price:          29.99,
		SKU:            "WM-2400-BLK",
		InventoryCount: 150,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// doRequest executes an HTTP request against the fixture router.
func (f *testFixture) doRequest(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// doRequestRaw executes a request with a raw string body and explicit Content-Type.
func (f *testFixture) doRequestRaw(t *testing.T, method, path, body, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the standard response format for decoding in tests.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
