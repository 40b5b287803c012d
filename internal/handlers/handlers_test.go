package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/core/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/handlers"
	"github.com/SscSPs/renovation_backoffice/internal/middleware"
	"github.com/SscSPs/renovation_backoffice/internal/platform/config"
	"github.com/SscSPs/renovation_backoffice/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

func generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

func newRouter(cfg *config.Config, container *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slogDiscard()))
	handlers.RegisterRoutes(r, cfg, container, prometheus.NewRegistry())
	return r
}

// --- Test Suite against the in-memory store ---
type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

func (suite *HandlerTestSuite) SetupTest() {
	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		APIKeys:   map[string]string{"integration-key": "svc-sync"},
	}
	container := services.NewServiceContainer(cfg, memory.NewStore().Provider(), nil)
	suite.router = newRouter(cfg, container)
	suite.token = generateTestToken("user-1")
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (suite *HandlerTestSuite) createItem(invoiceID, label, price, qty, rate, category string) dto.LineItemResponse {
	w := suite.do(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/line-items", map[string]string{
		"label":          label,
		"unitPrice":      price,
		"quantity":       qty,
		"taxRatePercent": rate,
		"category":       category,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var item dto.LineItemResponse
	suite.decode(w, &item)
	return item
}

func (suite *HandlerTestSuite) TestHealthAndMetricsArePublic() {
	for _, path := range []string{"/health", "/metrics"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)
		suite.Equal(http.StatusOK, w.Code, path)
	}
}

func (suite *HandlerTestSuite) TestAPIRequiresAuth() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/inv-1/line-items", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestAPIKeyActsAsServiceUser() {
	body := bytes.NewBufferString(`{"label":"Sand","unitPrice":"100","quantity":"1","taxRatePercent":"0","category":"MATERIAL"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/inv-1/line-items", body)
	req.Header.Set(middleware.APIKeyHeader, "integration-key")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var item dto.LineItemResponse
	suite.decode(w, &item)
	suite.Equal("svc-sync", item.CreatedBy)
}

func (suite *HandlerTestSuite) TestTilingAndSandTotals() {
	suite.createItem("inv-1", "Tiling", "500", "1", "20", "LABOUR")
	sand := suite.createItem("inv-1", "Sand", "100", "1", "0", "MATERIAL")
	suite.Equal(1, sand.Order)
	suite.Equal("100.00", sand.ComputedTotal)

	w := suite.do(http.MethodGet, "/api/v1/invoices/inv-1/totals", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var totals dto.TotalsResponse
	suite.decode(w, &totals)

	suite.Equal("600.00", totals.Subtotal)
	suite.Equal("100.00", totals.TotalTax)
	suite.Equal("700.00", totals.GrandTotal)
	suite.Equal([]dto.TaxBreakdownResponse{
		{RatePercent: "0", TaxableBase: "100.00", TaxAmount: "0.00"},
		{RatePercent: "20", TaxableBase: "500.00", TaxAmount: "100.00"},
	}, totals.TaxBreakdown)
}

func (suite *HandlerTestSuite) TestCreateLineItemValidation() {
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "negative price", body: map[string]string{"label": "X", "unitPrice": "-1", "quantity": "1", "taxRatePercent": "0", "category": "LABOUR"}},
		{name: "unknown category", body: map[string]string{"label": "X", "unitPrice": "1", "quantity": "1", "taxRatePercent": "0", "category": "FUEL"}},
		{name: "missing quantity", body: map[string]string{"label": "X", "unitPrice": "1", "taxRatePercent": "0", "category": "LABOUR"}},
		{name: "rate finer than stored", body: map[string]string{"label": "X", "unitPrice": "1", "quantity": "1", "taxRatePercent": "19.99999", "category": "LABOUR"}},
		{name: "price too large", body: map[string]string{"label": "X", "unitPrice": "123456789012345", "quantity": "1", "taxRatePercent": "0", "category": "LABOUR"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/line-items", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	w := suite.do(http.MethodGet, "/api/v1/invoices/inv-1/line-items", nil)
	var items []dto.LineItemResponse
	suite.decode(w, &items)
	suite.Empty(items)
}

func (suite *HandlerTestSuite) TestMoveAndDelete() {
	a := suite.createItem("inv-1", "A", "1", "1", "0", "LABOUR")
	suite.createItem("inv-1", "B", "1", "1", "0", "LABOUR")
	suite.createItem("inv-1", "C", "1", "1", "0", "LABOUR")

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/line-items/move", map[string]any{"itemID": a.LineItemID, "toIndex": 2})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var moved []dto.LineItemResponse
	suite.decode(w, &moved)
	suite.Equal([]string{"B", "C", "A"}, labels(moved))

	w = suite.do(http.MethodPost, "/api/v1/invoices/inv-1/line-items/move", map[string]any{"fromIndex": 0, "toIndex": 9})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/invoices/inv-1/line-items/"+moved[0].LineItemID, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/invoices/inv-1/line-items", nil)
	var remaining []dto.LineItemResponse
	suite.decode(w, &remaining)
	suite.Equal([]string{"C", "A"}, labels(remaining))
	suite.Equal(0, remaining[0].Order)
	suite.Equal(1, remaining[1].Order)

	w = suite.do(http.MethodDelete, "/api/v1/invoices/inv-1/line-items/"+moved[0].LineItemID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestTemplateRoundTrip() {
	item := suite.createItem("inv-1", "Tiling", "45", "2", "20", "LABOUR")

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/line-items/"+item.LineItemID+"/save-as-template",
		map[string]string{"name": "Wall tiling", "category": "Bathroom"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var template dto.TemplateResponse
	suite.decode(w, &template)

	w = suite.do(http.MethodPost, "/api/v1/invoices/inv-2/line-items/from-template", map[string]string{"templateID": template.TemplateID})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var instantiated dto.LineItemResponse
	suite.decode(w, &instantiated)
	suite.Equal("Tiling", instantiated.Label)
	suite.Equal("108.00", instantiated.ComputedTotal)
	suite.Require().NotNil(instantiated.TemplateID)
	suite.Equal(template.TemplateID, *instantiated.TemplateID)

	w = suite.do(http.MethodGet, "/api/v1/templates/"+template.TemplateID, nil)
	var fetched dto.TemplateResponse
	suite.decode(w, &fetched)
	suite.EqualValues(1, fetched.UsageCount)

	w = suite.do(http.MethodGet, "/api/v1/templates?q=BATH", nil)
	var found []dto.TemplateResponse
	suite.decode(w, &found)
	suite.Len(found, 1)

	w = suite.do(http.MethodGet, "/api/v1/templates?q=plumbing", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/invoices/inv-2/line-items/from-template", map[string]string{"templateID": "missing"})
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/invoices/inv-1/line-items/"+item.LineItemID+"/save-as-template",
		map[string]string{"name": "   "})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestTasksAndExpenses() {
	w := suite.do(http.MethodPost, "/api/v1/projects/p1/tasks", map[string]string{"label": "Strip wallpaper"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	w = suite.do(http.MethodPost, "/api/v1/projects/p1/tasks", map[string]string{"label": "Prime walls"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/projects/p1/tasks/move", map[string]any{"fromIndex": 1, "toIndex": 0})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var tasks []dto.TaskResponse
	suite.decode(w, &tasks)
	suite.Equal("Prime walls", tasks[0].Label)

	w = suite.do(http.MethodPost, "/api/v1/sheets/s1/expenses", map[string]string{"label": "Diesel", "amount": "61.5", "tag": "fuel"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var expense dto.ExpenseResponse
	suite.decode(w, &expense)
	suite.Equal("61.50", expense.Amount)

	w = suite.do(http.MethodPost, "/api/v1/sheets/s1/expenses", map[string]string{"label": "Refund", "amount": "-5"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExportInvoice() {
	suite.createItem("inv-1", "Tiling", "500", "1", "20", "LABOUR")

	w := suite.do(http.MethodGet, "/api/v1/invoices/inv-1/export.xlsx", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "invoice-inv-1.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	suite.Require().NoError(err)
	defer f.Close()
	label, err := f.GetCellValue("Invoice", "B4")
	suite.NoError(err)
	suite.Equal("Tiling", label)
}

func labels(items []dto.LineItemResponse) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// --- Mock LineItemService for failure paths ---
type MockLineItemService struct {
	mock.Mock
}

func (m *MockLineItemService) ListLineItems(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}
func (m *MockLineItemService) GetLineItem(ctx context.Context, invoiceID string, lineItemID string) (*domain.LineItem, error) {
	args := m.Called(ctx, invoiceID, lineItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}
func (m *MockLineItemService) CreateLineItem(ctx context.Context, invoiceID string, req dto.CreateLineItemRequest, userID string) (*domain.LineItem, error) {
	args := m.Called(ctx, invoiceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}
func (m *MockLineItemService) UpdateLineItem(ctx context.Context, invoiceID string, lineItemID string, req dto.UpdateLineItemRequest, userID string) (*domain.LineItem, error) {
	args := m.Called(ctx, invoiceID, lineItemID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}
func (m *MockLineItemService) DeleteLineItem(ctx context.Context, invoiceID string, lineItemID string, userID string) error {
	return m.Called(ctx, invoiceID, lineItemID, userID).Error(0)
}
func (m *MockLineItemService) MoveLineItem(ctx context.Context, invoiceID string, req dto.MoveItemRequest, userID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, invoiceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}
func (m *MockLineItemService) ReloadCollection(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}
func (m *MockLineItemService) CalculateTotals(ctx context.Context, invoiceID string) (*domain.AggregationResult, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregationResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LineItemSvcFacade = (*MockLineItemService)(nil)

func TestMoveLineItem_ReorderFailedReturnsReloadedState(t *testing.T) {
	mockSvc := new(MockLineItemService)
	cfg := &config.Config{JWTSecret: testJWTSecret}
	router := newRouter(cfg, &portssvc.ServiceContainer{LineItem: mockSvc})

	reloaded := []domain.LineItem{{LineItemID: "a", CollectionID: "inv-1", Label: "A", Order: 0}}
	mockSvc.On("MoveLineItem", mock.Anything, "inv-1", mock.AnythingOfType("dto.MoveItemRequest"), "user-1").
		Return(nil, fmt.Errorf("%w: store unavailable", apperrors.ErrReorderFailed)).Once()
	mockSvc.On("ListLineItems", mock.Anything, "inv-1").Return(reloaded, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/inv-1/line-items/move",
		bytes.NewBufferString(`{"fromIndex":0,"toIndex":1}`))
	req.Header.Set("Authorization", "Bearer "+generateTestToken("user-1"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code, w.Body.String())
	var body struct {
		Error     string                 `json:"error"`
		Retryable bool                   `json:"retryable"`
		Items     []dto.LineItemResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Retryable)
	assert.Contains(t, body.Error, "reorder failed")
	assert.Len(t, body.Items, 1)
	mockSvc.AssertExpectations(t)
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
