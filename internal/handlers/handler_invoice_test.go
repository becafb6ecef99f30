package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	portssvc "github.com/invmate/invmate_app/internal/core/ports/services"
	"github.com/invmate/invmate_app/internal/dto"
	"github.com/invmate/invmate_app/internal/handlers"
	"github.com/invmate/invmate_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, userID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, userID string, invoiceID string) error {
	args := m.Called(ctx, userID, invoiceID)
	return args.Error(0)
}
func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, userID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) GetInvoiceDocument(ctx context.Context, userID string, invoiceID string) ([]byte, string, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *InvoiceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "invmate-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		suite.Require().NoError(dto.RegisterCustomValidators(v))
	}
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockInvoiceService = new(MockInvoiceService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterInvoiceRoutes(v1, suite.mockInvoiceService)
}

func (suite *InvoiceHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (suite *InvoiceHandlerTestSuite) validCreateRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientID:     uuid.NewString(),
		CreationDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		Currency:     "USD",
		Items: []dto.CreateInvoiceItemRequest{
			{
				Name:     "Consulting",
				Price:    decimal.RequireFromString("12.50"),
				Kind:     "service",
				Quantity: 2,
				TaxRate:  decimal.RequireFromString("8"),
			},
		},
	}
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	userID := uuid.NewString()
	createReq := suite.validCreateRequest()

	expected := &domain.Invoice{
		InvoiceID:    uuid.NewString(),
		DisplayID:    "INV-000042",
		UserID:       userID,
		ClientID:     createReq.ClientID,
		CreationDate: createReq.CreationDate,
		DueDate:      createReq.DueDate,
		Currency:     domain.USD,
		Items: []domain.InvoiceItem{
			{
				ItemID:   uuid.NewString(),
				Name:     "Consulting",
				Price:    decimal.RequireFromString("12.50"),
				Kind:     domain.KindService,
				Quantity: 2,
				TaxRate:  decimal.RequireFromString("8"),
			},
		},
	}

	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything,
		userID,
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
			return req.ClientID == createReq.ClientID && len(req.Items) == 1
		}),
	).Return(expected, nil).Once()

	body, _ := json.Marshal(createReq)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/invoices", body, userID))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INV-000042", resp.DisplayID)
	suite.Len(resp.Items, 1)
	suite.Equal("Consulting", resp.Items[0].Name)

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_BindingFailure() {
	userID := uuid.NewString()
	// Items missing entirely; binding rejects before the service is called.
	body := []byte(`{"clientID":"abc","currency":"USD"}`)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/invoices", body, userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice")
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_ValidationError() {
	userID := uuid.NewString()
	createReq := suite.validCreateRequest()

	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: item type must be service or product", apperrors.ErrValidation)).Once()

	body, _ := json.Marshal(createReq)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/invoices", body, userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_UnknownClientIsNotFound() {
	userID := uuid.NewString()
	createReq := suite.validCreateRequest()

	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, userID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	body, _ := json.Marshal(createReq)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/invoices", body, userID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	userID := uuid.NewString()
	invoiceID := uuid.NewString()

	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, userID, invoiceID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID, nil, userID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_Success() {
	userID := uuid.NewString()
	invoices := []domain.Invoice{
		{
			InvoiceID: uuid.NewString(), DisplayID: "INV-000001", UserID: userID, Currency: domain.USD,
			Items: []domain.InvoiceItem{
				{ItemID: uuid.NewString(), Name: "Consulting", Price: decimal.NewFromInt(100), Kind: domain.KindService, Quantity: 2, TaxRate: decimal.NewFromInt(19)},
			},
		},
		{InvoiceID: uuid.NewString(), DisplayID: "INV-000002", UserID: userID, Currency: domain.EUR},
	}

	suite.mockInvoiceService.On("ListInvoices", mock.Anything, userID).
		Return(invoices, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices", nil, userID))

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal("INV-000001", resp[0].DisplayID)
	suite.Require().Len(resp[0].Items, 1)
	suite.Equal("Consulting", resp[0].Items[0].Name)
	suite.Empty(resp[1].Items)

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoice_NotFound() {
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	eur := "EUR"
	updateReq := dto.UpdateInvoiceRequest{Currency: &eur}

	suite.mockInvoiceService.On("UpdateInvoice", mock.Anything, userID, invoiceID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	body, _ := json.Marshal(updateReq)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPut, "/api/v1/invoices/"+invoiceID, body, userID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestDeleteInvoice_Success() {
	userID := uuid.NewString()
	invoiceID := uuid.NewString()

	suite.mockInvoiceService.On("DeleteInvoice", mock.Anything, userID, invoiceID).
		Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/invoices/"+invoiceID, nil, userID))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestDownloadInvoice_Success() {
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	document := []byte("%PDF-1.3 fake document bytes")

	suite.mockInvoiceService.On("GetInvoiceDocument", mock.Anything, userID, invoiceID).
		Return(document, "INV-000042", nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID+"/download", nil, userID))

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Equal("attachment; filename=invoice_INV-000042.pdf", w.Header().Get("Content-Disposition"))
	suite.Equal(document, w.Body.Bytes())

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestDownloadInvoice_NotFound() {
	userID := uuid.NewString()
	invoiceID := uuid.NewString()

	suite.mockInvoiceService.On("GetInvoiceDocument", mock.Anything, userID, invoiceID).
		Return(nil, "", apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID+"/download", nil, userID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestServerErrorDetailOutsideRelease() {
	userID := uuid.NewString()

	suite.mockInvoiceService.On("ListInvoices", mock.Anything, userID).
		Return(nil, errors.New("connection refused")).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices", nil, userID))

	suite.Equal(http.StatusInternalServerError, w.Code)

	var resp handlers.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Failed to list invoices", resp.Error)
	suite.Contains(resp.Detail, "connection refused")
}

func (suite *InvoiceHandlerTestSuite) TestServerErrorDetailHiddenInRelease() {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	userID := uuid.NewString()
	suite.mockInvoiceService.On("ListInvoices", mock.Anything, userID).
		Return(nil, errors.New("connection refused")).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/invoices", nil, userID))

	suite.Equal(http.StatusInternalServerError, w.Code)

	var resp handlers.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Failed to list invoices", resp.Error)
	suite.Empty(resp.Detail)
	suite.NotContains(w.Body.String(), "connection refused")
}

func (suite *InvoiceHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "ListInvoices")
}

// --- Run Test Suite ---
func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
