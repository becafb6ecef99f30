package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	portssvc "github.com/invmate/invmate_app/internal/core/ports/services"
	"github.com/invmate/invmate_app/internal/core/services"
	"github.com/invmate/invmate_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

// Ensure MockInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem, render portsrepo.RenderFunc) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, items, render)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, userID string, invoiceID string, update domain.InvoiceUpdate, itemUpdates []domain.InvoiceItemUpdate, updatedBy string, render func(invoice domain.Invoice, items []domain.InvoiceItem) ([]byte, error)) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID, update, itemUpdates, updatedBy, render)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByUser(ctx context.Context, userID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetInvoiceDocument(ctx context.Context, userID string, invoiceID string) ([]byte, string, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, userID string, invoiceID string) error {
	args := m.Called(ctx, userID, invoiceID)
	return args.Error(0)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClientsByUser(ctx context.Context, userID string) ([]domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, userID string, clientID string, update domain.ClientUpdate, updatedBy string) (*domain.Client, error) {
	args := m.Called(ctx, userID, clientID, update, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, userID string, clientID string) error {
	args := m.Called(ctx, userID, clientID)
	return args.Error(0)
}

// --- Mock ProfileRepository ---
type MockProfileRepository struct {
	mock.Mock
}

var _ portsrepo.ProfileRepositoryFacade = (*MockProfileRepository)(nil)

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, updatedBy string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, update, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) DeleteProfile(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProfileRepository) ClearProfilePicture(ctx context.Context, userID string, updatedBy string) error {
	args := m.Called(ctx, userID, updatedBy)
	return args.Error(0)
}

// --- Mock Renderer ---
type MockRenderer struct {
	mock.Mock
}

var _ portssvc.InvoiceRenderer = (*MockRenderer)(nil)

func (m *MockRenderer) Render(input portssvc.RenderInput) ([]byte, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Test Suite Setup ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockClientRepo  *MockClientRepository
	mockProfileRepo *MockProfileRepository
	mockRenderer    *MockRenderer
	service         portssvc.InvoiceSvcFacade
	userID          string
	client          domain.Client
	profile         domain.Profile
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.mockRenderer = new(MockRenderer)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockClientRepo, suite.mockProfileRepo, suite.mockRenderer)

	suite.userID = uuid.NewString()
	suite.client = domain.Client{
		ClientID:    uuid.NewString(),
		UserID:      suite.userID,
		CompanyName: "Globex Corp",
		Address:     "42 Harbor Road",
	}
	suite.profile = domain.Profile{
		ProfileID:     uuid.NewString(),
		UserID:        suite.userID,
		CompanyName:   "Acme Consulting",
		Address:       "1 Main Street",
		LocalCurrency: "TND",
	}
}

func (suite *InvoiceServiceTestSuite) validCreateRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientID:     suite.client.ClientID,
		CreationDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Currency:     "USD",
		Items: []dto.CreateInvoiceItemRequest{
			{Name: "Consulting", Price: decimal.RequireFromString("10.00"), Kind: "Service", Quantity: 2, TaxRate: decimal.RequireFromString("10")},
			{Name: "Router", Price: decimal.RequireFromString("5.00"), Kind: "product", Quantity: 1, TaxRate: decimal.Zero},
		},
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceSuccess() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockClientRepo.On("FindClientByID", ctx, suite.userID, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockProfileRepo.On("FindProfileByUserID", ctx, suite.userID).Return(&suite.profile, nil)
	suite.mockRenderer.On("Render", mock.AnythingOfType("services.RenderInput")).Return([]byte("%PDF-fake"), nil)

	// Drive the render callback the way the real repository does, with the
	// display ID allocated inside the transaction.
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem"), mock.AnythingOfType("repositories.RenderFunc")).
		Run(func(args mock.Arguments) {
			render := args.Get(3).(portsrepo.RenderFunc)
			doc, err := render("INV-000007")
			suite.Require().NoError(err)
			suite.Require().NotEmpty(doc)
		}).
		Return(&domain.Invoice{InvoiceID: uuid.NewString(), DisplayID: "INV-000007"}, nil)

	created, err := suite.service.CreateInvoice(ctx, suite.userID, req)
	suite.Require().NoError(err)
	suite.Equal("INV-000007", created.DisplayID)

	// The renderer saw the display ID and the pre-computed totals.
	suite.mockRenderer.AssertCalled(suite.T(), "Render", mock.MatchedBy(func(input portssvc.RenderInput) bool {
		return input.DisplayID == "INV-000007" &&
			input.Totals.SubtotalDisplay() == "25.00" &&
			input.Totals.TaxTotalDisplay() == "2.00" &&
			input.Totals.GrandTotalDisplay() == "27.00"
	}))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFoldsItemKind() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Items[0].Kind = "SERVICE"

	suite.mockClientRepo.On("FindClientByID", ctx, suite.userID, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockProfileRepo.On("FindProfileByUserID", ctx, suite.userID).Return(&suite.profile, nil)
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.Anything, mock.MatchedBy(func(items []domain.InvoiceItem) bool {
		return len(items) == 2 && items[0].Kind == domain.KindService && items[1].Kind == domain.KindProduct
	}), mock.Anything).Return(&domain.Invoice{InvoiceID: uuid.NewString()}, nil)

	_, err := suite.service.CreateInvoice(ctx, suite.userID, req)
	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceValidationBeforeAnyRead() {
	ctx := context.Background()

	badRequests := map[string]dto.CreateInvoiceRequest{}

	unsupportedCurrency := suite.validCreateRequest()
	unsupportedCurrency.Currency = "JPY"
	badRequests["unsupported currency"] = unsupportedCurrency

	badKind := suite.validCreateRequest()
	badKind.Items[0].Kind = "subscription"
	badRequests["unknown item kind"] = badKind

	negativePrice := suite.validCreateRequest()
	negativePrice.Items[0].Price = decimal.RequireFromString("-1.00")
	badRequests["negative price"] = negativePrice

	zeroQuantity := suite.validCreateRequest()
	zeroQuantity.Items[0].Quantity = 0
	badRequests["zero quantity"] = zeroQuantity

	excessiveTax := suite.validCreateRequest()
	excessiveTax.Items[0].TaxRate = decimal.RequireFromString("101")
	badRequests["tax rate above 100"] = excessiveTax

	emptyItems := suite.validCreateRequest()
	emptyItems.Items = nil
	badRequests["empty item list"] = emptyItems

	for name, req := range badRequests {
		suite.Run(name, func() {
			_, err := suite.service.CreateInvoice(ctx, suite.userID, req)
			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}

	// Nothing was read or written for any of the invalid requests.
	suite.mockClientRepo.AssertNotCalled(suite.T(), "FindClientByID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceForeignClientIsNotFound() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	// The repository scopes lookups by user, so another tenant's client
	// surfaces as not found.
	suite.mockClientRepo.On("FindClientByID", ctx, suite.userID, suite.client.ClientID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateInvoice(ctx, suite.userID, req)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceMissingProfileIsNotFound() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockClientRepo.On("FindClientByID", ctx, suite.userID, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockProfileRepo.On("FindProfileByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateInvoice(ctx, suite.userID, req)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceRenderFailureRollsBack() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	renderErr := errors.New("template blew up")

	suite.mockClientRepo.On("FindClientByID", ctx, suite.userID, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockProfileRepo.On("FindProfileByUserID", ctx, suite.userID).Return(&suite.profile, nil)
	suite.mockRenderer.On("Render", mock.Anything).Return(nil, renderErr)

	// The repository invokes render inside its transaction; a failure there
	// rolls everything back and surfaces the error.
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, renderErr).
		Run(func(args mock.Arguments) {
			render := args.Get(3).(portsrepo.RenderFunc)
			_, err := render("INV-000008")
			suite.Require().Error(err)
		})

	_, err := suite.service.CreateInvoice(ctx, suite.userID, req)
	suite.Require().Error(err)
	suite.ErrorContains(err, "template blew up")
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceForeignInvoiceIsNotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.userID, invoiceID).Return(nil, apperrors.ErrNotFound)

	newDue := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	_, err := suite.service.UpdateInvoice(ctx, suite.userID, invoiceID, dto.UpdateInvoiceRequest{DueDate: &newDue})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceValidatesPatches() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	badQty := int64(0)

	_, err := suite.service.UpdateInvoice(ctx, suite.userID, invoiceID, dto.UpdateInvoiceRequest{
		Items: []dto.UpdateInvoiceItemRequest{{ItemID: uuid.NewString(), Quantity: &badQty}},
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceRendersMergedState() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := domain.Invoice{
		InvoiceID: invoiceID,
		DisplayID: "INV-000002",
		UserID:    suite.userID,
		ClientID:  suite.client.ClientID,
		Currency:  domain.USD,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.userID, invoiceID).Return(&existing, nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.userID, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockProfileRepo.On("FindProfileByUserID", ctx, suite.userID).Return(&suite.profile, nil)
	suite.mockRenderer.On("Render", mock.Anything).Return([]byte("%PDF-new"), nil)

	merged := existing
	merged.Currency = domain.EUR
	mergedItems := []domain.InvoiceItem{
		{ItemID: uuid.NewString(), InvoiceID: invoiceID, Name: "Consulting", Price: decimal.RequireFromString("10.00"), Kind: domain.KindService, Quantity: 2, TaxRate: decimal.RequireFromString("10")},
	}

	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, suite.userID, invoiceID, mock.Anything, mock.Anything, suite.userID, mock.Anything).
		Run(func(args mock.Arguments) {
			render := args.Get(6).(func(domain.Invoice, []domain.InvoiceItem) ([]byte, error))
			doc, err := render(merged, mergedItems)
			suite.Require().NoError(err)
			suite.Require().NotEmpty(doc)
		}).
		Return(&merged, nil)

	newCurrency := "EUR"
	updated, err := suite.service.UpdateInvoice(ctx, suite.userID, invoiceID, dto.UpdateInvoiceRequest{Currency: &newCurrency})
	suite.Require().NoError(err)
	suite.Equal(domain.EUR, updated.Currency)

	// The renderer received the merged currency and recomputed totals.
	suite.mockRenderer.AssertCalled(suite.T(), "Render", mock.MatchedBy(func(input portssvc.RenderInput) bool {
		return input.Currency == domain.EUR && input.Totals.SubtotalDisplay() == "20.00"
	}))
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
