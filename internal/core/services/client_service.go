package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invmate/invmate_app/internal/core/domain"
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	portssvc "github.com/invmate/invmate_app/internal/core/ports/services"
	"github.com/invmate/invmate_app/internal/dto"
)

// clientService provides operations on a user's billing clients.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

// Ensure clientService implements the portssvc.ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient creates a new client owned by the user.
func (s *clientService) CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error) {
	now := time.Now().UTC()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		UserID:      userID,
		CompanyName: req.CompanyName,
		FiscalCode:  req.FiscalCode,
		Address:     req.Address,
		ZipCode:     req.ZipCode,
		Phone:       req.Phone,
		Email:       req.Email,
		Country:     req.Country,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

// GetClientByID retrieves a client owned by the requesting user. Clients of
// other users are reported as not found.
func (s *clientService) GetClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, userID, clientID)
}

// ListClients retrieves all clients owned by the requesting user.
func (s *clientService) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	return s.clientRepo.ListClientsByUser(ctx, userID)
}

// UpdateClient applies a partial update to a client owned by the user.
func (s *clientService) UpdateClient(ctx context.Context, userID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	update := domain.ClientUpdate{
		CompanyName: req.CompanyName,
		FiscalCode:  req.FiscalCode,
		Address:     req.Address,
		ZipCode:     req.ZipCode,
		Phone:       req.Phone,
		Email:       req.Email,
		Country:     req.Country,
	}
	return s.clientRepo.UpdateClient(ctx, userID, clientID, update, userID)
}

// DeleteClient removes a client owned by the user.
func (s *clientService) DeleteClient(ctx context.Context, userID string, clientID string) error {
	return s.clientRepo.DeleteClient(ctx, userID, clientID)
}
