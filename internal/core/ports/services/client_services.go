package services

import (
	"context"

	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a client owned by the requesting user.
	GetClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients owned by the requesting user.
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient creates a new client for the user.
	CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error)

	// UpdateClient applies a partial update to a client owned by the user.
	UpdateClient(ctx context.Context, userID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)

	// DeleteClient removes a client owned by the user.
	DeleteClient(ctx context.Context, userID string, clientID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
