package repositories

import (
	"context"

	"github.com/invmate/invmate_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client by ID, scoped to the owning user.
	FindClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error)

	// ListClientsByUser retrieves all clients owned by the given user.
	ListClientsByUser(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient applies the given patch to a client owned by the user.
	UpdateClient(ctx context.Context, userID string, clientID string, update domain.ClientUpdate, updatedBy string) (*domain.Client, error)

	// DeleteClient removes a client owned by the user.
	DeleteClient(ctx context.Context, userID string, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
