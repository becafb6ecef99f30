package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	"github.com/invmate/invmate_app/internal/models"
	"github.com/invmate/invmate_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, user_id, company_name, fiscal_code, address, zip_code, phone, email, country, created_at, created_by, last_updated_at, last_updated_by`

func scanClientRow(row pgx.Row) (*models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.UserID,
		&m.CompanyName,
		&m.FiscalCode,
		&m.Address,
		&m.ZipCode,
		&m.Phone,
		&m.Email,
		&m.Country,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	modelClient := mapping.ToModelClient(client)
	query := `
        INSERT INTO clients (` + clientColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.Pool.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.UserID,
		modelClient.CompanyName,
		modelClient.FiscalCode,
		modelClient.Address,
		modelClient.ZipCode,
		modelClient.Phone,
		modelClient.Email,
		modelClient.Country,
		modelClient.CreatedAt,
		modelClient.CreatedBy,
		modelClient.LastUpdatedAt,
		modelClient.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// FindClientByID scopes the lookup to the owning user. A client owned by a
// different user is reported as not found, never as forbidden.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1 AND user_id = $2;`
	modelClient, err := scanClientRow(r.Pool.QueryRow(ctx, query, clientID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	domainClient := mapping.ToDomainClient(*modelClient)
	return &domainClient, nil
}

func (r *PgxClientRepository) ListClientsByUser(ctx context.Context, userID string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	modelClients := []models.Client{}
	for rows.Next() {
		modelClient, err := scanClientRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		modelClients = append(modelClients, *modelClient)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}

	return mapping.ToDomainClientSlice(modelClients), nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, userID string, clientID string, update domain.ClientUpdate, updatedBy string) (*domain.Client, error) {
	query := `
        UPDATE clients
        SET company_name = COALESCE($1, company_name),
            fiscal_code = COALESCE($2, fiscal_code),
            address = COALESCE($3, address),
            zip_code = COALESCE($4, zip_code),
            phone = COALESCE($5, phone),
            email = COALESCE($6, email),
            country = COALESCE($7, country),
            last_updated_at = $8,
            last_updated_by = $9
        WHERE client_id = $10 AND user_id = $11
        RETURNING ` + clientColumns + `;
    `
	modelClient, err := scanClientRow(r.Pool.QueryRow(ctx, query,
		update.CompanyName,
		update.FiscalCode,
		update.Address,
		update.ZipCode,
		update.Phone,
		update.Email,
		update.Country,
		time.Now(),
		updatedBy,
		clientID,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}

	domainClient := mapping.ToDomainClient(*modelClient)
	return &domainClient, nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, userID string, clientID string) error {
	query := `DELETE FROM clients WHERE client_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, clientID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("client %s still has invoices: %w", clientID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
