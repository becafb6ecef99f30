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

type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProfileRepository implements portsrepo.ProfileRepositoryFacade
var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

const profileColumns = `profile_id, user_id, company_name, fiscal_code, address, zip_code, country, phone, email, picture, local_currency, local_tax_percentage, created_at, created_by, last_updated_at, last_updated_by`

func scanProfileRow(row pgx.Row) (*models.Profile, error) {
	var m models.Profile
	err := row.Scan(
		&m.ProfileID,
		&m.UserID,
		&m.CompanyName,
		&m.FiscalCode,
		&m.Address,
		&m.ZipCode,
		&m.Country,
		&m.Phone,
		&m.Email,
		&m.Picture,
		&m.LocalCurrency,
		&m.LocalTaxPercentage,
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

func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	modelProfile := mapping.ToModelProfile(profile)
	query := `
        INSERT INTO profiles (` + profileColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.Pool.Exec(ctx, query,
		modelProfile.ProfileID,
		modelProfile.UserID,
		modelProfile.CompanyName,
		modelProfile.FiscalCode,
		modelProfile.Address,
		modelProfile.ZipCode,
		modelProfile.Country,
		modelProfile.Phone,
		modelProfile.Email,
		modelProfile.Picture,
		modelProfile.LocalCurrency,
		modelProfile.LocalTaxPercentage,
		modelProfile.CreatedAt,
		modelProfile.CreatedBy,
		modelProfile.LastUpdatedAt,
		modelProfile.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("profile already exists for user %s: %w", profile.UserID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *PgxProfileRepository) FindProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1;`
	modelProfile, err := scanProfileRow(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile for user %s: %w", userID, err)
	}

	domainProfile := mapping.ToDomainProfile(*modelProfile)
	return &domainProfile, nil
}

func (r *PgxProfileRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, updatedBy string) (*domain.Profile, error) {
	query := `
        UPDATE profiles
        SET company_name = COALESCE($1, company_name),
            fiscal_code = COALESCE($2, fiscal_code),
            address = COALESCE($3, address),
            zip_code = COALESCE($4, zip_code),
            country = COALESCE($5, country),
            phone = COALESCE($6, phone),
            email = COALESCE($7, email),
            picture = COALESCE($8, picture),
            local_currency = COALESCE($9, local_currency),
            local_tax_percentage = COALESCE($10, local_tax_percentage),
            last_updated_at = $11,
            last_updated_by = $12
        WHERE user_id = $13
        RETURNING ` + profileColumns + `;
    `
	modelProfile, err := scanProfileRow(r.Pool.QueryRow(ctx, query,
		update.CompanyName,
		update.FiscalCode,
		update.Address,
		update.ZipCode,
		update.Country,
		update.Phone,
		update.Email,
		update.Picture,
		update.LocalCurrency,
		update.LocalTaxPercentage,
		time.Now(),
		updatedBy,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile for user %s: %w", userID, err)
	}

	domainProfile := mapping.ToDomainProfile(*modelProfile)
	return &domainProfile, nil
}

// ClearProfilePicture nulls the picture column. A separate statement because
// the COALESCE-based patch above cannot distinguish "clear" from "leave".
func (r *PgxProfileRepository) ClearProfilePicture(ctx context.Context, userID string, updatedBy string) error {
	query := `UPDATE profiles SET picture = NULL, last_updated_at = $1, last_updated_by = $2 WHERE user_id = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, time.Now(), updatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to clear picture for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProfileRepository) DeleteProfile(ctx context.Context, userID string) error {
	query := `DELETE FROM profiles WHERE user_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
