package pgsql

import (
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	profileRepo := newPgxProfileRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		ClientRepo:  clientRepo,
		InvoiceRepo: invoiceRepo,
	}
}
