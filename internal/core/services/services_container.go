package services

import (
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	portssvc "github.com/invmate/invmate_app/internal/core/ports/services"
	"github.com/invmate/invmate_app/internal/platform/config"
	"github.com/invmate/invmate_app/internal/renderer"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Profile = NewProfileService(repos.ProfileRepo)
	container.Client = NewClientService(repos.ClientRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ClientRepo, repos.ProfileRepo, renderer.NewPDFRenderer())

	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)
	_ portssvc.ProfileSvcFacade = (*profileService)(nil)
	_ portssvc.ClientSvcFacade  = (*clientService)(nil)
)
