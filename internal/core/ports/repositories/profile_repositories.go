package repositories

import (
	"context"

	"github.com/invmate/invmate_app/internal/core/domain"
)

// ProfileReader defines read operations for profile data
type ProfileReader interface {
	// FindProfileByUserID retrieves the profile owned by the given user.
	FindProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// ProfileWriter defines write operations for profile data
type ProfileWriter interface {
	// SaveProfile persists a new profile. Fails if the user already has one.
	SaveProfile(ctx context.Context, profile domain.Profile) error

	// UpdateProfile applies the given patch to the user's profile.
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, updatedBy string) (*domain.Profile, error)

	// ClearProfilePicture removes the stored picture blob from the user's profile.
	ClearProfilePicture(ctx context.Context, userID string, updatedBy string) error

	// DeleteProfile removes the user's profile.
	DeleteProfile(ctx context.Context, userID string) error
}

// ProfileRepositoryFacade combines all profile-related repository interfaces
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
}
