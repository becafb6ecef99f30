package services

import (
	"context"

	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/dto"
)

// ProfileReaderSvc defines read operations for profile data
type ProfileReaderSvc interface {
	// GetProfile retrieves the requesting user's profile.
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// ProfileWriterSvc defines write operations for profile data
type ProfileWriterSvc interface {
	// CreateProfile creates the user's profile. At most one profile per user.
	CreateProfile(ctx context.Context, userID string, req dto.CreateProfileRequest) (*domain.Profile, error)

	// UpdateProfile applies a partial update to the user's profile.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.Profile, error)

	// UpdateProfilePicture replaces the profile's picture blob.
	UpdateProfilePicture(ctx context.Context, userID string, req dto.UpdateProfilePictureRequest) (*domain.Profile, error)

	// RemoveProfilePicture clears the profile's picture blob.
	RemoveProfilePicture(ctx context.Context, userID string) error

	// DeleteProfile removes the user's profile.
	DeleteProfile(ctx context.Context, userID string) error
}

// ProfileSvcFacade combines all profile-related service interfaces
type ProfileSvcFacade interface {
	ProfileReaderSvc
	ProfileWriterSvc
}
