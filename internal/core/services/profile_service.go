package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	portssvc "github.com/invmate/invmate_app/internal/core/ports/services"
	"github.com/invmate/invmate_app/internal/dto"
	"github.com/shopspring/decimal"
)

var oneHundredPercent = decimal.NewFromInt(100)

// profileService provides operations on the user's issuer profile.
type profileService struct {
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: profileRepo}
}

// Ensure profileService implements the portssvc.ProfileSvcFacade interface
var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

// CreateProfile creates the user's profile. A second profile for the same
// user is rejected with a duplicate error.
func (s *profileService) CreateProfile(ctx context.Context, userID string, req dto.CreateProfileRequest) (*domain.Profile, error) {
	if req.LocalTaxPercentage.IsNegative() || req.LocalTaxPercentage.GreaterThan(oneHundredPercent) {
		return nil, fmt.Errorf("%w: local tax percentage must be between 0 and 100", apperrors.ErrValidation)
	}

	picture, err := decodePicture(req.Picture)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ProfileID:          uuid.NewString(),
		UserID:             userID,
		CompanyName:        req.CompanyName,
		FiscalCode:         req.FiscalCode,
		Address:            req.Address,
		ZipCode:            req.ZipCode,
		Country:            req.Country,
		Phone:              req.Phone,
		Email:              req.Email,
		Picture:            picture,
		LocalCurrency:      req.LocalCurrency,
		LocalTaxPercentage: req.LocalTaxPercentage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile retrieves the requesting user's profile.
func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.FindProfileByUserID(ctx, userID)
}

// UpdateProfile applies a partial update to the user's profile.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	if req.LocalTaxPercentage != nil && (req.LocalTaxPercentage.IsNegative() || req.LocalTaxPercentage.GreaterThan(oneHundredPercent)) {
		return nil, fmt.Errorf("%w: local tax percentage must be between 0 and 100", apperrors.ErrValidation)
	}

	update := domain.ProfileUpdate{
		CompanyName:        req.CompanyName,
		FiscalCode:         req.FiscalCode,
		Address:            req.Address,
		ZipCode:            req.ZipCode,
		Country:            req.Country,
		Phone:              req.Phone,
		Email:              req.Email,
		LocalCurrency:      req.LocalCurrency,
		LocalTaxPercentage: req.LocalTaxPercentage,
	}
	if req.Picture != nil {
		picture, err := decodePicture(*req.Picture)
		if err != nil {
			return nil, err
		}
		update.Picture = &picture
	}

	return s.profileRepo.UpdateProfile(ctx, userID, update, userID)
}

// UpdateProfilePicture replaces the profile's picture blob.
func (s *profileService) UpdateProfilePicture(ctx context.Context, userID string, req dto.UpdateProfilePictureRequest) (*domain.Profile, error) {
	picture, err := decodePicture(req.Picture)
	if err != nil {
		return nil, err
	}
	if len(picture) == 0 {
		return nil, fmt.Errorf("%w: picture must not be empty", apperrors.ErrValidation)
	}
	return s.profileRepo.UpdateProfile(ctx, userID, domain.ProfileUpdate{Picture: &picture}, userID)
}

// RemoveProfilePicture clears the profile's picture blob.
func (s *profileService) RemoveProfilePicture(ctx context.Context, userID string) error {
	return s.profileRepo.ClearProfilePicture(ctx, userID, userID)
}

// DeleteProfile removes the user's profile.
func (s *profileService) DeleteProfile(ctx context.Context, userID string) error {
	return s.profileRepo.DeleteProfile(ctx, userID)
}

func decodePicture(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	picture, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: picture must be base64 encoded", apperrors.ErrValidation)
	}
	return picture, nil
}
