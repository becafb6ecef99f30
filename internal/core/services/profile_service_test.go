package services_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/core/services"
	"github.com/invmate/invmate_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validProfileRequest() dto.CreateProfileRequest {
	return dto.CreateProfileRequest{
		CompanyName:        "Acme Consulting",
		Address:            "1 Main Street",
		LocalCurrency:      "TND",
		LocalTaxPercentage: decimal.RequireFromString("19"),
	}
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	repo.On("SaveProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.UserID == userID && p.CompanyName == "Acme Consulting"
	})).Return(nil)

	profile, err := svc.CreateProfile(ctx, userID, validProfileRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ProfileID)
	repo.AssertExpectations(t)
}

func TestCreateProfileSecondProfileRejected(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	repo.On("SaveProfile", ctx, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := svc.CreateProfile(ctx, userID, validProfileRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestCreateProfileInvalidTaxPercentage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	req := validProfileRequest()
	req.LocalTaxPercentage = decimal.RequireFromString("120")

	_, err := svc.CreateProfile(ctx, uuid.NewString(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveProfile", mock.Anything, mock.Anything)
}

func TestCreateProfileDecodesPicture(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	logo := []byte{0x89, 0x50, 0x4E, 0x47}
	req := validProfileRequest()
	req.Picture = base64.StdEncoding.EncodeToString(logo)

	repo.On("SaveProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return string(p.Picture) == string(logo)
	})).Return(nil)

	_, err := svc.CreateProfile(ctx, userID, req)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateProfilePicture(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	logo := []byte{0x89, 0x50, 0x4E, 0x47}
	repo.On("UpdateProfile", ctx, userID, mock.MatchedBy(func(u domain.ProfileUpdate) bool {
		return u.Picture != nil && string(*u.Picture) == string(logo)
	}), userID).Return(&domain.Profile{UserID: userID, Picture: logo}, nil)

	profile, err := svc.UpdateProfilePicture(ctx, userID, dto.UpdateProfilePictureRequest{
		Picture: base64.StdEncoding.EncodeToString(logo),
	})
	require.NoError(t, err)
	assert.Equal(t, logo, profile.Picture)
	repo.AssertExpectations(t)
}

func TestUpdateProfilePictureRejectsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	_, err := svc.UpdateProfilePicture(ctx, uuid.NewString(), dto.UpdateProfilePictureRequest{Picture: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveProfilePicture(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	repo.On("ClearProfilePicture", ctx, userID, userID).Return(nil)

	require.NoError(t, svc.RemoveProfilePicture(ctx, userID))
	repo.AssertExpectations(t)
}

func TestRemoveProfilePictureMissingProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	repo.On("ClearProfilePicture", ctx, userID, userID).Return(apperrors.ErrNotFound)

	assert.ErrorIs(t, svc.RemoveProfilePicture(ctx, userID), apperrors.ErrNotFound)
}

func TestUpdateProfileRejectsBadPicture(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo)

	bad := "%%% not base64 %%%"
	_, err := svc.UpdateProfile(ctx, uuid.NewString(), dto.UpdateProfileRequest{Picture: &bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
