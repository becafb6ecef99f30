package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/invmate/invmate_app/internal/apperrors"
	portssvc "github.com/invmate/invmate_app/internal/core/ports/services"
	"github.com/invmate/invmate_app/internal/dto"
	"github.com/invmate/invmate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles requests on the user's issuer profile.
type ProfileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps portssvc.ProfileSvcFacade) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// registerProfileRoutes sets up the routes for the user's profile.
// The profile is a singleton per user, so no ID appears in the path.
func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := NewProfileHandler(profileService)
	profile := rg.Group("/profile")
	{
		profile.POST("", h.CreateProfile)
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteProfile)
		profile.PATCH("/picture", h.UpdateProfilePicture)
		profile.DELETE("/picture", h.RemoveProfilePicture)
	}
}

// CreateProfile godoc
// @Summary Create profile
// @Description Creates the authenticated user's issuer profile. Each user has at most one.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.CreateProfileRequest true "Profile data"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Profile already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), userID, req)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Profile already exists"})
		default:
			logger.Error("Failed to create profile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, internalError("Failed to create profile", err))
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// GetProfile godoc
// @Summary Get profile
// @Description Returns the authenticated user's issuer profile.
// @Tags profile
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, internalError("Failed to retrieve profile", err))
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Applies a partial update to the authenticated user's profile.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update profile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, internalError("Failed to update profile", err))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// UpdateProfilePicture godoc
// @Summary Update profile picture
// @Description Replaces the profile's picture with the provided base64-encoded image.
// @Tags profile
// @Accept json
// @Produce json
// @Param picture body dto.UpdateProfilePictureRequest true "Base64-encoded image"
// @Success 204 {object} nil
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile/picture [patch]
func (h *ProfileHandler) UpdateProfilePicture(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateProfilePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if _, err := h.profileService.UpdateProfilePicture(c.Request.Context(), userID, req); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
		default:
			logger.Error("Failed to update profile picture", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, internalError("Failed to update profile picture", err))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveProfilePicture godoc
// @Summary Remove profile picture
// @Description Clears the profile's stored picture.
// @Tags profile
// @Produce json
// @Success 204 {object} nil
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile/picture [delete]
func (h *ProfileHandler) RemoveProfilePicture(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.profileService.RemoveProfilePicture(c.Request.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to remove profile picture", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, internalError("Failed to remove profile picture", err))
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteProfile godoc
// @Summary Delete profile
// @Description Removes the authenticated user's issuer profile.
// @Tags profile
// @Produce json
// @Success 204 {object} nil
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to delete profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, internalError("Failed to delete profile", err))
		return
	}

	c.Status(http.StatusNoContent)
}
