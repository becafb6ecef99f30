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

// ClientHandler handles requests on the user's billing clients.
type ClientHandler struct {
	clientService portssvc.ClientSvcFacade
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs portssvc.ClientSvcFacade) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// registerClientRoutes sets up the routes for client management.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := NewClientHandler(clientService)
	clients := rg.Group("/clients")
	{
		clients.POST("", h.CreateClient)
		clients.GET("", h.ListClients)
		clients.GET("/:clientID", h.GetClient)
		clients.PUT("/:clientID", h.UpdateClient)
		clients.DELETE("/:clientID", h.DeleteClient)
	}
}

// CreateClient godoc
// @Summary Create client
// @Description Creates a new billing client owned by the authenticated user.
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client data"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), userID, req)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to create client", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, internalError("Failed to create client", err))
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// ListClients godoc
// @Summary List clients
// @Description Returns all clients owned by the authenticated user.
// @Tags clients
// @Produce json
// @Success 200 {array} dto.ClientResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list clients", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, internalError("Failed to list clients", err))
		return
	}

	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// GetClient godoc
// @Summary Get client
// @Description Returns a single client owned by the authenticated user.
// @Tags clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	clientID := c.Param("clientID")

	client, err := h.clientService.GetClientByID(c.Request.Context(), userID, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get client", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, internalError("Failed to retrieve client", err))
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// UpdateClient godoc
// @Summary Update client
// @Description Applies a partial update to a client owned by the authenticated user.
// @Tags clients
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	clientID := c.Param("clientID")

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), userID, clientID, req)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update client", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, internalError("Failed to update client", err))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// DeleteClient godoc
// @Summary Delete client
// @Description Removes a client owned by the authenticated user. Fails if invoices still reference it.
// @Tags clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 204 {object} nil
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Client still referenced by invoices"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	clientID := c.Param("clientID")

	if err := h.clientService.DeleteClient(c.Request.Context(), userID, clientID); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Client still has invoices"})
		default:
			logger.Error("Failed to delete client", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, internalError("Failed to delete client", err))
		}
		return
	}

	c.Status(http.StatusNoContent)
}
