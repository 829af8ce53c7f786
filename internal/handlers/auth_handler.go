package handlers

import (
	"net/http"

	"multibank/internal/dto"
	"multibank/internal/errors"
	"multibank/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles the password-gate session endpoint
type AuthHandler struct {
	sessionService services.SessionServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(sessionService services.SessionServiceInterface) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
	}
}

// CreateSession exchanges the dashboard password for a session token
// @Summary Open a dashboard session
// @Description Check the shared dashboard password and issue a short-lived session token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Dashboard password"
// @Success 200 {object} dto.SessionResponse "Session token issued"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 401 {object} errors.ErrorResponse "Invalid password - AUTH_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /auth/session [post]
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req dto.SessionRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	token, expiresAt, err := h.sessionService.Authenticate(req.Password)
	if err != nil {
		if err == services.ErrInvalidPassword {
			return SendError(c, errors.AuthInvalidPassword)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
