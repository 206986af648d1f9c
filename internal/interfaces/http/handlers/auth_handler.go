package handlers

import (
	"context"
	"net/http"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/middleware"
	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthService covers the account endpoints around a wallet sign-in
type AuthService interface {
	VerifyEmail(ctx context.Context, token string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
	cookie      CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return &AuthHandler{
		authUsecase: authUsecase,
		cookie:      cookie,
	}
}

// VerifyEmail handles email verification links
// GET /api/auth/verify-email?token=
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, domainerrors.BadRequest("token is required"))
		return
	}

	if err := h.authUsecase.VerifyEmail(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": true})
}

// GetSession returns the signed-in user
// GET /api/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Error(c, domainerrors.ErrAuthenticationRequired)
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// SignOut revokes the current session and clears its cookie
// POST /api/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.authUsecase.Logout(c.Request.Context(), middleware.GetSessionToken(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	response.Success(c, http.StatusOK, gin.H{"success": true})
}
