package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/response"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// IdentityKey is the context key for the authenticated caller
	IdentityKey = "identity"
	// SessionTokenKey is the context key for the opaque session token
	SessionTokenKey = "sessionToken"
)

// SessionResolver turns request credentials into an identity
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entities.AuthIdentity, error)
	ResolveBearer(ctx context.Context, accessToken string) (*entities.AuthIdentity, error)
}

// AuthMiddleware attaches the caller's identity when the request carries a
// live session, either as "Authorization: Bearer <token>" (access JWT or
// session token) or as the session cookie. Requests without one pass
// through; the usecases decide whether that is allowed.
func AuthMiddleware(sessions SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var (
			identity *entities.AuthIdentity
			token    string
			err      error
		)
		if header := c.GetHeader(AuthorizationHeader); strings.HasPrefix(header, BearerPrefix) {
			bearer := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
			if strings.Count(bearer, ".") == 2 {
				identity, err = sessions.ResolveBearer(ctx, bearer)
			} else {
				token = bearer
				identity, err = sessions.Resolve(ctx, bearer)
			}
		} else if cookie, cookieErr := c.Cookie(cookieName); cookieErr == nil && cookie != "" {
			token = cookie
			identity, err = sessions.Resolve(ctx, cookie)
		}

		if err != nil {
			if !errors.Is(err, domainerrors.ErrAuthenticationRequired) {
				response.Error(c, err)
				return
			}
			logger.Debug(ctx, "Ignoring stale credentials", zap.String("path", c.Request.URL.Path))
			identity, token = nil, ""
		}

		if identity != nil {
			c.Set(IdentityKey, identity)
			c.Request = c.Request.WithContext(logger.WithUserID(ctx, identity.UserID.String()))
			if token == "" {
				token = identity.SessionToken
			}
			if token != "" {
				c.Set(SessionTokenKey, token)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts requests that carry no identity
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentity(c) == nil {
			response.Error(c, domainerrors.ErrAuthenticationRequired)
			return
		}
		c.Next()
	}
}

// GetIdentity gets the authenticated caller, or nil
func GetIdentity(c *gin.Context) *entities.AuthIdentity {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, _ := v.(*entities.AuthIdentity)
	return identity
}

// GetSessionToken gets the opaque session token the caller presented
func GetSessionToken(c *gin.Context) string {
	return c.GetString(SessionTokenKey)
}
