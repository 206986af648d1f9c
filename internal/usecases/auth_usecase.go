package usecases

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/domain/repositories"
	"github.com/Exponential-Science/better-auth-hedera/pkg/crypto"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VerificationMailer delivers email verification links
type VerificationMailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
}

// SessionRevoker ends a session
type SessionRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// AuthUsecase covers the account operations around a wallet sign-in:
// email verification, the current user and sign-out.
type AuthUsecase struct {
	users         repositories.UserRepository
	verifications repositories.VerificationRepository
	mailer        VerificationMailer
	sessions      SessionRevoker
	baseURL       string
	now           func() time.Time
}

// NewAuthUsecase creates a new auth usecase. mailer may be nil when email
// verification is disabled.
func NewAuthUsecase(
	users repositories.UserRepository,
	verifications repositories.VerificationRepository,
	mailer VerificationMailer,
	sessions SessionRevoker,
	baseURL string,
) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		verifications: verifications,
		mailer:        mailer,
		sessions:      sessions,
		baseURL:       strings.TrimRight(baseURL, "/"),
		now:           time.Now,
	}
}

// SendVerificationEmail stores a one-time token for user and mails the link
func (u *AuthUsecase) SendVerificationEmail(ctx context.Context, user *entities.User) error {
	if u.mailer == nil {
		return nil
	}
	token, err := crypto.NewVerificationToken()
	if err != nil {
		return err
	}

	expiresAt := u.now().Add(EmailVerificationTTL)
	if err := u.verifications.Put(ctx, &entities.Verification{
		Identifier: emailVerificationPrefix + token,
		Value:      user.ID.String(),
		ExpiresAt:  expiresAt,
	}); err != nil {
		return err
	}

	link := u.baseURL + "/api/auth/verify-email?token=" + url.QueryEscape(token)
	return u.mailer.SendVerification(ctx, user.Email, user.Name, link)
}

// VerifyEmail consumes a verification token and marks its user verified
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domainerrors.BadRequest("verification token is required")
	}
	v, err := u.verifications.Take(ctx, emailVerificationPrefix+token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest("invalid or expired verification token")
		}
		return internalError(ctx, "take verification", err)
	}

	userID, err := uuid.Parse(v.Value)
	if err != nil {
		return internalError(ctx, "parse verification", err)
	}
	if err := u.users.MarkEmailVerified(ctx, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrUserNotFound
		}
		return internalError(ctx, "mark email verified", err)
	}

	logger.Info(ctx, "Email verified", zap.String("userId", userID.String()))
	return nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, internalError(ctx, "get user", err)
	}
	return user, nil
}

// Logout ends the session behind token. Unknown tokens are not an error.
func (u *AuthUsecase) Logout(ctx context.Context, token string) error {
	if err := u.sessions.Revoke(ctx, token); err != nil {
		return internalError(ctx, "revoke session", err)
	}
	return nil
}
