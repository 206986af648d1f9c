package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/domain/repositories"
	"github.com/Exponential-Science/better-auth-hedera/pkg/crypto"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	"github.com/Exponential-Science/better-auth-hedera/pkg/metrics"
	"github.com/Exponential-Science/better-auth-hedera/pkg/utils"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// NonceGenerator produces cryptographically secure nonce values
type NonceGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// NonceGeneratorFunc adapts a function to NonceGenerator
type NonceGeneratorFunc func(ctx context.Context) (string, error)

func (f NonceGeneratorFunc) Generate(ctx context.Context) (string, error) { return f(ctx) }

// RandomNonce returns 32 hex characters from crypto/rand
var RandomNonce = NonceGeneratorFunc(func(context.Context) (string, error) {
	return crypto.NewNonce()
})

// SignatureVerifier checks a signed sign-in message. A rejected signature
// is (false, nil).
type SignatureVerifier interface {
	Verify(ctx context.Context, params entities.VerifyMessageParams) (bool, error)
}

// SessionService starts a session for a signed-in user
type SessionService interface {
	Create(ctx context.Context, user *entities.User) (*entities.Session, error)
}

// EmailVerificationSender dispatches the verification mail after sign-up
type EmailVerificationSender interface {
	SendVerificationEmail(ctx context.Context, user *entities.User) error
}

// SiwhOptions configures the sign-in protocol
type SiwhOptions struct {
	Domain                string
	BaseURL               string
	EmailDomain           string
	Anonymous             bool
	AutoSignUp            bool
	AllowUnlinkingAll     bool
	SendVerificationEmail bool
	NonceTTL              time.Duration
	AddressForm           AddressForm
}

func (o SiwhOptions) withDefaults() SiwhOptions {
	if o.NonceTTL <= 0 {
		o.NonceTTL = DefaultNonceTTL
	}
	if !o.AddressForm.Valid() {
		o.AddressForm = AddressCanonical
	}
	// host only: a port has no place in an email address
	if o.EmailDomain == "" {
		o.EmailDomain = hostOf(o.BaseURL)
	}
	o.EmailDomain = strings.ToLower(o.EmailDomain)
	if o.Domain == "" {
		o.Domain = hostOf(o.BaseURL)
	}
	return o
}

func (o SiwhOptions) audience() string {
	return originOf(o.BaseURL)
}

// SiwhUsecase implements nonce issuance and sign-in verification
type SiwhUsecase struct {
	challenges repositories.ChallengeStore
	users      repositories.UserRepository
	accounts   repositories.AccountRepository
	wallets    repositories.WalletAddressRepository
	uow        repositories.UnitOfWork
	nonces     NonceGenerator
	sessions   SessionService
	emails     EmailVerificationSender
	gate       *challengeGate
	opts       SiwhOptions
}

// NewSiwhUsecase creates a new sign-in usecase. emails may be nil.
func NewSiwhUsecase(
	challenges repositories.ChallengeStore,
	users repositories.UserRepository,
	accounts repositories.AccountRepository,
	wallets repositories.WalletAddressRepository,
	uow repositories.UnitOfWork,
	nonces NonceGenerator,
	verifier SignatureVerifier,
	sessions SessionService,
	emails EmailVerificationSender,
	opts SiwhOptions,
) *SiwhUsecase {
	opts = opts.withDefaults()
	if nonces == nil {
		nonces = RandomNonce
	}
	return &SiwhUsecase{
		challenges: challenges,
		users:      users,
		accounts:   accounts,
		wallets:    wallets,
		uow:        uow,
		nonces:     nonces,
		sessions:   sessions,
		emails:     emails,
		gate:       &challengeGate{challenges: challenges, verifier: verifier, opts: opts},
		opts:       opts,
	}
}

// RequestNonce issues a fresh nonce for (walletAddress, chainID), replacing
// any outstanding one.
func (u *SiwhUsecase) RequestNonce(ctx context.Context, walletAddress, chainID string) (string, error) {
	wallet, err := parseWallet(walletAddress, chainID)
	if err != nil {
		metrics.NonceRequests.WithLabelValues("invalid", metrics.OutcomeRejected).Inc()
		return "", err
	}

	nonce, err := u.nonces.Generate(ctx)
	if err != nil {
		metrics.NonceRequests.WithLabelValues(wallet.ChainID, metrics.OutcomeError).Inc()
		return "", internalError(ctx, "generate nonce", err)
	}
	if err := u.challenges.Issue(ctx, wallet.Canonical, wallet.ChainID, nonce, u.opts.NonceTTL); err != nil {
		metrics.NonceRequests.WithLabelValues(wallet.ChainID, metrics.OutcomeError).Inc()
		return "", internalError(ctx, "issue nonce", err)
	}

	metrics.NonceRequests.WithLabelValues(wallet.ChainID, metrics.OutcomeSuccess).Inc()
	logger.Debug(ctx, "Nonce issued", zap.String("address", wallet.Canonical), zap.String("chainId", wallet.ChainID))
	return nonce, nil
}

// Verify checks a signed sign-in message and resolves or creates the
// identity behind it. A sign-up returns the new user without a session.
func (u *SiwhUsecase) Verify(ctx context.Context, req *entities.SiwhVerifyRequest) (*entities.SiwhVerifyResult, error) {
	result, err := u.verify(ctx, req)
	switch {
	case err == nil && result.SignUp:
		metrics.VerifyTotal.WithLabelValues(metrics.OutcomeSignUp).Inc()
	case err == nil:
		metrics.VerifyTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	case errors.Is(err, domainerrors.ErrInternal), errors.Is(err, domainerrors.ErrSessionCreationFailed):
		metrics.VerifyTotal.WithLabelValues(metrics.OutcomeError).Inc()
	default:
		metrics.VerifyTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
	}
	return result, err
}

func (u *SiwhUsecase) verify(ctx context.Context, req *entities.SiwhVerifyRequest) (*entities.SiwhVerifyResult, error) {
	wallet, err := parseWallet(req.WalletAddress, req.ChainID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email.String))
	if !u.opts.Anonymous && (!req.Email.Valid || email == "") {
		return nil, domainerrors.ErrEmailRequired
	}

	if err := u.gate.pass(ctx, wallet, req.Message, req.Signature); err != nil {
		return nil, err
	}

	user, exact, err := u.resolveIdentity(ctx, wallet)
	if err != nil {
		return nil, err
	}

	if user == nil {
		if !u.opts.AutoSignUp && !req.IsSignUp {
			return nil, domainerrors.ErrUserNotFound
		}
		user, err := u.signUp(ctx, wallet, email, req.Data)
		if err != nil {
			return nil, err
		}
		return &entities.SiwhVerifyResult{User: user, SignUp: true}, nil
	}

	if !exact {
		if err := u.attachChain(ctx, user, wallet); err != nil {
			return nil, err
		}
	}

	session, err := u.sessions.Create(ctx, user)
	if err != nil {
		logger.Error(ctx, "Session creation failed", zap.String("userId", user.ID.String()), zap.Error(err))
		if errors.Is(err, domainerrors.ErrSessionCreationFailed) {
			return nil, err
		}
		return nil, errors.Join(domainerrors.ErrSessionCreationFailed, err)
	}

	logger.Info(ctx, "Wallet signed in",
		zap.String("userId", user.ID.String()),
		zap.String("address", wallet.Canonical),
		zap.String("chainId", wallet.ChainID),
	)
	return &entities.SiwhVerifyResult{User: user, Session: session}, nil
}

// resolveIdentity looks up the owner of (address, chainId), falling back to
// the owner of the same address on any other chain. exact is false for the
// fallback.
func (u *SiwhUsecase) resolveIdentity(ctx context.Context, wallet *walletRef) (*entities.User, bool, error) {
	exact := true
	credential, err := u.wallets.GetByAddressAndChain(ctx, wallet.Canonical, wallet.ChainID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		exact = false
		credential, err = u.wallets.GetFirstByAddress(ctx, wallet.Canonical)
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, internalError(ctx, "resolve wallet", err)
	}

	user, err := u.users.GetByID(ctx, credential.UserID)
	if err != nil {
		// a credential without its user is an orphan, not an unknown wallet
		return nil, false, internalError(ctx, "load wallet owner", err)
	}
	return user, exact, nil
}

func (u *SiwhUsecase) signUp(ctx context.Context, wallet *walletRef, email string, data *entities.ProfileData) (*entities.User, error) {
	// The anonymous option only waives the email. The user still owns a
	// wallet credential and is not a guest.
	synthesized := u.opts.Anonymous || email == ""
	if synthesized {
		email = wallet.Canonical + "@" + u.opts.EmailDomain
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, internalError(ctx, "lookup email", err)
	}

	user := &entities.User{
		ID:          utils.NewID(),
		Name:  wallet.Canonical,
		Email: email,
	}
	var passwordHash null.String
	if data != nil {
		if name := strings.TrimSpace(data.Name); name != "" {
			user.Name = name
		}
		if data.Image != "" {
			user.Image = null.StringFrom(data.Image)
		}
		if data.Password != "" {
			hash, err := crypto.HashPassword(data.Password)
			if errors.Is(err, crypto.ErrPasswordTooLong) {
				return nil, domainerrors.BadRequest(err.Error())
			}
			if err != nil {
				return nil, internalError(ctx, "hash password", err)
			}
			passwordHash = null.StringFrom(hash)
		}
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.users.Create(txCtx, user); err != nil {
			return err
		}
		if err := u.wallets.Create(txCtx, &entities.WalletAddress{
			UserID:    user.ID,
			Address:   wallet.Canonical,
			ChainID:   wallet.ChainID,
			IsPrimary: true,
		}); err != nil {
			return err
		}
		if err := u.accounts.Create(txCtx, &entities.Account{
			UserID:     user.ID,
			ProviderID: entities.ProviderSiwh,
			AccountID:  entities.SiwhAccountID(wallet.Canonical, wallet.ChainID),
		}); err != nil {
			return err
		}
		if passwordHash.Valid {
			return u.accounts.Create(txCtx, &entities.Account{
				UserID:     user.ID,
				ProviderID: entities.ProviderCredential,
				AccountID:  user.ID.String(),
				Password:   passwordHash,
			})
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrEmailAlreadyExists):
			return nil, domainerrors.ErrEmailAlreadyExists
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			// lost a race against another sign-up for the same wallet
			return nil, domainerrors.ErrAlreadyLinkedToOther
		}
		return nil, internalError(ctx, "create user", err)
	}

	logger.Info(ctx, "Wallet signed up",
		zap.String("userId", user.ID.String()),
		zap.String("address", wallet.Canonical),
		zap.String("chainId", wallet.ChainID),
	)

	if u.opts.SendVerificationEmail && u.emails != nil && !synthesized {
		if err := u.emails.SendVerificationEmail(ctx, user); err != nil {
			logger.Warn(ctx, "Verification email not sent", zap.String("userId", user.ID.String()), zap.Error(err))
		}
	}
	return user, nil
}

// attachChain records (address, chainId) as a further credential of user
func (u *SiwhUsecase) attachChain(ctx context.Context, user *entities.User, wallet *walletRef) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		return createLinkedWallet(txCtx, u.wallets, u.accounts, user.ID, wallet)
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		// created concurrently; fine as long as it is ours
		existing, lookupErr := u.wallets.GetByAddressAndChain(ctx, wallet.Canonical, wallet.ChainID)
		if lookupErr == nil && existing.UserID == user.ID {
			return nil
		}
		return domainerrors.ErrAlreadyLinkedToOther
	}
	return internalError(ctx, "attach chain", err)
}
