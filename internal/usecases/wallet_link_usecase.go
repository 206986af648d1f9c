package usecases

import (
	"context"
	"errors"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/domain/repositories"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	"github.com/Exponential-Science/better-auth-hedera/pkg/metrics"
	"github.com/Exponential-Science/better-auth-hedera/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WalletLinkUsecase adds and removes wallet credentials on a signed-in user
type WalletLinkUsecase struct {
	accounts repositories.AccountRepository
	wallets  repositories.WalletAddressRepository
	uow      repositories.UnitOfWork
	gate     *challengeGate
	opts     SiwhOptions
}

// NewWalletLinkUsecase creates a new wallet link usecase
func NewWalletLinkUsecase(
	challenges repositories.ChallengeStore,
	accounts repositories.AccountRepository,
	wallets repositories.WalletAddressRepository,
	uow repositories.UnitOfWork,
	verifier SignatureVerifier,
	opts SiwhOptions,
) *WalletLinkUsecase {
	opts = opts.withDefaults()
	return &WalletLinkUsecase{
		accounts: accounts,
		wallets:  wallets,
		uow:      uow,
		gate:     &challengeGate{challenges: challenges, verifier: verifier, opts: opts},
		opts:     opts,
	}
}

// Link proves control of a wallet and attaches it to the caller
func (u *WalletLinkUsecase) Link(ctx context.Context, identity *entities.AuthIdentity, req *entities.SiwhLinkRequest) (*entities.SiwhLinkResult, error) {
	result, err := u.link(ctx, identity, req)
	metrics.LinkTotal.WithLabelValues("link", linkOutcome(err)).Inc()
	return result, err
}

func (u *WalletLinkUsecase) link(ctx context.Context, identity *entities.AuthIdentity, req *entities.SiwhLinkRequest) (*entities.SiwhLinkResult, error) {
	if identity == nil {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	if identity.IsAnonymous {
		return nil, domainerrors.ErrAnonymousNotAllowed
	}

	wallet, err := parseWallet(req.WalletAddress, req.ChainID)
	if err != nil {
		return nil, err
	}
	if err := u.gate.pass(ctx, wallet, req.Message, req.Signature); err != nil {
		return nil, err
	}

	existing, err := u.wallets.GetByAddressAndChain(ctx, wallet.Canonical, wallet.ChainID)
	switch {
	case err == nil && existing.UserID == identity.UserID:
		return nil, domainerrors.ErrAlreadyLinkedToSelf
	case err == nil:
		return nil, domainerrors.ErrAlreadyLinkedToOther
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, internalError(ctx, "lookup wallet", err)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		return createLinkedWallet(txCtx, u.wallets, u.accounts, identity.UserID, wallet)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.ErrAlreadyLinkedToOther
		}
		return nil, internalError(ctx, "link wallet", err)
	}

	logger.Info(ctx, "Wallet linked",
		zap.String("userId", identity.UserID.String()),
		zap.String("address", wallet.Canonical),
		zap.String("chainId", wallet.ChainID),
	)
	return &entities.SiwhLinkResult{Success: true, WalletAddress: wallet.Canonical, ChainID: wallet.ChainID}, nil
}

// Unlink removes a wallet credential from the caller. Removing the last
// linked account is refused unless AllowUnlinkingAll is set.
func (u *WalletLinkUsecase) Unlink(ctx context.Context, identity *entities.AuthIdentity, walletAddress, chainID string) error {
	err := u.unlink(ctx, identity, walletAddress, chainID)
	metrics.LinkTotal.WithLabelValues("unlink", linkOutcome(err)).Inc()
	return err
}

func (u *WalletLinkUsecase) unlink(ctx context.Context, identity *entities.AuthIdentity, walletAddress, chainID string) error {
	if identity == nil {
		return domainerrors.ErrAuthenticationRequired
	}
	wallet, err := parseWallet(walletAddress, chainID)
	if err != nil {
		return err
	}

	accounts, err := u.accounts.ListByUserID(ctx, identity.UserID)
	if err != nil {
		return internalError(ctx, "list accounts", err)
	}
	if len(accounts) <= 1 && !u.opts.AllowUnlinkingAll {
		return domainerrors.ErrLastAccountUnlinkForbidden
	}

	accountID := entities.SiwhAccountID(wallet.Canonical, wallet.ChainID)
	var target *entities.Account
	for _, a := range accounts {
		if a.ProviderID == entities.ProviderSiwh && a.AccountID == accountID {
			target = a
			break
		}
	}
	if target == nil {
		return domainerrors.ErrAccountNotFound
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.accounts.Delete(txCtx, target.ID); err != nil {
			return err
		}
		err := u.wallets.DeleteByAddressAndChain(txCtx, identity.UserID, wallet.Canonical, wallet.ChainID)
		if errors.Is(err, domainerrors.ErrNotFound) {
			// account without a credential row; removing the account is enough
			return nil
		}
		return err
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		return internalError(ctx, "unlink wallet", err)
	}

	logger.Info(ctx, "Wallet unlinked",
		zap.String("userId", identity.UserID.String()),
		zap.String("address", wallet.Canonical),
		zap.String("chainId", wallet.ChainID),
	)
	return nil
}

// ListWallets returns a page of the caller's wallet credentials, primary first
func (u *WalletLinkUsecase) ListWallets(ctx context.Context, identity *entities.AuthIdentity, page utils.PaginationParams) (*entities.WalletList, error) {
	if identity == nil {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	items, total, err := u.wallets.ListByUserID(ctx, identity.UserID, page.Limit, page.CalculateOffset())
	if err != nil {
		return nil, internalError(ctx, "list wallets", err)
	}
	return &entities.WalletList{Items: items, Total: total}, nil
}

// createLinkedWallet writes a non-primary credential and its siwh account.
// Callers run it inside a unit of work.
func createLinkedWallet(
	ctx context.Context,
	wallets repositories.WalletAddressRepository,
	accounts repositories.AccountRepository,
	userID uuid.UUID,
	wallet *walletRef,
) error {
	if err := wallets.Create(ctx, &entities.WalletAddress{
		UserID:  userID,
		Address: wallet.Canonical,
		ChainID: wallet.ChainID,
	}); err != nil {
		return err
	}
	return accounts.Create(ctx, &entities.Account{
		UserID:     userID,
		ProviderID: entities.ProviderSiwh,
		AccountID:  entities.SiwhAccountID(wallet.Canonical, wallet.ChainID),
	})
}

func linkOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domainerrors.ErrInternal):
		return metrics.OutcomeError
	default:
		return metrics.OutcomeRejected
	}
}
