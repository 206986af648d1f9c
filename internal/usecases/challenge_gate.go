package usecases

import (
	"context"
	"errors"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/domain/repositories"
	"github.com/Exponential-Science/better-auth-hedera/pkg/logger"
	"go.uber.org/zap"
)

// challengeGate runs the shared part of sign-in and linking: find the live
// nonce, have the verifier accept the signature, then consume the nonce.
type challengeGate struct {
	challenges repositories.ChallengeStore
	verifier   SignatureVerifier
	opts       SiwhOptions
}

func (g *challengeGate) pass(ctx context.Context, wallet *walletRef, message string, signature []byte) error {
	nonce, err := g.challenges.Peek(ctx, wallet.Canonical, wallet.ChainID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrNonceNotFoundOrExpired
		}
		return internalError(ctx, "peek nonce", err)
	}

	ok, err := g.verifier.Verify(ctx, entities.VerifyMessageParams{
		Message:   message,
		Signature: signature,
		Address:   wallet.verifierAddress(g.opts.AddressForm),
		ChainID:   wallet.ChainID,
		Challenge: entities.Challenge{
			Domain:   g.opts.Domain,
			Audience: g.opts.audience(),
			Nonce:    nonce.Value,
			Issuer:   g.opts.BaseURL,
			Version:  siwhVersion,
		},
	})
	if err != nil {
		return internalError(ctx, "verify signature", err)
	}
	if !ok {
		logger.Warn(ctx, "Signature rejected",
			zap.String("address", wallet.Canonical),
			zap.String("chainId", wallet.ChainID),
		)
		return domainerrors.ErrSignatureVerificationFailed
	}

	// the nonce may have been consumed or reissued since Peek; only the
	// value the signature covered may be consumed
	if _, err := g.challenges.Consume(ctx, wallet.Canonical, wallet.ChainID, nonce.Value); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrNonceNotFoundOrExpired
		}
		return internalError(ctx, "consume nonce", err)
	}
	return nil
}
