package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/domain/entities"
	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/middleware"
	"github.com/Exponential-Science/better-auth-hedera/internal/interfaces/http/response"
	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
	"github.com/Exponential-Science/better-auth-hedera/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null/v8"
)

// SiwhService is the sign-in half of the SIWH flow
type SiwhService interface {
	RequestNonce(ctx context.Context, walletAddress, chainID string) (string, error)
	Verify(ctx context.Context, req *entities.SiwhVerifyRequest) (*entities.SiwhVerifyResult, error)
}

// WalletLinkService manages the wallets of a signed-in user
type WalletLinkService interface {
	Link(ctx context.Context, identity *entities.AuthIdentity, req *entities.SiwhLinkRequest) (*entities.SiwhLinkResult, error)
	Unlink(ctx context.Context, identity *entities.AuthIdentity, walletAddress, chainID string) error
	ListWallets(ctx context.Context, identity *entities.AuthIdentity, page utils.PaginationParams) (*entities.WalletList, error)
}

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

// DefaultCookieName is used when CookieConfig.Name is empty
const DefaultCookieName = "siwh.session_token"

// SiwhHandler handles the Sign-In With Hedera endpoints
type SiwhHandler struct {
	siwh    SiwhService
	wallets WalletLinkService
	cookie  CookieConfig
	now     func() time.Time
}

// NewSiwhHandler creates a new SIWH handler
func NewSiwhHandler(siwh SiwhService, wallets WalletLinkService, cookie CookieConfig) *SiwhHandler {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return &SiwhHandler{
		siwh:    siwh,
		wallets: wallets,
		cookie:  cookie,
		now:     time.Now,
	}
}

// Nonce issues a sign-in challenge nonce
// POST /api/auth/siwh/nonce
func (h *SiwhHandler) Nonce(c *gin.Context) {
	var input entities.SiwhNonceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	nonce, err := h.siwh.RequestNonce(c.Request.Context(), input.WalletAddress, input.ChainID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"nonce": nonce})
}

// Verify checks a signed message and signs the wallet in
// POST /api/auth/siwh/verify
func (h *SiwhHandler) Verify(c *gin.Context) {
	var input entities.SiwhVerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	signature, err := hedera.DecodeSignature(input.Signature)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid signature encoding"))
		return
	}

	req := &entities.SiwhVerifyRequest{
		Message:       input.Message,
		Signature:     signature,
		WalletAddress: input.WalletAddress,
		ChainID:       input.ChainID,
		IsSignUp:      input.IsSignUp,
		Data:          input.Data,
	}
	if input.Email != "" {
		req.Email = null.StringFrom(input.Email)
	}

	result, err := h.siwh.Verify(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A completed sign-up issues no session
	if result.Session == nil {
		response.Success(c, http.StatusOK, gin.H{
			"token": nil,
			"user":  result.User,
		})
		return
	}

	h.setSessionCookie(c, result.Session)
	response.Success(c, http.StatusOK, gin.H{
		"redirect": input.CallbackURL != "",
		"token":    result.Session.Token,
		"url":      input.CallbackURL,
		"user":     result.User,
	})
}

// Link attaches another wallet to the signed-in user
// POST /api/auth/siwh/link
func (h *SiwhHandler) Link(c *gin.Context) {
	var input entities.SiwhLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	signature, err := hedera.DecodeSignature(input.Signature)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid signature encoding"))
		return
	}

	result, err := h.wallets.Link(c.Request.Context(), middleware.GetIdentity(c), &entities.SiwhLinkRequest{
		Message:       input.Message,
		Signature:     signature,
		WalletAddress: input.WalletAddress,
		ChainID:       input.ChainID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Unlink removes a wallet from the signed-in user
// POST /api/auth/siwh/unlink
func (h *SiwhHandler) Unlink(c *gin.Context) {
	var input entities.SiwhUnlinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	if err := h.wallets.Unlink(c.Request.Context(), middleware.GetIdentity(c), input.WalletAddress, input.ChainID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": true})
}

// Wallets lists the wallets of the signed-in user
// GET /api/auth/siwh/wallets
func (h *SiwhHandler) Wallets(c *gin.Context) {
	var query utils.PaginationParams
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid pagination parameters"))
		return
	}
	page := utils.GetPaginationParams(query.Page, query.Limit)

	list, err := h.wallets.ListWallets(c.Request.Context(), middleware.GetIdentity(c), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	wallets := list.Items
	if wallets == nil {
		wallets = []*entities.WalletAddress{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"wallets": wallets,
		"meta":    utils.CalculateMeta(list.Total, page.Page, page.Limit),
	})
}

func (h *SiwhHandler) setSessionCookie(c *gin.Context, session *entities.Session) {
	maxAge := int(session.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, session.Token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
