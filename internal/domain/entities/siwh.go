package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// SiwhNonceInput represents a nonce request
type SiwhNonceInput struct {
	WalletAddress string `json:"walletAddress" binding:"required,hedera_account"`
	ChainID       string `json:"chainId" binding:"omitempty,hedera_chain"`
}

// ProfileData is optional profile information supplied at sign-up
type ProfileData struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	Password string `json:"password"`
}

// SiwhVerifyInput represents a sign-in request as received over HTTP.
// Signature is base64 and decoded before it reaches the usecase.
type SiwhVerifyInput struct {
	Message       string       `json:"message" binding:"required"`
	Signature     string       `json:"signature" binding:"required"`
	WalletAddress string       `json:"walletAddress" binding:"required,hedera_account"`
	ChainID       string       `json:"chainId" binding:"omitempty,hedera_chain"`
	Email         string       `json:"email" binding:"omitempty,email"`
	IsSignUp      bool         `json:"isSignUp"`
	CallbackURL   string       `json:"callbackURL"`
	Data          *ProfileData `json:"data"`
}

// SiwhVerifyRequest is the decoded form of SiwhVerifyInput
type SiwhVerifyRequest struct {
	Message       string
	Signature     []byte
	WalletAddress string
	ChainID       string
	Email         null.String
	IsSignUp      bool
	Data          *ProfileData
}

// SiwhVerifyResult is returned by a successful verification.
// Session is nil when the call completed a sign-up.
type SiwhVerifyResult struct {
	User    *User
	Session *Session
	SignUp  bool
}

// SiwhLinkInput represents a wallet link request
type SiwhLinkInput struct {
	Message       string `json:"message" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
	WalletAddress string `json:"walletAddress" binding:"required,hedera_account"`
	ChainID       string `json:"chainId" binding:"omitempty,hedera_chain"`
}

// SiwhLinkRequest is the decoded form of SiwhLinkInput
type SiwhLinkRequest struct {
	Message       string
	Signature     []byte
	WalletAddress string
	ChainID       string
}

// SiwhLinkResult is returned by a successful link
type SiwhLinkResult struct {
	Success       bool   `json:"success"`
	WalletAddress string `json:"walletAddress"`
	ChainID       string `json:"chainId"`
}

// SiwhUnlinkInput represents a wallet unlink request
type SiwhUnlinkInput struct {
	WalletAddress string `json:"walletAddress" binding:"required,hedera_account"`
	ChainID       string `json:"chainId" binding:"omitempty,hedera_chain"`
}

// Challenge is what the signed message is expected to commit to
type Challenge struct {
	Domain   string
	Audience string
	Nonce    string
	Issuer   string
	Version  string
}

// VerifyMessageParams is handed to the signature verifier
type VerifyMessageParams struct {
	Message   string
	Signature []byte
	Address   string
	ChainID   string
	Challenge Challenge
}

// WalletList is a page of wallet credentials
type WalletList struct {
	Items []*WalletAddress
	Total int64
}

// EmailVerification is the payload handed to an email sender
type EmailVerification struct {
	User      *User
	Token     string
	URL       string
	ExpiresAt time.Time
}
