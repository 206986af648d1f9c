package errors

import (
	"errors"
	"net/http"
)

// Generic domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternal      = errors.New("internal error")
)

// Sign-in and wallet linking errors
var (
	ErrInvalidAddressFormat        = errors.New("invalid wallet address format")
	ErrInvalidChecksum             = errors.New("invalid wallet address checksum")
	ErrUnsupportedChain            = errors.New("unsupported chain")
	ErrEmailRequired               = errors.New("email is required")
	ErrNonceNotFoundOrExpired      = errors.New("invalid or expired nonce")
	ErrSignatureVerificationFailed = errors.New("invalid signature")
	ErrUserNotFound                = errors.New("user not found")
	ErrEmailAlreadyExists          = errors.New("email already exists")
	ErrAuthenticationRequired      = errors.New("authentication required")
	ErrAnonymousNotAllowed         = errors.New("anonymous users cannot link wallets")
	ErrAlreadyLinkedToSelf         = errors.New("wallet already linked to this account")
	ErrAlreadyLinkedToOther        = errors.New("wallet already linked to another account")
	ErrAccountNotFound             = errors.New("account not found")
	ErrLastAccountUnlinkForbidden  = errors.New("cannot unlink the last account")
	ErrSessionCreationFailed       = errors.New("failed to create session")
)

// Stable error codes returned to clients
const (
	CodeNotFound                    = "NOT_FOUND"
	CodeConflict                    = "CONFLICT"
	CodeInvalidInput                = "INVALID_INPUT"
	CodeBadRequest                  = "BAD_REQUEST"
	CodeUnauthorized                = "UNAUTHORIZED"
	CodeForbidden                   = "FORBIDDEN"
	CodeInternalError               = "INTERNAL_ERROR"
	CodeInvalidAddressFormat        = "INVALID_ADDRESS_FORMAT"
	CodeInvalidChecksum             = "INVALID_CHECKSUM"
	CodeUnsupportedChain            = "UNSUPPORTED_CHAIN"
	CodeEmailRequired               = "EMAIL_REQUIRED"
	CodeNonceNotFoundOrExpired      = "NONCE_NOT_FOUND_OR_EXPIRED"
	CodeSignatureVerificationFailed = "SIGNATURE_VERIFICATION_FAILED"
	CodeUserNotFound                = "USER_NOT_FOUND"
	CodeEmailAlreadyExists          = "EMAIL_ALREADY_EXISTS"
	CodeAuthenticationRequired      = "AUTHENTICATION_REQUIRED"
	CodeAnonymousNotAllowed         = "ANONYMOUS_NOT_ALLOWED"
	CodeAlreadyLinkedToSelf         = "ALREADY_LINKED_TO_SELF"
	CodeAlreadyLinkedToOther        = "ALREADY_LINKED_TO_OTHER"
	CodeAccountNotFound             = "ACCOUNT_NOT_FOUND"
	CodeLastAccountUnlinkForbidden  = "LAST_ACCOUNT_UNLINK_FORBIDDEN"
	CodeSessionCreationFailed       = "SESSION_CREATION_FAILED"
)

type kind struct {
	err    error
	status int
	code   string
}

// Order matters only for errors that wrap more than one sentinel.
var kinds = []kind{
	{ErrInvalidAddressFormat, http.StatusBadRequest, CodeInvalidAddressFormat},
	{ErrInvalidChecksum, http.StatusBadRequest, CodeInvalidChecksum},
	{ErrUnsupportedChain, http.StatusBadRequest, CodeUnsupportedChain},
	{ErrEmailRequired, http.StatusBadRequest, CodeEmailRequired},
	{ErrNonceNotFoundOrExpired, http.StatusUnauthorized, CodeNonceNotFoundOrExpired},
	{ErrSignatureVerificationFailed, http.StatusUnauthorized, CodeSignatureVerificationFailed},
	{ErrUserNotFound, http.StatusUnauthorized, CodeUserNotFound},
	{ErrEmailAlreadyExists, http.StatusConflict, CodeEmailAlreadyExists},
	{ErrAuthenticationRequired, http.StatusUnauthorized, CodeAuthenticationRequired},
	{ErrAnonymousNotAllowed, http.StatusForbidden, CodeAnonymousNotAllowed},
	{ErrAlreadyLinkedToSelf, http.StatusBadRequest, CodeAlreadyLinkedToSelf},
	{ErrAlreadyLinkedToOther, http.StatusConflict, CodeAlreadyLinkedToOther},
	{ErrAccountNotFound, http.StatusNotFound, CodeAccountNotFound},
	{ErrLastAccountUnlinkForbidden, http.StatusBadRequest, CodeLastAccountUnlinkForbidden},
	{ErrSessionCreationFailed, http.StatusInternalServerError, CodeSessionCreationFailed},
	{ErrInternal, http.StatusInternalServerError, CodeInternalError},
	{ErrNotFound, http.StatusNotFound, CodeNotFound},
	{ErrAlreadyExists, http.StatusConflict, CodeConflict},
	{ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
	{ErrBadRequest, http.StatusBadRequest, CodeBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
	{ErrForbidden, http.StatusForbidden, CodeForbidden},
}

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromError maps any error to an AppError. Known sentinels keep their
// message and code; anything else becomes a generic internal error so the
// underlying text never reaches the client.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			message := k.err.Error()
			if k.status == http.StatusInternalServerError {
				message = "internal server error"
			}
			return NewAppError(k.status, k.code, message, err)
		}
	}
	return InternalError(err)
}

// Code returns the stable code for err, or "" for nil.
func Code(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).Code
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

// InternalError wraps an unexpected failure. The cause is kept for logging
// and errors.Is but the message is always generic.
func InternalError(err error) *AppError {
	wrapped := ErrInternal
	if err != nil {
		wrapped = errors.Join(ErrInternal, err)
	}
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", wrapped)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	status, code := http.StatusBadRequest, CodeBadRequest
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			status, code = k.status, k.code
			break
		}
	}
	return NewAppError(status, code, message, err)
}
