package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	domainerrors "github.com/Exponential-Science/better-auth-hedera/internal/domain/errors"
	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the Hedera binding tags to gin's validator.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("hedera_account", validateAccountID)
		_ = v.RegisterValidation("hedera_chain", validateChainID)
	})
}

// syntax only; checksums are checked against the chain by the usecases
func validateAccountID(fl validator.FieldLevel) bool {
	_, err := hedera.ParseAccountID(fl.Field().String())
	return err == nil
}

func validateChainID(fl validator.FieldLevel) bool {
	_, err := hedera.NetworkFromChainID(fl.Field().String())
	return err == nil
}

// bindingError maps a gin binding failure to a domain error
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domainerrors.BadRequest("invalid request body")
	}
	for _, fe := range verrs {
		switch {
		case fe.Tag() == "hedera_account" || fe.Field() == "walletAddress":
			return domainerrors.ErrInvalidAddressFormat
		case fe.Tag() == "hedera_chain":
			return domainerrors.ErrUnsupportedChain
		}
	}
	fe := verrs[0]
	return domainerrors.BadRequest(fe.Field() + " is invalid: " + fe.Tag())
}
