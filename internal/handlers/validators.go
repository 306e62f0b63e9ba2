package handlers

import (
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the pin6 and mobile binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("pin6", func(fl validator.FieldLevel) bool {
		return utils.IsValidPINFormat(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return domain.IsValidMobileNumber(fl.Field().String())
	})
}
