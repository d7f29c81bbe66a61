package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"paypal-order-api/internal/money"
)

// RegisterValidations installs custom binding rules on gin's validator.
// Called once at startup, before any route handles traffic.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// currency: 3-letter code from the supported whitelist
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return money.SupportedCurrency(fl.Field().String())
	})
}
