package showtimes

import (
	"cinebook/internal/pricing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterSeatLabelValidation installs the "seatlabel" binding rule on
// gin's validator engine. Call once at startup before routes are served.
func RegisterSeatLabelValidation() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("seatlabel", func(fl validator.FieldLevel) bool {
			return pricing.ValidLabel(fl.Field().String())
		})
	}
	return nil
}
