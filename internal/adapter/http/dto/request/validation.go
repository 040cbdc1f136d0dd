package request

import (
	"sync"

	"garage_admin/internal/domain/entities"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the garage enum rules to gin's validator:
// payment_method, invoice_status and jobcard_status.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
			_, ok := entities.ParsePaymentMethod(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("invoice_status", func(fl validator.FieldLevel) bool {
			_, ok := entities.ParseInvoiceStatus(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("jobcard_status", func(fl validator.FieldLevel) bool {
			_, ok := entities.ParseJobCardStatus(fl.Field().String())
			return ok
		})
	})
}
