package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// studentIDRe matches the identifier shape the fingerprint device emits:
// exactly ten digits. National ids lead with 1 or 2 but visitor and legacy
// ids do not, so the leading digit is unconstrained.
var studentIDRe = regexp.MustCompile(`^\d{10}$`)

// RegisterValidators installs custom binding rules on gin's validator
// engine. Call once at startup before serving requests.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
		return studentIDRe.MatchString(fl.Field().String())
	})
}
