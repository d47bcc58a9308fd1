package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO's validate tags. Field-level detail stays
// server side; the client gets the static rejection.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return NewInvalidPayload()
	}
	return nil
}
