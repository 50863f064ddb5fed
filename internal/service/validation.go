package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validationMessage picks a client message for the first failed tag that has
// one, preferring "required" so a missing field wins over a malformed one.
func validationMessage(err error, byTag map[string]string) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Validation error"
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			if msg, ok := byTag["required"]; ok {
				return msg
			}
		}
	}
	for _, fe := range fieldErrs {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	return "Validation error"
}
