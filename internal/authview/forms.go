package authview

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"museo/internal/services"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	Username string `validate:"required,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type recoverForm struct {
	Email string `validate:"required,email"`
}

func validateForm(v *validator.Validate, mode Mode, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return services.Wrap(services.ErrValidation, component, string(mode), "validate form", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, strings.ToLower(fe.Field())+" "+describeTag(fe.Tag()))
	}
	return services.Wrap(services.ErrValidation, component, string(mode), strings.Join(problems, "; "), nil)
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be an email address"
	case "max":
		return "is too long"
	default:
		return "is invalid (" + tag + ")"
	}
}
