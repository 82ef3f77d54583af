// Package validators declares the request contracts for every mutating
// endpoint. Violations are collected exhaustively, one entry per failing
// field, and surfaced as a single Validation failure.
package validators

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"storefront-api/apierror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// password: at least one upper, one lower, one digit.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var upper, lower, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	})

	return v
}

// Check validates a bound request struct and returns a Validation failure
// listing every violated field, or nil when the contract holds.
func Check(req any) *apierror.Error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierror.Wrap(apierror.Validation, "Validation failed", err)
	}

	fields := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierror.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return apierror.WithFields("Validation failed", fields)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", title(fe.Field()))
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", title(fe.Field()), fe.Param())
		}
		return fmt.Sprintf("%s must contain at least %s entries", title(fe.Field()), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", title(fe.Field()), fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s entries", title(fe.Field()), fe.Param())
	case "password":
		return "Password must contain uppercase, lowercase, and numbers"
	case "len", "numeric":
		if fe.Field() == "phone" {
			return "Phone must be a valid 10-digit number"
		}
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", title(fe.Field()), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", title(fe.Field()), fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot exceed %s", title(fe.Field()), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", title(fe.Field()))
	}
	return fmt.Sprintf("Invalid value for %s", fe.Field())
}

func title(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
