package services

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lustless/lustless-client/internal/client/client"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationError is a rejected form field, phrased for display. Err is set
// when the backend rejected the field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// fieldRejection converts a client error response that carries no message but
// names a rejected field into a *ValidationError. It returns nil otherwise.
func fieldRejection(err error) *ValidationError {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.FirstMessage() != "" {
		return nil
	}
	if apiErr.Status < http.StatusBadRequest || apiErr.Status >= http.StatusInternalServerError ||
		apiErr.Status == http.StatusUnauthorized {
		return nil
	}
	field, msg := apiErr.FirstFieldError()
	if field == "" {
		return nil
	}
	return &ValidationError{Field: field, Message: msg, Err: err}
}

// validateRequest checks req against its validate tags and returns the first
// failure as a *ValidationError.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &ValidationError{Field: fe.Field(), Message: formatValidationError(fe)}
	}
	return fmt.Errorf("validation failed: %w", err)
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Invalid email format"
	case "password":
		switch fe.Tag() {
		case "required":
			return "Password is required"
		case "min":
			return fmt.Sprintf("Password must be at least %s characters", fe.Param())
		}
	case "otpCode", "code":
		return "Please enter the complete 6-digit code"
	case "phoneNumber":
		return "Please enter a valid phone number"
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must have a minimum of %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must have a maximum of %s characters", fe.Param())
	default:
		return fmt.Sprintf("Failed validation: %s", fe.Tag())
	}
}

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhone turns user input into E.164. Input starting with "+" is
// taken as already international; anything else gets countryCode prepended
// after leading zeros are dropped. The result is not validated.
func NormalizePhone(raw, countryCode string) string {
	raw = strings.TrimSpace(raw)
	digits := nonDigit.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(raw, "+") {
		return "+" + digits
	}

	cc := nonDigit.ReplaceAllString(countryCode, "")
	digits = strings.TrimLeft(digits, "0")
	return "+" + cc + digits
}
