package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/lead-capture-service/internal/domain"
	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

var whatsappPattern = regexp.MustCompile(`^[\d\s+\-()]+$`)

// Validator validates request payloads and reports every violated field.
type Validator struct {
	validate *validator.Validate
}

// New builds a validator with the custom rules registered.
func New() *Validator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
		return whatsappPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Check validates s and returns one FieldError per violated field. A nil
// result means the payload passed in full; payloads are never partially
// applied.
func (v *Validator) Check(s any) []apperrors.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperrors.FieldError{{Field: "payload", Message: "invalid payload"}}
	}

	details := make([]apperrors.FieldError, 0, len(invalid))
	for _, fe := range invalid {
		details = append(details, apperrors.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return details
}

// ValidateStatus checks the status enum used by the admin PATCH endpoint.
func ValidateStatus(status string) error {
	if domain.ValidLeadStatus(status) {
		return nil
	}
	allowed := make([]string, 0, len(domain.LeadStatuses))
	for _, s := range domain.LeadStatuses {
		allowed = append(allowed, string(s))
	}
	return apperrors.NewValidationError("invalid status", []apperrors.FieldError{{
		Field:   "status",
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}})
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "whatsapp":
		return "may contain only digits, spaces, +, - and parentheses"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
