package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput reports the first invalid field as a ValidationError
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.NewValidationError(fe.Field(), describe(fe))
	}
	return domain.NewValidationError("", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid id"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}

// validateID rejects identifiers that cannot name a stored row
func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return domain.NewValidationError("id", "must be a valid id")
	}
	return nil
}

// parseStay parses and checks a check-in/check-out pair
func parseStay(checkIn, checkOut string, loc *time.Location) (utils.Date, utils.Date, error) {
	in, err := utils.ParseDate(checkIn, loc)
	if err != nil {
		return utils.Date{}, utils.Date{}, domain.NewValidationError("check_in", err.Error())
	}
	out, err := utils.ParseDate(checkOut, loc)
	if err != nil {
		return utils.Date{}, utils.Date{}, domain.NewValidationError("check_out", err.Error())
	}
	if !in.Before(out) {
		return utils.Date{}, utils.Date{}, domain.NewValidationError("check_out", "check-out must be after check-in")
	}
	return in, out, nil
}

// optional returns nil for blank strings
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// backendError classifies a repository failure. Domain errors such as
// NotFound pass through; anything else is logged and hidden.
func backendError(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	logger.Error("Backend call failed", "operation", op, "error", err)
	return domain.NewBackendError("failed to "+op, err)
}
