package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"financas/internal/core"
)

// Request carries the form fields for creating or editing a transaction.
// Installments is 0 when the field was not given.
type Request struct {
	Description  string        `validate:"required"`
	Amount       core.Money    `validate:"-"`
	Category     core.Category `validate:"required"`
	Type         core.Type     `validate:"required,oneof=income expense"`
	Date         core.Date     `validate:"-"`
	Installments int           `validate:"omitempty,min=1,max=120"`
	IsRecurring  bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims the description.
func (r Request) Normalize() Request {
	r.Description = strings.TrimSpace(r.Description)
	return r
}

// withRecurringPolicy collapses a recurring request to a single record. It
// runs after Validate so an out-of-range count is still rejected.
func (r Request) withRecurringPolicy() Request {
	if r.IsRecurring {
		r.Installments = 1
	}
	return r
}

// Validate checks a normalized request. It returns one of the core sentinel
// errors so callers can test with errors.Is.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if !r.Category.ValidFor(r.Type) {
		return fmt.Errorf("%w: %s is not an %s category", core.ErrInvalidCategory, r.Category, r.Type)
	}
	if err := r.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %q", core.ErrInvalidDate, r.Date.String())
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	var sentinel error
	switch fe.Field() {
	case "Description":
		sentinel = core.ErrEmptyDescription
	case "Installments":
		sentinel = core.ErrInvalidInstallments
	case "Type":
		sentinel = core.ErrInvalidType
	case "Category":
		sentinel = core.ErrInvalidCategory
	default:
		return fmt.Errorf("invalid %s: failed %s", fe.Field(), fe.Tag())
	}
	if fe.Param() != "" {
		return fmt.Errorf("%w: failed %s=%s", sentinel, fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: failed %s", sentinel, fe.Tag())
}
