package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/focusboard/internal/domain/entities"
)

// Validator runs struct tag validation and reports failures as field issues
// keyed by JSON names.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that names fields after their json tags
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Engine exposes the underlying validator for payload checks
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and returns a *entities.ValidationError on failure
func (v *Validator) Struct(s interface{}) error {
	verr := &entities.ValidationError{}
	if err := v.collect(verr, "", s); err != nil {
		return err
	}
	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}

// collect appends the issues found in s to verr, prefixing field paths.
func (v *Validator) collect(verr *entities.ValidationError, prefix string, s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	for _, fe := range fieldErrs {
		verr.Add(prefix+fieldPath(fe), issueMessage(fe))
	}
	return nil
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}
	return ns
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("Must contain at most %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	default:
		return "Invalid value"
	}
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map
}
