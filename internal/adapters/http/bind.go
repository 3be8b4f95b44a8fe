package http

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskmaster/focusboard/internal/domain/entities"
)

// bindError reports a body that decoded as JSON but not into the request
// type as a field issue. dateField names the timestamp in the payload and
// idsField, when set, the list of UUIDs. Malformed JSON stays a plain 400.
func bindError(err error, dateField, idsField string) error {
	cause := err
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Internal != nil {
		cause = httpErr.Internal
	}

	var (
		typeErr  *json.UnmarshalTypeError
		parseErr *time.ParseError
	)
	switch {
	case errors.As(cause, &typeErr) && typeErr.Field != "":
		return entities.NewValidationError(typeErr.Field, "Expected "+jsonKind(typeErr.Type))
	case errors.As(cause, &parseErr), strings.HasPrefix(cause.Error(), "Time.UnmarshalJSON"):
		return entities.NewValidationError(dateField, "Invalid date, expected RFC 3339 format")
	case idsField != "" && isUUIDError(cause):
		return entities.NewValidationError(idsField, "Invalid UUID")
	}
	return badRequest()
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		if t == reflect.TypeOf(uuid.UUID{}) {
			return "a UUID string"
		}
		return "a list"
	case reflect.Struct:
		if t == reflect.TypeOf(time.Time{}) {
			return "an RFC 3339 date string"
		}
		return "an object"
	default:
		return "a string"
	}
}

// isUUIDError matches the errors uuid.UUID.UnmarshalText returns.
func isUUIDError(err error) bool {
	if uuid.IsInvalidLengthError(err) {
		return true
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "invalid UUID") || strings.HasPrefix(msg, "invalid urn prefix")
}
