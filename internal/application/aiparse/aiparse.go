// Package aiparse pulls a JSON payload out of free-form model output and
// validates its shape before anything downstream trusts it.
//
// Extraction runs in order: strict decode of the whole text, decode after
// stripping markdown code fences, then a bracket scan that yields the
// balanced [...] or {...} span at each opener. Callers that need a specific
// shape keep trying spans until one decodes and validates.
package aiparse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrParse matches every *ParseError via errors.Is.
var ErrParse = errors.New("failed to parse AI response")

// ParseError carries the raw model text for operator diagnosis.
type ParseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrParse, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrParse, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// maxCandidates bounds the bracket scan on long replies.
const maxCandidates = 32

// Extract returns the first well-formed JSON payload found in raw.
func Extract(raw string) (json.RawMessage, error) {
	candidates, err := Candidates(raw)
	if err != nil {
		return nil, err
	}
	return candidates[0], nil
}

// Candidates returns every well-formed JSON payload in raw, in the order
// they are tried: the whole text, the unfenced text, then the balanced span
// at each '{' or '[' from left to right.
func Candidates(raw string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Raw: raw, Reason: "empty response"}
	}

	if json.Valid([]byte(trimmed)) {
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	}

	unfenced := stripFences(trimmed)
	if json.Valid([]byte(unfenced)) {
		return []json.RawMessage{json.RawMessage(unfenced)}, nil
	}

	if !strings.ContainsAny(unfenced, "{[") {
		return nil, &ParseError{Raw: raw, Reason: "no JSON object or array found"}
	}

	var out []json.RawMessage
	for i := 0; i < len(unfenced) && len(out) < maxCandidates; i++ {
		if unfenced[i] != '{' && unfenced[i] != '[' {
			continue
		}
		span, ok := findSpan(unfenced, i)
		if ok && json.Valid([]byte(span)) {
			out = append(out, json.RawMessage(span))
		}
	}
	if len(out) == 0 {
		return nil, &ParseError{Raw: raw, Reason: "bracketed span is not valid JSON"}
	}
	return out, nil
}

// First runs fn over each candidate payload in raw and returns the first
// result it accepts. When every candidate is rejected the error for the
// earliest one is returned.
func First[T any](raw string, fn func(payload json.RawMessage) (T, error)) (T, error) {
	var zero T

	candidates, err := Candidates(raw)
	if err != nil {
		return zero, err
	}

	var firstErr error
	for _, payload := range candidates {
		out, err := fn(payload)
		if err == nil {
			return out, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return zero, firstErr
}

// Decode extracts a payload from raw, unmarshals it into T and validates the
// result with struct tags. Later candidates are tried when earlier ones do
// not fit T.
func Decode[T any](raw string, validate *validator.Validate) (T, error) {
	return First(raw, func(payload json.RawMessage) (T, error) {
		var out T
		if err := json.Unmarshal(payload, &out); err != nil {
			return out, &ParseError{Raw: raw, Reason: "unexpected payload shape", Err: err}
		}
		if err := Validate(validate, out); err != nil {
			return out, &ParseError{Raw: raw, Reason: "payload failed validation", Err: err}
		}
		return out, nil
	})
}

// Validate checks struct values with their tags; other kinds pass through.
func Validate(validate *validator.Validate, v any) error {
	if validate == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errors.New("nil payload")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return validate.Struct(rv.Interface())
}

// IsArray reports whether an extracted payload is a JSON array.
func IsArray(payload json.RawMessage) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// stripFences removes a leading ```lang line and a trailing ``` marker.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```")
	if idx := strings.Index(body, "\n"); idx != -1 {
		body = body[idx+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	if end := strings.LastIndex(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// findSpan returns the bracketed span opened at s[start]. Brackets inside
// string literals are ignored. When the brackets never balance it falls back
// to the last matching closer.
func findSpan(s string, start int) (string, bool) {
	open := s[start]
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}
