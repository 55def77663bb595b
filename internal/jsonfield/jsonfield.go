// Package jsonfield decodes client-supplied multipart form fields that carry
// JSON-encoded lists and objects. Decoding happens at the delivery/usecase
// boundary, before any remote call, so a malformed field aborts the whole
// operation without side effects.
package jsonfield

import (
	"encoding/json"
	"strings"

	domainerrors "estate/internal/domain/errors"
)

// Decode parses a JSON-encoded form value into T. An empty value means the
// client requested no change and yields nil. Malformed JSON is reported as a
// validation error naming the offending field.
func Decode[T any](raw, field string) (*T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	out := new(T)
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return nil, domainerrors.ErrInvalidJSONField.
			WithMessage("Invalid JSON format in field '" + field + "'").
			WrapMessage(err.Error())
	}

	return out, nil
}

// DecodeList parses a JSON-encoded form value into a list of T. A bare
// scalar value is normalized into a single-element list.
func DecodeList[T any](raw, field string) (*[]T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		single, err := Decode[T](raw, field)
		if err != nil {
			return nil, err
		}

		return &[]T{*single}, nil
	}

	return Decode[[]T](raw, field)
}
