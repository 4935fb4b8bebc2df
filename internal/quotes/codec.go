package quotes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// Encode serializes the store as a compact JSON array. A nil store encodes
// as an empty array, never as null.
func Encode(qs []entities.Quote) ([]byte, error) {
	if qs == nil {
		qs = []entities.Quote{}
	}
	return json.Marshal(qs)
}

// EncodePretty serializes the store as an indented JSON array for export.
func EncodePretty(qs []entities.Quote) ([]byte, error) {
	if qs == nil {
		qs = []entities.Quote{}
	}
	return json.MarshalIndent(qs, "", "  ")
}

// Decode parses a JSON array of quotes. Only the array shape is checked:
// records with missing fields are accepted as-is and ids are not checked for
// uniqueness.
func Decode(data []byte) ([]entities.Quote, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &DecodeError{Err: ErrNotArray}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	out := make([]entities.Quote, 0, len(raw))
	for i, r := range raw {
		var q entities.Quote
		if err := json.Unmarshal(r, &q); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("record %d: %w", i, err)}
		}
		out = append(out, q)
	}
	return out, nil
}

// strictRecord carries the constraints enforced by DecodeStrict.
type strictRecord struct {
	Text     string `validate:"notblank"`
	Category string `validate:"notblank"`
}

var strictValidator = newStrictValidator()

func newStrictValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// DecodeStrict is Decode plus per-record validation: text and category must
// be non-blank and non-zero ids must be unique within the file. Any violation
// rejects the whole document.
func DecodeStrict(data []byte) ([]entities.Quote, error) {
	qs, err := Decode(data)
	if err != nil {
		return nil, err
	}

	var violations []string
	seen := make(map[int64]int, len(qs))
	for i, q := range qs {
		err := strictValidator.Struct(strictRecord{Text: q.Text, Category: q.Category})
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				violations = append(violations, fmt.Sprintf("record %d: %s must not be empty", i, strings.ToLower(fe.Field())))
			}
		}

		if !q.HasID() {
			continue
		}
		if first, dup := seen[q.ID]; dup {
			violations = append(violations, fmt.Sprintf("record %d: duplicate id %d (first seen in record %d)", i, q.ID, first))
			continue
		}
		seen[q.ID] = i
	}

	if len(violations) > 0 {
		return nil, &DecodeError{Err: errors.New("validation failed"), Violations: violations}
	}
	return qs, nil
}
