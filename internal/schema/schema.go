// Package schema declares the document shape of each record kind and
// validates candidate write payloads before they reach the store.
// Schemas are closed: unknown fields are rejected.
package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// Collection names, matching the store tables and change-event kinds.
const (
	KindCategories = "categories"
	KindProducts   = "products"
	KindBranches   = "branches"
)

// FieldType enumerates the primitive types a field may hold.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeInt    FieldType = "integer"
	TypeBool   FieldType = "boolean"
	TypeID     FieldType = "id"
	TypeSizes  FieldType = "sizes"
)

// Field describes one schema field.
type Field struct {
	Type     FieldType
	Optional bool
	NonEmpty bool // strings only: reject ""
}

// Schema is the closed field set of one record kind.
type Schema map[string]Field

// ValidationError reports a malformed write payload. The write never
// reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: field %q %s", e.Field, e.Reason)
}

// Category is the schema for menu categories.
var Category = Schema{
	"name":      {Type: TypeString, NonEmpty: true},
	"sortOrder": {Type: TypeInt, Optional: true},
	"active":    {Type: TypeBool},
}

// Product is the schema for menu items.
var Product = Schema{
	"categoryId":  {Type: TypeID},
	"name":        {Type: TypeString, NonEmpty: true},
	"description": {Type: TypeString},
	"price":       {Type: TypeNumber},
	"image":       {Type: TypeString},
	"active":      {Type: TypeBool},
	"sortOrder":   {Type: TypeInt, Optional: true},
	"sizes":       {Type: TypeSizes},
}

// Branch is the schema for business locations.
var Branch = Schema{
	"name":      {Type: TypeString, NonEmpty: true},
	"address":   {Type: TypeString, NonEmpty: true},
	"phone":     {Type: TypeString, NonEmpty: true},
	"sortOrder": {Type: TypeInt, Optional: true},
	"active":    {Type: TypeBool},
}

// Validate checks a full write payload (insert or full update) against
// the schema: every required field present with the declared type, every
// optional field type-correct if present, nothing else.
func Validate(s Schema, payload map[string]any) error {
	for name, field := range s {
		value, ok := payload[name]
		if !ok {
			if field.Optional {
				continue
			}
			return &ValidationError{Field: name, Reason: "is required"}
		}
		if err := checkField(name, field, value); err != nil {
			return err
		}
	}
	return rejectUnknown(s, payload)
}

// ValidatePatch checks a partial payload: only the fields present are
// type-checked, required-ness is not enforced. Unknown fields are still
// rejected. Callers strip "id" before calling.
func ValidatePatch(s Schema, payload map[string]any) error {
	for name, value := range payload {
		field, ok := s[name]
		if !ok {
			return &ValidationError{Field: name, Reason: "is not part of the schema"}
		}
		if err := checkField(name, field, value); err != nil {
			return err
		}
	}
	return nil
}

func rejectUnknown(s Schema, payload map[string]any) error {
	for name := range payload {
		if _, ok := s[name]; !ok {
			return &ValidationError{Field: name, Reason: "is not part of the schema"}
		}
	}
	return nil
}

// checkField validates a single JSON-decoded value against its field spec.
func checkField(name string, field Field, value any) error {
	switch field.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return typeError(name, "a string", value)
		}
		if field.NonEmpty && s == "" {
			return &ValidationError{Field: name, Reason: "must not be empty"}
		}
	case TypeBool:
		if _, ok := value.(bool); !ok {
			return typeError(name, "a boolean", value)
		}
	case TypeNumber:
		if !isNumber(value) {
			return typeError(name, "a number", value)
		}
	case TypeInt:
		f, ok := asFloat(value)
		if !ok || f != float64(int64(f)) {
			return typeError(name, "an integer", value)
		}
	case TypeID:
		s, ok := value.(string)
		if !ok {
			return typeError(name, "an id", value)
		}
		if _, err := uuid.Parse(s); err != nil {
			return &ValidationError{Field: name, Reason: "is not a valid id"}
		}
	case TypeSizes:
		return checkSizes(name, value)
	}
	return nil
}

// checkSizes validates an ordered array of {size, price} entries.
// An empty array is valid and means "use base price".
func checkSizes(name string, value any) error {
	list, ok := value.([]any)
	if !ok {
		return typeError(name, "an array", value)
	}
	for i, raw := range list {
		entry, ok := raw.(map[string]any)
		if !ok {
			return &ValidationError{
				Field:  fmt.Sprintf("%s[%d]", name, i),
				Reason: "must be an object with size and price",
			}
		}
		size, ok := entry["size"].(string)
		if !ok || size == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("%s[%d].size", name, i),
				Reason: "must be a non-empty string",
			}
		}
		if !isNumber(entry["price"]) {
			return &ValidationError{
				Field:  fmt.Sprintf("%s[%d].price", name, i),
				Reason: "must be a number",
			}
		}
		if len(entry) != 2 {
			return &ValidationError{
				Field:  fmt.Sprintf("%s[%d]", name, i),
				Reason: "must contain only size and price",
			}
		}
	}
	return nil
}

// isNumber accepts the numeric types json.Decode produces, plus native
// ints for payloads built in Go.
func isNumber(value any) bool {
	_, ok := asFloat(value)
	return ok
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func typeError(name, expected string, value any) error {
	return &ValidationError{
		Field:  name,
		Reason: fmt.Sprintf("must be %s, got %T", expected, value),
	}
}
