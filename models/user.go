package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the single document stored in the users collection.
// Every attribute is optional; only the identifier and version key are assigned on insert.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"      json:"_id"`
	Name     NullableString     `bson:"name,omitempty"     json:"name,omitzero"`
	Email    NullableString     `bson:"email,omitempty"    json:"email,omitzero"`
	Password NullableString     `bson:"password,omitempty" json:"password,omitzero"`
	Version  int32              `bson:"__v"                json:"__v"`
}

// Field names accepted from request bodies, in the order they are reported
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

var UserFieldNames = []string{FieldName, FieldEmail, FieldPassword}

// UserFields carries the subset of user attributes present in a request body.
// None means the field was absent, Some(nil) means it was explicitly null.
type UserFields struct {
	Name     mo.Option[*string]
	Email    mo.Option[*string]
	Password mo.Option[*string]
}

// FieldError describes a single attribute that could not be cast to a string
type FieldError struct {
	Path  string
	Value any
}

func (e FieldError) Error() string {
	raw, err := json.Marshal(e.Value)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", e.Value))
	}
	return fmt.Sprintf(`Cast to string failed for value "%s" (type %s) at path "%s"`, raw, jsonTypeName(e.Value), e.Path)
}

// ValidationError is returned when a request body holds values that cannot be stored
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fieldErr := range e.Errors {
		parts = append(parts, fieldErr.Path+": "+fieldErr.Error())
	}
	return "User validation failed: " + strings.Join(parts, ", ")
}

// UserFieldsFromBody casts a decoded JSON object into UserFields.
// Strings are kept, numbers and booleans are converted to their string form,
// null clears the field, and objects or arrays are rejected. Unknown keys are ignored.
func UserFieldsFromBody(body map[string]any) (*UserFields, error) {
	fields := &UserFields{}
	var fieldErrors []FieldError

	for _, name := range UserFieldNames {
		raw, present := body[name]
		if !present {
			continue
		}

		value, ok := castString(raw)
		if !ok {
			fieldErrors = append(fieldErrors, FieldError{Path: name, Value: raw})
			continue
		}

		switch name {
		case FieldName:
			fields.Name = mo.Some(value)
		case FieldEmail:
			fields.Email = mo.Some(value)
		case FieldPassword:
			fields.Password = mo.Some(value)
		}
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}
	return fields, nil
}

// IsEmpty returns true if no attribute was supplied
func (f *UserFields) IsEmpty() bool {
	return f.Name.IsAbsent() && f.Email.IsAbsent() && f.Password.IsAbsent()
}

// NewUser builds a document from the supplied attributes, leaving the identifier unset.
// An explicit null is stored as null.
func (f *UserFields) NewUser() *User {
	user := &User{}
	f.Apply(user)
	return user
}

// FieldChange is one attribute to write on update; a nil Value stores null
type FieldChange struct {
	Field string
	Value *string
}

// Changes lists the supplied attributes in field order
func (f *UserFields) Changes() []FieldChange {
	var changes []FieldChange
	for _, entry := range []struct {
		name  string
		value mo.Option[*string]
	}{
		{FieldName, f.Name},
		{FieldEmail, f.Email},
		{FieldPassword, f.Password},
	} {
		if value, present := entry.value.Get(); present {
			changes = append(changes, FieldChange{Field: entry.name, Value: value})
		}
	}
	return changes
}

// Apply merges the supplied attributes onto an existing document
func (f *UserFields) Apply(user *User) {
	if value, ok := f.Name.Get(); ok {
		user.Name = NewNullableString(value)
	}
	if value, ok := f.Email.Get(); ok {
		user.Email = NewNullableString(value)
	}
	if value, ok := f.Password.Get(); ok {
		user.Password = NewNullableString(value)
	}
}

func castString(raw any) (*string, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case string:
		return &v, true
	case bool:
		s := strconv.FormatBool(v)
		return &s, true
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s, true
	case json.Number:
		s := v.String()
		return &s, true
	default:
		return nil, false
	}
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case []any:
		return "Array"
	case map[string]any:
		return "Object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
