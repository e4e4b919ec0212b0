package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// NullableString is a document attribute that is either absent, explicitly null, or a string.
// The zero value is absent and is left out of both BSON (omitempty) and JSON (omitzero).
type NullableString struct {
	set   bool
	value *string
}

// NewNullableString returns a present attribute; a nil value is an explicit null
func NewNullableString(value *string) NullableString {
	return NullableString{set: true, value: value}
}

// StringValue returns a present, non-null attribute
func StringValue(value string) NullableString {
	return NewNullableString(&value)
}

// IsZero returns true if the attribute is absent
func (s NullableString) IsZero() bool {
	return !s.set
}

// IsNull returns true if the attribute is present and explicitly null
func (s NullableString) IsNull() bool {
	return s.set && s.value == nil
}

// Get returns the value and whether the attribute is present. A present null yields (nil, true).
func (s NullableString) Get() (*string, bool) {
	return s.value, s.set
}

func (s NullableString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s *NullableString) UnmarshalJSON(data []byte) error {
	var value *string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*s = NewNullableString(value)
	return nil
}

func (s NullableString) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s.value == nil {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(*s.value)
}

func (s *NullableString) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeNull {
		*s = NewNullableString(nil)
		return nil
	}
	value, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("cannot decode BSON %s into a string attribute", t)
	}
	*s = StringValue(value)
	return nil
}
