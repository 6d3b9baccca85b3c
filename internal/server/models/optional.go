package models

import (
	"bytes"
	"encoding/json"
)

// OptionalString tells an absent JSON field (Set false) apart from an
// explicit null (Set true, Value nil).
type OptionalString struct {
	Set   bool
	Value *string
}

// NewOptionalString returns a set value; nil means an explicit null.
func NewOptionalString(v *string) OptionalString {
	return OptionalString{Set: true, Value: v}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}
