package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookbookInput_DescriptionPresence(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{name: "absent", body: `{"title":"t"}`},
		{name: "null", body: `{"title":"t","description":null}`, wantSet: true},
		{name: "value", body: `{"title":"t","description":"ñandú"}`, wantSet: true, wantValue: func() *string { s := "ñandú"; return &s }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in CookbookInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			assert.Equal(t, tt.wantSet, in.Description.Set)
			assert.Equal(t, tt.wantValue, in.Description.Value)
		})
	}
}

func TestOptionalString_RejectsNonString(t *testing.T) {
	var in CookbookInput
	assert.Error(t, json.Unmarshal([]byte(`{"title":"t","description":5}`), &in))
}
