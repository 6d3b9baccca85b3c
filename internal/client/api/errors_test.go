package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDetail(t *testing.T) {
	tests := map[string]string{
		`{"detail":"Username already registered"}`:     "Username already registered",
		`{"detail":[{"msg":"a"},{"msg":""},{"msg":"b"}]}`: "a; b",
		`{"detail":{"weird":true}}`:                     "",
		`{"message":"x"}`:                               "",
		`not json`:                                      "",
		``:                                              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, parseDetail([]byte(in)), "body %q", in)
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "api: 404 Recipe not found", (&Error{Status: 404, Detail: "Recipe not found"}).Error())
	assert.Equal(t, "api: 500 Internal Server Error", (&Error{Status: 500}).Error())
}

func TestDetail_Wrapped(t *testing.T) {
	err := fmt.Errorf("load: %w", &Error{Status: 400, Detail: "bad"})
	assert.Equal(t, "bad", Detail(err))
	assert.Equal(t, "", Detail(errors.New("plain")))
}
