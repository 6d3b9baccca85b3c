package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "http://localhost:8000"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=alt.json", "-a", "x"},
			allowed: []string{"--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "dangling flag kept without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-c", "-d", "data"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "order and repetition preserved",
			args:    []string{"-c", "one.json", "-a", "x", "-c", "two.json"},
			allowed: []string{"-c", "-a"},
			want:    []string{"-c", "one.json", "-a", "x", "-c", "two.json"},
		},
		{
			name:    "nil args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/recetario.json"}, "/etc/recetario.json"},
		{"long", []string{"-config", "/tmp/r.json", "-a", ":9000"}, "/tmp/r.json"},
		{"equals", []string{"--config=/x.json"}, "/x.json"},
		{"last wins", []string{"-c", "/1.json", "-config", "/2.json"}, "/2.json"},
		{"absent", []string{"-a", ":9000", "-d", "dsn"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigPath(tt.args))
		})
	}
}
