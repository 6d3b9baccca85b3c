package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, tty bool, pw []byte, err error) {
	t.Helper()
	origRead, origIs, origFd := readPassword, isTerminal, stdinFd
	readPassword = func(int) ([]byte, error) { return pw, err }
	isTerminal = func(int) bool { return tty }
	stdinFd = func() int { return 0 }
	t.Cleanup(func() {
		readPassword, isTerminal, stdinFd = origRead, origIs, origFd
	})
}

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"line", "  alice \nrest", "alice", false},
		{"eof with text", "bob", "bob", false},
		{"empty input", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.in)), "Username", &out)
			if tt.wantErr {
				require.ErrorIs(t, err, io.EOF)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Username: ", out.String())
		})
	}
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("secret"), nil)
	var out bytes.Buffer

	pw, err := GetPassword(bufio.NewReader(strings.NewReader("ignored\n")), &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("tty gone"))

	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), io.Discard)
	require.Error(t, err)
}

func TestGetPassword_PipedFallsBackToLine(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	pw, err := GetPassword(bufio.NewReader(strings.NewReader("pw123\nnext\n")), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []byte("pw123"), pw)
}

func TestGetMultiline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("first\nsecond\r\n\nafter\n"))
	var out bytes.Buffer

	got, err := GetMultiline(r, "Instructions", &out)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", got)
	assert.Contains(t, out.String(), "Instructions")

	rest, _ := r.ReadString('\n')
	assert.Equal(t, "after\n", rest)
}

func TestGetMultiline_EOF(t *testing.T) {
	got, err := GetMultiline(bufio.NewReader(strings.NewReader("only")), "Notes", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		got, err := Confirm(bufio.NewReader(strings.NewReader(in)), "Delete?", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}
