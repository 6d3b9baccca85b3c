package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(42, "alice", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Errors(t *testing.T) {
	t.Parallel()

	expired, err := GenerateToken(1, "u1", []byte("secret"), -time.Second)
	require.NoError(t, err)

	signed, err := GenerateToken(2, "u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: 3}).SignedString([]byte("k"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"expired", expired, "secret", common.ErrTokenExpired},
		{"wrong secret", signed, "wrong-secret", common.ErrInvalidToken},
		{"malformed", "not.a.jwt", "k", common.ErrInvalidToken},
		{"missing user id", noUser, "k", common.ErrInvalidToken},
		{"unexpected algorithm", hs512, "k", common.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, []byte(tt.secret))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
