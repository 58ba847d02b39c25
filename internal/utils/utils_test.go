package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("s3cret", 42, "CARETAKER", "k@example.com", 15*time.Minute, time.Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.Exp, 5*time.Second)

	c, err := ParseAccessToken("s3cret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: 42, Role: "CARETAKER", Email: "k@example.com"}, c)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	expired, err := NewAccessToken("s3cret", 1, "VOLUNTEER", "", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	good, err := NewAccessToken("s3cret", 1, "VOLUNTEER", "", time.Minute, time.Now())
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "role": "ADMINISTRATOR", "exp": time.Now().Add(time.Hour).Unix()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"expired":     expired.Token,
		"wrong key":   good.Token,
		"alg none":    none,
		"not a token": "abc.def",
	} {
		t.Run(name, func(t *testing.T) {
			secret := "s3cret"
			if name == "wrong key" {
				secret = "other"
			}
			_, err := ParseAccessToken(secret, raw)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "battery staple"))
}

func TestPasswordHashing_CostAndEmptyHash(t *testing.T) {
	hash, err := HashPassword("correct horse", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	assert.False(t, VerifyPassword("", ""))
}
