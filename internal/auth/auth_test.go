package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTVerifierValidToken(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	tokenString := signToken(t, "test-secret", Claims{
		UID:   "abc123",
		Email: "1042@eco.play",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	id, err := v.VerifyToken(tokenString)
	require.NoError(t, err)
	require.Equal(t, "abc123", id.UID)
	require.Equal(t, "1042@eco.play", id.Email)
	require.Equal(t, "1042", id.ParticipantID())
}

func TestJWTVerifierWrongSecret(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	tokenString := signToken(t, "other-secret", Claims{UID: "abc123"})

	_, err := v.VerifyToken(tokenString)
	require.Error(t, err)
}

func TestJWTVerifierExpiredToken(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	tokenString := signToken(t, "test-secret", Claims{
		UID: "abc123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := v.VerifyToken(tokenString)
	require.Error(t, err)
}

func TestJWTVerifierMissingUID(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	tokenString := signToken(t, "test-secret", Claims{Email: "1042@eco.play"})

	_, err := v.VerifyToken(tokenString)
	require.Error(t, err)
}

func TestJWTVerifierSubjectFallback(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	tokenString := signToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-uid"},
	})

	id, err := v.VerifyToken(tokenString)
	require.NoError(t, err)
	require.Equal(t, "sub-uid", id.UID)
}

func TestParticipantIDFallsBackToUID(t *testing.T) {
	id := Identity{UID: "raw-uid", Email: "someone@example.com"}
	require.Equal(t, "raw-uid", id.ParticipantID())
}

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{Identity: DevIdentity}
	id, err := v.VerifyToken("anything")
	require.NoError(t, err)
	require.Equal(t, "12345678", id.UID)
	require.Equal(t, "12345678", id.ParticipantID())
}
