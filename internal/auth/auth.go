// Package auth verifies participant identity tokens.
package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecoplay/game-service/internal/errors"
)

// EmailDomainSuffix is the synthetic domain appended to participant record
// numbers when accounts are provisioned.
const EmailDomainSuffix = "@eco.play"

// Identity is a verified participant identity.
type Identity struct {
	UID   string
	Email string
}

// ParticipantID derives the participant record number from an identity. The
// provisioning flow issues emails of the form "<record number>@eco.play";
// identities without such an email fall back to the UID.
func (id Identity) ParticipantID() string {
	if strings.HasSuffix(id.Email, EmailDomainSuffix) {
		return strings.TrimSuffix(id.Email, EmailDomainSuffix)
	}
	return id.UID
}

// Verifier validates a bearer token and returns the identity it asserts.
type Verifier interface {
	VerifyToken(token string) (Identity, error)
}

// Claims are the JWT claims issued by the token service.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256 tokens issued by the token service with a
// shared secret.
type JWTVerifier struct {
	secret []byte
}

var _ Verifier = (*JWTVerifier)(nil)

// NewJWTVerifier creates a verifier for the given shared secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// VerifyToken parses and validates a token and extracts the identity.
func (v *JWTVerifier) VerifyToken(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.InvalidToken(nil).WithDetails("method", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, errors.InvalidToken(err)
	}
	if !token.Valid {
		return Identity{}, errors.InvalidToken(nil)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Identity{}, errors.InvalidToken(nil).WithDetails("reason", "invalid claims type")
	}

	uid := claims.UID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return Identity{}, errors.InvalidToken(nil).WithDetails("reason", "missing uid")
	}

	return Identity{UID: uid, Email: claims.Email}, nil
}

// DevIdentity is the fixed identity used when token verification is disabled
// in development mode.
var DevIdentity = Identity{UID: "12345678", Email: "12345678" + EmailDomainSuffix}

// StaticVerifier accepts any token and returns a fixed identity. Development
// mode only.
type StaticVerifier struct {
	Identity Identity
}

var _ Verifier = StaticVerifier{}

// VerifyToken returns the configured identity regardless of the token.
func (v StaticVerifier) VerifyToken(string) (Identity, error) {
	return v.Identity, nil
}
