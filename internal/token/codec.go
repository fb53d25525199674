// Package token encodes and decodes the signed session tokens the
// auth service issues. Tokens are RS256 JWTs; expiry is checked by the
// library during parsing and re-checked explicitly afterwards.
package token

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds carried in the "type" claim.
const (
	KindAccess  = "access_token"
	KindRefresh = "refresh_token"
)

// ErrInvalidToken covers every decode failure: bad signature,
// malformed payload, or an expiry not strictly in the future.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the session token payload. Subject carries the user id as
// a string.
type Claims struct {
	Kind     string `json:"type"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// UserID parses the subject back into the surrogate user key.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric subject %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// Codec signs with the private key and verifies with the public key.
type Codec struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
	expire  time.Duration
}

// NewCodec parses the PEM key pair. expire is the default token
// lifetime used when Encode is not given an explicit one.
func NewCodec(privatePEM, publicPEM []byte, expire time.Duration) (*Codec, error) {
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return &Codec{private: priv, public: pub, expire: expire}, nil
}

// NewCodecFromKey builds a codec straight from an RSA key, used by
// tests and local tooling.
func NewCodecFromKey(key *rsa.PrivateKey, expire time.Duration) *Codec {
	return &Codec{private: key, public: &key.PublicKey, expire: expire}
}

// Encode signs the claims. A zero ttl falls back to the codec default;
// refresh tokens pass their longer window explicitly. Issued-at,
// expiry and a fresh jti are set here.
func (c *Codec) Encode(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.expire
	}
	now := time.Now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	claims.ID = uuid.NewString()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(c.private)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and returns the claims. The expiry
// must be strictly in the future at verification time; this holds in
// addition to the library's own expiry validation.
func (c *Codec) Decode(tok string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return c.public, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	return claims, nil
}
