package token

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewCodecFromKey(testKey(t), 15*time.Minute)

	tok, err := codec.Encode(Claims{
		Kind:     KindAccess,
		Nickname: "alice",
		Email:    "a@b.c",
		IsAdmin:  true,
	}, 0)
	require.NoError(t, err)

	claims, err := codec.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, KindAccess, claims.Kind)
	assert.Equal(t, "alice", claims.Nickname)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestUserIDFromSubject(t *testing.T) {
	codec := NewCodecFromKey(testKey(t), time.Minute)

	tok, err := codec.Encode(Claims{
		Kind:             KindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42"},
	}, 0)
	require.NoError(t, err)

	claims, err := codec.Decode(tok)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestDecodeExpiredToken(t *testing.T) {
	key := testKey(t)
	expired := NewCodecFromKey(key, -time.Minute)

	tok, err := expired.Encode(Claims{Kind: KindAccess}, 0)
	require.NoError(t, err)

	_, err = NewCodecFromKey(key, time.Minute).Decode(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeWrongKey(t *testing.T) {
	issuer := NewCodecFromKey(testKey(t), time.Minute)
	verifier := NewCodecFromKey(testKey(t), time.Minute)

	tok, err := issuer.Encode(Claims{Kind: KindAccess}, 0)
	require.NoError(t, err)

	_, err = verifier.Decode(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeGarbage(t *testing.T) {
	codec := NewCodecFromKey(testKey(t), time.Minute)
	_, err := codec.Decode("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExplicitTTLOverridesDefault(t *testing.T) {
	codec := NewCodecFromKey(testKey(t), time.Minute)

	tok, err := codec.Encode(Claims{Kind: KindRefresh}, 24*time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(tok)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}
