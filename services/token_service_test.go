package services

import (
	"testing"
	"time"

	"musicweb-api/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenUser = &models.User{ID: "6f1c3c0e-8a1d-4a53-9d0f-8d3c2f6a9b10", Username: "alice", Role: models.RoleEditor}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("a-secret-of-sufficient-length"), "musicweb")

	token, err := svc.Issue(tokenUser, []string{models.PermMusicCreate}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, tokenUser.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleEditor, claims.Role)
	assert.Equal(t, []string{models.PermMusicCreate}, claims.Permissions)
	assert.Equal(t, "musicweb", claims.Issuer)

	identity := claims.Identity()
	assert.Equal(t, tokenUser.ID, identity.ID)
	assert.Equal(t, models.RoleEditor, identity.Role)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService([]byte("a-secret-of-sufficient-length"), "musicweb")

	token, err := svc.Issue(tokenUser, nil, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Rejections(t *testing.T) {
	svc := NewTokenService([]byte("a-secret-of-sufficient-length"), "musicweb")
	other := NewTokenService([]byte("another-secret-entirely-here"), "musicweb")
	otherIssuer := NewTokenService([]byte("a-secret-of-sufficient-length"), "someone-else")

	good, err := svc.Issue(tokenUser, nil, time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue(tokenUser, nil, time.Hour)
	require.NoError(t, err)
	wrongIssuer, err := otherIssuer.Issue(tokenUser, nil, time.Hour)
	require.NoError(t, err)

	claims := &Claims{
		UserID: tokenUser.ID,
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "musicweb",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("a-secret-of-sufficient-length"))
	require.NoError(t, err)

	tampered := good[:len(good)-2] + "xx"

	for name, token := range map[string]string{
		"garbage":       "not.a.token",
		"empty":         "",
		"bad signature": foreign,
		"wrong issuer":  wrongIssuer,
		"alg none":      unsigned,
		"alg hs512":     hs512,
		"tampered":      tampered,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
