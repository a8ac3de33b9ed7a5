package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestNewAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	token, issued, err := NewAccessToken(secret, 42, "business", false, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "business", claims.Role)
	assert.False(t, claims.Admin)
	assert.Equal(t, issued.ID, claims.ID)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
}

func TestAccessClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	token, _, err := NewAccessToken(secret, 1, "customer", false, time.Minute)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other-secret"))
	require.Error(t, err)

	expired, _, err := NewAccessToken(secret, 1, "customer", false, -time.Minute)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(expired, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	none := jwt.NewWithClaims(jwt.SigningMethodHS512, &AccessClaims{Role: "customer"})
	signed, err := none.SignedString(secret)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(signed, secret)
	require.Error(t, err)

	_, err = AccessClaimsFromToken("garbage", secret)
	require.Error(t, err)
}

func TestUserIDRejectsBadSubject(t *testing.T) {
	c := &AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	require.ErrorIs(t, err, ErrInvalidToken)
}
