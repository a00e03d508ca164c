package auth

import (
	"strings"
	"testing"
	"time"

	"food-marketplace-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: 7, Name: "Ada", Email: "ada@example.com", Role: models.RoleCustomer}
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, "food-marketplace")

	tok, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "food-marketplace", claims.Issuer)
}

func TestTokenIssuer_UniqueTokenIDs(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, "")

	a, err := issuer.Issue(testUser())
	require.NoError(t, err)
	b, err := issuer.Issue(testUser())
	require.NoError(t, err)

	ca, err := issuer.Parse(a)
	require.NoError(t, err)
	cb, err := issuer.Parse(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute, "")
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := issuer.Issue(testUser())
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("secret-a", time.Hour, "").Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour, "").Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenIssuer_WrongIssuer(t *testing.T) {
	tok, err := NewTokenIssuer("secret", time.Hour, "someone-else").Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour, "food-marketplace").Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: 7,
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour, "").Parse(tok)
	assert.Error(t, err)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour, "").Parse(strings.Repeat("x", 40))
	assert.Error(t, err)
}
