package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &models.User{ID: 42, Email: "ana@edu.es", UserType: models.UserTypeTeacher}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	now := time.Now()

	tok, err := GenerateToken(testUser, secret, time.Hour, now)
	require.NoError(t, err)

	claims, err := ParseToken(tok, secret, now)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "ana@edu.es", claims.Email)
	assert.Equal(t, models.UserTypeTeacher, claims.UserType)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	t.Parallel()

	now := time.Now()
	a, err := GenerateToken(testUser, []byte("k"), time.Hour, now)
	require.NoError(t, err)
	b, err := GenerateToken(testUser, []byte("k"), time.Hour, now)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	now := time.Now()

	tok, err := GenerateToken(testUser, secret, time.Minute, now)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret, now.Add(2*time.Minute))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := GenerateToken(testUser, []byte("right-secret"), time.Hour, now)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"), now)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"), time.Now())
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestClaims_UserIDRejectsNonNumericSubject(t *testing.T) {
	t.Parallel()

	c := &Claims{}
	c.Subject = "abc"
	_, err := c.UserID()
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
