package jwt

import (
	"testing"
	"time"

	"github.com/alesweet/order-service/internal/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-key"

func testUser() *user.User {
	return &user.User{
		ID:    7,
		Login: "maria",
		Role:  user.RoleSales,
	}
}

func TestBuildAndParse(t *testing.T) {
	tokenString, err := BuildString(testUser(), testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	got, err := ParseClaims(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 7, got.UserID)
	assert.Equal(t, "maria", got.Login)
	assert.Equal(t, user.RoleSales, got.Role)
}

func TestParseClaims_BearerPrefix(t *testing.T) {
	tokenString, err := BuildString(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	got, err := ParseClaims("Bearer "+tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 7, got.UserID)
}

func TestParseClaims_WrongSecret(t *testing.T) {
	tokenString, err := BuildString(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseClaims(tokenString, "another-key")
	assert.Error(t, err)
}

func TestParseClaims_Expired(t *testing.T) {
	tokenString, err := BuildString(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseClaims(tokenString, testSecret)
	assert.Error(t, err)
}

func TestParseClaims_Garbage(t *testing.T) {
	_, err := ParseClaims("not.a.token", testSecret)
	assert.Error(t, err)
}
