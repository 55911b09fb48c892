package utils

import (
	"hms/src/models"
	"hms/src/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestAccessTokenClaims(t *testing.T) {
	user := &models.User{ID: 7, Username: "frontdesk", Role: types.ROLE_RECEPTIONIST}
	token, err := GenerateAccessToken(user)
	assert.NoError(t, err)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "frontdesk", claims.Username)
	assert.Equal(t, types.ROLE_RECEPTIONIST, claims.Role)
	assert.Equal(t, "7", claims.Subject)
	assert.Empty(t, claims.ID)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	user := &models.User{ID: 7, Username: "frontdesk", Role: types.ROLE_RECEPTIONIST}
	token, err := GenerateRefreshToken(user)
	assert.NoError(t, err)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	other, err := GenerateRefreshToken(user)
	assert.NoError(t, err)
	otherClaims, err := ParseToken(other)
	assert.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	user := &models.User{ID: 7, Username: "frontdesk", Role: types.ROLE_RECEPTIONIST}
	token, err := GenerateAccessToken(user)
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	_, err = ParseToken(tampered)
	assert.Error(t, err)

	_, err = ParseToken("not-a-jwt")
	assert.Error(t, err)
}
