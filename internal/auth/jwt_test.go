package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestInit_EmptySecret(t *testing.T) {
	err := Init("")
	require.Error(t, err)
}

func TestGenerateAndVerify_Success(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	token, err := GenerateJWT(42, "user@example.com")
	require.NoError(t, err)

	parsed, err := VerifyJWT(token)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(42), claims["user_id"])
	require.Equal(t, "user@example.com", claims["email"])
}

func TestVerifyJWT_Expired(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	claims := jwt.MapClaims{
		"user_id": uint(1),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	require.Error(t, err)
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	require.NoError(t, Init("right-secret"))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uint(1),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	require.Error(t, err)
}

func TestVerifyJWT_Malformed(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	_, err := VerifyJWT("not.a.jwt")
	require.Error(t, err)
}

func TestVerifyJWT_WrongSigningMethod(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": uint(1),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyJWT(signed)
	require.Error(t, err)
}
