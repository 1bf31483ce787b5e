package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("test-secret", 42, "owner", 1)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "owner", claims["role"])
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("test-secret", 42, "user", 1)
	require.NoError(t, err)

	_, err = ParseAuth(tok, "other-secret")
	require.Error(t, err)
}

func TestParse_MissingToken(t *testing.T) {
	_, err := ParseAuth("", "test-secret")
	require.Error(t, err)
	_, err = ParseAuth("Bearer ", "test-secret")
	require.Error(t, err)
}
