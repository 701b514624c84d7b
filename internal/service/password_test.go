package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndComparePasswordBasic(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	require.NoError(t, ComparePassword(hash, "secret"))
	require.Error(t, ComparePassword(hash, "wrong"))
}
