package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("pw123456")
	require.NoError(t, err)
	require.NotEqual(t, "pw123456", h)

	require.True(t, CheckPassword(h, "pw123456"))
	require.False(t, CheckPassword(h, "wrong"))
	require.False(t, CheckPassword("not-a-hash", "pw123456"))
}
