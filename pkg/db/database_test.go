package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSSLModeURL(t *testing.T) {
	dsn := EnsureSSLMode("postgres://u:p@host:5432/app", "verify-full")
	require.Contains(t, dsn, "sslmode=verify-full")
}

func TestEnsureSSLModeRespectsExplicit(t *testing.T) {
	in := "postgres://u:p@host:5432/app?sslmode=disable"
	require.Equal(t, in, EnsureSSLMode(in, "verify-full"))

	in = "host=localhost user=u sslmode=disable"
	require.Equal(t, in, EnsureSSLMode(in, "verify-full"))
}

func TestEnsureSSLModeKeyValue(t *testing.T) {
	dsn := EnsureSSLMode("host=localhost user=u dbname=app", "verify-full")
	require.Equal(t, "host=localhost user=u dbname=app sslmode=verify-full", dsn)
}

func TestEnsureSSLModeEmpty(t *testing.T) {
	require.Equal(t, "", EnsureSSLMode("", "verify-full"))
	require.Equal(t, "dsn", EnsureSSLMode("dsn", ""))
}
