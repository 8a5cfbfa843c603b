package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MOVIEMUSE_TOKEN", "")

	assert.Empty(t, loadToken())

	require.NoError(t, saveToken("abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", loadToken())

	require.NoError(t, clearToken())
	assert.Empty(t, loadToken())

	// Clearing twice is fine
	require.NoError(t, clearToken())
}

func TestTokenEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MOVIEMUSE_TOKEN", "from-env")

	require.NoError(t, saveToken("from-file"))
	assert.Equal(t, "from-env", loadToken())
}
