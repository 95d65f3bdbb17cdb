package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SYNC_TEST_VALUE", "hello")
	assert.Equal(t, "hello", GetEnv("SYNC_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SYNC_TEST_UNSET", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SYNC_TEST_INT", "42")
	t.Setenv("SYNC_TEST_BAD_INT", "forty-two")
	assert.Equal(t, 42, GetEnvInt("SYNC_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("SYNC_TEST_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvInt("SYNC_TEST_UNSET", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SYNC_TEST_BOOL", "true")
	t.Setenv("SYNC_TEST_BAD_BOOL", "maybe")
	assert.True(t, GetEnvBool("SYNC_TEST_BOOL", false))
	assert.True(t, GetEnvBool("SYNC_TEST_BAD_BOOL", true))
	assert.False(t, GetEnvBool("SYNC_TEST_UNSET", false))
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"250ms", 250 * time.Millisecond},
		{"5s", 5 * time.Second},
		{"soon", time.Minute},
		{"-1s", time.Minute},
		{"", time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SYNC_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetEnvDuration("SYNC_TEST_DURATION", time.Minute))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SYNC_TEST_DOTENV=from-file\n"), 0o600))

	t.Setenv("SYNC_TEST_DOTENV", "")
	os.Unsetenv("SYNC_TEST_DOTENV")
	LoadDotEnv(path)
	assert.Equal(t, "from-file", os.Getenv("SYNC_TEST_DOTENV"))

	LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}
