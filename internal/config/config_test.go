package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline-go/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.New()
		require.NoError(t, err)
		require.Equal(t, "http://localhost:3000/api", cfg.GetAPIBaseURL())
		require.Equal(t, 30*time.Second, cfg.GetRequestTimeout())
		require.Equal(t, "Ledgerline", cfg.GetAppName())
		require.Equal(t, "info", cfg.GetLogLevel())
		require.Equal(t, "json", cfg.GetOutputFormat())
		require.Empty(t, cfg.GetTokenFilePath())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("LEDGERLINE_API_BASE_URL", "https://api.example.com/api")
		t.Setenv("LEDGERLINE_REQUEST_TIMEOUT", "5s")
		t.Setenv("LEDGERLINE_TOKEN_FILE", "/tmp/tokens.json")
		t.Setenv("LEDGERLINE_OUTPUT", "yaml")

		cfg, err := config.New()
		require.NoError(t, err)
		require.Equal(t, "https://api.example.com/api", cfg.GetAPIBaseURL())
		require.Equal(t, 5*time.Second, cfg.GetRequestTimeout())
		require.Equal(t, "/tmp/tokens.json", cfg.GetTokenFilePath())
		require.Equal(t, "yaml", cfg.GetOutputFormat())
	})

	t.Run("malformed duration fails", func(t *testing.T) {
		t.Setenv("LEDGERLINE_REQUEST_TIMEOUT", "soon")

		_, err := config.New()
		require.Error(t, err)
	})
}
