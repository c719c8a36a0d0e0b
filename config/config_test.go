package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default configuration",
			envVars: map[string]string{
				"ENVIRONMENT": "development",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
				assert.Equal(t, "web", cfg.API.ClientType)
				assert.Equal(t, 30*time.Second, cfg.API.Timeout)
				assert.Equal(t, "en", cfg.Preferences.Language)
				assert.Equal(t, "warn", cfg.Observability.LogLevel)
				assert.Equal(t, "console", cfg.Observability.LogFormat)
				assert.Equal(t, "session.json", cfg.Storage.FileName)
			},
		},
		{
			name: "api overrides",
			envVars: map[string]string{
				"SUPPLIER_API_BASE_URL": "https://api.supply.kz/api/v1/",
				"SUPPLIER_API_TIMEOUT":  "5s",
				"SUPPLIER_CLIENT_TYPE":  "mobile",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.supply.kz/api/v1", cfg.API.BaseURL)
				assert.Equal(t, 5*time.Second, cfg.API.Timeout)
				assert.Equal(t, "mobile", cfg.API.ClientType)
			},
		},
		{
			name: "state directory and language",
			envVars: map[string]string{
				"SUPPLIER_STATE_DIR": "/tmp/supplierctl",
				"SUPPLIER_LANGUAGE":  "ru",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/supplierctl/session.json", cfg.Storage.Path())
				assert.Equal(t, "ru", cfg.Preferences.Language)
			},
		},
		{
			name: "invalid timeout falls back to default",
			envVars: map[string]string{
				"SUPPLIER_API_TIMEOUT": "soon",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30*time.Second, cfg.API.Timeout)
			},
		},
		{
			name: "production environment",
			envVars: map[string]string{
				"ENVIRONMENT": "production",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsProduction())
				assert.False(t, cfg.IsDevelopment())
			},
		},
		{
			name: "relative base url",
			envVars: map[string]string{
				"SUPPLIER_API_BASE_URL": "/api/v1",
			},
			wantErr: true,
		},
		{
			name: "unsupported language",
			envVars: map[string]string{
				"SUPPLIER_LANGUAGE": "de",
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			envVars: map[string]string{
				"SUPPLIER_API_TIMEOUT": "-1s",
			},
			wantErr: true,
		},
		{
			name: "unknown log format",
			envVars: map[string]string{
				"LOG_FORMAT": "text",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := New(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestStorageConfig_Path(t *testing.T) {
	assert.Equal(t, "", (&StorageConfig{FileName: "session.json"}).Path())
	assert.Equal(t, "state/session.json", (&StorageConfig{Dir: "state", FileName: "session.json"}).Path())
}

func TestIsSupportedLanguage(t *testing.T) {
	assert.True(t, IsSupportedLanguage("en"))
	assert.True(t, IsSupportedLanguage("ru"))
	assert.False(t, IsSupportedLanguage("kk"))
	assert.False(t, IsSupportedLanguage(""))
}
