package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	config, err := LoadConfig(ConfigFileName, nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, config)

	assert.False(t, config.Server.ReadTimeout.String() == "")
	assert.False(t, config.Server.WriteTimeout.String() == "")
	assert.False(t, config.Server.ShutdownTimeout.String() == "")
	assert.Equal(t, "0.0.0.0:3000", config.Server.APIHost)
	assert.ElementsMatch(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, config.Server.AllowedOrigins)

	assert.Equal(t, DefaultLedgerEndpoint, config.Ledger.Endpoint)
	assert.True(t, config.Signing.SubmitOnSign)
	assert.Equal(t, 5*time.Minute, config.Signing.Expire)
	assert.Equal(t, 5, config.Signing.ExpireMinutes())
	assert.Equal(t, "memory", config.Storage.Provider)
}

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.NotEmpty(t, config)

	assert.Equal(t, "0.0.0.0:3000", config.Server.APIHost)
	assert.Equal(t, DefaultLedgerEndpoint, config.Ledger.Endpoint)
	assert.Equal(t, DefaultSigningBaseURL, config.Signing.BaseURL)
	assert.True(t, config.Signing.SubmitOnSign)
	assert.Equal(t, DefaultPayloadExpire, config.Signing.Expire)
	assert.Equal(t, 5, config.Signing.ExpireMinutes())
	assert.Equal(t, DefaultStorageProvider, config.Storage.Provider)
	assert.Equal(t, DefaultBoltDBFile, config.Storage.BoltFile)
}

func TestConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv(Port.String(), "8081")
	t.Setenv(LedgerURL.String(), "wss://ledger.example.com:51233")
	t.Setenv(SigningKey.String(), "test-key")
	t.Setenv(SigningSecret.String(), "test-secret")
	t.Setenv(LogLevel.String(), "warn")

	config, err := LoadConfig(ConfigFileName, nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8081", config.Server.APIHost)
	assert.Equal(t, "wss://ledger.example.com:51233", config.Ledger.Endpoint)
	assert.Equal(t, "test-key", config.Signing.APIKey)
	assert.Equal(t, "test-secret", config.Signing.APISecret)
	assert.Equal(t, "warn", config.Server.LogLevel)
}

func TestConfigBadPath(t *testing.T) {
	config, err := LoadConfig("config.yaml", nil)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "did not match the expected TOML format")
}

func TestExpireMinutes(t *testing.T) {
	tests := []struct {
		expire time.Duration
		want   int
	}{
		{expire: 5 * time.Minute, want: 5},
		{expire: 300 * time.Second, want: 5},
		{expire: 90 * time.Second, want: 2},
		{expire: time.Second, want: 1},
		{expire: time.Hour, want: 60},
	}
	for _, test := range tests {
		t.Run(test.expire.String(), func(tt *testing.T) {
			assert.Equal(tt, test.want, SigningConfig{Expire: test.expire}.ExpireMinutes())
		})
	}
}
