package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_grpc":      "www.example:9000",
		"endpoint_addr_http":      "www.example:8000",
		"database_driver":         "sqlite",
		"database_dsn":            "tasks.db",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "12h",
		"s3_root_user":            "user",
		"s3_root_password":        "password",
		"s3_bucket":               "bucket",
		"s3_region":               "region",
		"s3_base_endpoint":        "base_endpoint",
		"log_level":               "warn",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "www.example:8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
		assert.Equal(t, "tasks.db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 12*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"secret_key": "k2"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "k2", cfg.SecretKey)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrGRPC: "defaults:1234", SecretKey: "key"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrGRPC)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
