package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  port: "9000"
  jwt_signing_key: secret
gin:
  mode: release
storage:
  driver: memory
pool:
  claim_ttl: 15m
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", conf.API.Port)
	assert.Equal(t, "development", conf.API.Environment)
	assert.Equal(t, "secret", conf.API.JWTSigningKey)
	assert.Equal(t, "release", conf.Gin.Mode)
	assert.Equal(t, StorageDriverMemory, conf.Storage.Driver)
	assert.Equal(t, 5, conf.Pool.ConflictRetries)
	assert.Equal(t, 15*time.Minute, conf.Pool.ClaimTTL)
	assert.Equal(t, time.Minute, conf.Pool.SweepInterval)
	assert.Equal(t, 64, conf.Pool.EventBuffer)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
api:
  port: "9000"
gin:
  mode: debug
storage:
  driver: memory
pool:
  conflict_retries: 2
`)
	t.Setenv("API_PORT", "7000")
	t.Setenv("POOL_CONFLICT_RETRIES", "9")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", conf.API.Port)
	assert.Equal(t, 9, conf.Pool.ConflictRetries)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "unknown driver",
			body: "api: {}\ngin: {}\npool: {}\nstorage:\n  driver: mongo\n",
		},
		{
			name: "postgres without section",
			body: "api: {}\ngin: {}\npool: {}\nstorage:\n  driver: postgres\n",
		},
		{
			name: "negative retries",
			body: "api: {}\ngin: {}\nstorage:\n  driver: memory\npool:\n  conflict_retries: -1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestPostgresConfig_DSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DB: "squares", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=squares sslmode=disable", c.DSN())
}
