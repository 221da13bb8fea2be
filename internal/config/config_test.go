package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SECRET_KEY", "")
	t.Setenv("ALGORITHM", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr)
	assert.Equal(t, "data/todos.db", cfg.Database.Path)
	assert.Equal(t, 20, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 10, cfg.Auth.LoginBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Error(t, cfg.Validate(), "secret key has no default")
}

func TestLoadFromPrefixedEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TODO_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("TODO_AUTH_SECRETKEY", "prefixed-secret")
	t.Setenv("TODO_AUTH_TOKENTTLMINUTES", "45")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "prefixed-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 45, cfg.Auth.TokenTTLMinutes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadBareSecretAndAlgorithm(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SECRET_KEY", "bare-secret")
	t.Setenv("ALGORITHM", "HS512")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bare-secret", cfg.Auth.SecretKey)
	assert.Equal(t, "HS512", cfg.Auth.Algorithm)
}

func TestValidateRejectsBadTTL(t *testing.T) {
	var cfg Config
	cfg.Auth.SecretKey = "s"
	cfg.Auth.Algorithm = "HS256"
	cfg.Database.Path = "x.db"

	cfg.Auth.TokenTTLMinutes = 0
	assert.Error(t, cfg.Validate())

	cfg.Auth.TokenTTLMinutes = 5
	assert.NoError(t, cfg.Validate())
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.TrustedProxies)

	t.Setenv("TODO_SERVER_TRUSTEDPROXIES", "10.0.0.0/8,192.168.1.1")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Server.TrustedProxies)
}
