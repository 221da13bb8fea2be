package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr           string
		TrustedProxies []string
	}
	Database struct {
		Path string
	}
	Auth struct {
		SecretKey       string
		Algorithm       string
		TokenTTLMinutes int
		BcryptCost      int
		LoginRate       float64
		LoginBurst      int
	}
	Log struct {
		Level  string
		Format string
	}
	Gin struct {
		Mode string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	// .env never overrides variables already present in the environment
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8000")
	// empty: X-Forwarded-For is ignored and the socket peer is the client
	v.SetDefault("server.trustedproxies", []string{})
	v.SetDefault("database.path", "data/todos.db")
	v.SetDefault("auth.secretkey", "")
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.tokenttlminutes", 20)
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("auth.loginrate", 1.0)
	v.SetDefault("auth.loginburst", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("gin.mode", "release")

	// bare names used by existing deployments
	if err := v.BindEnv("auth.secretkey", "TODO_AUTH_SECRETKEY", "SECRET_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind secret key env: %w", err)
	}
	if err := v.BindEnv("auth.algorithm", "TODO_AUTH_ALGORITHM", "ALGORITHM"); err != nil {
		return Config{}, fmt.Errorf("bind algorithm env: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.SecretKey) == "" {
		return fmt.Errorf("auth secret key is required")
	}
	if strings.TrimSpace(c.Auth.Algorithm) == "" {
		return fmt.Errorf("auth algorithm is required")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth token ttl must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}
