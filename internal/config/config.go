package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
}

// LoadConfig builds the configuration from defaults, a .env file when one is
// present, CRM_-prefixed environment variables, and finally an optional YAML
// file which wins over everything else.
func LoadConfig(path string) (*Config, error) {
	// missing .env is fine; env vars still apply
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("CRM_ADDR", ":5000"),
		JWTSecret:     getEnv("CRM_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("CRM_DATABASE_PATH", "crm.db"),
		TokenDuration: getEnvSeconds("CRM_TOKEN_DURATION", 7200) * time.Second,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n)
		}
	}

	return def
}
