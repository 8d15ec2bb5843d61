package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Placeholder credentials shipped for demo installs. Seeing either one means
// no real project is configured and the server must run on sample data.
const (
	DemoSupabaseURL = "https://demo.supabase.co"
	DemoAnonKey     = "demo-anon-key"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Supabase struct {
		URL            string `mapstructure:"url"`
		AnonKey        string `mapstructure:"anon_key"`
		ServiceRoleKey string `mapstructure:"service_role_key"`
	} `mapstructure:"supabase"`

	// DatabaseURL enables the direct Postgres store instead of the REST
	// gateway. Takes precedence over the Supabase section when set.
	DatabaseURL string `mapstructure:"database_url"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	R2 struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
	} `mapstructure:"r2"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("supabase.url", DemoSupabaseURL)
	v.SetDefault("supabase.anon_key", DemoAnonKey)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("r2.region", "auto")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Environment variables override file values
	if url := os.Getenv("SUPABASE_URL"); url != "" {
		cfg.Supabase.URL = url
	}
	if key := os.Getenv("SUPABASE_ANON_KEY"); key != "" {
		cfg.Supabase.AnonKey = key
	}
	if key := os.Getenv("SUPABASE_SERVICE_ROLE_KEY"); key != "" {
		cfg.Supabase.ServiceRoleKey = key
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}
	if endpoint := os.Getenv("R2_ENDPOINT"); endpoint != "" {
		cfg.R2.Endpoint = endpoint
	}
	if key := os.Getenv("R2_ACCESS_KEY"); key != "" {
		cfg.R2.AccessKey = key
	}
	if key := os.Getenv("R2_SECRET_KEY"); key != "" {
		cfg.R2.SecretKey = key
	}
	if bucket := os.Getenv("R2_BUCKET"); bucket != "" {
		cfg.R2.Bucket = bucket
	}

	return &cfg
}

// IsDemo reports whether no real backing store is configured: placeholder
// Supabase credentials and no direct database URL.
func (c *Config) IsDemo() bool {
	if c.DatabaseURL != "" {
		return false
	}
	if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
		return true
	}
	return strings.Contains(c.Supabase.URL, "demo.supabase.co") || c.Supabase.AnonKey == DemoAnonKey
}

// R2Enabled reports whether document uploads can reach object storage.
func (c *Config) R2Enabled() bool {
	return c.R2.Endpoint != "" && c.R2.AccessKey != "" && c.R2.SecretKey != "" && c.R2.Bucket != ""
}
