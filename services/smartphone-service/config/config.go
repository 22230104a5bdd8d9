package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultMaxBodyBytes caps JSON request bodies at 10 MB.
const DefaultMaxBodyBytes int64 = 10 << 20

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Env             string        `mapstructure:"APP_ENV"`
	StoreDriver     string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	DBHost          string        `mapstructure:"DB_HOST"`
	DBPort          string        `mapstructure:"DB_PORT"`
	DBUser          string        `mapstructure:"DB_USER"`
	DBPassword      string        `mapstructure:"DB_PASSWORD"`
	DBName          string        `mapstructure:"DB_NAME"`
	DeleteCode      string        `mapstructure:"DELETE_CODE"`
	DeleteCodeHash  string        `mapstructure:"DELETE_CODE_HASH"`
	AllowedOrigins  string        `mapstructure:"ALLOWED_ORIGINS"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	DeleteRateLimit int           `mapstructure:"DELETE_RATE_LIMIT"`
	DeleteWindow    time.Duration `mapstructure:"DELETE_RATE_WINDOW"`
	GRPCPort        string        `mapstructure:"GRPC_PORT"`
	SeedDemo        bool          `mapstructure:"SEED_DEMO"`
	MaxBodyBytes    int64         `mapstructure:"MAX_BODY_BYTES"`
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORE_DRIVER", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DELETE_RATE_LIMIT", 5)
	v.SetDefault("DELETE_RATE_WINDOW", time.Minute)
	v.SetDefault("MAX_BODY_BYTES", DefaultMaxBodyBytes)

	// Explicit binds so Unmarshal sees env vars without a file.
	v.BindEnv("PORT")
	v.BindEnv("APP_ENV", "APP_ENV", "NODE_ENV")
	v.BindEnv("STORE_DRIVER")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_HOST")
	v.BindEnv("DB_PORT")
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("DB_NAME")
	v.BindEnv("DELETE_CODE")
	v.BindEnv("DELETE_CODE_HASH")
	v.BindEnv("ALLOWED_ORIGINS")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("DELETE_RATE_LIMIT")
	v.BindEnv("DELETE_RATE_WINDOW")
	v.BindEnv("GRPC_PORT")
	v.BindEnv("SEED_DEMO")
	v.BindEnv("MAX_BODY_BYTES")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}

// DSN prefers DATABASE_URL and falls back to the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
