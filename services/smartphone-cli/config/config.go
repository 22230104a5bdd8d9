package config

import (
	"github.com/spf13/viper"
)

const DefaultAPIURL = "http://localhost:5000/api/smartphones"

type Config struct {
	APIURL string `mapstructure:"API_URL"`
}

// LoadConfig reads API_URL (VITE_API_URL is accepted for front-end parity).
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()
	v.SetDefault("API_URL", DefaultAPIURL)
	v.BindEnv("API_URL", "API_URL", "VITE_API_URL")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}
