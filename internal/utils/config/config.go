package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/starkpulse/gas-backend/internal/consts"
	"github.com/starkpulse/gas-backend/internal/types/environments"
)

type AppConfig struct {
	Environment   environments.Environment
	ApiServer     ApiServerConfig
	Postgres      DBConnection
	Upstream      UpstreamConfig
	RefreshPeriod string
}

type ApiServerConfig struct {
	Port           string
	AllowedOrigins string
}

type DBConnection struct {
	Host string
	Port string
	User string
	Name string
	Pass string

	SSLMode string
}

type UpstreamConfig struct {
	BlocknativeURL  string
	EtherscanURL    string
	ExchangeRateURL string
	StatusPageURL   string
}

func New() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// this will not override env variables if they already exist
	godotenv.Load(".env." + env)

	return &AppConfig{
		Environment: environments.Environment(env),
		ApiServer: ApiServerConfig{
			Port:           envVarOrDefault("API_PORT", "3000"),
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
		Postgres: DBConnection{
			Host:    os.Getenv("DB_HOST"),
			Port:    os.Getenv("DB_PORT"),
			User:    os.Getenv("DB_USER"),
			Name:    os.Getenv("DB_NAME"),
			Pass:    os.Getenv("DB_PASS"),
			SSLMode: os.Getenv("DB_SSL_MODE"),
		},
		Upstream: UpstreamConfig{
			BlocknativeURL:  envVarOrDefault("BLOCKNATIVE_API_URL", consts.DefaultBlocknativeURL),
			EtherscanURL:    envVarOrDefault("ETHERSCAN_API_URL", consts.DefaultEtherscanURL),
			ExchangeRateURL: envVarOrDefault("EXCHANGE_RATE_API_URL", consts.DefaultExchangeRateURL),
			StatusPageURL:   envVarOrDefault("STATUS_PAGE_URL", consts.DefaultStatusPageURL),
		},
		RefreshPeriod: envVarOrDefault("REFRESH_PERIOD", consts.DefaultRefreshPeriod),
	}
}

func envVarOrDefault(envName, defaultValue string) string {
	value := os.Getenv(envName)
	if value == "" {
		return defaultValue
	}

	return value
}
