package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Pricing  PricingConfig
	Booking  BookingConfig
	Gateway  GatewayConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type PricingConfig struct {
	// TaxRatePercent is the marketplace-wide tax applied to taxable charges.
	// 18 is the ITBIS rate; 0 disables the tax line entirely.
	TaxRatePercent float64
}

type BookingConfig struct {
	// DefaultAdvanceNoticeHours applies when a rental has no notice window of its own.
	DefaultAdvanceNoticeHours int
}

type GatewayConfig struct {
	PaymentBaseURL string
	PaymentAPIKey  string
	WebhookURL     string
	TimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("TAX_RATE_PERCENT", 18.0)
	viper.SetDefault("DEFAULT_ADVANCE_NOTICE_HOURS", 0)
	viper.SetDefault("GATEWAY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Pricing: PricingConfig{
			TaxRatePercent: viper.GetFloat64("TAX_RATE_PERCENT"),
		},
		Booking: BookingConfig{
			DefaultAdvanceNoticeHours: viper.GetInt("DEFAULT_ADVANCE_NOTICE_HOURS"),
		},
		Gateway: GatewayConfig{
			PaymentBaseURL: viper.GetString("PAYMENT_BASE_URL"),
			PaymentAPIKey:  viper.GetString("PAYMENT_API_KEY"),
			WebhookURL:     viper.GetString("NOTIFY_WEBHOOK_URL"),
			TimeoutSeconds: viper.GetInt("GATEWAY_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}
