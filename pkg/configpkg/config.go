// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	ServerAddress         string        `mapstructure:"SERVER_ADDRESS"`
	TokenType             string        `mapstructure:"TOKEN_TYPE"`
	TokenSymmetricKey     string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration   time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration  time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`
	Environement          string        `mapstructure:"GO_ENV"`
	PasswordHasher        string        `mapstructure:"PASSWORD_HASHER"`
	SavingsInterestRate   string        `mapstructure:"SAVINGS_INTEREST_RATE"`
	CurrentOverdraftLimit string        `mapstructure:"CURRENT_OVERDRAFT_LIMIT"`
}

// Defaults for the account variant parameters.
const (
	DefaultSavingsInterestRate   = "0.02"
	DefaultCurrentOverdraftLimit = "500"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("TOKEN_TYPE", "paseto")
	v.SetDefault("ACCESS_TOKEN_DURATION", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("PASSWORD_HASHER", "sha256")
	v.SetDefault("SAVINGS_INTEREST_RATE", DefaultSavingsInterestRate)
	v.SetDefault("CURRENT_OVERDRAFT_LIMIT", DefaultCurrentOverdraftLimit)
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

// InterestRate returns the configured savings interest rate.
func (c Config) InterestRate() (decimal.Decimal, error) {
	return parseOr(c.SavingsInterestRate, DefaultSavingsInterestRate)
}

// OverdraftLimit returns the configured current account overdraft limit.
func (c Config) OverdraftLimit() (decimal.Decimal, error) {
	return parseOr(c.CurrentOverdraftLimit, DefaultCurrentOverdraftLimit)
}

func parseOr(value, fallback string) (decimal.Decimal, error) {
	if value == "" {
		value = fallback
	}

	return decimal.NewFromString(value)
}
