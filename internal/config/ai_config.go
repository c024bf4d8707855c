package config

import (
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type AIConfig struct {
	APIKey               string        `mapstructure:"api_key"`
	Model                string        `mapstructure:"model"`
	MaxRequestsPerMinute float32       `mapstructure:"max_requests_per_minute"`
	MaxRequestsPerDay    float32       `mapstructure:"max_requests_per_day"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
}

func (config AIConfig) validate() error {

	if config.APIKey == "" {
		return fmt.Errorf("missing variable: ai api key")
	}

	if config.Model == "" {
		return fmt.Errorf("missing variable: ai model")
	}

	return nil
}

func (config AIConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("ai.api_key", "OPENAI_API_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("ai.model", "AI_MODEL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
