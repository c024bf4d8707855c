package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type StorageConfig struct {
	URL           string        `mapstructure:"url"`
	Key           string        `mapstructure:"key"`
	Bucket        string        `mapstructure:"bucket"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
}

// An empty url disables storage entirely, key and bucket are only required
// when it is set.
func (config StorageConfig) validate() error {

	if config.URL == "" {
		return nil
	}

	var missingFields []string

	if config.Key == "" {
		missingFields = append(missingFields, "key")
	}

	if config.Bucket == "" {
		missingFields = append(missingFields, "bucket")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config StorageConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("storage.url", "SUPABASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("storage.key", "SUPABASE_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("storage.bucket", "STORAGE_BUCKET"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
