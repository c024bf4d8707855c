package config

import (
	"fmt"
)

type RotationsConfig struct {
	HorizonInDays int `mapstructure:"horizon_days"`
}

func (config RotationsConfig) validate() error {
	if config.HorizonInDays <= 0 {
		return fmt.Errorf("invalid variable: rotations horizon days")
	}
	return nil
}
