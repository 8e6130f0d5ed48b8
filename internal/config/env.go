package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the process environment.
type Env struct {
	DataDir   string `env:"TYPEWRITE_DATA_DIR" envDefault:".typewrite"`
	LogLevel  string `env:"TYPEWRITE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"TYPEWRITE_LOG_FORMAT" envDefault:"text"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
