package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	SessionTTLHours      int   `env:"SESSION_TTL_HOURS" envDefault:"24"`
	StartingBalanceCents int64 `env:"STARTING_BALANCE_CENTS" envDefault:"0"`

	// Optional owner seed. When both are set the owner account is created
	// (or verified) at startup; there are no built-in owner credentials.
	OwnerUsername string `env:"OWNER_USERNAME"`
	OwnerPassword string `env:"OWNER_PASSWORD"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
