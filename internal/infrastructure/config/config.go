package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config contém as configurações do servidor lidas do ambiente
type Config struct {
	Port            string        `envconfig:"PORT" default:"5000"`
	SessionSecret   string        `envconfig:"SESSION_SECRET"`
	SessionDuration time.Duration `envconfig:"SESSION_DURATION" default:"24h"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	MaxMessageSize  int64         `envconfig:"MAX_MESSAGE_SIZE" default:"4096"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load lê as configurações a partir das variáveis de ambiente
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("erro ao processar configuração: %w", err)
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET não configurado")
	}

	return &cfg, nil
}

// Addr retorna o endereço de escuta do servidor HTTP
func (c *Config) Addr() string {
	return ":" + c.Port
}
