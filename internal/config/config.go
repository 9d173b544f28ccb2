// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the werewolfd process needs to run one game.
type Config struct {
	// Addr is the listen address for the websocket transport.
	Addr string `env:"WEREWOLF_ADDR" envDefault:":8080"`

	// GroqAPIKey enables AI seats; without it every AI seat abstains.
	GroqAPIKey string `env:"GROQ_API_KEY"`
	GroqModel  string `env:"GROQ_MODEL"`

	// DeepgramAPIKey enables speech synthesis; without it the game is
	// log-only.
	DeepgramAPIKey string `env:"DEEPGRAM_API_KEY"`

	// Seats is the total table size, AI fill-in included.
	Seats int `env:"WEREWOLF_SEATS" envDefault:"8"`
	// HumanName seats one human participant under this name; empty runs an
	// all-AI game.
	HumanName string `env:"WEREWOLF_HUMAN_NAME"`

	HumanTimeout    time.Duration `env:"WEREWOLF_HUMAN_TIMEOUT" envDefault:"30s"`
	DecisionTimeout time.Duration `env:"WEREWOLF_DECISION_TIMEOUT" envDefault:"30s"`
}

// ParseEnv loads the configuration from the environment.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
