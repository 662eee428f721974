package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sheikh-saqib/payments-engine/internal/engine"
	"github.com/sheikh-saqib/payments-engine/internal/ledger"
)

type Config struct {
	ErrorPolicy engine.ErrorPolicy
	Ownership   ledger.OwnershipPolicy
	LogLevel    string
}

// Load reads an optional .env file, then the environment
func Load() (Config, error) {
	// a missing .env is the normal case
	_ = godotenv.Load()
	return LoadFromEnv()
}

func LoadFromEnv() (Config, error) {
	policy, err := engine.ParseErrorPolicy(getOrDefault(os.Getenv("LEDGER_ERROR_POLICY"), "continue"))
	if err != nil {
		return Config{}, fmt.Errorf("LEDGER_ERROR_POLICY: %w", err)
	}

	ownership, err := ledger.ParseOwnershipPolicy(getOrDefault(os.Getenv("LEDGER_OWNERSHIP"), "strict"))
	if err != nil {
		return Config{}, fmt.Errorf("LEDGER_OWNERSHIP: %w", err)
	}

	return Config{
		ErrorPolicy: policy,
		Ownership:   ownership,
		LogLevel:    getOrDefault(os.Getenv("LOG_LEVEL"), "warn"),
	}, nil
}

func getOrDefault(s string, defaultVal string) string {
	if s != "" {
		return s
	}
	return defaultVal
}
