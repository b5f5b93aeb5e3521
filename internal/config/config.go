package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	ScenarioPath string
}

// Load reads configuration from the environment, honoring a local .env
// file when present. Everything has a default: the simulator must boot
// with zero setup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// Optional path to a scenario JSON file; empty means the built-in
	// default fixture.
	scenarioPath := os.Getenv("SCENARIO_PATH")

	return &Config{
		Port:         port,
		Env:          env,
		ScenarioPath: scenarioPath,
	}, nil
}
