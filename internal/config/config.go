package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port                string
	DatabasePath        string
	LogLevel            string
	Timezone            string
	SweepInterval       time.Duration
	GenerateConcurrency int
	OperatorWorkers     int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	env := Config{
		Port:                "9446",
		DatabasePath:        "./data/ledger.db",
		LogLevel:            "info",
		Timezone:            "Local",
		SweepInterval:       time.Hour,
		GenerateConcurrency: 4,
		OperatorWorkers:     1,
	}

	if v := os.Getenv("PORT"); len(v) != 0 {
		env.Port = v
	}

	if v := os.Getenv("DATABASE_PATH"); len(v) != 0 {
		env.DatabasePath = v
	}

	if v := os.Getenv("LOG_LEVEL"); len(v) != 0 {
		env.LogLevel = v
	}

	if v := os.Getenv("TIMEZONE"); len(v) != 0 {
		env.Timezone = v
	}

	var errs []error

	if v := os.Getenv("SWEEP_INTERVAL"); len(v) != 0 {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SWEEP_INTERVAL %q: %w", v, err))
		} else {
			env.SweepInterval = d
		}
	}

	if v := os.Getenv("GENERATE_CONCURRENCY"); len(v) != 0 {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("GENERATE_CONCURRENCY %q: %w", v, err))
		} else {
			env.GenerateConcurrency = n
		}
	}

	if v := os.Getenv("OPERATOR_WORKERS"); len(v) != 0 {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("OPERATOR_WORKERS %q: %w", v, err))
		} else {
			env.OperatorWorkers = n
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number between 1 and 65535", c.Port))
	}

	if strings.TrimSpace(c.DatabasePath) == "" {
		problems = append(problems, "database path must not be empty")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone %q", c.Timezone))
	}

	if c.SweepInterval <= 0 {
		problems = append(problems, "sweep interval must be positive")
	}

	if c.GenerateConcurrency < 1 {
		problems = append(problems, "generate concurrency must be at least 1")
	}

	if c.OperatorWorkers < 1 {
		problems = append(problems, "operator workers must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}

	return nil
}

// Location resolves the configured timezone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
