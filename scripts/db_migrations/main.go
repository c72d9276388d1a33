package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Applies pending migrations to the configured database without
// starting the server.
func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(env.LogLevel)

	if err := os.MkdirAll(filepath.Dir(env.DatabasePath), 0o755); err != nil {
		logger.WithError(err).Fatal("os.MkdirAll")
		return
	}

	if err := storage.RunMigrations(storage.DSN(env.DatabasePath), logger); err != nil {
		logger.WithError(err).Fatal("storage.RunMigrations")
		return
	}
}
