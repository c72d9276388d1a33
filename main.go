package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/generator"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("ledger-server starting")

	location, err := envConfig.Location()
	if err != nil {
		logger.WithError(err).Fatal("config.Location")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	op := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers, logger)
	op.Start()
	defer op.Stop()

	gen := generator.NewGenerator(op, dbStorage.Reader.Templates, logger,
		generator.WithLocation(location),
		generator.WithConcurrency(envConfig.GenerateConcurrency),
	)
	svc := service.NewService(dbStorage, op, gen, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		generator.NewSweeper(gen, envConfig.SweepInterval, logger).Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		httpRest := api.Rest{
			Logger:    logger,
			Port:      envConfig.Port,
			DB:        dbStorage.DB,
			Service:   svc,
			Generator: gen,
		}
		if err := httpRest.Serve(ctx); err != nil {
			stop()
		}
	}()

	wg.Wait()
	logger.Info("ledger-server stopped")
}
