package generator

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

type sweepRunner interface {
	GenerateAll(ctx context.Context) Summary
}

// Sweeper catches every template up to today once on Run and then on
// every tick until the context ends.
type Sweeper struct {
	generator sweepRunner
	interval  time.Duration
	log       logrus.FieldLogger
}

func NewSweeper(g sweepRunner, interval time.Duration, log logrus.FieldLogger) *Sweeper {
	return &Sweeper{
		generator: g,
		interval:  interval,
		log:       log,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx, "startup")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sweeper.Stopped")
			return
		case <-ticker.C:
			s.sweep(ctx, "tick")
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context, trigger string) {
	runID, _ := uuid.NewV4()
	log := s.log.WithFields(logrus.Fields{
		"sweepID": runID.String(),
		"trigger": trigger,
	})

	start := time.Now()
	log.Info("Sweeper.Sweep.Start")
	summary := s.generator.GenerateAll(ctx)
	log.WithFields(logrus.Fields{
		"attempted":  summary.Attempted,
		"failed":     summary.Failed,
		"created":    summary.Created,
		"durationMs": time.Since(start).Milliseconds(),
	}).Info("Sweeper.Sweep.Complete")
}
