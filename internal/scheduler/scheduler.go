// Package scheduler keeps the standings cache warm between client polls.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/pfrederiksen/curling-standings/internal/logger"
	"github.com/pfrederiksen/curling-standings/internal/standings"
)

// ErrDisabled is returned by New when the warm interval is not positive
var ErrDisabled = errors.New("cache warming disabled")

// Warmer is satisfied by *cache.Cache
type Warmer interface {
	Get(ctx context.Context) (standings.Snapshot, error)
}

type Scheduler struct {
	s        gocron.Scheduler
	warmer   Warmer
	interval time.Duration
}

func New(warmer Warmer, interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, ErrDisabled
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:        s,
		warmer:   warmer,
		interval: interval,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.warm),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create warm job: %w", err)
	}

	s.s.Start()
	logger.Info("cache warmer started", logger.Fields{"interval": s.interval.String()})
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	if _, err := s.warmer.Get(ctx); err != nil {
		logger.Error("cache warm failed", nil, err)
		return
	}
	logger.IncrCounter("cache.warm")
}
