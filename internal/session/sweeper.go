package session

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/lanki/internal/logger"
)

// Sweeper periodically evicts idle sessions.
type Sweeper struct {
	scheduler *gocron.Scheduler
	manager   *Manager
	ttl       time.Duration
	interval  time.Duration
}

func NewSweeper(manager *Manager, ttl, interval time.Duration) *Sweeper {
	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		manager:   manager,
		ttl:       ttl,
		interval:  interval,
	}
}

// Start schedules the sweep and runs the scheduler in the background.
func (s *Sweeper) Start() error {
	log := logger.Default().WithPrefix("sweeper")
	_, err := s.scheduler.Every(s.interval).Do(func() {
		n := s.manager.Sweep(s.ttl)
		log.Debug("sweep removed %d sessions, %d live", n, s.manager.Len())
	})
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	log.Info("sweeping sessions idle for %v every %v", s.ttl, s.interval)
	return nil
}

func (s *Sweeper) Stop() {
	s.scheduler.Stop()
}
