package simulator

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTickInterval = time.Second
	DefaultHandInterval = 3 * time.Second
)

// Scheduler drives a Service: it runs the blind clock and, when enabled,
// deals simulated hands.
type Scheduler struct {
	service *Service
	sched   gocron.Scheduler
}

type SchedulerConfig struct {
	TickInterval time.Duration
	// HandInterval is the pause between simulated hands. Zero disables
	// hand simulation.
	HandInterval time.Duration
}

func NewScheduler(service *Service, cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	sched, err := gocron.NewScheduler(gocron.WithClock(service.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.TickInterval),
		gocron.NewTask(func() {
			if err := service.Tick(); err != nil {
				log.Error().Err(err).Msg("tournament clock tick failed")
			}
		}),
		gocron.WithName("tournament-clock"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule tournament clock: %w", err)
	}

	if cfg.HandInterval > 0 {
		_, err = sched.NewJob(
			gocron.DurationJob(cfg.HandInterval),
			gocron.NewTask(func() {
				if err := service.PlayHands(); err != nil {
					log.Error().Err(err).Msg("hand simulation failed")
				}
			}),
			gocron.WithName("hand-simulation"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule hand simulation: %w", err)
		}
	}

	return &Scheduler{service: service, sched: sched}, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	log.Info().Int("jobs", len(s.sched.Jobs())).Msg("simulator scheduler started")
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
