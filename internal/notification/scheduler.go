package notification

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const schedulerInterval = time.Minute

// Scheduler periodically delivers due duty notices in the background.
type Scheduler struct {
	service *Service
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler for duty notices.
func NewScheduler(service *Service, logger *zap.Logger) *Scheduler {
	return &Scheduler{service: service, logger: logger}
}

// Start hooks the background delivery goroutine into the application
// lifecycle.
func (s *Scheduler) Start(lc fx.Lifecycle) {
	ticker := time.NewTicker(schedulerInterval)
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.logger.Info("starting duty notice scheduler",
				zap.Duration("interval", schedulerInterval))
			go func() {
				schedulerCtx := context.Background()
				for {
					select {
					case <-ticker.C:
						s.service.SendDueNotices(schedulerCtx)
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("stopping duty notice scheduler")
			ticker.Stop()
			close(done)
			return nil
		},
	})
}
