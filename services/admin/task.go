package admin

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"moderation-controlplane/pkg/task"
)

// TypeSessionCleanup identifies the expired-session cleanup task.
const TypeSessionCleanup = "admin:session:cleanup"

// NewSessionCleanupTask builds the cleanup task payload.
func NewSessionCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeSessionCleanup, nil)
}

// HandleSessionCleanup returns the asynq handler that deletes expired
// sessions.
func HandleSessionCleanup(svc *Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		deleted, err := svc.CleanupExpiredSessions(ctx)
		if err != nil {
			zap.L().Error("failed to delete expired sessions", zap.Error(err))
			return err
		}
		zap.L().Info("deleted expired admin sessions", zap.Int64("count", deleted))
		return nil
	}
}

// RegisterSessionCleanup mounts the cleanup handler on the worker mux.
func RegisterSessionCleanup(mux *asynq.ServeMux, svc *Service) {
	mux.HandleFunc(TypeSessionCleanup, HandleSessionCleanup(svc))
}

// Scheduler enqueues the daily session cleanup.
type Scheduler struct {
	enqueuer task.Enqueuer
}

func NewScheduler(enqueuer task.Enqueuer) *Scheduler {
	return &Scheduler{enqueuer: enqueuer}
}

// StartScheduler wires the scheduler loop into the fx lifecycle.
func StartScheduler(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go s.run(ctx)
			return nil
		},
	})
}

func (s *Scheduler) run(ctx context.Context) {
	zap.L().Info("[Scheduler] started session cleanup scheduler")

	for {
		now := time.Now()
		next := nextRunTime(now, 1, 0)

		sleepDuration := next.Sub(now)
		zap.L().Info("[Scheduler] next run scheduled",
			zap.Time("next_run", next),
			zap.Duration("sleep_for", sleepDuration),
		)
		select {
		case <-time.After(sleepDuration):
			if _, err := s.enqueuer.Enqueue(NewSessionCleanupTask(), asynq.Queue("low")); err != nil {
				zap.L().Error("[Scheduler] failed enqueue session cleanup", zap.Error(err))
			}
		case <-ctx.Done():
			zap.L().Warn("[Scheduler] stopped")
			return
		}
	}
}

func nextRunTime(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
