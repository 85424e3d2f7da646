package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"havenstay/config"
	"havenstay/models"
	"havenstay/services/booking"
	"havenstay/services/notification"
	"havenstay/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultSweepInterval is how often confirmed stays past checkout are swept
// into completed, covering tasks lost from the queue.
const DefaultSweepInterval = 15 * time.Minute

// Completer is the part of the booking service the worker drives.
type Completer interface {
	Complete(ctx context.Context, bookingID string) error
	CompleteDue(ctx context.Context) (int, error)
}

// RedisOpt points asynq at the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Worker processes booking tasks and runs the completion sweep.
type Worker struct {
	srv           *asynq.Server
	mux           *asynq.ServeMux
	completer     Completer
	logger        *zap.Logger
	SweepInterval time.Duration
}

func NewWorker(opt asynq.RedisConnOpt, completer Completer, notifier notification.NotificationService, logger *zap.Logger) *Worker {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
		Logger: logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingComplete, handleBookingComplete(completer, logger))
	mux.HandleFunc(tasks.TypeBookingNotify, handleBookingNotify(notifier, logger))

	return &Worker{srv: srv, mux: mux, completer: completer, logger: logger, SweepInterval: DefaultSweepInterval}
}

// Start runs the task server and the sweep in the background until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.logger.Info("starting booking worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("failed to start booking worker",
				zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("booking worker gave up, completion relies on the sweep")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()

	go w.sweep(ctx)
}

// Shutdown waits for in-flight tasks and stops the server.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) sweep(ctx context.Context) {
	ticker := time.NewTicker(w.SweepInterval)
	defer ticker.Stop()
	for {
		RunSweep(ctx, w.completer, w.logger)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunSweep completes every due booking once.
func RunSweep(ctx context.Context, completer Completer, logger *zap.Logger) {
	n, err := completer.CompleteDue(ctx)
	if err != nil {
		logger.Error("completion sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("completion sweep finished", zap.Int("completed", n))
	}
}

func handleBookingComplete(completer Completer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingCompletePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid booking complete payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		err := completer.Complete(ctx, p.BookingID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, booking.ErrNotFound), errors.Is(err, booking.ErrInvalidTransition):
			// Cancelled or removed since the task was scheduled.
			logger.Info("skipping completion", zap.String("booking", p.BookingID), zap.Error(err))
			return nil
		default:
			return err
		}
	}
}

func handleBookingNotify(notifier notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingNotifyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid booking notify payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"title":     p.Title,
			"body":      p.Body,
		}
		if err := notifier.SendPushNotification(ctx, p.RecipientID, p.Title, p.Body, data); err != nil {
			logger.Warn("failed to send booking notification", zap.String("booking", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}
