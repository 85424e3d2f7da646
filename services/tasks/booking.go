package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"havenstay/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingComplete = "booking:complete"
	TypeBookingNotify   = "booking:notify"
)

func NewBookingCompleteTask(payload models.BookingCompletePayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingComplete, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(TypeBookingComplete + ":" + payload.BookingID),
		asynq.MaxRetry(10),
	}
	return task, opts, nil
}

func NewBookingNotifyTask(payload models.BookingNotifyPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingNotify, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(30 * time.Second)}
	return task, opts, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher turns booking events into background tasks.
type Dispatcher struct {
	client Enqueuer
}

func NewDispatcher(client Enqueuer) *Dispatcher {
	return &Dispatcher{client: client}
}

// ScheduleCompletion enqueues the confirmed-to-completed transition for the
// checkout day. Re-scheduling the same booking is a no-op.
func (d *Dispatcher) ScheduleCompletion(ctx context.Context, bookingID string, at time.Time) error {
	task, opts, err := NewBookingCompleteTask(models.BookingCompletePayload{BookingID: bookingID}, at)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil && err != asynq.ErrTaskIDConflict {
		return fmt.Errorf("enqueue %s for booking %s: %w", TypeBookingComplete, bookingID, err)
	}
	return nil
}

// Notify enqueues a push for a booking participant.
func (d *Dispatcher) Notify(ctx context.Context, payload models.BookingNotifyPayload) error {
	task, opts, err := NewBookingNotifyTask(payload)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue %s for booking %s: %w", TypeBookingNotify, payload.BookingID, err)
	}
	return nil
}
