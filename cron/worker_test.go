package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"havenstay/models"
	"havenstay/services/booking"
	"havenstay/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	results  map[string]error
	called   []string
	due      int
	sweepErr error
}

func (f *fakeCompleter) Complete(_ context.Context, id string) error {
	f.called = append(f.called, id)
	return f.results[id]
}
func (f *fakeCompleter) CompleteDue(context.Context) (int, error) { return f.due, f.sweepErr }

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) SendPushNotification(_ context.Context, profileID, _, _ string, data map[string]string) error {
	f.sent = append(f.sent, profileID+":"+data["bookingId"])
	return f.err
}

func completeTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(models.BookingCompletePayload{BookingID: id})
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(tasks.TypeBookingComplete, b)
}

func TestHandleBookingComplete(t *testing.T) {
	retryable := errors.New("mongo down")
	c := &fakeCompleter{results: map[string]error{
		"gone":      booking.ErrNotFound,
		"cancelled": booking.ErrInvalidTransition,
		"early":     booking.ErrNotDue,
		"flaky":     retryable,
	}}
	h := handleBookingComplete(c, zap.NewNop())

	tests := []struct {
		id      string
		wantErr bool
	}{
		{"ok", false},
		{"gone", false},
		{"cancelled", false},
		{"early", true},
		{"flaky", true},
	}
	for _, tt := range tests {
		err := h(context.Background(), completeTask(t, tt.id))
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: wantErr=%v, got %v", tt.id, tt.wantErr, err)
		}
	}

	err := h(context.Background(), asynq.NewTask(tasks.TypeBookingComplete, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("bad payload should not be retried, got %v", err)
	}
}

func TestHandleBookingNotify(t *testing.T) {
	n := &fakeNotifier{}
	h := handleBookingNotify(n, zap.NewNop())
	b, _ := json.Marshal(models.BookingNotifyPayload{BookingID: "b1", RecipientID: "host-1", Title: "New booking request"})

	if err := h(context.Background(), asynq.NewTask(tasks.TypeBookingNotify, b)); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(n.sent) != 1 || n.sent[0] != "host-1:b1" {
		t.Fatalf("unexpected pushes %v", n.sent)
	}

	n.err = errors.New("fcm unavailable")
	if err := h(context.Background(), asynq.NewTask(tasks.TypeBookingNotify, b)); err == nil {
		t.Fatal("send failures should be retried")
	}
}

func TestRunSweep(t *testing.T) {
	c := &fakeCompleter{due: 3}
	RunSweep(context.Background(), c, zap.NewNop())
	c.sweepErr = errors.New("boom")
	RunSweep(context.Background(), c, zap.NewNop())
}
