package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"medibook/models"
)

// Task types handled by the notification worker.
const (
	TypeCancellationSend = "cancellation:send"
	TypeReminderSend     = "reminder:send"
)

// QueueNotificationService queues notices onto the Redis-backed task queue.
// Delivery happens in the worker; a queued task that ultimately fails only
// logs, it never touches booking state.
type QueueNotificationService struct {
	Client *asynq.Client
}

func NewQueueNotificationService(client *asynq.Client) *QueueNotificationService {
	return &QueueNotificationService{Client: client}
}

func (s *QueueNotificationService) SendCancellationNotice(ctx context.Context, notice models.CancellationNotice) error {
	b, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal cancellation notice: %w", err)
	}
	task := asynq.NewTask(TypeCancellationSend, b)
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue cancellation notice: %w", err)
	}
	return nil
}

func (s *QueueNotificationService) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeReminderSend, b)
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
