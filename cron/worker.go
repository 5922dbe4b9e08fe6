package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"medibook/config"
	"medibook/models"
	"medibook/services/notification"
	"medibook/utils"
)

// InitNotificationWorker runs the async notification worker in background.
// Notices are best-effort: a handler error is logged and retried by the
// queue, but nothing here can reach back into booking state.
func InitNotificationWorker(sender *notification.PushSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeCancellationSend, handleCancellationTask(sender))
	mux.HandleFunc(notification.TypeReminderSend, handleReminderTask(sender))

	go func() {
		log.Println("[NotificationWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCancellationTask(sender *notification.PushSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var notice models.CancellationNotice
		if err := json.Unmarshal(task.Payload(), &notice); err != nil {
			utils.GetLogger().Error("invalid cancellation payload", zap.Error(err))
			return err
		}
		if err := sender.SendCancellationPush(ctx, notice); err != nil {
			utils.GetLogger().Warn("cancellation notice delivery failed",
				zap.String("patientId", notice.PatientID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleReminderTask(sender *notification.PushSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return err
		}
		if err := sender.SendReminderPush(ctx, payload); err != nil {
			utils.GetLogger().Warn("reminder delivery failed",
				zap.String("appointmentId", payload.AppointmentID), zap.Error(err))
			return err
		}
		return nil
	}
}
