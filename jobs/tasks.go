// Package jobs wraps the Asynq server, scheduler and task registry.
package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPromotionExpiry reverts restaurant promotions whose window has
	// passed. Scheduled daily; the handler lives in the payments package.
	TaskPromotionExpiry = "payments:promotion_expiry"
)

// NewPromotionExpiryTask constructs the scheduled expiry task. It carries
// no payload: the sweep derives everything from the store and the clock.
func NewPromotionExpiryTask() *asynq.Task {
	return asynq.NewTask(TaskPromotionExpiry, nil)
}
