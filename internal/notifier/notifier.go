// Package notifier sends best-effort outbound email for task events.
// Delivery is at-most-once: a failed send is logged and lost, never
// retried or queued.
package notifier

import (
	"github.com/calmtasks/calmtasks-api/internal/config"
	"github.com/calmtasks/calmtasks-api/internal/models"
)

// Notifier delivers a single notification for an (owner, task) pair.
type Notifier interface {
	// TaskReminder notifies the owner that a task's reminder is due.
	TaskReminder(user *models.User, task *models.Task) error

	// TaskCompleted notifies the owner that a task was just completed.
	TaskCompleted(user *models.User, task *models.Task) error
}

// FromConfig selects the notifier implementation at startup. A missing
// SMTP host means there is no transport to speak to, so the no-op
// variant is used and every send degrades to a logged skip.
func FromConfig(cfg *config.Config) Notifier {
	if cfg.SMTPHost == "" {
		return NewNoopNotifier("SMTP_HOST is not set")
	}
	return NewSMTPNotifier(cfg)
}
