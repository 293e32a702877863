package notifier

import (
	"log"

	"github.com/calmtasks/calmtasks-api/internal/models"
)

// NoopNotifier is the notifier used when no transport is configured. It
// logs each skipped message and never returns an error, so the reminder
// dispatcher keeps draining.
type NoopNotifier struct{}

// NewNoopNotifier creates a NoopNotifier, warning once about the reason
// email is disabled.
func NewNoopNotifier(reason string) *NoopNotifier {
	log.Printf("[notifier] email disabled (%s); notifications will be skipped", reason)
	return &NoopNotifier{}
}

// TaskReminder logs the skipped reminder.
func (n *NoopNotifier) TaskReminder(user *models.User, task *models.Task) error {
	log.Printf("[notifier] skipping reminder email for task %d (owner %s)", task.ID, user.Email)
	return nil
}

// TaskCompleted logs the skipped completion notice.
func (n *NoopNotifier) TaskCompleted(user *models.User, task *models.Task) error {
	log.Printf("[notifier] skipping completion email for task %d (owner %s)", task.ID, user.Email)
	return nil
}
