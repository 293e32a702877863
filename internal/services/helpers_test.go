package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/calmtasks/calmtasks-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var errSendFailed = errors.New("smtp unavailable")

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// sentMessage records one notifier invocation.
type sentMessage struct {
	Kind   string
	UserID uint64
	TaskID uint64
	Email  string
}

// recordingNotifier captures every send instead of touching SMTP.
type recordingNotifier struct {
	mu   sync.Mutex
	Sent []sentMessage

	// FailReminders makes TaskReminder return an error for every call.
	FailReminders bool
}

func (n *recordingNotifier) TaskReminder(user *models.User, task *models.Task) error {
	if n.FailReminders {
		return errSendFailed
	}
	n.record("reminder", user, task)
	return nil
}

func (n *recordingNotifier) TaskCompleted(user *models.User, task *models.Task) error {
	n.record("completed", user, task)
	return nil
}

func (n *recordingNotifier) record(kind string, user *models.User, task *models.Task) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, sentMessage{
		Kind:   kind,
		UserID: user.ID,
		TaskID: task.ID,
		Email:  user.Email,
	})
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, m := range n.Sent {
		if m.Kind == kind {
			c++
		}
	}
	return c
}
