package notifier

import (
	"bytes"
	"testing"

	"github.com/calmtasks/calmtasks-api/internal/config"
	"github.com/calmtasks/calmtasks-api/internal/models"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func renderMessage(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func testConfig() *config.Config {
	return &config.Config{
		SMTPHost:        "smtp.example.com",
		SMTPPort:        587,
		SMTPUser:        "mailer@example.com",
		SMTPPass:        "secret",
		ReminderSubject: "Reminder from CalmTasks",
	}
}

func TestBuildReminder(t *testing.T) {
	n := NewSMTPNotifier(testConfig())

	user := &models.User{Email: "owner@example.com"}
	task := &models.Task{ID: 7, Title: "Water the plants"}

	raw := renderMessage(t, n.buildReminder(user, task))
	require.Contains(t, raw, "To: owner@example.com")
	require.Contains(t, raw, "Subject: Reminder from CalmTasks")
	require.Contains(t, raw, "Water the plants")
}

func TestBuildReminder_CustomText(t *testing.T) {
	cfg := testConfig()
	cfg.ReminderText = "Time to get moving."
	n := NewSMTPNotifier(cfg)

	user := &models.User{Email: "owner@example.com"}
	task := &models.Task{Title: "Water the plants"}

	raw := renderMessage(t, n.buildReminder(user, task))
	require.Contains(t, raw, "Time to get moving.")
	require.NotContains(t, raw, "Water the plants")
}

func TestBuildCompletion(t *testing.T) {
	n := NewSMTPNotifier(testConfig())

	user := &models.User{Email: "owner@example.com"}
	task := &models.Task{Title: "Water the plants"}

	raw := renderMessage(t, n.buildCompletion(user, task))
	require.Contains(t, raw, "Subject: Task completed: Water the plants")
	require.Contains(t, raw, "completed successfully")
}

func TestSMTPNotifier_FromFallsBackToUser(t *testing.T) {
	cfg := testConfig()
	cfg.FromEmail = ""
	n := NewSMTPNotifier(cfg)

	user := &models.User{Email: "owner@example.com"}
	raw := renderMessage(t, n.buildReminder(user, &models.Task{Title: "x"}))
	require.Contains(t, raw, "From: mailer@example.com")
}

func TestFromConfig_SelectsNoopWithoutHost(t *testing.T) {
	n := FromConfig(&config.Config{})
	_, ok := n.(*NoopNotifier)
	require.True(t, ok)

	n = FromConfig(testConfig())
	_, ok = n.(*SMTPNotifier)
	require.True(t, ok)
}

func TestNoopNotifier_NeverErrors(t *testing.T) {
	n := NewNoopNotifier("test")
	user := &models.User{ID: 1, Email: "owner@example.com"}
	task := &models.Task{ID: 1, Title: "Water the plants"}

	require.NoError(t, n.TaskReminder(user, task))
	require.NoError(t, n.TaskCompleted(user, task))
}
