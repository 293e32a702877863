package notifier

import (
	"fmt"
	"time"

	"github.com/calmtasks/calmtasks-api/internal/config"
	"github.com/calmtasks/calmtasks-api/internal/models"
	"gopkg.in/gomail.v2"
)

// SMTPNotifier sends notification email through a configured SMTP
// transport. Each send dials a fresh connection; reminder volume is low
// enough that connection reuse is not worth the bookkeeping.
type SMTPNotifier struct {
	dialer  *gomail.Dialer
	from    string
	subject string
	text    string
}

// NewSMTPNotifier creates a notifier backed by the SMTP settings in cfg.
func NewSMTPNotifier(cfg *config.Config) *SMTPNotifier {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.SMTPUser
	}

	return &SMTPNotifier{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:    from,
		subject: cfg.ReminderSubject,
		text:    cfg.ReminderText,
	}
}

// TaskReminder emails the owner that a task's reminder is due.
func (n *SMTPNotifier) TaskReminder(user *models.User, task *models.Task) error {
	if err := n.dialer.DialAndSend(n.buildReminder(user, task)); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}

// TaskCompleted emails the owner that a task was completed.
func (n *SMTPNotifier) TaskCompleted(user *models.User, task *models.Task) error {
	if err := n.dialer.DialAndSend(n.buildCompletion(user, task)); err != nil {
		return fmt.Errorf("failed to send completion email: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) buildReminder(user *models.User, task *models.Task) *gomail.Message {
	text := n.text
	if text == "" {
		text = fmt.Sprintf("Reminder: You planned to '%s'. Stay calm and get it done.", task.Title)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", n.subject)
	m.SetBody("text/plain", text)
	return m
}

func (n *SMTPNotifier) buildCompletion(user *models.User, task *models.Task) *gomail.Message {
	completedAt := time.Now().Format("Jan 2, 2006 15:04")

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("Task completed: %s", task.Title))
	m.SetBody("text/plain", fmt.Sprintf("Your task %q was completed successfully on %s.", task.Title, completedAt))
	return m
}
