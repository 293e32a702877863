package services

import (
	"errors"
	"log"
	"time"

	"github.com/calmtasks/calmtasks-api/internal/constants"
	"github.com/calmtasks/calmtasks-api/internal/notifier"
	"github.com/calmtasks/calmtasks-api/internal/repository"
	"gorm.io/gorm"
)

// ReminderService drains due, unsent reminders on a fixed interval and
// emails the owner of each claimed task.
//
// Correctness rests on the store's atomic claim: the sent flag flips in
// the same indivisible step that selects the task, so overlapping ticks
// can never pick up the same reminder twice. Delivery is at-most-once;
// a failed send is logged and lost, never re-queued.
type ReminderService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	notifier notifier.Notifier
	interval time.Duration
	enabled  bool
	stopChan chan struct{}
}

// NewReminderService creates a new ReminderService.
func NewReminderService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, n notifier.Notifier, interval time.Duration, enabled bool) *ReminderService {
	return &ReminderService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: n,
		interval: interval,
		enabled:  enabled,
		stopChan: make(chan struct{}),
	}
}

// Start begins the dispatch loop in its own goroutine. It is a no-op
// when the service is disabled by configuration.
func (s *ReminderService) Start() {
	if !s.enabled {
		log.Println("[reminder] dispatcher disabled via DISABLE_REMINDERS")
		return
	}

	log.Printf("[reminder] starting dispatcher (interval: %s)", s.interval)

	go func() {
		// Drain once on startup so reminders missed while the
		// service was down go out immediately.
		s.Dispatch(time.Now())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Ticks are independent: a stalled drain does not
				// hold up the next one. The atomic claim keeps
				// overlapping drains from double-sending.
				go s.Dispatch(time.Now())
			case <-s.stopChan:
				log.Println("[reminder] dispatcher stopped")
				return
			}
		}
	}()
}

// Stop prevents any further ticks. An in-flight drain finishes its
// current iteration.
func (s *ReminderService) Stop() {
	close(s.stopChan)
}

// Dispatch runs one drain: it claims every reminder due at now, one at
// a time, and attempts a notification per claimed task. Errors are
// terminal at the log boundary so a bad task cannot stop the drain.
// Returns the number of claims made.
func (s *ReminderService) Dispatch(now time.Time) int {
	claimed := 0

	for claimed < constants.MaxClaimsPerTick {
		task, err := s.taskRepo.ClaimDueReminder(now)
		if err != nil {
			log.Printf("[reminder] claim failed: %v", err)
			return claimed
		}
		if task == nil {
			return claimed
		}
		claimed++

		user, err := s.userRepo.FindByID(task.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Orphan: the task is already marked sent, so it
				// will not be retried.
				log.Printf("[reminder] no owner for task %d, skipping", task.ID)
			} else {
				log.Printf("[reminder] failed to resolve owner for task %d: %v", task.ID, err)
			}
			continue
		}
		if user.Email == "" {
			log.Printf("[reminder] owner %d has no email, skipping task %d", user.ID, task.ID)
			continue
		}

		if err := s.notifier.TaskReminder(user, task); err != nil {
			log.Printf("[reminder] failed to send reminder for task %d: %v", task.ID, err)
			continue
		}

		log.Printf("[reminder] sent reminder for task %d to %s", task.ID, user.Email)
	}

	log.Printf("[reminder] claim cap reached (%d), deferring remainder to next tick", constants.MaxClaimsPerTick)
	return claimed
}
