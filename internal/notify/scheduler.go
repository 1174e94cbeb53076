// Package notify holds the terminal implementations of the engine's
// notification, presence and sound collaborators.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Notification is delivered when a scheduled time arrives. It doubles as a
// tea.Msg when the send function is a Program's Send.
type Notification struct {
	At    time.Time
	Title string
	Body  string
}

// Scheduler delivers notifications at their due time through send. Timers run
// on their own goroutines, so send must be safe to call from any goroutine.
type Scheduler struct {
	send func(Notification)
	now  func() time.Time
	log  zerolog.Logger

	mu     sync.Mutex
	timers []*time.Timer
}

func NewScheduler(send func(Notification), log zerolog.Logger) *Scheduler {
	return &Scheduler{send: send, now: time.Now, log: log}
}

// Schedule queues a notification. A time already in the past fires at once.
func (s *Scheduler) Schedule(at time.Time, title, body string) error {
	n := Notification{At: at, Title: title, Body: body}
	delay := at.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers = append(s.timers, time.AfterFunc(delay, func() { s.send(n) }))
	s.log.Debug().Str("title", title).Dur("in", delay).Msg("notification scheduled")
	return nil
}

// CancelAll drops every notification that has not fired yet.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

// Pending reports how many scheduled notifications have not been cancelled.
// Fired ones are included until the next CancelAll.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
