// Package notify holds the single user-visible status message and clears it
// after a fixed delay.
package notify

import (
	"sync"
	"time"
)

// DefaultClearAfter is how long a message stays visible.
const DefaultClearAfter = 4 * time.Second

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

type Notification struct {
	Message   string    `json:"message"`
	Level     Level     `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier keeps the latest notification. Each Notify replaces the previous
// message and arms its own clear timer; a timer only clears the message it
// was armed for.
type Notifier struct {
	clearAfter time.Duration

	mu      sync.Mutex
	current *Notification
	seq     uint64
	timer   *time.Timer
}

// New creates a Notifier. A non-positive clearAfter falls back to DefaultClearAfter.
func New(clearAfter time.Duration) *Notifier {
	if clearAfter <= 0 {
		clearAfter = DefaultClearAfter
	}
	return &Notifier{clearAfter: clearAfter}
}

func (n *Notifier) Info(message string) {
	n.Notify(message, LevelInfo)
}

func (n *Notifier) Error(message string) {
	n.Notify(message, LevelError)
}

func (n *Notifier) Notify(message string, level Level) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++
	seq := n.seq
	n.current = &Notification{Message: message, Level: level, CreatedAt: time.Now()}

	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.clearAfter, func() {
		n.clearIf(seq)
	})
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Clear removes the visible notification immediately.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++
	n.current = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notifier) clearIf(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	// A newer message has been posted since this timer was armed
	if n.seq != seq {
		return
	}
	n.current = nil
	n.timer = nil
}
