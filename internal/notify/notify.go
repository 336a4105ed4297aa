// Package notify carries transient user-facing messages from the engine to
// whatever surface hosts it. Notifications are advisory; no caller waits on
// them being shown.
package notify

import (
	"time"

	"github.com/redlinehq/redline/internal/log"
)

// Severity orders notifications from routine to urgent.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// String returns the severity's display name.
func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// DefaultDuration is how long a notification stays visible when the sender
// does not say otherwise.
const DefaultDuration = 3 * time.Second

// Notification is one transient message.
type Notification struct {
	Message  string
	Severity Severity
	Duration time.Duration
}

// Notifier shows notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(Notification)

// Notify calls f.
func (f Func) Notify(n Notification) { f(n) }

// Logged returns a notifier that records messages to the session log.
// Hosts without a visible surface use it as a fallback.
func Logged() Notifier {
	return Func(func(n Notification) {
		log.Info(log.CatCheck, "notification",
			"severity", n.Severity.String(), "message", n.Message)
	})
}

// Fill applies the default duration to notifications that carry none.
func Fill(n Notification) Notification {
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}
	return n
}
