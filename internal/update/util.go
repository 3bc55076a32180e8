package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/levelup/internal/scheduler"
)

const maxNotifications = 40

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}

// toast sets the status line and logs a notification in one go.
func (m *Model) toast(title, body string, isErr bool) {
	m.Status = StatusBar{Text: body, IsError: isErr}
	m.notify(title, body, levelFromError(isErr))
}

// after schedules a timer on the engine. Without an engine the timer never fires.
func (m *Model) after(id string, kind scheduler.Kind, d time.Duration) {
	if m.Scheduler == nil {
		return
	}
	if err := m.Scheduler.After(id, kind, d); err != nil {
		m.log.WithError(err).WithField("timer", id).Warn("schedule timer failed")
	}
}

func (m *Model) cancel(id string) {
	if m.Scheduler == nil {
		return
	}
	m.Scheduler.Cancel(id)
}

// cycle moves i by delta within [0, n), wrapping at both ends.
func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// clamp keeps v within [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func moveCursor(cursor int, key string, n int) int {
	switch key {
	case "j", "down":
		return clamp(cursor+1, 0, max(n-1, 0))
	case "k", "up":
		return clamp(cursor-1, 0, max(n-1, 0))
	}
	return cursor
}
