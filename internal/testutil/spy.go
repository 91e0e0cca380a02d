package testutil

import (
	"sync"

	"cyberdl/internal/core"
)

// Notification is one recorded Notify call.
type Notification struct {
	Title       string
	Description string
	Kind        core.NotifyKind
}

// SpyNotifier records notifications for assertions.
type SpyNotifier struct {
	mu            sync.Mutex
	Notifications []Notification
}

func (s *SpyNotifier) Notify(title, description string, kind core.NotifyKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = append(s.Notifications, Notification{Title: title, Description: description, Kind: kind})
}

// Last returns the most recent notification, or nil.
func (s *SpyNotifier) Last() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Notifications) == 0 {
		return nil
	}
	n := s.Notifications[len(s.Notifications)-1]
	return &n
}

// SpyPrompter counts login prompt requests.
type SpyPrompter struct {
	mu    sync.Mutex
	Calls int
}

func (s *SpyPrompter) RequestLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
}
