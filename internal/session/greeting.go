package session

import (
	"fmt"
	"time"
)

// Greeting formats a time-of-day greeting for the session's user.
// A nil session greets a guest.
func Greeting(s *Session, now time.Time) string {
	if s == nil || s.Username == "" {
		return "Welcome, Guest"
	}

	var timeGreeting string
	switch hour := now.Hour(); {
	case hour < 12:
		timeGreeting = "Good morning"
	case hour < 18:
		timeGreeting = "Good afternoon"
	default:
		timeGreeting = "Good evening"
	}

	return fmt.Sprintf("%s, %s", timeGreeting, s.Username)
}
