package analytics

import (
	"fmt"
	"time"
)

// RelativeTime renders a timestamp as a human-relative label against an
// explicit now. A nil timestamp means the user has never interviewed.
func RelativeTime(now time.Time, ts *time.Time) string {
	if ts == nil {
		return "no interview"
	}

	sec := int64(now.Sub(*ts).Round(time.Second).Seconds())
	min := sec / 60
	hrs := min / 60
	days := hrs / 24
	months := days / 30

	switch {
	case sec < 60:
		return "just now"
	case min < 60:
		return fmt.Sprintf("%d min ago", min)
	case hrs < 24:
		return fmt.Sprintf("%d hours ago", hrs)
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case months == 1:
		return "1 month ago"
	default:
		return fmt.Sprintf("%d months ago", months)
	}
}

// RelativeTimeString parses a backend timestamp string and renders it
// relative to now. Empty or unparseable strings read as no interview.
func RelativeTimeString(now time.Time, s *string) string {
	if s == nil || *s == "" {
		return "no interview"
	}
	t, err := parseCreatedAt(*s)
	if err != nil {
		return "no interview"
	}
	return RelativeTime(now, &t)
}
