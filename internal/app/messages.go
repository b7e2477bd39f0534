package app

import (
	"encoding/json"
	"time"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
	"github.com/mocklingo/admin-dashboard-tui/internal/services"
	"github.com/mocklingo/admin-dashboard-tui/internal/session"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// RefreshTickMsg fires on the configured data refresh interval.
type RefreshTickMsg struct {
	Time time.Time
}

// WindowSizeMsg is sent when the terminal window is resized.
type WindowSizeMsg struct {
	Width  int
	Height int
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SessionRestoredMsg signals that the persisted session was read at boot.
type SessionRestoredMsg struct {
	Session session.Session
}

// LoginSubmitMsg requests a login attempt with the given credentials.
type LoginSubmitMsg struct {
	Username string
	Password string
}

// LoginFinishedMsg signals that a login attempt completed, successfully
// or not; the resulting session carries the outcome.
type LoginFinishedMsg struct {
	Session session.Session
}

// LogoutMsg requests ending the current session.
type LogoutMsg struct{}

// StatsLoadedMsg contains the headline dashboard counters.
type StatsLoadedMsg struct {
	TotalUsers     int64
	TotalTokens    int64
	TotalFeedbacks int64
	ActiveSessions json.RawMessage
	FromCache      bool
	Error          error
}

// UsageLoadedMsg contains fetched usage records and derived series.
type UsageLoadedMsg struct {
	Records []models.UsageRecord
	Daily   []models.DailyBucket
	Hourly  []models.HourlyBucket
	Error   error
}

// UsersLoadedMsg contains the user activity list.
type UsersLoadedMsg struct {
	Users []models.UserRow
	Error error
}

// FeedbacksLoadedMsg contains the interview feedback list.
type FeedbacksLoadedMsg struct {
	Feedbacks []models.Feedback
	Error     error
}

// TrendsLoadedMsg contains the weekly registration rollup.
type TrendsLoadedMsg struct {
	Weekly []models.WeeklyBucket
	Error  error
}

// ServiceUsageLoadedMsg contains per-service interview counts and shares.
type ServiceUsageLoadedMsg struct {
	Usages []models.ServiceUsage
	Shares []models.PercentageSlice
	Error  error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "stats", "usage", "users", "feedback", "trends"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// NotificationAddedMsg confirms a notification was added.
type NotificationAddedMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SessionChangedEventMsg wraps a session change event.
type SessionChangedEventMsg struct {
	Event services.SessionChangedEvent
}

// SessionExpiredEventMsg wraps a session expiry event.
type SessionExpiredEventMsg struct {
	Event services.SessionExpiredEvent
}

// ErrorEventMsg wraps an error event from services.
type ErrorEventMsg struct {
	Event services.ErrorEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// QuitMsg requests the application to quit.
type QuitMsg struct{}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}
