// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Stats    bool
	Usage    bool
	Users    bool
	Feedback bool
	Trends   bool
}

// DashboardStats holds the headline counters of the dashboard tab.
type DashboardStats struct {
	TotalUsers     int64
	TotalTokens    int64
	TotalFeedbacks int64
	ActiveSessions json.RawMessage
	FromCache      bool
}

// AppState is the shared mutable state behind all tabs.
type AppState struct {
	mu sync.RWMutex

	Stats         DashboardStats
	UsageRecords  []models.UsageRecord
	Daily         []models.DailyBucket
	Hourly        []models.HourlyBucket
	Weekly        []models.WeeklyBucket
	ServiceUsages []models.ServiceUsage
	ServiceShares []models.PercentageSlice
	Users         []models.UserRow
	Feedbacks     []models.Feedback

	Loading LoadingState

	LastUpdated time.Time

	notifications []Notification
}

func NewAppState() *AppState {
	return &AppState{
		notifications: make([]Notification, 0),
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *AppState) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "stats":
		s.Loading.Stats = loading
	case "usage":
		s.Loading.Usage = loading
	case "users":
		s.Loading.Users = loading
	case "feedback":
		s.Loading.Feedback = loading
	case "trends":
		s.Loading.Trends = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *AppState) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Stats ||
		s.Loading.Usage ||
		s.Loading.Users ||
		s.Loading.Feedback ||
		s.Loading.Trends
}

// GetLoadingResources returns a list of currently loading resources.
func (s *AppState) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Stats {
		resources = append(resources, "stats")
	}
	if s.Loading.Usage {
		resources = append(resources, "usage")
	}
	if s.Loading.Users {
		resources = append(resources, "users")
	}
	if s.Loading.Feedback {
		resources = append(resources, "feedback")
	}
	if s.Loading.Trends {
		resources = append(resources, "trends")
	}
	return resources
}

// SetStats updates the headline counters.
func (s *AppState) SetStats(stats DashboardStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats = stats
	s.LastUpdated = time.Now()
}

// GetStats returns the current headline counters.
func (s *AppState) GetStats() DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}

// ActiveSessionsDisplay renders the active-session payload for the
// dashboard. The backend does not commit to a shape, so anything that
// is not a bare number is shown as-is.
func (s *AppState) ActiveSessionsDisplay() string {
	s.mu.RLock()
	raw := s.Stats.ActiveSessions
	s.mu.RUnlock()

	if len(raw) == 0 {
		return "0"
	}
	return strings.TrimSpace(string(raw))
}

// SetUsage stores fetched usage records with their derived series.
func (s *AppState) SetUsage(records []models.UsageRecord, daily []models.DailyBucket, hourly []models.HourlyBucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UsageRecords = records
	s.Daily = daily
	s.Hourly = hourly
	s.LastUpdated = time.Now()
}

// GetUsage returns the usage records with their derived series.
func (s *AppState) GetUsage() ([]models.UsageRecord, []models.DailyBucket, []models.HourlyBucket) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.UsageRecords, s.Daily, s.Hourly
}

// SetWeekly stores the weekly registration rollup.
func (s *AppState) SetWeekly(weekly []models.WeeklyBucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Weekly = weekly
	s.LastUpdated = time.Now()
}

// GetWeekly returns the weekly registration rollup.
func (s *AppState) GetWeekly() []models.WeeklyBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Weekly
}

// SetServiceUsage stores the per-service interview counts and shares.
func (s *AppState) SetServiceUsage(usages []models.ServiceUsage, shares []models.PercentageSlice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ServiceUsages = usages
	s.ServiceShares = shares
	s.LastUpdated = time.Now()
}

// GetServiceUsage returns the per-service interview counts and shares.
func (s *AppState) GetServiceUsage() ([]models.ServiceUsage, []models.PercentageSlice) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ServiceUsages, s.ServiceShares
}

// SetUsers updates the user activity list.
func (s *AppState) SetUsers(users []models.UserRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users = users
	s.LastUpdated = time.Now()
}

// GetUsers returns a copy of the user activity list.
func (s *AppState) GetUsers() []models.UserRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.UserRow, len(s.Users))
	copy(users, s.Users)
	return users
}

// SetFeedbacks updates the interview feedback list.
func (s *AppState) SetFeedbacks(feedbacks []models.Feedback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Feedbacks = feedbacks
	s.LastUpdated = time.Now()
}

// GetFeedbacks returns a copy of the interview feedback list.
func (s *AppState) GetFeedbacks() []models.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feedbacks := make([]models.Feedback, len(s.Feedbacks))
	copy(feedbacks, s.Feedbacks)
	return feedbacks
}

// AddNotification adds a new notification and returns its ID.
func (s *AppState) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *AppState) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *AppState) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *AppState) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Clear expired inline when reading
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *AppState) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *AppState) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *AppState) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time the state was updated.
func (s *AppState) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *AppState) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
