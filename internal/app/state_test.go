package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

func TestNewAppState(t *testing.T) {
	s := NewAppState()
	if s == nil {
		t.Fatal("NewAppState returned nil")
	}
	if len(s.UsageRecords) != 0 {
		t.Error("UsageRecords should be empty")
	}
	if s.AnyLoading() {
		t.Error("Nothing should be loading initially")
	}
}

func TestAppState_SetLoading(t *testing.T) {
	s := NewAppState()

	s.SetLoading("usage", true)
	if !s.Loading.Usage {
		t.Error("Usage loading should be true")
	}
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true")
	}

	s.SetLoading("usage", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}

	resources := s.GetLoadingResources()
	if len(resources) != 0 {
		t.Errorf("GetLoadingResources should be empty, got %v", resources)
	}

	s.SetLoading("trends", true)
	resources = s.GetLoadingResources()
	if len(resources) != 1 || resources[0] != "trends" {
		t.Errorf("GetLoadingResources should contain trends, got %v", resources)
	}

	// Unknown resources are ignored.
	s.SetLoading("bogus", true)
	if len(s.GetLoadingResources()) != 1 {
		t.Error("Unknown resource should not register")
	}
}

func TestAppState_Stats(t *testing.T) {
	s := NewAppState()

	if !s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should start zero")
	}

	s.SetStats(DashboardStats{
		TotalUsers:     42,
		TotalTokens:    1000000,
		TotalFeedbacks: 7,
		ActiveSessions: json.RawMessage(`3`),
	})

	got := s.GetStats()
	if got.TotalUsers != 42 {
		t.Errorf("TotalUsers = %d, want 42", got.TotalUsers)
	}
	if got.TotalTokens != 1000000 {
		t.Errorf("TotalTokens = %d, want 1000000", got.TotalTokens)
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set after SetStats")
	}
	if s.TimeSinceUpdate() < 0 {
		t.Error("TimeSinceUpdate should be non-negative")
	}
}

func TestAppState_ActiveSessionsDisplay(t *testing.T) {
	s := NewAppState()

	if got := s.ActiveSessionsDisplay(); got != "0" {
		t.Errorf("empty display = %q, want 0", got)
	}

	s.SetStats(DashboardStats{ActiveSessions: json.RawMessage(` 12 `)})
	if got := s.ActiveSessionsDisplay(); got != "12" {
		t.Errorf("display = %q, want 12", got)
	}
}

func TestAppState_Usage(t *testing.T) {
	s := NewAppState()

	records := []models.UsageRecord{
		{UserName: "alice", TotalInputTokens: 100, TotalOutputTokens: 50},
	}
	daily := []models.DailyBucket{{Date: "Jan 01", Tokens: 150}}
	hourly := []models.HourlyBucket{{Hour: "01:00", Tokens: 150}}

	s.SetUsage(records, daily, hourly)

	gotRecords, gotDaily, gotHourly := s.GetUsage()
	if len(gotRecords) != 1 || gotRecords[0].UserName != "alice" {
		t.Errorf("records = %v", gotRecords)
	}
	if len(gotDaily) != 1 || gotDaily[0].Date != "Jan 01" {
		t.Errorf("daily = %v", gotDaily)
	}
	if len(gotHourly) != 1 || gotHourly[0].Hour != "01:00" {
		t.Errorf("hourly = %v", gotHourly)
	}
}

func TestAppState_UsersAndFeedbacks(t *testing.T) {
	s := NewAppState()

	s.SetUsers([]models.UserRow{{UserID: 1, FullName: "Alice"}})
	users := s.GetUsers()
	if len(users) != 1 || users[0].FullName != "Alice" {
		t.Errorf("users = %v", users)
	}

	// Returned slice is a copy.
	users[0].FullName = "Mallory"
	if s.GetUsers()[0].FullName != "Alice" {
		t.Error("GetUsers should return a copy")
	}

	s.SetFeedbacks([]models.Feedback{{ID: 9, Rating: 4}})
	feedbacks := s.GetFeedbacks()
	if len(feedbacks) != 1 || feedbacks[0].Rating != 4 {
		t.Errorf("feedbacks = %v", feedbacks)
	}
}

func TestAppState_AnalyticsData(t *testing.T) {
	s := NewAppState()

	s.SetWeekly([]models.WeeklyBucket{{Name: "2024-01-01", Users: 5}})
	weekly := s.GetWeekly()
	if len(weekly) != 1 || weekly[0].Users != 5 {
		t.Errorf("weekly = %v", weekly)
	}

	usages := []models.ServiceUsage{{Type: "technical", Count: 3}}
	shares := []models.PercentageSlice{{Name: "technical", Value: 100}}
	s.SetServiceUsage(usages, shares)

	gotUsages, gotShares := s.GetServiceUsage()
	if len(gotUsages) != 1 || gotUsages[0].Type != "technical" {
		t.Errorf("usages = %v", gotUsages)
	}
	if len(gotShares) != 1 || gotShares[0].Value != 100 {
		t.Errorf("shares = %v", gotShares)
	}
}

func TestAppState_Notifications(t *testing.T) {
	s := NewAppState()

	id := s.AddNotification(NotificationSuccess, "saved", time.Minute)
	if id == "" {
		t.Fatal("AddNotification returned empty id")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 || notifs[0].Message != "saved" {
		t.Errorf("notifications = %v", notifs)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("notification should be removed")
	}
}

func TestAppState_NotificationCap(t *testing.T) {
	s := NewAppState()

	for i := 0; i < 15; i++ {
		s.AddNotification(NotificationInfo, "n", time.Minute)
	}

	if got := len(s.GetNotifications()); got != 10 {
		t.Errorf("notification count = %d, want 10", got)
	}
}

func TestAppState_ExpiredNotifications(t *testing.T) {
	s := NewAppState()

	s.AddNotification(NotificationInfo, "short", time.Nanosecond)
	s.AddNotification(NotificationInfo, "long", time.Hour)
	s.AddNotification(NotificationInfo, "sticky", 0)

	time.Sleep(time.Millisecond)
	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifs))
	}
	for _, n := range notifs {
		if n.Message == "short" {
			t.Error("expired notification should be cleared")
		}
	}

	s.ClearAllNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearAllNotifications should empty the list")
	}
}

func TestAppState_LoadingNotification(t *testing.T) {
	s := NewAppState()

	s.SetLoadingNotification("Loading...")
	notifs := s.GetNotifications()
	if len(notifs) != 1 || notifs[0].Type != NotificationLoading {
		t.Fatalf("expected one loading notification, got %v", notifs)
	}

	// Setting again replaces rather than stacks.
	s.SetLoadingNotification("Refreshing...")
	notifs = s.GetNotifications()
	if len(notifs) != 1 || notifs[0].Message != "Refreshing..." {
		t.Errorf("loading notification should be replaced, got %v", notifs)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		nt   NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
	}
	for _, tt := range tests {
		if got := tt.nt.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.nt, got, tt.want)
		}
	}
}
