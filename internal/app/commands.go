package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mocklingo/admin-dashboard-tui/internal/analytics"
	"github.com/mocklingo/admin-dashboard-tui/internal/db"
	"github.com/mocklingo/admin-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// trendWindowDays is the registration trend window requested from
	// the backend.
	trendWindowDays = 30
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// refreshTickCmd schedules the next periodic data refresh.
func refreshTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshTickMsg{Time: t}
	})
}

// restoreSessionCmd reads the persisted session at boot.
func restoreSessionCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.RestoreSession()
		return SessionRestoredMsg{Session: mgr.Session()}
	}
}

// loginCmd attempts a login with the given credentials.
func loginCmd(mgr *services.Manager, username, password string) tea.Cmd {
	return func() tea.Msg {
		mgr.Login(context.Background(), username, password)
		return LoginFinishedMsg{Session: mgr.Session()}
	}
}

// logoutCmd ends the current session.
func logoutCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Logout()
		return SessionChangedEventMsg{
			Event: services.SessionChangedEvent{Session: mgr.Session()},
		}
	}
}

// loadAllDataCmd returns a command that loads every dashboard resource.
func loadAllDataCmd(mgr *services.Manager) tea.Cmd {
	return tea.Batch(
		loadStatsCmd(mgr),
		loadUsageCmd(mgr),
		loadUsersCmd(mgr),
		loadFeedbacksCmd(mgr),
		loadTrendsCmd(mgr),
		loadServiceUsageCmd(mgr),
	)
}

// loadCachedDataCmd renders the last fetched data before the first
// network round-trip completes.
func loadCachedDataCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		records := mgr.CachedUsage()
		if len(records) == 0 {
			return nil
		}

		now := time.Now()
		msg := StatsLoadedMsg{FromCache: true}
		if n, ok := mgr.CachedStat(db.StatTotalUsers); ok {
			msg.TotalUsers = n
		}
		if n, ok := mgr.CachedStat(db.StatTotalTokens); ok {
			msg.TotalTokens = n
		}
		if n, ok := mgr.CachedStat(db.StatTotalFeedbacks); ok {
			msg.TotalFeedbacks = n
		}

		return tea.BatchMsg{
			func() tea.Msg { return msg },
			func() tea.Msg {
				return UsageLoadedMsg{
					Records: records,
					Daily:   analytics.DailySeries(records, now),
					Hourly:  analytics.HourlySeries(records, now),
				}
			},
		}
	}
}

// loadStatsCmd fetches the headline dashboard counters.
func loadStatsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		client := mgr.Client()

		totalUsers, err := client.TotalUsers(ctx)
		if err != nil {
			mgr.HandleAPIError(err)
			return StatsLoadedMsg{Error: err}
		}
		totalTokens, err := client.TokenUsageStats(ctx)
		if err != nil {
			mgr.HandleAPIError(err)
			return StatsLoadedMsg{Error: err}
		}
		totalFeedbacks, err := client.TotalFeedbacks(ctx)
		if err != nil {
			mgr.HandleAPIError(err)
			return StatsLoadedMsg{Error: err}
		}
		activeSessions, err := client.ActiveSessions(ctx)
		if err != nil {
			mgr.HandleAPIError(err)
			return StatsLoadedMsg{Error: err}
		}

		mgr.CacheStat(db.StatTotalUsers, totalUsers)
		mgr.CacheStat(db.StatTotalTokens, totalTokens)
		mgr.CacheStat(db.StatTotalFeedbacks, totalFeedbacks)

		return StatsLoadedMsg{
			TotalUsers:     totalUsers,
			TotalTokens:    totalTokens,
			TotalFeedbacks: totalFeedbacks,
			ActiveSessions: activeSessions,
		}
	}
}

// loadUsageCmd fetches usage records and derives the chart series.
func loadUsageCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		records, err := mgr.Client().TokenUsage(context.Background())
		if err != nil {
			mgr.HandleAPIError(err)
			return UsageLoadedMsg{Error: err}
		}

		mgr.CacheUsage(records)

		now := time.Now()
		return UsageLoadedMsg{
			Records: records,
			Daily:   analytics.DailySeries(records, now),
			Hourly:  analytics.HourlySeries(records, now),
		}
	}
}

// loadUsersCmd fetches the user activity list.
func loadUsersCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		users, err := mgr.Client().UserList(context.Background())
		if err != nil {
			mgr.HandleAPIError(err)
			return UsersLoadedMsg{Error: err}
		}
		return UsersLoadedMsg{Users: users}
	}
}

// loadFeedbacksCmd fetches the interview feedback list.
func loadFeedbacksCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		feedbacks, err := mgr.Client().InterviewFeedbacks(context.Background())
		if err != nil {
			mgr.HandleAPIError(err)
			return FeedbacksLoadedMsg{Error: err}
		}
		return FeedbacksLoadedMsg{Feedbacks: feedbacks}
	}
}

// loadTrendsCmd fetches registration trends and rolls them into weeks.
func loadTrendsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		trends, err := mgr.Client().UserTrends(context.Background(), trendWindowDays)
		if err != nil {
			mgr.HandleAPIError(err)
			return TrendsLoadedMsg{Error: err}
		}
		return TrendsLoadedMsg{Weekly: analytics.WeeklyRollup(trends)}
	}
}

// loadServiceUsageCmd fetches per-service counts and their shares.
func loadServiceUsageCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		usages, err := mgr.Client().ServiceTrends(context.Background())
		if err != nil {
			mgr.HandleAPIError(err)
			return ServiceUsageLoadedMsg{Error: err}
		}
		shares, err := analytics.Percentages(usages)
		if err != nil {
			return ServiceUsageLoadedMsg{Error: err}
		}
		return ServiceUsageLoadedMsg{Usages: usages, Shares: shares}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// WaitForServiceEvent is the public version for use in models.
func WaitForServiceEvent(ch <-chan services.ServiceEvent) tea.Cmd {
	return waitForServiceEventCmd(ch)
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// delayedCmd returns a command that sends a message after a delay.
func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}

// batchCmds combines multiple commands into one.
func batchCmds(cmds ...tea.Cmd) tea.Cmd {
	return tea.Batch(cmds...)
}

// quitCmd returns a command that quits the application.
func quitCmd() tea.Cmd {
	return tea.Quit
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// RestoreSession returns a command that restores the persisted session.
func (c *Commands) RestoreSession() tea.Cmd {
	return restoreSessionCmd(c.manager)
}

// Login returns a command that attempts a login.
func (c *Commands) Login(username, password string) tea.Cmd {
	return loginCmd(c.manager, username, password)
}

// Logout returns a command that ends the session.
func (c *Commands) Logout() tea.Cmd {
	return logoutCmd(c.manager)
}

// LoadAllData returns a command that loads every dashboard resource.
func (c *Commands) LoadAllData() tea.Cmd {
	return loadAllDataCmd(c.manager)
}

// LoadCachedData returns a command that renders cached data at boot.
func (c *Commands) LoadCachedData() tea.Cmd {
	return loadCachedDataCmd(c.manager)
}

// LoadStats returns a command that loads the headline counters.
func (c *Commands) LoadStats() tea.Cmd {
	return loadStatsCmd(c.manager)
}

// LoadUsage returns a command that loads token usage data.
func (c *Commands) LoadUsage() tea.Cmd {
	return loadUsageCmd(c.manager)
}

// LoadUsers returns a command that loads the user list.
func (c *Commands) LoadUsers() tea.Cmd {
	return loadUsersCmd(c.manager)
}

// LoadFeedbacks returns a command that loads interview feedbacks.
func (c *Commands) LoadFeedbacks() tea.Cmd {
	return loadFeedbacksCmd(c.manager)
}

// LoadTrends returns a command that loads the weekly registration rollup.
func (c *Commands) LoadTrends() tea.Cmd {
	return loadTrendsCmd(c.manager)
}

// LoadServiceUsage returns a command that loads per-service counts.
func (c *Commands) LoadServiceUsage() tea.Cmd {
	return loadServiceUsageCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return quitCmd()
}

// Delayed returns a command that sends a message after a delay.
func (c *Commands) Delayed(delay time.Duration, msg tea.Msg) tea.Cmd {
	return delayedCmd(delay, msg)
}

// Batch combines multiple commands into one.
func (c *Commands) Batch(cmds ...tea.Cmd) tea.Cmd {
	return batchCmds(cmds...)
}
