// Package main is the entry point for the MockLingo admin dashboard TUI.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mocklingo/admin-dashboard-tui/internal/app"
	"github.com/mocklingo/admin-dashboard-tui/internal/config"
	"github.com/mocklingo/admin-dashboard-tui/internal/services"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/login"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/tabs/analytics"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/tabs/dashboard"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/tabs/roles"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/tabs/tokens"
	"github.com/mocklingo/admin-dashboard-tui/internal/ui/tabs/users"
	"github.com/mocklingo/admin-dashboard-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// The manager owns the session store, API client, usage cache and
	// session file watcher.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Each tab reads from the shared application state.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		dashboard.New(state),
		users.New(state),
		tokens.New(state),
		analytics.New(state),
		roles.New(state),
	})
	model.SetLogin(login.New(svcManager))
	model.SetRefreshInterval(cfg.RefreshInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`MockLingo Admin Dashboard TUI - platform monitoring console

Usage:
  madt [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-5             Switch between tabs (Dashboard, Users, Tokens, Analytics, Roles)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  r               Refresh data
  Ctrl+L          Log out
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  MOCKLINGO_API_URL           Backend base URL (required)
  MOCKLINGO_SESSION_PATH      Session file path
  MOCKLINGO_CACHE_DB_PATH     SQLite usage cache path
  MOCKLINGO_REQUEST_TIMEOUT   HTTP request timeout (default: 30s)
  MOCKLINGO_REFRESH_INTERVAL  Data refresh interval (default: 60s)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/mocklingo/admin-tui/.env
  - ~/.config/mocklingo/.env`)
}
