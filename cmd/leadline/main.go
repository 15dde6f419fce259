// cmd/leadline/main.go
//
// This is the entry point for the Leadline agent workspace.
// When you run `leadline` from a project directory, this is what executes.
//
// Flow:
// 1. Initialize the .leadline folder (leads/, logs/, registry/)
// 2. Build the app model from that directory's config and lead files
// 3. Run the TUI until the agent quits

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rcavanagh/leadline/internal/config"
	"github.com/rcavanagh/leadline/internal/tui"
)

func main() {
	// The current working directory is the "project" the agent is working in
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitLeadlineDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .leadline directory: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting workspace: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
	)

	// Run blocks until the agent quits
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running workspace: %v\n", err)
		os.Exit(1)
	}
}
