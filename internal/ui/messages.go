package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Common message types shared across UI models
type reportCompleteMsg struct {
	snapshot *Snapshot
}

type reportErrorMsg struct {
	err error
}

type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// CreateReportCommand creates a tea command that loads and aggregates a snapshot
func CreateReportCommand(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return reportErrorMsg{err: errors.New("no report source configured")}
		}

		snapshot, err := load(context.Background())
		if err != nil {
			return reportErrorMsg{err: err}
		}
		if snapshot == nil || snapshot.Report == nil {
			return reportErrorMsg{err: errors.New("report source returned no report")}
		}

		return reportCompleteMsg{snapshot: snapshot}
	}
}
