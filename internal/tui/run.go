package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/taskedit/internal/core/editor"
)

// Run shows the editor until the user picks an action that needs the host.
func Run(ctx context.Context, session *editor.Session, opts Options) (Action, error) {
	p := tea.NewProgram(
		New(session, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return Action{}, fmt.Errorf("run editor: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Action{}, fmt.Errorf("run editor: unexpected model %T", final)
	}
	return m.Pending(), nil
}
