package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dcoutinho/tempora/internal/engine"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/session"
	"github.com/dcoutinho/tempora/internal/tracker"
	"github.com/dcoutinho/tempora/internal/tui"
)

type TrackCmd struct {
	User string `help:"User to track time for. Defaults to the saved session's user." optional:""`
}

func (c *TrackCmd) Run(ctx *Context) error {
	userName, _ := ctx.sessionDefaults(c.User, "")

	doc, err := ctx.loadDocument()
	if err != nil {
		return err
	}
	if _, err := resolveUser(doc, userName); err != nil {
		return err
	}

	trk := tracker.New(engine.New(ctx.Store), doc, userName)

	program := tea.NewProgram(tui.NewModel(trk, doc, userName), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	model, ok := final.(tui.Model)
	if !ok {
		return nil
	}

	// Remember the selection so the next report/records command defaults to
	// what was just tracked.
	sess := session.Session{ActiveUser: userName, ActiveTask: model.SelectedTaskName()}
	if err := session.NewStore(ctx.DataPath).Save(sess); err != nil {
		logger.Warn("Failed to save session", "error", err)
	}

	// A stop on quit can fail to persist; the dashboard is gone by then, so
	// the error is reported here.
	return model.Err()
}
