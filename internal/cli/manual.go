package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dcoutinho/tempora/internal/engine"
	"github.com/dcoutinho/tempora/internal/timefmt"
)

type ManualCmd struct {
	User string `help:"User owning the task." default:"Daniel"`
	Task string `help:"Task to record time for." optional:""`
	Date string `help:"Date of the entry (YYYY-MM-DD)." optional:""`
	Time string `help:"Duration to add (HH:MM)." optional:""`
}

func (c *ManualCmd) Run(ctx *Context) error {
	doc, err := ctx.loadDocument()
	if err != nil {
		return err
	}
	eng := engine.New(ctx.Store)

	if c.Task == "" || c.Date == "" || c.Time == "" {
		if c.Date == "" {
			c.Date = eng.Today()
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Task").
					Value(&c.Task),
				huh.NewInput().
					Title("Date (YYYY-MM-DD)").
					Value(&c.Date),
				huh.NewInput().
					Title("Duration (HH:MM)").
					Placeholder("01:30").
					Value(&c.Time),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := eng.RecordManual(doc, c.User, c.Task, c.Date, c.Time); err != nil {
		return err
	}

	fmt.Printf("✓ Recorded %s on %s for %s\n", timefmt.FormatClock(c.Time), c.Date, c.Task)
	return nil
}
