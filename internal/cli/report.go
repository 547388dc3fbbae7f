package cli

import (
	"fmt"
	"time"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/report"
)

type ReportCmd struct {
	Task   string `arg:"" help:"Task to report on. Defaults to the saved session's task." optional:""`
	User   string `help:"User owning the task. Defaults to the saved session's user." optional:""`
	Period string `help:"Report window." enum:"daily,weekly,monthly" default:"weekly"`
}

func (c *ReportCmd) Run(ctx *Context) error {
	userName, taskName := ctx.sessionDefaults(c.User, c.Task)
	if taskName == "" {
		return fmt.Errorf("no task given and no saved session to default from")
	}

	doc, err := ctx.loadDocument()
	if err != nil {
		return err
	}
	user, err := resolveUser(doc, userName)
	if err != nil {
		return err
	}
	task, err := resolveTask(user, taskName)
	if err != nil {
		return err
	}

	rep := report.Aggregate(user, task, constants.Period(c.Period), time.Now())
	fmt.Printf("%s report for %s / %s\n", rep.Period, user.Name, task.Name)
	fmt.Printf("  tracked       %s\n", rep.FormattedTotal)
	fmt.Printf("  goal          %s\n", rep.GoalDisplay)
	fmt.Printf("  productivity  %d%%\n", rep.ProductivityPercent)
	return nil
}
