package cli

import (
	"fmt"

	"github.com/dcoutinho/tempora/internal/report"
)

type RecordListCmd struct {
	Task string `arg:"" help:"Task whose records to list. Defaults to the saved session's task." optional:""`
	User string `help:"User owning the task. Defaults to the saved session's user." optional:""`
	From string `help:"Earliest date to include (YYYY-MM-DD)." optional:""`
	To   string `help:"Latest date to include (YYYY-MM-DD)." optional:""`
	Sort string `help:"Sort key." enum:"date,duration" default:"date"`
	Desc bool   `help:"Sort descending."`
}

func (c *RecordListCmd) Run(ctx *Context) error {
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

	records := report.FilterRange(task.Records, c.From, c.To)
	records = report.SortRecords(records, report.SortKey(c.Sort), c.Desc)

	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("  %s  %s\n", rec.Date, rec.Time)
	}
	return nil
}
