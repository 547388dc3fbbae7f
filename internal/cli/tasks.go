package cli

import (
	"fmt"
	"time"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/models"
	"github.com/dcoutinho/tempora/internal/timefmt"
)

type TaskListCmd struct {
	User string `help:"User whose tasks to list." default:"Daniel"`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	doc, err := ctx.loadDocument()
	if err != nil {
		return err
	}
	user, err := resolveUser(doc, c.User)
	if err != nil {
		return err
	}

	if len(user.Tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	today := time.Now().Format(constants.DateFormat)
	fmt.Printf("Tasks for %s:\n", user.Name)
	for _, task := range user.Tasks {
		todayTime := "00:00:00"
		if rec := task.RecordFor(today); rec != nil {
			todayTime = rec.Time
		}
		fmt.Printf("  %-20s total %s  today %s\n",
			task.Name, timefmt.FormatDuration(task.TotalSeconds()), todayTime)
	}
	return nil
}

type TaskAddCmd struct {
	Name string `arg:"" help:"Task name."`
	User string `help:"User to add the task to." default:"Daniel"`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	doc, err := ctx.loadDocument()
	if err != nil {
		return err
	}
	user, err := resolveUser(doc, c.User)
	if err != nil {
		return err
	}
	if user.FindTask(c.Name) != nil {
		return fmt.Errorf("task %q already exists for user %q", c.Name, user.Name)
	}

	user.Tasks = append(user.Tasks, models.Task{Name: c.Name, Records: []models.TimeRecord{}})
	if err := ctx.Store.Save(doc); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	fmt.Printf("✓ Task added: %s\n", c.Name)
	return nil
}
