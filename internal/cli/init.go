package cli

import (
	"fmt"

	"github.com/dcoutinho/tempora/internal/models"
)

type InitCmd struct {
	User  string   `help:"Name of the first user." default:"Daniel"`
	Tasks []string `help:"Starter task names." default:"Design,Estudo"`
}

func (c *InitCmd) Run(ctx *Context) error {
	tasks := make([]models.Task, 0, len(c.Tasks))
	for _, name := range c.Tasks {
		tasks = append(tasks, models.Task{Name: name, Records: []models.TimeRecord{}})
	}

	doc := &models.Document{
		Users: []models.User{
			{
				Name: c.User,
				Goals: &models.Goals{
					Daily:   "02:00:00",
					Weekly:  "14:00:00",
					Monthly: "60:00:00",
				},
				Tasks: tasks,
			},
		},
	}

	if err := ctx.Store.Init(doc); err != nil {
		return err
	}
	fmt.Printf("Initialized tempora data at: %s\n", ctx.Store.Path())
	return nil
}
