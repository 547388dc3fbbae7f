// Package cli holds the kong command implementations.
package cli

import (
	"fmt"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/models"
	"github.com/dcoutinho/tempora/internal/session"
	"github.com/dcoutinho/tempora/internal/storage"
)

type Context struct {
	Store    storage.Provider
	DataPath string
}

// sessionDefaults fills an unset user or task selection from the saved
// session, then falls back to the default user. Commands call this before
// lookups so the last tracked selection carries across invocations.
func (c *Context) sessionDefaults(user, task string) (string, string) {
	sess, err := session.NewStore(c.DataPath).Load()
	if err != nil {
		logger.Warn("Failed to load session", "error", err)
	}
	if user == "" {
		user = sess.ActiveUser
	}
	if user == "" {
		user = constants.DefaultUser
	}
	if task == "" {
		task = sess.ActiveTask
	}
	return user, task
}

func (c *Context) loadDocument() (*models.Document, error) {
	doc, err := c.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load data from %s: %w", c.Store.Path(), err)
	}
	return doc, nil
}

func resolveUser(doc *models.Document, name string) (*models.User, error) {
	user := doc.FindUser(name)
	if user == nil {
		return nil, fmt.Errorf("user %q not found", name)
	}
	return user, nil
}

func resolveTask(user *models.User, name string) (*models.Task, error) {
	task := user.FindTask(name)
	if task == nil {
		return nil, fmt.Errorf("task %q not found for user %q", name, user.Name)
	}
	return task, nil
}
