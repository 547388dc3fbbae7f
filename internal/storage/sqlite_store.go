package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dcoutinho/tempora/internal/models"
)

// SQLiteStore is an alternative backend keeping the same whole-document
// read/rewrite contract as the JSON store. Rewrites run inside a transaction,
// so readers never observe a half-written document.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL UNIQUE,
	goal_daily   TEXT,
	goal_weekly  TEXT,
	goal_monthly TEXT
);
CREATE TABLE IF NOT EXISTS tasks (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name    TEXT NOT NULL,
	UNIQUE(user_id, name)
);
CREATE TABLE IF NOT EXISTS records (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	date    TEXT NOT NULL,
	time    TEXT NOT NULL,
	UNIQUE(task_id, date)
);
`

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", ErrStoreUnavailable, err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Init(doc *models.Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %v", ErrStoreUnavailable, err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("%w: failed to create schema: %v", ErrStoreUnavailable, err)
	}

	return s.Save(doc)
}

func (s *SQLiteStore) Load() (*models.Document, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrStoreUnavailable, s.path, err)
	}
	if err := s.open(); err != nil {
		return nil, err
	}

	doc := &models.Document{}

	userRows, err := s.db.Query(`SELECT id, name, goal_daily, goal_weekly, goal_monthly FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
	}
	defer userRows.Close()

	userIDs := make([]int64, 0)
	for userRows.Next() {
		var (
			id                    int64
			name                  string
			daily, weekly, monthly sql.NullString
		)
		if err := userRows.Scan(&id, &name, &daily, &weekly, &monthly); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
		}
		user := models.User{Name: name}
		if daily.String != "" || weekly.String != "" || monthly.String != "" {
			user.Goals = &models.Goals{
				Daily:   daily.String,
				Weekly:  weekly.String,
				Monthly: monthly.String,
			}
		}
		doc.Users = append(doc.Users, user)
		userIDs = append(userIDs, id)
	}
	if err := userRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
	}

	for i, userID := range userIDs {
		tasks, err := s.loadTasks(userID)
		if err != nil {
			return nil, err
		}
		doc.Users[i].Tasks = tasks
	}

	return doc, nil
}

func (s *SQLiteStore) loadTasks(userID int64) ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT id, name FROM tasks WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
	}
	defer rows.Close()

	var tasks []models.Task
	var taskIDs []int64
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
		}
		tasks = append(tasks, models.Task{Name: name})
		taskIDs = append(taskIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
	}

	for i, taskID := range taskIDs {
		records, err := s.loadRecords(taskID)
		if err != nil {
			return nil, err
		}
		tasks[i].Records = records
	}

	return tasks, nil
}

func (s *SQLiteStore) loadRecords(taskID int64) ([]models.TimeRecord, error) {
	rows, err := s.db.Query(`SELECT date, time FROM records WHERE task_id = ? ORDER BY id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
	}
	defer rows.Close()

	var records []models.TimeRecord
	for rows.Next() {
		var rec models.TimeRecord
		if err := rows.Scan(&rec.Date, &rec.Time); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
	}

	return records, nil
}

// Save rewrites every table from the document inside one transaction.
func (s *SQLiteStore) Save(doc *models.Document) error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("%w: failed to ensure schema: %v", ErrStoreUnavailable, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	for _, table := range []string{"records", "tasks", "users"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("%w: failed to clear %s: %v", ErrStoreUnavailable, table, err)
		}
	}

	for _, user := range doc.Users {
		goals := models.Goals{}
		if user.Goals != nil {
			goals = *user.Goals
		}
		res, err := tx.Exec(
			`INSERT INTO users (name, goal_daily, goal_weekly, goal_monthly) VALUES (?, ?, ?, ?)`,
			user.Name, goals.Daily, goals.Weekly, goals.Monthly,
		)
		if err != nil {
			return fmt.Errorf("%w: failed to insert user %q: %v", ErrStoreUnavailable, user.Name, err)
		}
		userID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		for _, task := range user.Tasks {
			res, err := tx.Exec(`INSERT INTO tasks (user_id, name) VALUES (?, ?)`, userID, task.Name)
			if err != nil {
				return fmt.Errorf("%w: failed to insert task %q: %v", ErrStoreUnavailable, task.Name, err)
			}
			taskID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}

			for _, rec := range task.Records {
				if _, err := tx.Exec(
					`INSERT INTO records (task_id, date, time) VALUES (?, ?, ?)`,
					taskID, rec.Date, rec.Time,
				); err != nil {
					return fmt.Errorf("%w: failed to insert record %s: %v", ErrStoreUnavailable, rec.Date, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}
