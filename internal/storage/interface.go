package storage

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/dcoutinho/tempora/internal/models"
)

var (
	// ErrStoreUnavailable indicates the backing file could not be read or
	// written.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCorruptDocument indicates the backing file exists but does not
	// parse as the expected document structure.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrAlreadyInitialized indicates Init was called over an existing store.
	ErrAlreadyInitialized = errors.New("store already initialized")
)

// Provider is the durable home of the data document. The document is read
// wholesale on Load and rewritten wholesale on Save; there are no incremental
// writes. Providers assume a single writer process.
type Provider interface {
	// Init creates the backing store seeded with the given document. Fails
	// with ErrAlreadyInitialized if the store exists.
	Init(doc *models.Document) error

	// Load reads the full document from the backing store.
	Load() (*models.Document, error)

	// Save rewrites the backing store with the full document. A reader must
	// never observe a torn file.
	Save(doc *models.Document) error

	// Path returns the backing file path.
	Path() string

	Close() error
}

// ForPath picks a provider based on the data path extension, defaulting to
// the JSON document store.
func ForPath(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".db") {
		return NewSQLiteStore(path)
	}
	return NewJSONStore(path)
}
