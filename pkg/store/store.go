// Package store persists robot model documents so the pose service can
// serve models across restarts. Two backends are provided: an in-memory
// store for tests and single-process use, and a MongoDB store for shared
// deployments.
package store

import (
	"context"
	"errors"

	"github.com/kinetree/kinetree/pkg/model"
)

// ErrModelNotFound is returned when no document exists under the
// requested name.
var ErrModelNotFound = errors.New("model not found")

// Store persists model documents keyed by their name.
type Store interface {
	// Put stores doc under doc.Name, replacing any existing document.
	Put(ctx context.Context, doc *model.Document) error
	// Get returns the document stored under name, or ErrModelNotFound.
	Get(ctx context.Context, name string) (*model.Document, error)
	// List returns the names of all stored documents, sorted.
	List(ctx context.Context) ([]string, error)
	// Delete removes the document stored under name, or returns
	// ErrModelNotFound when absent.
	Delete(ctx context.Context, name string) error
	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}
