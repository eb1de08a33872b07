package repositories

import (
	"context"
	"errors"

	"simply-blog/models"
)

// Sentinel errors shared by both backends. Handlers translate these into
// HTTP status codes; everything else surfaces as a generic server error.
var (
	// ErrNotFound means the identifier or slug resolved to no record.
	ErrNotFound = errors.New("post not found")
	// ErrInvalidID means the identifier is malformed for the active
	// backend. This is a validation failure, not a missing record: an
	// ObjectID hex sent to the in-memory backend (or an integer sent to
	// the Mongo backend) must be rejected before any lookup happens.
	ErrInvalidID = errors.New("invalid post id")
	// ErrUnavailable means the backing store could not be reached. The
	// in-flight operation fails; the process keeps serving.
	ErrUnavailable = errors.New("storage backend unavailable")
)

// ListOptions selects and windows a listing. Filter fields are exact-match
// and combined by conjunction; zero values impose no constraint. Page and
// Limit below 1 are clamped to 1 by the store.
type ListOptions struct {
	Status   string
	Category string
	Featured *bool
	Page     int
	Limit    int
}

// PostStore is the uniform contract over the two interchangeable post
// backends. Exactly one implementation is constructed at process start;
// backends are never mixed within a process lifetime.
//
// Results are ordered by publish date descending. List returns the
// windowed slice together with the total number of matching records
// before windowing.
type PostStore interface {
	// Kind identifies the active backend ("mongodb" or "memory").
	Kind() string
	// Insert assigns id and timestamps, persists and returns the record.
	Insert(ctx context.Context, post *models.Post) (*models.Post, error)
	// List returns a filtered, sorted, windowed slice plus the total count.
	List(ctx context.Context, opts ListOptions) ([]models.Post, int64, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	// FindBySlug returns the first record carrying the slug. Slugs are
	// not unique; the first match wins.
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	// UpdateByID merges the patch into the record and refreshes
	// updatedAt. Nested SEO and visibility fields merge individually.
	UpdateByID(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error)
	// DeleteByID removes the record permanently and returns it.
	DeleteByID(ctx context.Context, id string) (*models.Post, error)
	// IncrementCounter bumps views or likes by one and returns the new
	// value. Read-modify-write; concurrent increments may lose updates.
	IncrementCounter(ctx context.Context, id string, field string) (int64, error)
	// Count reports the total number of stored records.
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}
