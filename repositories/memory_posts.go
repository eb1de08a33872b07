package repositories

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"simply-blog/models"
)

var _ PostStore = (*MemoryPostRepository)(nil)

// memClockFormat is how the volatile backend represents its clock
// internally: formatted wall-clock text rather than a native time value.
// Records are converted back to the canonical shape on every read.
const memClockFormat = time.RFC3339Nano

// MemoryPostRepository is the in-process fallback backend. Identifiers are
// a process-local counter starting at 1; nothing survives a restart. It is
// used when no MONGODB_URI is configured.
type MemoryPostRepository struct {
	mu     sync.RWMutex
	posts  []memDoc
	nextID int64
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{nextID: 1}
}

// memDoc is the volatile persisted shape: integer id, string clock.
type memDoc struct {
	ID        int64
	Post      models.Post
	CreatedAt string
	UpdatedAt string
}

func (d memDoc) toModel() models.Post {
	p := d.Post
	p.ID = strconv.FormatInt(d.ID, 10)
	p.Tags = append([]string(nil), d.Post.Tags...)
	if d.Post.ScheduledDate != nil {
		sd := *d.Post.ScheduledDate
		p.ScheduledDate = &sd
	}
	p.CreatedAt, _ = time.Parse(memClockFormat, d.CreatedAt)
	p.UpdatedAt, _ = time.Parse(memClockFormat, d.UpdatedAt)
	return p
}

// parseMemID validates the identifier shape for this backend: a positive
// decimal integer. Anything else (an ObjectID hex, for instance) is a
// validation error, never a not-found.
func parseMemID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a post id", ErrInvalidID, id)
	}
	return n, nil
}

func (r *MemoryPostRepository) Kind() string { return "memory" }

func (r *MemoryPostRepository) Insert(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	doc := memDoc{
		ID:        r.nextID,
		Post:      *post,
		CreatedAt: now.Format(memClockFormat),
		UpdatedAt: now.Format(memClockFormat),
	}
	doc.Post.Tags = append([]string(nil), post.Tags...)
	r.nextID++
	r.posts = append(r.posts, doc)

	out := doc.toModel()
	return &out, nil
}

func matchesFilter(p models.Post, opts ListOptions) bool {
	if opts.Status != "" && string(p.Status) != opts.Status {
		return false
	}
	if opts.Category != "" && p.Category != opts.Category {
		return false
	}
	if opts.Featured != nil && p.Visibility.Featured != *opts.Featured {
		return false
	}
	return true
}

func (r *MemoryPostRepository) List(ctx context.Context, opts ListOptions) ([]models.Post, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Post
	for _, doc := range r.posts {
		p := doc.toModel()
		if matchesFilter(p, opts) {
			matched = append(matched, p)
		}
	}

	// Publish date descending; insertion order preserved on ties.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishDate.After(matched[j].PublishDate)
	})

	total := int64(len(matched))

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 1
	}
	start := (opts.Page - 1) * opts.Limit
	if start >= len(matched) {
		return []models.Post{}, total, nil
	}
	end := start + opts.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryPostRepository) findIndex(id int64) int {
	for i, doc := range r.posts {
		if doc.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	n, err := parseMemID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.findIndex(n)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := r.posts[i].toModel()
	return &out, nil
}

func (r *MemoryPostRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.posts {
		if doc.Post.Slug == slug {
			out := doc.toModel()
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryPostRepository) UpdateByID(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	n, err := parseMemID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findIndex(n)
	if i < 0 {
		return nil, ErrNotFound
	}

	now := time.Now()
	patch.Apply(&r.posts[i].Post, now)
	r.posts[i].UpdatedAt = now.Format(memClockFormat)

	out := r.posts[i].toModel()
	return &out, nil
}

func (r *MemoryPostRepository) DeleteByID(ctx context.Context, id string) (*models.Post, error) {
	n, err := parseMemID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findIndex(n)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := r.posts[i].toModel()
	r.posts = append(r.posts[:i], r.posts[i+1:]...)
	return &out, nil
}

func (r *MemoryPostRepository) IncrementCounter(ctx context.Context, id string, field string) (int64, error) {
	n, err := parseMemID(id)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findIndex(n)
	if i < 0 {
		return 0, ErrNotFound
	}

	var value int64
	switch field {
	case models.CounterViews:
		r.posts[i].Post.Views++
		value = r.posts[i].Post.Views
	case models.CounterLikes:
		r.posts[i].Post.Likes++
		value = r.posts[i].Post.Likes
	default:
		return 0, fmt.Errorf("unknown counter field %q", field)
	}
	r.posts[i].UpdatedAt = time.Now().Format(memClockFormat)
	return value, nil
}

func (r *MemoryPostRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.posts)), nil
}

func (r *MemoryPostRepository) Close(ctx context.Context) error { return nil }
