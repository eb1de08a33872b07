package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"simply-blog/models"
)

func newTestPost(title string) *models.Post {
	return &models.Post{
		Title:       title,
		Content:     "some content",
		Author:      "Sharon D.",
		Category:    "Lifestyle",
		Status:      models.StatusDraft,
		Slug:        models.Slugify(title),
		Visibility:  models.DefaultVisibility(),
		PublishDate: time.Now(),
	}
}

func TestMemoryInsertAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	first, err := repo.Insert(ctx, newTestPost("First"))
	assert.NoError(t, err)
	second, err := repo.Insert(ctx, newTestPost("Second"))
	assert.NoError(t, err)

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, first.UpdatedAt.IsZero())
}

func TestMemoryIDValidation(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	// An ObjectID hex belongs to the other backend: validation error,
	// not a not-found.
	_, err := repo.FindByID(ctx, "64b2f7a9c3e1d204587a9b10")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = repo.FindByID(ctx, "0")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = repo.FindByID(ctx, "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFindBySlugFirstMatch(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	p := newTestPost("Shared Slug")
	first, err := repo.Insert(ctx, p)
	assert.NoError(t, err)

	// Slug uniqueness is not enforced; the first record wins.
	dup := newTestPost("Shared Slug")
	_, err = repo.Insert(ctx, dup)
	assert.NoError(t, err)

	found, err := repo.FindBySlug(ctx, "shared-slug")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateMergesSubFields(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newTestPost("Original"))
	assert.NoError(t, err)

	metaTitle := "Meta"
	updated, err := repo.UpdateByID(ctx, created.ID, models.PostPatch{MetaTitle: &metaTitle})
	assert.NoError(t, err)

	// Sub-field merge: only meta_title changes, sibling fields and the
	// visibility block stay as they were.
	assert.Equal(t, "Meta", updated.SEO.MetaTitle)
	assert.Equal(t, "", updated.SEO.MetaDescription)
	assert.Equal(t, "Original", updated.Title)
	assert.True(t, updated.Visibility.ShowOnHomepage)

	featured := true
	updated, err = repo.UpdateByID(ctx, created.ID, models.PostPatch{Featured: &featured})
	assert.NoError(t, err)
	assert.True(t, updated.Visibility.Featured)
	assert.Equal(t, "Meta", updated.SEO.MetaTitle)
}

func TestMemoryEmptyPatchKeepsFields(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newTestPost("Keep Me"))
	assert.NoError(t, err)

	updated, err := repo.UpdateByID(ctx, created.ID, models.PostPatch{})
	assert.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.Views, updated.Views)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestMemoryDeleteThenFind(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newTestPost("Doomed"))
	assert.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "Doomed", deleted.Title)

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.DeleteByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	total, err := repo.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestMemoryIncrementCounter(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newTestPost("Counted"))
	assert.NoError(t, err)

	for i := int64(1); i <= 5; i++ {
		likes, err := repo.IncrementCounter(ctx, created.ID, models.CounterLikes)
		assert.NoError(t, err)
		assert.Equal(t, i, likes)
	}

	views, err := repo.IncrementCounter(ctx, created.ID, models.CounterViews)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), views)

	_, err = repo.IncrementCounter(ctx, created.ID, "shares")
	assert.Error(t, err)
}

func TestMemoryListFilterSortPaginate(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		p := newTestPost(fmt.Sprintf("Post %02d", i))
		p.Status = models.StatusPublished
		p.PublishDate = base.Add(time.Duration(i) * time.Hour)
		_, err := repo.Insert(ctx, p)
		assert.NoError(t, err)
	}
	draft := newTestPost("Hidden Draft")
	draft.PublishDate = base.Add(100 * time.Hour)
	_, err := repo.Insert(ctx, draft)
	assert.NoError(t, err)

	// Filtered listing excludes the draft and sorts newest first.
	posts, total, err := repo.List(ctx, ListOptions{Status: "Published", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, posts, 10)
	assert.Equal(t, "Post 24", posts[0].Title)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].PublishDate.After(posts[i-1].PublishDate))
	}

	// Page 2 holds records 11-20 of the descending order.
	posts, total, err = repo.List(ctx, ListOptions{Status: "Published", Page: 2, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, posts, 10)
	assert.Equal(t, "Post 14", posts[0].Title)
	assert.Equal(t, "Post 05", posts[9].Title)

	// Window past the end is empty but keeps the total.
	posts, total, err = repo.List(ctx, ListOptions{Status: "Published", Page: 4, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, posts, 0)
}

func TestMemoryListFeaturedFilter(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	plain := newTestPost("Plain")
	_, err := repo.Insert(ctx, plain)
	assert.NoError(t, err)

	featured := newTestPost("Featured")
	featured.Visibility.Featured = true
	want, err := repo.Insert(ctx, featured)
	assert.NoError(t, err)

	flag := true
	posts, total, err := repo.List(ctx, ListOptions{Featured: &flag, Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, posts, 1)
	assert.Equal(t, want.ID, posts[0].ID)
}

func TestMemoryListStableOnEqualPublishDates(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	when := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, title := range []string{"A", "B", "C"} {
		p := newTestPost(title)
		p.PublishDate = when
		_, err := repo.Insert(ctx, p)
		assert.NoError(t, err)
	}

	posts, _, err := repo.List(ctx, ListOptions{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, []string{posts[0].Title, posts[1].Title, posts[2].Title})
}

func TestMemoryReturnsCopies(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	p := newTestPost("Isolated")
	p.Tags = []string{"one"}
	created, err := repo.Insert(ctx, p)
	assert.NoError(t, err)

	created.Title = "mutated"
	created.Tags[0] = "mutated"

	reread, err := repo.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Isolated", reread.Title)
	assert.Equal(t, []string{"one"}, reread.Tags)
}

func TestMemoryKind(t *testing.T) {
	repo := NewMemoryPostRepository()
	assert.Equal(t, "memory", repo.Kind())
	assert.NoError(t, repo.Close(context.Background()))
}
