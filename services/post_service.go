package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"simply-blog/config"
	"simply-blog/dto"
	"simply-blog/models"
	"simply-blog/repositories"
)

// PostService owns the post business rules: required fields, enum sets,
// defaults, slug derivation and DTO mapping. It is agnostic to which
// backend sits behind the store.
type PostService struct {
	store      repositories.PostStore
	cfg        config.BlogConfig
	categories map[string]struct{}
}

func NewPostService(store repositories.PostStore, cfg config.BlogConfig) *PostService {
	cats := make(map[string]struct{}, len(cfg.Categories))
	for _, c := range cfg.Categories {
		cats[c] = struct{}{}
	}
	return &PostService{store: store, cfg: cfg, categories: cats}
}

// Store exposes the active backend, for wiring the health endpoint.
func (s *PostService) Store() repositories.PostStore { return s.store }

// CreatePostInput is the whitelisted create request body. Unknown JSON
// fields are dropped at bind time and never reach the record.
type CreatePostInput struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Content       string     `json:"content"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	Status        string     `json:"status"`
	FeaturedImage string     `json:"featuredImage"`
	Author        string     `json:"author"`
	PublishDate   *time.Time `json:"publishDate"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Slug          string     `json:"slug"`

	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`

	ShowOnHomepage *bool `json:"showOnHomepage"`
	AllowComments  *bool `json:"allowComments"`
	Featured       *bool `json:"featured"`
}

func (s *PostService) validCategory(c string) bool {
	_, ok := s.categories[c]
	return ok
}

func validateSEO(metaTitle, metaDescription string) error {
	if utf8.RuneCountInString(metaTitle) > models.MaxMetaTitleLen {
		return invalidf("metaTitle must be at most %d characters", models.MaxMetaTitleLen)
	}
	if utf8.RuneCountInString(metaDescription) > models.MaxMetaDescriptionLen {
		return invalidf("metaDescription must be at most %d characters", models.MaxMetaDescriptionLen)
	}
	return nil
}

// Create validates the input, applies defaults and slug derivation, and
// persists the record through the active backend.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*dto.PostDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidf("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, invalidf("Content is required")
	}

	category := in.Category
	if category == "" {
		category = s.cfg.DefaultCategory
	} else if !s.validCategory(category) {
		return nil, invalidf("Unknown category %q", category)
	}

	status := models.StatusDraft
	if in.Status != "" {
		status = models.Status(in.Status)
		if !status.Valid() {
			return nil, invalidf("Unknown status %q", in.Status)
		}
	}

	if err := validateSEO(in.MetaTitle, in.MetaDescription); err != nil {
		return nil, err
	}

	author := in.Author
	if author == "" {
		author = s.cfg.DefaultAuthor
	}

	publishDate := time.Now()
	if in.PublishDate != nil {
		publishDate = *in.PublishDate
	}

	// Slug derivation happens once, here, and only when the caller did
	// not supply one. Later title edits never touch it.
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = models.Slugify(title)
	}

	visibility := models.DefaultVisibility()
	if in.ShowOnHomepage != nil {
		visibility.ShowOnHomepage = *in.ShowOnHomepage
	}
	if in.AllowComments != nil {
		visibility.AllowComments = *in.AllowComments
	}
	if in.Featured != nil {
		visibility.Featured = *in.Featured
	}

	post := models.Post{
		Title:         title,
		Subtitle:      in.Subtitle,
		Content:       in.Content,
		Author:        author,
		Category:      category,
		Tags:          in.Tags,
		Status:        status,
		FeaturedImage: in.FeaturedImage,
		Slug:          slug,
		SEO: models.SEO{
			MetaTitle:       in.MetaTitle,
			MetaDescription: in.MetaDescription,
		},
		Visibility:    visibility,
		PublishDate:   publishDate,
		ScheduledDate: in.ScheduledDate,
	}

	saved, err := s.store.Insert(ctx, &post)
	if err != nil {
		return nil, err
	}
	d := dto.NewPostDTO(*saved)
	return &d, nil
}

// ListPostsInput carries the listing filters and window. Limit is
// expected to be pre-defaulted by the caller (10 when absent).
type ListPostsInput struct {
	Status   string
	Category string
	Featured *bool
	Page     int
	Limit    int
}

func (s *PostService) List(ctx context.Context, in ListPostsInput) (*dto.PostListResponse, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = 1
	}

	posts, total, err := s.store.List(ctx, repositories.ListOptions{
		Status:   in.Status,
		Category: in.Category,
		Featured: in.Featured,
		Page:     in.Page,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(in.Limit) - 1) / int64(in.Limit))
	return &dto.PostListResponse{
		Success: true,
		Data:    dto.NewPostDTOs(posts),
		Pagination: dto.PaginationDTO{
			Page:  in.Page,
			Limit: in.Limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// GetByID fetches a post and increments its view counter. The increment
// is read-modify-write and intentionally not atomic across callers.
func (s *PostService) GetByID(ctx context.Context, id string) (*dto.PostDTO, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.store.IncrementCounter(ctx, p.ID, models.CounterViews)
	if err != nil {
		return nil, err
	}
	p.Views = views
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// GetBySlug behaves like GetByID for the first record carrying the slug.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*dto.PostDTO, error) {
	p, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	views, err := s.store.IncrementCounter(ctx, p.ID, models.CounterViews)
	if err != nil {
		return nil, err
	}
	p.Views = views
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// UpdatePostInput is the whitelisted partial-update body. Only fields
// present in the JSON are applied; nested seo/visibility values merge at
// the sub-field level.
type UpdatePostInput struct {
	Title         *string    `json:"title"`
	Subtitle      *string    `json:"subtitle"`
	Content       *string    `json:"content"`
	Category      *string    `json:"category"`
	Tags          *[]string  `json:"tags"`
	Status        *string    `json:"status"`
	FeaturedImage *string    `json:"featuredImage"`
	PublishDate   *time.Time `json:"publishDate"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Slug          *string    `json:"slug"`

	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`

	ShowOnHomepage *bool `json:"showOnHomepage"`
	AllowComments  *bool `json:"allowComments"`
	Featured       *bool `json:"featured"`
}

func (s *PostService) Update(ctx context.Context, id string, in UpdatePostInput) (*dto.PostDTO, error) {
	patch := models.PostPatch{
		Subtitle:        in.Subtitle,
		Tags:            in.Tags,
		FeaturedImage:   in.FeaturedImage,
		PublishDate:     in.PublishDate,
		ScheduledDate:   in.ScheduledDate,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		ShowOnHomepage:  in.ShowOnHomepage,
		AllowComments:   in.AllowComments,
		Featured:        in.Featured,
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, invalidf("Title is required")
		}
		patch.Title = &title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, invalidf("Content is required")
		}
		patch.Content = in.Content
	}
	if in.Category != nil && *in.Category != "" {
		if !s.validCategory(*in.Category) {
			return nil, invalidf("Unknown category %q", *in.Category)
		}
		patch.Category = in.Category
	}
	if in.Status != nil && *in.Status != "" {
		st := models.Status(*in.Status)
		if !st.Valid() {
			return nil, invalidf("Unknown status %q", *in.Status)
		}
		patch.Status = &st
	}
	// An explicit slug wins; an empty one is treated as absent so a
	// partial update cannot accidentally blank it.
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		slug := strings.TrimSpace(*in.Slug)
		patch.Slug = &slug
	}

	var metaTitle, metaDescription string
	if in.MetaTitle != nil {
		metaTitle = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		metaDescription = *in.MetaDescription
	}
	if err := validateSEO(metaTitle, metaDescription); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	d := dto.NewPostDTO(*updated)
	return &d, nil
}

// Delete removes the record permanently and returns it for confirmation.
func (s *PostService) Delete(ctx context.Context, id string) (*dto.PostDTO, error) {
	p, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// Like increments the like counter and returns the new value.
func (s *PostService) Like(ctx context.Context, id string) (int64, error) {
	return s.store.IncrementCounter(ctx, id, models.CounterLikes)
}

// Health reports the active backend kind and the total record count.
func (s *PostService) Health(ctx context.Context) (*dto.HealthResponse, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.HealthResponse{Success: true, Backend: s.store.Kind(), Total: total}, nil
}
