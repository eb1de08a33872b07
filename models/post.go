package models

import (
	"time"
)

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPublished Status = "Published"
	StatusScheduled Status = "Scheduled"
)

// Valid reports whether s is one of the known publication states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}

// Counter names accepted by PostStore.IncrementCounter.
const (
	CounterViews = "views"
	CounterLikes = "likes"
)

// SEO metadata limits, matching the persisted schema.
const (
	MaxMetaTitleLen       = 60
	MaxMetaDescriptionLen = 160
)

// SEO holds optional search metadata. Both fields are independently
// settable; partial updates merge at the sub-field level.
type SEO struct {
	MetaTitle       string `bson:"meta_title,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string `bson:"meta_description,omitempty" json:"metaDescription,omitempty"`
}

// Visibility holds the presentation flags of a post.
type Visibility struct {
	ShowOnHomepage bool `bson:"show_on_homepage" json:"showOnHomepage"`
	AllowComments  bool `bson:"allow_comments" json:"allowComments"`
	Featured       bool `bson:"featured" json:"featured"`
}

// DefaultVisibility returns the flag defaults applied at creation.
func DefaultVisibility() Visibility {
	return Visibility{ShowOnHomepage: true, AllowComments: true, Featured: false}
}

// Post is the canonical post record, independent of the active backend.
// ID is normalized to a string: an ObjectID hex for the durable backend,
// a decimal integer for the in-memory backend. Callers always receive
// copies; the store owns the persisted representation.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle,omitempty"`
	Content       string     `json:"content"`
	Author        string     `json:"author"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	Status        Status     `json:"status"`
	FeaturedImage string     `json:"featuredImage"`
	Slug          string     `json:"slug"`
	SEO           SEO        `json:"seo"`
	Visibility    Visibility `json:"visibility"`
	Views         int64      `json:"views"`
	Likes         int64      `json:"likes"`
	PublishDate   time.Time  `json:"publishDate"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// PostPatch carries a partial update. Only non-nil fields are written;
// SEO and visibility sub-fields merge individually rather than replacing
// the whole nested object.
type PostPatch struct {
	Title         *string
	Subtitle      *string
	Content       *string
	Category      *string
	Tags          *[]string
	Status        *Status
	FeaturedImage *string
	Slug          *string
	PublishDate   *time.Time
	ScheduledDate *time.Time

	MetaTitle       *string
	MetaDescription *string

	ShowOnHomepage *bool
	AllowComments  *bool
	Featured       *bool
}

// IsEmpty reports whether the patch carries no field at all.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Subtitle == nil && p.Content == nil &&
		p.Category == nil && p.Tags == nil && p.Status == nil &&
		p.FeaturedImage == nil && p.Slug == nil &&
		p.PublishDate == nil && p.ScheduledDate == nil &&
		p.MetaTitle == nil && p.MetaDescription == nil &&
		p.ShowOnHomepage == nil && p.AllowComments == nil && p.Featured == nil
}

// Apply merges the patch into post in place and refreshes UpdatedAt.
// Used by the in-memory backend; the durable backend builds an
// equivalent $set document instead.
func (p PostPatch) Apply(post *Post, now time.Time) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Subtitle != nil {
		post.Subtitle = *p.Subtitle
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Category != nil {
		post.Category = *p.Category
	}
	if p.Tags != nil {
		post.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Status != nil {
		post.Status = *p.Status
	}
	if p.FeaturedImage != nil {
		post.FeaturedImage = *p.FeaturedImage
	}
	if p.Slug != nil {
		post.Slug = *p.Slug
	}
	if p.PublishDate != nil {
		post.PublishDate = *p.PublishDate
	}
	if p.ScheduledDate != nil {
		d := *p.ScheduledDate
		post.ScheduledDate = &d
	}
	if p.MetaTitle != nil {
		post.SEO.MetaTitle = *p.MetaTitle
	}
	if p.MetaDescription != nil {
		post.SEO.MetaDescription = *p.MetaDescription
	}
	if p.ShowOnHomepage != nil {
		post.Visibility.ShowOnHomepage = *p.ShowOnHomepage
	}
	if p.AllowComments != nil {
		post.Visibility.AllowComments = *p.AllowComments
	}
	if p.Featured != nil {
		post.Visibility.Featured = *p.Featured
	}
	post.UpdatedAt = now
}
