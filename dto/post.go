package dto

import (
	"time"

	"simply-blog/models"
)

// PostDTO is the wire shape of a post. Field names follow the public API
// contract (camelCase, nested seo/visibility objects).
type PostDTO struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Subtitle      string            `json:"subtitle,omitempty"`
	Content       string            `json:"content"`
	Author        string            `json:"author"`
	Category      string            `json:"category"`
	Tags          []string          `json:"tags"`
	Status        string            `json:"status"`
	FeaturedImage string            `json:"featuredImage"`
	Slug          string            `json:"slug"`
	SEO           models.SEO        `json:"seo"`
	Visibility    models.Visibility `json:"visibility"`
	Views         int64             `json:"views"`
	Likes         int64             `json:"likes"`
	PublishDate   time.Time         `json:"publishDate"`
	ScheduledDate *time.Time        `json:"scheduledDate,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// NewPostDTO constructs PostDTO from models.Post
func NewPostDTO(p models.Post) PostDTO {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostDTO{
		ID:            p.ID,
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		Content:       p.Content,
		Author:        p.Author,
		Category:      p.Category,
		Tags:          tags,
		Status:        string(p.Status),
		FeaturedImage: p.FeaturedImage,
		Slug:          p.Slug,
		SEO:           p.SEO,
		Visibility:    p.Visibility,
		Views:         p.Views,
		Likes:         p.Likes,
		PublishDate:   p.PublishDate,
		ScheduledDate: p.ScheduledDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func NewPostDTOs(posts []models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostDTO(p))
	}
	return out
}
