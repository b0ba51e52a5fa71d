package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlogArticle carries a slug generated from the title when absent and a
// published_at stamp managed by the publish flag.
type BlogArticle struct {
	Base
	AuthorID    uuid.UUID  `json:"author_id" db:"author_id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Content     string     `json:"content" db:"content"`
	Category    string     `json:"category" db:"category"`
	CoverImage  *string    `json:"cover_image" db:"cover_image"`
	Tags        string     `json:"tags" db:"tags"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	IsPublished bool       `json:"is_published" db:"is_published"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses non-alphanumeric runs to
// single hyphens.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

type CreateBlogArticleRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"omitempty,slug"`
	Content     string `json:"content" binding:"required"`
	Category    string `json:"category" binding:"required,max=100"`
	Tags        string `json:"tags" binding:"max=50"`
	IsPublished bool   `json:"is_published"`
}

type FAQ struct {
	Base
	Question string `json:"question" db:"question"`
	Answer   string `json:"answer" db:"answer"`
	Category string `json:"category" db:"category"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

type CreateFAQRequest struct {
	Question string `json:"question" binding:"required,max=255"`
	Answer   string `json:"answer" binding:"required"`
	Category string `json:"category" binding:"required,max=100"`
	IsActive *bool  `json:"is_active"`
}

type ClinicBranch struct {
	Base
	Name          string `json:"name" db:"name"`
	Address       string `json:"address" db:"address"`
	ContactNumber string `json:"contact_number" db:"contact_number"`
	Location      string `json:"location" db:"location"`
	OpeningHours  string `json:"opening_hours" db:"opening_hours"`
}

type CreateBranchRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Address       string `json:"address" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required,max=15"`
	Location      string `json:"location" binding:"required,max=255"`
	OpeningHours  string `json:"opening_hours"`
}
