package newsmodel

import (
	"time"

	"github.com/gosimple/slug"
	"github.com/news-assignment/newsapi/pkg/gnews"
)

// ArchivedArticle is an article that was returned by GNews at least once.
// Rows are keyed by URL; re-fetching an article refreshes its content.
type ArchivedArticle struct {
	ID          int        `json:"id"`
	UUID        string     `json:"uuid" gorm:"size:36"`
	Slug        string     `json:"slug" gorm:"size:255"`
	Title       string     `json:"title" gorm:"size:1024"`
	Description string     `json:"description" gorm:"type:text"`
	Content     string     `json:"content" gorm:"type:text"`
	URL         string     `json:"url" gorm:"uniqueIndex;size:512"`
	Image       string     `json:"image" gorm:"size:1024"`
	PublishedAt *time.Time `json:"published_at" gorm:"index"`
	SourceName  string     `json:"source_name" gorm:"index;size:255"`
	SourceURL   string     `json:"source_url" gorm:"size:512"`
	FetchedVia  string     `json:"fetched_via" gorm:"size:64"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromGNewsArticle(a gnews.Article, fetchedVia string) ArchivedArticle {
	archived := ArchivedArticle{
		Slug:        slug.Make(a.Title),
		Title:       a.Title,
		Description: deref(a.Description),
		Content:     deref(a.Content),
		URL:         a.URL,
		Image:       deref(a.Image),
		SourceName:  a.Source.Name,
		SourceURL:   a.Source.URL,
		FetchedVia:  fetchedVia,
	}

	if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		archived.PublishedAt = &t
	}

	return archived
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
