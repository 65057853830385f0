package stor

import (
	"github.com/news-assignment/newsapi/pkg/gnews"
	"github.com/news-assignment/newsapi/pkg/newsdb/newsmodel"
	"gorm.io/gorm"
)

type ArticleStor interface {
	// SaveArticles upserts articles by URL and returns how many were written.
	SaveArticles(articles []gnews.Article, fetchedVia string) (int, error)
	// ListRecent returns up to count articles, newest first. A non-empty
	// source restricts the list to sources whose name contains it.
	ListRecent(count int, source string) ([]newsmodel.ArchivedArticle, error)
}

type Stors struct {
	ArticleStor ArticleStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		ArticleStor: NewGormArticleStor(db),
	}
}
