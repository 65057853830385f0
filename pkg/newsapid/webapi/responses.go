package webapi

import (
	"time"

	"github.com/news-assignment/newsapi/pkg/gnews"
	"github.com/news-assignment/newsapi/pkg/news"
)

const (
	Version = "0.0.1"

	defaultCount = 10
	minCount     = 1
	maxCount     = news.MaxArticles
)

// ArticlesResponse is returned by every endpoint that lists articles.
type ArticlesResponse struct {
	Success       bool            `json:"success"`
	FromCache     bool            `json:"from_cache"`
	Timestamp     time.Time       `json:"timestamp"`
	TotalArticles int             `json:"totalArticles"`
	Articles      []gnews.Article `json:"articles"`
}

func toArticlesResponse(result *news.Result) ArticlesResponse {
	articles := result.Articles
	if articles == nil {
		articles = []gnews.Article{}
	}

	return ArticlesResponse{
		Success:       true,
		FromCache:     result.FromCache,
		Timestamp:     time.Now(),
		TotalArticles: result.TotalArticles,
		Articles:      articles,
	}
}

type HealthResponse struct {
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
	CacheKeys        int       `json:"cache_keys"`
	APIKeyConfigured bool      `json:"api_key_configured"`
}

type APIDocsResponse struct {
	Message       string `json:"message"`
	Documentation string `json:"documentation"`
	HealthCheck   string `json:"health_check"`
	Version       string `json:"version"`
	Author        string `json:"author"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
