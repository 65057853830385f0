package webapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/news-assignment/newsapi/pkg/news"
)

const DefaultAuthor = "Haythem DRIHMI"

type InfoController struct {
	newsService *news.Service
	author      string
}

func NewInfoController(newsService *news.Service, author string) *InfoController {
	if author == "" {
		author = DefaultAuthor
	}

	return &InfoController{newsService: newsService, author: author}
}

func (c *InfoController) Root(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, APIDocsResponse{
		Message:       "Welcome to News API Service",
		Documentation: "/docs",
		HealthCheck:   "/health",
		Version:       Version,
		Author:        c.author,
	})
}

func (c *InfoController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{
		Status:           "healthy",
		Timestamp:        time.Now(),
		CacheKeys:        c.newsService.GetCacheStats().Keys,
		APIKeyConfigured: c.newsService.APIKeyConfigured(),
	})
}
