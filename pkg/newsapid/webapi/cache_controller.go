package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/news-assignment/newsapi/pkg/news"
)

type CacheController struct {
	newsService *news.Service
}

func NewCacheController(newsService *news.Service) *CacheController {
	return &CacheController{newsService: newsService}
}

func (c *CacheController) GetCacheStats(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.newsService.GetCacheStats())
}

func (c *CacheController) ClearCache(ctx echo.Context) error {
	msg := c.newsService.ClearCache()
	return ctx.JSON(http.StatusOK, MessageResponse{Success: true, Message: msg})
}
