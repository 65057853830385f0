package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/news-assignment/newsapi/pkg/newsdb/newsmodel"
	"github.com/news-assignment/newsapi/pkg/newsdb/stor"
)

type ArchiveController struct {
	articleStor stor.ArticleStor
}

// NewArchiveController creates the controller for /api/news/archive. A nil
// articleStor means archiving is turned off and the endpoint answers 503.
func NewArchiveController(articleStor stor.ArticleStor) *ArchiveController {
	return &ArchiveController{articleStor: articleStor}
}

type ArchiveResponse struct {
	Success       bool                        `json:"success"`
	TotalArticles int                         `json:"totalArticles"`
	Articles      []newsmodel.ArchivedArticle `json:"articles"`
}

func (c *ArchiveController) ListArchivedArticles(ctx echo.Context) error {
	if c.articleStor == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Article archive is not enabled")
	}

	count := defaultCount
	source := ""
	errs := echo.QueryParamsBinder(ctx).FailFast(false).
		CustomFunc("count", intParam("count", &count)).
		String("source", &source).
		BindErrors()

	if err := validationFailed(errs, checkRange("count", count, minCount, maxCount)); err != nil {
		return err
	}

	articles, err := c.articleStor.ListRecent(count, source)
	if err != nil {
		return serviceError(err)
	}

	if articles == nil {
		articles = []newsmodel.ArchivedArticle{}
	}

	return ctx.JSON(http.StatusOK, ArchiveResponse{Success: true, TotalArticles: len(articles), Articles: articles})
}
