package webapi

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/news-assignment/newsapi/pkg/news"
)

type NewsController struct {
	newsService *news.Service
}

func NewNewsController(newsService *news.Service) *NewsController {
	return &NewsController{newsService: newsService}
}

// GetHeadlines handles GET /api/news/headlines?count=&country=&language=&category=
func (c *NewsController) GetHeadlines(ctx echo.Context) error {
	req := struct {
		Count    int
		Country  string
		Language string
		Category string
	}{Count: defaultCount, Country: news.DefaultCountry, Language: news.DefaultLanguage}

	errs := echo.QueryParamsBinder(ctx).FailFast(false).
		CustomFunc("count", intParam("count", &req.Count)).
		String("country", &req.Country).
		String("language", &req.Language).
		String("category", &req.Category).
		BindErrors()

	if err := validationFailed(errs, checkRange("count", req.Count, minCount, maxCount)); err != nil {
		return err
	}

	result, err := c.newsService.GetTopHeadlines(ctx.Request().Context(), req.Count, req.Language, req.Country, req.Category)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(http.StatusOK, toArticlesResponse(result))
}

// SearchArticles handles GET /api/news/search?q=&count=&language=&country=&sort_by=
func (c *NewsController) SearchArticles(ctx echo.Context) error {
	req := struct {
		Query    string
		Count    int
		Language string
		Country  string
		SortBy   string
	}{Count: defaultCount, Language: news.DefaultLanguage, Country: news.DefaultCountry, SortBy: news.DefaultSortBy}

	errs := echo.QueryParamsBinder(ctx).FailFast(false).
		MustCustomFunc("q", stringParam(&req.Query)).
		CustomFunc("count", intParam("count", &req.Count)).
		String("language", &req.Language).
		String("country", &req.Country).
		String("sort_by", &req.SortBy).
		BindErrors()

	if err := validationFailed(errs, checkRange("count", req.Count, minCount, maxCount)); err != nil {
		return err
	}

	result, err := c.newsService.SearchArticles(ctx.Request().Context(), req.Query, req.Count, req.Language, req.Country, req.SortBy)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(http.StatusOK, toArticlesResponse(result))
}

// FindByTitle handles GET /api/news/title/:title?exact=
func (c *NewsController) FindByTitle(ctx echo.Context) error {
	exact := false
	errs := echo.QueryParamsBinder(ctx).FailFast(false).
		CustomFunc("exact", boolParam("exact", &exact)).
		BindErrors()

	if err := validationFailed(errs); err != nil {
		return err
	}

	result, err := c.newsService.FindByTitle(ctx.Request().Context(), pathParam(ctx, "title"), exact)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(http.StatusOK, toArticlesResponse(result))
}

// FindByAuthor handles GET /api/news/author/:author?count=
func (c *NewsController) FindByAuthor(ctx echo.Context) error {
	count := defaultCount
	errs := echo.QueryParamsBinder(ctx).FailFast(false).
		CustomFunc("count", intParam("count", &count)).
		BindErrors()

	if err := validationFailed(errs, checkRange("count", count, minCount, maxCount)); err != nil {
		return err
	}

	result, err := c.newsService.FindByAuthor(ctx.Request().Context(), pathParam(ctx, "author"), count)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(http.StatusOK, toArticlesResponse(result))
}

// pathParam returns the unescaped value of a path parameter. echo leaves
// parameters escaped when the request path contains encoded slashes.
func pathParam(ctx echo.Context, name string) string {
	raw := ctx.Param(name)
	if value, err := url.PathUnescape(raw); err == nil {
		return value
	}

	return raw
}
