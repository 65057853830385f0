package cmd

import (
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/news-assignment/newsapi/pkg/clog"
	"github.com/news-assignment/newsapi/pkg/news"
	"github.com/news-assignment/newsapi/pkg/newsapid/webapi"
	"github.com/news-assignment/newsapi/pkg/newsapid/webapi/apimiddleware"
	"github.com/news-assignment/newsapi/pkg/newsdb/stor"
)

type RouteDependencies struct {
	newsService   *news.Service
	articleStor   stor.ArticleStor
	logController *webapi.LogController

	// adminKeyHash enables the /api/admin routes when set.
	adminKeyHash []byte
	author       string
}

func newServer(deps RouteDependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = webapi.HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
		AllowCredentials:                         true,
		UnsafeWildcardOriginWithAllowCredentials: true,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			clog.UsingCtx(clog.HTTPCtx).WithFields(log.Fields{
				"status":  v.Status,
				"latency": v.Latency,
			}).Infof("%s %s", v.Method, v.URI)
			return nil
		},
	}))

	setupRoutes(e, deps)

	return e
}

func setupRoutes(e *echo.Echo, deps RouteDependencies) {
	infoController := webapi.NewInfoController(deps.newsService, deps.author)
	e.GET("/", infoController.Root)
	e.GET("/health", infoController.Health)

	docsController := webapi.NewDocsController()
	e.GET("/docs", docsController.SwaggerUI)
	e.GET("/redoc", docsController.ReDoc)
	e.GET("/openapi.json", docsController.OpenAPI)

	g := e.Group("/api/news")

	newsController := webapi.NewNewsController(deps.newsService)
	g.GET("/headlines", newsController.GetHeadlines)
	g.GET("/search", newsController.SearchArticles)
	g.GET("/title/:title", newsController.FindByTitle)
	g.GET("/author/:author", newsController.FindByAuthor)

	cacheController := webapi.NewCacheController(deps.newsService)
	g.GET("/cache/stats", cacheController.GetCacheStats)
	g.DELETE("/cache", cacheController.ClearCache)

	archiveController := webapi.NewArchiveController(deps.articleStor)
	g.GET("/archive", archiveController.ListArchivedArticles)

	if deps.adminKeyHash == nil || deps.logController == nil {
		return
	}

	admin := e.Group("/api/admin", apimiddleware.AdminKeyAuth(apimiddleware.AdminKeyConfig{
		HashedKey: deps.adminKeyHash,
	}))
	admin.GET("/logging", deps.logController.ShowCurrentLogging)
	admin.POST("/logging", deps.logController.SetLogging)
}
