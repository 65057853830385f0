package webapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/news-assignment/newsapi/pkg/gnews"
	"github.com/news-assignment/newsapi/pkg/news"
	"github.com/news-assignment/newsapi/pkg/newscache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEchoContext creates a test Echo context for method/target with the
// given query parameters.
func setupEchoContext(t *testing.T, method, target string, body []byte, queryParams map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	q := req.URL.Query()
	for key, value := range queryParams {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testArticle(title, source string) gnews.Article {
	return gnews.Article{
		Title:       title,
		URL:         "https://news.example/" + title,
		PublishedAt: "2024-05-01T00:00:00Z",
		Source:      gnews.Source{Name: source},
	}
}

func newTestNewsService(t *testing.T) (*news.Service, *gnews.MockClient) {
	api := gnews.NewMockClient()
	api.SetResponse(gnews.TopHeadlinesEndpoint, &gnews.Response{
		TotalArticles: 2,
		Articles:      []gnews.Article{testArticle("Headline one", "Reuters"), testArticle("Headline two", "AP")},
	})
	api.SetResponse(gnews.SearchEndpoint, &gnews.Response{
		TotalArticles: 3,
		Articles: []gnews.Article{
			testArticle("Go 1.23 released", "Go Blog"),
			testArticle("Why Go?", "Reuters"),
			testArticle("Rust news", "Reuters"),
		},
	})

	return news.NewService(news.ServiceOpts{API: api, Cache: newscache.New(100, time.Minute)}), api
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var v T
	require.NoErrorf(t, json.Unmarshal(rec.Body.Bytes(), &v), "bad body: %s", rec.Body.String())
	return v
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, code, he.Code)
	return he
}

func TestGetHeadlines(t *testing.T) {
	svc, api := newTestNewsService(t)
	controller := NewNewsController(svc)

	t.Run("Defaults", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, nil)
		require.NoError(t, controller.GetHeadlines(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[ArticlesResponse](t, rec)
		assert.True(t, resp.Success)
		assert.False(t, resp.FromCache)
		assert.Equal(t, 2, resp.TotalArticles)
		assert.Len(t, resp.Articles, 2)

		assert.Equal(t, gnews.Params{"max": "10", "country": "us", "lang": "en"}, api.Calls()[0].Params)
	})

	t.Run("SecondCallFromCache", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, nil)
		require.NoError(t, controller.GetHeadlines(ctx))
		assert.True(t, decodeBody[ArticlesResponse](t, rec).FromCache)
	})

	t.Run("AllParams", func(t *testing.T) {
		ctx, _ := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, map[string]string{
			"count": "5", "country": "fr", "language": "fr", "category": "world",
		})
		require.NoError(t, controller.GetHeadlines(ctx))

		calls := api.Calls()
		assert.Equal(t, gnews.Params{"max": "5", "country": "fr", "lang": "fr", "category": "world"}, calls[len(calls)-1].Params)
	})

	t.Run("CountOutOfRange", func(t *testing.T) {
		for _, count := range []string{"0", "101"} {
			ctx, _ := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, map[string]string{"count": count})
			he := requireHTTPError(t, controller.GetHeadlines(ctx), http.StatusUnprocessableEntity)
			details := he.Message.([]ValidationDetail)
			require.Len(t, details, 1)
			assert.Equal(t, []string{"query", "count"}, details[0].Loc)
		}
	})

	t.Run("CountNotAnInt", func(t *testing.T) {
		ctx, _ := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, map[string]string{"count": "ten"})
		he := requireHTTPError(t, controller.GetHeadlines(ctx), http.StatusUnprocessableEntity)
		details := he.Message.([]ValidationDetail)
		require.Len(t, details, 1)
		assert.Equal(t, "int_parsing", details[0].Type)
	})

	t.Run("CountEmpty", func(t *testing.T) {
		ctx, _ := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, map[string]string{"count": ""})
		he := requireHTTPError(t, controller.GetHeadlines(ctx), http.StatusUnprocessableEntity)
		details := he.Message.([]ValidationDetail)
		require.Len(t, details, 1)
		assert.Equal(t, ValidationDetail{
			Loc:  []string{"query", "count"},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		}, details[0])
	})

	t.Run("UpstreamError", func(t *testing.T) {
		api.SetError(&gnews.Error{StatusCode: 429, Message: "GNews API Error: 429 - Too many requests"})
		defer api.SetError(nil)

		ctx, _ := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, map[string]string{"country": "de"})
		he := requireHTTPError(t, controller.GetHeadlines(ctx), http.StatusInternalServerError)
		assert.Equal(t, "GNews API Error: 429 - Too many requests", he.Message)
	})
}

func TestSearchArticles(t *testing.T) {
	svc, api := newTestNewsService(t)
	controller := NewNewsController(svc)

	t.Run("MissingQuery", func(t *testing.T) {
		ctx, _ := setupEchoContext(t, http.MethodGet, "/api/news/search", nil, map[string]string{"count": "500"})
		he := requireHTTPError(t, controller.SearchArticles(ctx), http.StatusUnprocessableEntity)
		details := he.Message.([]ValidationDetail)
		require.Len(t, details, 2)
		assert.Equal(t, ValidationDetail{Loc: []string{"query", "q"}, Msg: "Field required", Type: "missing"}, details[0])
		assert.Equal(t, "less_than_equal", details[1].Type)
		assert.Empty(t, api.Calls())
	})

	t.Run("EmptyQueryIsAccepted", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/search", nil, map[string]string{"q": ""})
		require.NoError(t, controller.SearchArticles(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
		calls := api.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "", calls[0].Params["q"])
	})

	t.Run("Search", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/search", nil, map[string]string{
			"q": "golang", "sort_by": "publishedAt",
		})
		require.NoError(t, controller.SearchArticles(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, decodeBody[ArticlesResponse](t, rec).TotalArticles)
		calls := api.Calls()
		assert.Equal(t, gnews.Params{"q": "golang", "max": "10", "lang": "en", "country": "us", "sortby": "publishedAt"}, calls[len(calls)-1].Params)
	})
}

func TestArticlesKeepExtraSourceKeys(t *testing.T) {
	api := gnews.NewMockClient()
	api.SetResponse(gnews.TopHeadlinesEndpoint, &gnews.Response{
		TotalArticles: 1,
		Articles: []gnews.Article{{
			Title: "Rates hold",
			URL:   "https://news.example/rates",
			Source: gnews.Source{
				Name:  "Reuters",
				URL:   "https://reuters.com",
				Extra: map[string]any{"id": "abc", "country": "us"},
			},
		}},
	})
	controller := NewNewsController(news.NewService(news.ServiceOpts{API: api, Cache: newscache.New(10, time.Minute)}))

	for _, fromCache := range []bool{false, true} {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, nil)
		require.NoError(t, controller.GetHeadlines(ctx))

		var body struct {
			FromCache bool `json:"from_cache"`
			Articles  []struct {
				Source map[string]any `json:"source"`
			} `json:"articles"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, fromCache, body.FromCache)
		require.Len(t, body.Articles, 1)
		assert.Equal(t, map[string]any{
			"id": "abc", "country": "us", "name": "Reuters", "url": "https://reuters.com",
		}, body.Articles[0].Source)
	}
}

func TestFindByTitleAndAuthor(t *testing.T) {
	svc, api := newTestNewsService(t)
	controller := NewNewsController(svc)

	t.Run("TitleContains", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/title/go", nil, nil)
		ctx.SetParamNames("title")
		ctx.SetParamValues("go")
		require.NoError(t, controller.FindByTitle(ctx))

		resp := decodeBody[ArticlesResponse](t, rec)
		assert.Equal(t, 2, resp.TotalArticles)
		assert.Equal(t, "go", api.Calls()[0].Params["q"])
	})

	t.Run("TitleExactEscaped", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/title/Why%20Go%3F", nil, map[string]string{"exact": "true"})
		ctx.SetParamNames("title")
		ctx.SetParamValues("Why%20Go%3F")
		require.NoError(t, controller.FindByTitle(ctx))

		resp := decodeBody[ArticlesResponse](t, rec)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, "Why Go?", resp.Articles[0].Title)
		calls := api.Calls()
		assert.Equal(t, `"Why Go?"`, calls[len(calls)-1].Params["q"])
	})

	t.Run("TitleExactSpellings", func(t *testing.T) {
		for _, exact := range []string{"yes", "on", "Y", "1"} {
			ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/title/Why%20Go%3F", nil, map[string]string{"exact": exact})
			ctx.SetParamNames("title")
			ctx.SetParamValues("Why%20Go%3F")
			require.NoError(t, controller.FindByTitle(ctx), exact)
			assert.Len(t, decodeBody[ArticlesResponse](t, rec).Articles, 1, exact)
		}

		for _, exact := range []string{"no", "off", "f", "0"} {
			ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/title/go", nil, map[string]string{"exact": exact})
			ctx.SetParamNames("title")
			ctx.SetParamValues("go")
			require.NoError(t, controller.FindByTitle(ctx), exact)
			assert.Len(t, decodeBody[ArticlesResponse](t, rec).Articles, 2, exact)
		}
	})

	t.Run("TitleBadExact", func(t *testing.T) {
		for _, exact := range []string{"maybe", ""} {
			ctx, _ := setupEchoContext(t, http.MethodGet, "/api/news/title/go", nil, map[string]string{"exact": exact})
			ctx.SetParamNames("title")
			ctx.SetParamValues("go")
			he := requireHTTPError(t, controller.FindByTitle(ctx), http.StatusUnprocessableEntity)
			details := he.Message.([]ValidationDetail)
			require.Len(t, details, 1)
			assert.Equal(t, "bool_parsing", details[0].Type)
		}
	})

	t.Run("Author", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/author/reuters", nil, map[string]string{"count": "1"})
		ctx.SetParamNames("author")
		ctx.SetParamValues("reuters")
		require.NoError(t, controller.FindByAuthor(ctx))

		resp := decodeBody[ArticlesResponse](t, rec)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, "Why Go?", resp.Articles[0].Title)
		assert.Equal(t, 1, resp.TotalArticles)
	})
}

func TestCacheController(t *testing.T) {
	svc, _ := newTestNewsService(t)
	newsController := NewNewsController(svc)
	controller := NewCacheController(svc)

	for i := 0; i < 3; i++ {
		ctx, _ := setupEchoContext(t, http.MethodGet, "/api/news/headlines", nil, nil)
		require.NoError(t, newsController.GetHeadlines(ctx))
	}

	ctx, rec := setupEchoContext(t, http.MethodGet, "/api/news/cache/stats", nil, nil)
	require.NoError(t, controller.GetCacheStats(ctx))
	assert.JSONEq(t, `{"keys":1,"hits":2,"misses":1,"hit_rate":0.667,"cache_size":1}`, rec.Body.String())

	ctx, rec = setupEchoContext(t, http.MethodDelete, "/api/news/cache", nil, nil)
	require.NoError(t, controller.ClearCache(ctx))
	assert.JSONEq(t, `{"success":true,"message":"Cache cleared successfully"}`, rec.Body.String())

	ctx, rec = setupEchoContext(t, http.MethodGet, "/api/news/cache/stats", nil, nil)
	require.NoError(t, controller.GetCacheStats(ctx))
	assert.JSONEq(t, `{"keys":0,"hits":0,"misses":0,"hit_rate":0,"cache_size":0}`, rec.Body.String())
}

func TestInfoController(t *testing.T) {
	svc, api := newTestNewsService(t)
	controller := NewInfoController(svc, "")

	ctx, rec := setupEchoContext(t, http.MethodGet, "/", nil, nil)
	require.NoError(t, controller.Root(ctx))
	assert.Equal(t, APIDocsResponse{
		Message:       "Welcome to News API Service",
		Documentation: "/docs",
		HealthCheck:   "/health",
		Version:       "0.0.1",
		Author:        DefaultAuthor,
	}, decodeBody[APIDocsResponse](t, rec))

	api.SetAPIKeyConfigured(false)
	ctx, rec = setupEchoContext(t, http.MethodGet, "/health", nil, nil)
	require.NoError(t, controller.Health(ctx))
	health := decodeBody[HealthResponse](t, rec)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 0, health.CacheKeys)
	assert.False(t, health.APIKeyConfigured)
	assert.WithinDuration(t, time.Now(), health.Timestamp, time.Minute)
}

func TestDocsController(t *testing.T) {
	controller := NewDocsController()

	ctx, rec := setupEchoContext(t, http.MethodGet, "/openapi.json", nil, nil)
	require.NoError(t, controller.OpenAPI(ctx))
	doc := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "3.0.3", doc["openapi"])
	paths := doc["paths"].(map[string]any)
	for _, p := range []string{"/", "/health", "/api/news/headlines", "/api/news/search", "/api/news/title/{title}",
		"/api/news/author/{author}", "/api/news/cache/stats", "/api/news/cache", "/api/news/archive"} {
		assert.Contains(t, paths, p)
	}

	ctx, rec = setupEchoContext(t, http.MethodGet, "/docs", nil, nil)
	require.NoError(t, controller.SwaggerUI(ctx))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), "/openapi.json")

	ctx, rec = setupEchoContext(t, http.MethodGet, "/redoc", nil, nil)
	require.NoError(t, controller.ReDoc(ctx))
	assert.Contains(t, rec.Body.String(), "redoc")
}

func TestHTTPErrorHandler(t *testing.T) {
	ctx, rec := setupEchoContext(t, http.MethodGet, "/x", nil, nil)
	HTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError, "GNews API Error: 500"), ctx)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"GNews API Error: 500"}`, rec.Body.String())

	ctx, rec = setupEchoContext(t, http.MethodGet, "/x", nil, nil)
	HTTPErrorHandler(assert.AnError, ctx)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"`+assert.AnError.Error()+`"}`, rec.Body.String())

	ctx, rec = setupEchoContext(t, http.MethodGet, "/x", nil, nil)
	HTTPErrorHandler(validationFailed(nil, checkRange("count", 0, 1, 100)), ctx)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":[{"loc":["query","count"],"msg":"Input should be greater than or equal to 1","type":"greater_than_equal"}]}`, rec.Body.String())
}
