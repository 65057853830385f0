// Package news implements the news operations behind the HTTP API: top
// headlines, keyword search, and title/author lookups that post-filter a
// search. All upstream traffic goes through the response cache.
package news

import (
	"context"
	"strconv"

	"github.com/news-assignment/newsapi/pkg/clog"
	"github.com/news-assignment/newsapi/pkg/gnews"
	"github.com/news-assignment/newsapi/pkg/lock"
	"github.com/news-assignment/newsapi/pkg/newscache"
	"github.com/news-assignment/newsapi/pkg/newsdb/stor"
)

const (
	// MaxArticles is the most GNews returns in a single call.
	MaxArticles = 100

	DefaultLanguage = "en"
	DefaultCountry  = "us"
	DefaultSortBy   = "relevance"

	titleSearchCount  = 50
	authorSearchCount = 100
)

// Result is a GNews payload plus whether it came from the cache.
type Result struct {
	*gnews.Response
	FromCache bool
}

type Service struct {
	api     gnews.API
	cache   *newscache.Cache
	locker  *lock.KeyLocker
	archive stor.ArticleStor
}

type ServiceOpts struct {
	API   gnews.API
	Cache *newscache.Cache

	// Archive is optional; when set every freshly fetched article is saved.
	Archive stor.ArticleStor
}

func NewService(opts ServiceOpts) *Service {
	cache := opts.Cache
	if cache == nil {
		cache = newscache.New(newscache.DefaultMaxItems, newscache.DefaultTTL)
	}

	return &Service{
		api:     opts.API,
		cache:   cache,
		locker:  lock.NewKeyLocker(),
		archive: opts.Archive,
	}
}

func (s *Service) APIKeyConfigured() bool {
	return s.api.APIKeyConfigured()
}

func (s *Service) GetTopHeadlines(ctx context.Context, count int, lang, country, category string) (*Result, error) {
	params := gnews.Params{
		"max":     strconv.Itoa(min(count, MaxArticles)),
		"country": country,
		"lang":    lang,
	}

	if category != "" {
		params["category"] = category
	}

	return s.fetch(ctx, gnews.TopHeadlinesEndpoint, params)
}

func (s *Service) SearchArticles(ctx context.Context, query string, count int, lang, country, sortBy string) (*Result, error) {
	params := gnews.Params{
		"q":       query,
		"max":     strconv.Itoa(min(count, MaxArticles)),
		"lang":    lang,
		"country": country,
		"sortby":  sortBy,
	}

	return s.fetch(ctx, gnews.SearchEndpoint, params)
}

// FindByTitle searches for title (as a quoted phrase when exact) and keeps the
// articles whose title equals (exact) or contains it, ignoring case.
func (s *Service) FindByTitle(ctx context.Context, title string, exact bool) (*Result, error) {
	query := title
	if exact {
		query = `"` + title + `"`
	}

	result, err := s.SearchArticles(ctx, query, titleSearchCount, DefaultLanguage, DefaultCountry, DefaultSortBy)
	if err != nil {
		return nil, err
	}

	match := containsFold
	if exact {
		match = equalFold
	}

	result.filter(func(a gnews.Article) bool { return match(a.Title, title) }, 0)
	return result, nil
}

// FindByAuthor searches broadly for author and keeps at most count articles
// whose source name contains it, ignoring case. GNews has no author field,
// the source is the closest thing.
func (s *Service) FindByAuthor(ctx context.Context, author string, count int) (*Result, error) {
	result, err := s.SearchArticles(ctx, author, authorSearchCount, DefaultLanguage, DefaultCountry, DefaultSortBy)
	if err != nil {
		return nil, err
	}

	result.filter(func(a gnews.Article) bool { return containsFold(a.Source.Name, author) }, count)
	return result, nil
}

func (s *Service) GetCacheStats() newscache.Stats {
	return s.cache.Stats()
}

func (s *Service) ClearCache() string {
	return s.cache.Clear()
}

// fetch serves a call from the cache or GNews. Concurrent misses on the same
// key are serialized so only the first one reaches GNews; a waiter whose ctx
// is done stops waiting.
func (s *Service) fetch(ctx context.Context, endpoint string, params gnews.Params) (*Result, error) {
	key := newscache.Key(endpoint, params)

	if resp, ok := s.cache.Get(key); ok {
		return &Result{Response: resp, FromCache: true}, nil
	}

	var result *Result
	err := s.locker.WithLockContext(ctx, key, func() error {
		if resp, ok := s.cache.Get(key); ok {
			result = &Result{Response: resp, FromCache: true}
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := s.api.Get(ctx, endpoint, params)
		if err != nil {
			return err
		}

		if resp.Articles == nil {
			resp.Articles = []gnews.Article{}
		}

		s.cache.Store(key, resp)
		s.archiveArticles(endpoint, resp.Articles)
		result = &Result{Response: resp.Clone(), FromCache: false}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) archiveArticles(endpoint string, articles []gnews.Article) {
	if s.archive == nil || len(articles) == 0 {
		return
	}

	written, err := s.archive.SaveArticles(articles, endpoint)
	if err != nil {
		clog.UsingCtx(clog.ArchiveCtx).Errorf("Unable to archive %d articles from %s: %s", len(articles), endpoint, err)
		return
	}

	clog.UsingCtx(clog.ArchiveCtx).WithField("endpoint", endpoint).Debugf("archived %d articles", written)
}
