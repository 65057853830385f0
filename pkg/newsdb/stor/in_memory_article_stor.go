package stor

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/news-assignment/newsapi/pkg/gnews"
	"github.com/news-assignment/newsapi/pkg/newsdb/newsmodel"
)

// InMemoryArticleStor is an ArticleStor for tests that don't want a database.
type InMemoryArticleStor struct {
	mu       sync.Mutex
	nextID   int
	articles map[string]*newsmodel.ArchivedArticle
	err      error
}

func NewInMemoryArticleStor() *InMemoryArticleStor {
	return &InMemoryArticleStor{nextID: 1, articles: make(map[string]*newsmodel.ArchivedArticle)}
}

func (s *InMemoryArticleStor) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryArticleStor) SaveArticles(articles []gnews.Article, fetchedVia string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0, s.err
	}

	written := 0
	now := time.Now()
	for _, a := range articles {
		if a.URL == "" {
			continue
		}

		row := newsmodel.FromGNewsArticle(a, fetchedVia)
		row.UpdatedAt = now
		if existing, ok := s.articles[a.URL]; ok {
			row.ID, row.UUID, row.CreatedAt = existing.ID, existing.UUID, existing.CreatedAt
		} else {
			id, err := uuid.GenerateUUID()
			if err != nil {
				return written, err
			}
			row.ID, row.UUID, row.CreatedAt = s.nextID, id, now
			s.nextID++
		}

		s.articles[a.URL] = &row
		written++
	}

	return written, nil
}

func (s *InMemoryArticleStor) ListRecent(count int, source string) ([]newsmodel.ArchivedArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	var result []newsmodel.ArchivedArticle
	for _, a := range s.articles {
		if source == "" || strings.Contains(strings.ToLower(a.SourceName), strings.ToLower(source)) {
			result = append(result, *a)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return newerThan(result[i], result[j])
	})

	if len(result) > count {
		result = result[:count]
	}

	return result, nil
}

func newerThan(a, b newsmodel.ArchivedArticle) bool {
	switch {
	case a.PublishedAt == nil && b.PublishedAt == nil:
		return a.ID > b.ID
	case a.PublishedAt == nil:
		return false
	case b.PublishedAt == nil:
		return true
	case a.PublishedAt.Equal(*b.PublishedAt):
		return a.ID > b.ID
	default:
		return a.PublishedAt.After(*b.PublishedAt)
	}
}
