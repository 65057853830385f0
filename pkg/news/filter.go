package news

import (
	"strings"

	"github.com/news-assignment/newsapi/pkg/gnews"
)

// filter keeps the articles accepted by keep, stopping after limit matches
// when limit > 0, and resets TotalArticles to the number kept.
func (r *Result) filter(keep func(gnews.Article) bool, limit int) {
	filtered := make([]gnews.Article, 0, len(r.Articles))
	for _, a := range r.Articles {
		if !keep(a) {
			continue
		}

		filtered = append(filtered, a)
		if limit > 0 && len(filtered) >= limit {
			break
		}
	}

	r.Articles = filtered
	r.TotalArticles = len(filtered)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
