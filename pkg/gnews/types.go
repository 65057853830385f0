package gnews

import (
	"encoding/json"
	"maps"
)

// Params are the query parameters of a GNews call, excluding the API key.
type Params map[string]string

// Source is the publisher of an article. GNews may send more than name and
// url; those keys are kept in Extra and written back out unchanged.
type Source struct {
	Name  string
	URL   string
	Extra map[string]any
}

func (s Source) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Extra)+2)
	for k, v := range s.Extra {
		m[k] = v
	}

	m["name"] = s.Name
	if s.URL != "" {
		m["url"] = s.URL
	}

	return json.Marshal(m)
}

func (s *Source) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	*s = Source{}
	for k, v := range m {
		switch k {
		case "name":
			s.Name, _ = v.(string)
		case "url":
			s.URL, _ = v.(string)
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[k] = v
		}
	}

	return nil
}

type Article struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	URL         string  `json:"url"`
	Image       *string `json:"image"`
	PublishedAt string  `json:"publishedAt"`
	Source      Source  `json:"source"`
}

// Response is the payload GNews returns for both top-headlines and search.
type Response struct {
	TotalArticles int       `json:"totalArticles"`
	Articles      []Article `json:"articles"`
}

// Clone returns a copy whose Articles slice can be modified without touching r.
func (r *Response) Clone() *Response {
	articles := make([]Article, len(r.Articles))
	copy(articles, r.Articles)
	for i := range articles {
		articles[i].Source.Extra = maps.Clone(articles[i].Source.Extra)
	}

	return &Response{TotalArticles: r.TotalArticles, Articles: articles}
}
