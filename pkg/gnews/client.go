package gnews

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/news-assignment/newsapi/pkg/clog"
)

const (
	DefaultBaseURL = "https://gnews.io/api/v4"
	DefaultTimeout = 30 * time.Second

	TopHeadlinesEndpoint = "top-headlines"
	SearchEndpoint       = "search"
)

// API is what the news service needs from GNews. Client talks to the real
// service, MockClient is used in tests.
type API interface {
	Get(ctx context.Context, endpoint string, params Params) (*Response, error)
	APIKeyConfigured() bool
}

type Client struct {
	client *resty.Client
	apiKey string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if apiKey == "" {
		clog.UsingCtx(clog.GNewsCtx).Warn("GNEWS_API_KEY not found in environment variables")
	}

	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		apiKey: apiKey,
	}
}

func (c *Client) APIKeyConfigured() bool {
	return c.apiKey != ""
}

// Get calls GNews endpoint (top-headlines, search) with params plus the API
// key and decodes the article list.
func (c *Client) Get(ctx context.Context, endpoint string, params Params) (*Response, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("apikey", c.apiKey).
		Get("/" + endpoint)

	if err != nil {
		return nil, networkError(err)
	}

	if resp.IsError() {
		return nil, ToErrorFromResponse(resp)
	}

	var result Response
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, requestError(err)
	}

	clog.UsingCtx(clog.GNewsCtx).WithField("endpoint", endpoint).Debugf("fetched %d articles", len(result.Articles))

	return &result, nil
}
