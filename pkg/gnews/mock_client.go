package gnews

import (
	"context"
	"sync"
)

// MockClient returns canned responses per endpoint and records every call.
type MockClient struct {
	mu            sync.Mutex
	err           error
	responses     map[string]*Response
	calls         []MockCall
	apiConfigured bool
}

type MockCall struct {
	Endpoint string
	Params   Params
}

func NewMockClient() *MockClient {
	return &MockClient{responses: make(map[string]*Response), apiConfigured: true}
}

func (c *MockClient) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *MockClient) SetResponse(endpoint string, resp *Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[endpoint] = resp
}

func (c *MockClient) SetAPIKeyConfigured(configured bool) {
	c.apiConfigured = configured
}

func (c *MockClient) Calls() []MockCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MockCall(nil), c.calls...)
}

func (c *MockClient) APIKeyConfigured() bool {
	return c.apiConfigured
}

func (c *MockClient) Get(_ context.Context, endpoint string, params Params) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, MockCall{Endpoint: endpoint, Params: params})
	if c.err != nil {
		return nil, c.err
	}

	resp, ok := c.responses[endpoint]
	if !ok {
		return &Response{Articles: []Article{}}, nil
	}

	return resp.Clone(), nil
}
