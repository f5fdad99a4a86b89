package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ClientConfig holds configuration for the A2A client.
type ClientConfig struct {
	// Timeout for task submission requests.
	Timeout time.Duration
	// Custom HTTP client (optional).
	HTTPClient *http.Client
	// Additional headers to include in requests.
	Headers map[string]string
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Timeout: 60 * time.Second,
		Headers: make(map[string]string),
	}
}

// Client submits tasks to a single remote agent over HTTP.
//
// Every call is a single attempt: failures come back as typed errors
// (TransportError, MalformedResponseError, RemoteError) and are never
// retried.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the agent reachable at baseURL.
func NewClient(baseURL string, config *ClientConfig) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if config == nil {
		config = DefaultClientConfig()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		baseURL:    baseURL,
	}, nil
}

// SendMessage posts a message to the agent's task endpoint and returns
// the resulting task.
func (c *Client) SendMessage(ctx context.Context, params *SendParams) (*Task, error) {
	reqBody, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range c.config.Headers {
		httpReq.Header.Set(key, value)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Cause: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Cause: err}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			URL:   c.baseURL,
			Cause: fmt.Errorf("HTTP error %d: %s", httpResp.StatusCode, string(respBody)),
		}
	}

	var response SendResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, &MalformedResponseError{URL: c.baseURL, Cause: err}
	}

	if response.Error != nil {
		return nil, response.Error
	}
	if response.Result == nil {
		return nil, &MalformedResponseError{
			URL:   c.baseURL,
			Cause: fmt.Errorf("response carries neither result nor error"),
		}
	}

	return response.Result, nil
}

// AgentCardResolver fetches agent cards from remote base URLs.
type AgentCardResolver struct {
	httpClient *http.Client
	baseURL    string
}

// NewAgentCardResolver creates a resolver for the given base URL. A nil
// httpClient gets a default with a 30 second timeout.
func NewAgentCardResolver(baseURL string, httpClient *http.Client) *AgentCardResolver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &AgentCardResolver{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// GetAgentCard fetches an agent card from a relative path under the
// resolver's base URL.
func (r *AgentCardResolver) GetAgentCard(ctx context.Context, relativePath string) (*AgentCard, error) {
	fullURL, err := url.JoinPath(r.baseURL, relativePath)
	if err != nil {
		return nil, fmt.Errorf("failed to construct URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: fullURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &TransportError{
			URL:   fullURL,
			Cause: fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body)),
		}
	}

	var agentCard AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&agentCard); err != nil {
		return nil, &MalformedResponseError{URL: fullURL, Cause: err}
	}

	return &agentCard, nil
}

// GetWellKnownAgentCard fetches the agent card from the well-known path.
func (r *AgentCardResolver) GetWellKnownAgentCard(ctx context.Context) (*AgentCard, error) {
	return r.GetAgentCard(ctx, WellKnownCardPath)
}
