package words

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hagxwon/internal/models"
)

// Client talks to the upstream word catalog and AI practice service.
// All calls are JSON request/response; failures come back as a single
// wrapped error with a human-readable message so handlers can surface
// them inline and fall back to an empty result set.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the catalog at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListWords fetches a page of vocabulary items
func (c *Client) ListWords(ctx context.Context, offset, limit int) ([]models.Word, error) {
	endpoint := fmt.Sprintf("words?skip=%d&limit=%d", offset, limit)

	var words []models.Word
	if err := c.get(ctx, endpoint, &words); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}

// GetWord fetches a single vocabulary item by id
func (c *Client) GetWord(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	if err := c.get(ctx, fmt.Sprintf("words/%d", id), &word); err != nil {
		return nil, fmt.Errorf("failed to get word %d: %w", id, err)
	}
	return &word, nil
}

// SemanticSearch returns up to limit words similar to the query
func (c *Client) SemanticSearch(ctx context.Context, query string, limit int) ([]models.WordSearchResult, error) {
	body := map[string]interface{}{
		"query": query,
		"limit": limit,
	}

	var results []models.WordSearchResult
	if err := c.post(ctx, "words/search", body, &results); err != nil {
		return nil, fmt.Errorf("semantic search failed: %w", err)
	}
	return results, nil
}

// PracticeContent requests AI-generated practice material for a word
func (c *Client) PracticeContent(ctx context.Context, wordID int64, practiceType string) (*models.PracticeContent, error) {
	body := map[string]interface{}{
		"practice_type": practiceType,
	}

	var content models.PracticeContent
	endpoint := fmt.Sprintf("words/%d/practice", wordID)
	if err := c.post(ctx, endpoint, body, &content); err != nil {
		return nil, fmt.Errorf("failed to generate practice content: %w", err)
	}
	return &content, nil
}

// Ping checks whether the upstream service is reachable
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("word service unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("word service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(endpoint), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) endpointURL(endpoint string) string {
	return c.baseURL + "/" + endpoint
}
