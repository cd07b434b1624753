package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/embedding"
	"github.com/spigell/ats-matcher/internal/utils"
)

const (
	DefaultURL     = "http://localhost:11434"
	DefaultModel   = "all-minilm"
	DefaultTimeout = 60 * time.Second

	embedPath   = "/api/embed"
	contentType = "application/json"
	userAgent   = "spigell/ats-matcher"

	maxErrorBody = 200
)

type Client struct {
	logger     *zap.Logger
	model      string
	HTTPClient *http.Client
	UserAgent  string
	URL        string
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Model      string      `mapstructure:"model"`
	Embeddings [][]float32 `mapstructure:"embeddings"`
}

// New returns a client for a local Ollama server. Empty values fall back to defaults.
func New(url, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if url = strings.TrimRight(strings.TrimSpace(url), "/"); url == "" {
		url = DefaultURL
	}

	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger: logger,
		model:  model,
		URL:    url,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
	}
}

func (c *Client) Provider() string {
	return embedding.ProviderOllama
}

func (c *Client) Model() string {
	return c.model
}

// Embed sends all texts in a single /api/embed request.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embedRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+embedPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", embedding.ErrUnavailable, c.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embed response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: model %q: %s", embedding.ErrUnavailable, c.model, utils.TruncateForLog(string(data), maxErrorBody))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("bad status: %s: %s", resp.Status, utils.TruncateForLog(string(data), maxErrorBody))
	}

	parsed, err := parseEmbedResponse(data)
	if err != nil {
		return nil, err
	}

	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d texts", len(parsed.Embeddings), len(texts))
	}

	for i, v := range parsed.Embeddings {
		if len(v) == 0 {
			return nil, fmt.Errorf("ollama returned empty embedding %d", i)
		}
	}

	c.logger.Debug("got embeddings from ollama",
		zap.Int("count", len(parsed.Embeddings)),
		zap.Int("dimension", len(parsed.Embeddings[0])),
	)

	return parsed.Embeddings, nil
}

func parseEmbedResponse(data []byte) (*embedResponse, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse embed response: %w", err)
	}

	if msg, ok := raw["error"].(string); ok && msg != "" {
		return nil, errors.New("ollama: " + msg)
	}

	var parsed embedResponse
	if err := mapstructure.Decode(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}

	return &parsed, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()), zap.String("model", c.model))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", c.UserAgent)

	return req
}
