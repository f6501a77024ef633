// Package gemini is a small client for the Gemini generateContent REST endpoint.
package gemini

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
)

// ErrEmptyResponse is returned when the response carries no candidate text.
var ErrEmptyResponse = errors.New("gemini response contained no text")

// Client is a client for the Gemini generative language API
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// Config holds the configuration for the Gemini client
type Config struct {
	BaseURL string        // e.g., "https://generativelanguage.googleapis.com"
	Model   string        // e.g., "gemini-1.5-flash"
	APIKey  string        // Sent as x-goog-api-key
	Timeout time.Duration // Request timeout (default: 60 seconds)
}

// NewClient creates a new Gemini client
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.Model == "" {
		config.Model = "gemini-1.5-flash"
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		model:   config.Model,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

type part struct {
	Text string `json:"text,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends a single-turn prompt and returns the first candidate's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request to Gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("parse Gemini response: %w", err)
	}

	if len(parsed.Candidates) == 0 || parsed.Candidates[0].Content == nil ||
		len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
