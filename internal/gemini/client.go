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
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	textModel  = "gemini-2.5-flash"
	ttsModel   = "gemini-2.5-flash-preview-tts"
	videoModel = "veo-3.1-fast-generate-preview"

	requestTimeout = 5 * time.Minute
)

// ErrMissingAPIKey is returned when the client is built without credentials.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// ErrMissingVideoAPIKey is returned when a video call runs before the user
// selected a video-capable key.
var ErrMissingVideoAPIKey = errors.New("video api key is not selected")

// Config carries credentials and overridable transport settings.
type Config struct {
	APIKey      string
	VideoAPIKey string
	BaseURL     string
	HTTPClient  *http.Client
}

// Client is the single provider client for all Gemini capabilities. It is
// constructed once at bootstrap and shared by every call.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	videoAPIKey string
}

// NewClient builds the provider client from configuration.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		httpClient:  httpClient,
		videoAPIKey: strings.TrimSpace(cfg.VideoAPIKey),
	}, nil
}

// SetVideoAPIKey stores the user-selected key that gates the video path.
func (c *Client) SetVideoAPIKey(key string) {
	c.mu.Lock()
	c.videoAPIKey = strings.TrimSpace(key)
	c.mu.Unlock()
}

// HasVideoAPIKey reports whether the video path is available.
func (c *Client) HasVideoAPIKey() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.videoAPIKey != ""
}

// videoKey returns the selected video key or an error when absent.
func (c *Client) videoKey() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.videoAPIKey == "" {
		return "", ErrMissingVideoAPIKey
	}
	return c.videoAPIKey, nil
}

// postJSON issues one JSON request and decodes the JSON response.
func (c *Client) postJSON(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// getJSON issues one GET request and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

// do executes a request and maps non-2xx responses to errors carrying the
// provider's message body.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call gemini api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gemini api returned %d: %s", resp.StatusCode, truncate(string(data), 512))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// modelURL builds a model method endpoint with key authentication.
func (c *Client) modelURL(model, method, key string) string {
	return fmt.Sprintf("%s/models/%s:%s?key=%s", c.baseURL, model, method, key)
}

// truncate limits provider error bodies embedded in error messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Wire types shared by the generateContent-based capabilities.

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature        *float64      `json:"temperature,omitempty"`
	ResponseMIMEType   string        `json:"responseMimeType,omitempty"`
	ResponseSchema     *schema       `json:"responseSchema,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// firstText returns the first text part of the first candidate.
func (r *generateContentResponse) firstText() string {
	for _, cand := range r.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

// firstInlineData returns the first inline payload of the first candidate.
func (r *generateContentResponse) firstInlineData() *inlineData {
	for _, cand := range r.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData
			}
		}
	}
	return nil
}

// schema is the subset of the OpenAPI schema dialect accepted by the
// structured-output API.
type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}
