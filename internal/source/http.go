package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "listsync/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 16 << 20
)

// HTTP fetches a JSON list from a URL. The body is either an array of
// strings or an object with an "items" array.
type HTTP struct {
	url       *url.URL
	http      *http.Client
	userAgent string
	maxItems  int
}

// NewHTTP builds an HTTP source for rawURL.
func NewHTTP(rawURL string, maxItems int) (*HTTP, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse source url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("source url %q: unsupported scheme %q", rawURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("source url %q: missing host", rawURL)
	}
	u.Fragment = ""
	return &HTTP{
		url: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		maxItems:  maxItems,
	}, nil
}

// Describe implements Source.
func (h *HTTP) Describe() string {
	return h.url.String()
}

type itemsEnvelope struct {
	Items []string `json:"items"`
}

// Fetch implements Source.
func (h *HTTP) Fetch(ctx context.Context) ([]string, error) {
	if h == nil {
		return nil, fmt.Errorf("http source is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("source %s returned status %d", h.url.Redacted(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	items, err := decodeItems(body)
	if err != nil {
		return nil, err
	}
	return keepLast(items, h.maxItems), nil
}

func decodeItems(body []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return items, nil
	}
	var env itemsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return env.Items, nil
}
