package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestHTTP_FetchArrayAndEnvelope(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/array":
			_ = json.NewEncoder(w).Encode([]string{"a", "b", "c"})
		case "/envelope":
			_ = json.NewEncoder(w).Encode(map[string]any{"items": []string{"x", "y"}})
		case "/empty":
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	tests := []struct {
		path     string
		maxItems int
		want     []string
	}{
		{"/array", 0, []string{"a", "b", "c"}},
		{"/array", 2, []string{"b", "c"}},
		{"/envelope", 0, []string{"x", "y"}},
		{"/empty", 0, nil},
	}
	for _, tt := range tests {
		h, err := NewHTTP(server.URL+tt.path, tt.maxItems)
		if err != nil {
			t.Fatalf("NewHTTP returned error: %v", err)
		}
		got, err := h.Fetch(ctx)
		if err != nil {
			t.Fatalf("Fetch(%s) returned error: %v", tt.path, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Fetch(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
}

func TestHTTP_FetchErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			_, _ = w.Write([]byte("{not json"))
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	h, _ := NewHTTP(server.URL+"/fail", 0)
	if _, err := h.Fetch(context.Background()); err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("Fetch error = %v, want status 500", err)
	}

	h, _ = NewHTTP(server.URL+"/bad", 0)
	if _, err := h.Fetch(context.Background()); err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Fetch error = %v, want decode response", err)
	}
}

func TestNewHTTP_RejectsBadURLs(t *testing.T) {
	for _, raw := range []string{"ftp://host/x", "http://", "://nope"} {
		if _, err := NewHTTP(raw, 0); err == nil {
			t.Fatalf("NewHTTP(%q) returned nil error", raw)
		}
	}
}
