package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher() (fetcher *Fetcher) {
	fetcher = NewFetcher(Options{
		Timeout:      5 * time.Second,
		RetryMax:     2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})
	return fetcher
}

func TestFetchFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "article.html")
	testContent := "<h2>Trail Running</h2><p>Body.</p>"

	err := os.WriteFile(testFile, []byte(testContent), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	content, err := newTestFetcher().Fetch(context.Background(), testFile)
	if err != nil {
		t.Fatalf("Failed to fetch from file: %v", err)
	}

	if content != testContent {
		t.Errorf("Expected content '%s', got '%s'", testContent, content)
	}
}

func TestFetchFromFileNonexistent(t *testing.T) {
	_, err := newTestFetcher().Fetch(context.Background(), "/nonexistent/article.html")
	if err == nil {
		t.Error("Expected error fetching nonexistent file, got nil")
	}
}

func TestFetchFromFileEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	emptyFile := filepath.Join(tmpDir, "empty.html")

	err := os.WriteFile(emptyFile, []byte("  \n"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err = fetchFromFile(emptyFile)
	if err == nil {
		t.Error("Expected error fetching empty file, got nil")
	}
}

func TestFetchFromURLKeepsMarkup(t *testing.T) {
	testContent := `<html><body><div class="key-takeaways-box"><p>Tip.</p></div></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "content-qa/1.0" {
			t.Errorf("Unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(testContent))
	}))
	defer server.Close()

	content, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Failed to fetch from URL: %v", err)
	}

	if content != testContent {
		t.Errorf("Expected markup to be returned unchanged, got '%s'", content)
	}
}

func TestFetchFromURL404(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for 404 response, got nil")
	}

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("Expected 404 not to be retried, got %d attempts", got)
	}
}

func TestFetchFromURLRetriesRateLimit(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("<p>Second time lucky.</p>"))
	}))
	defer server.Close()

	content, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}

	if content != "<p>Second time lucky.</p>" {
		t.Errorf("Unexpected content '%s'", content)
	}

	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("Expected 2 attempts, got %d", got)
	}
}

func TestFetchFromURLGivesUp(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error after exhausting retries, got nil")
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestFetchFromURLTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		_, _ = w.Write([]byte("too slow"))
	}))
	defer server.Close()

	fetcher := NewFetcher(Options{Timeout: 100 * time.Millisecond, RetryMax: 1, RetryWaitMin: time.Millisecond, RetryWaitMax: time.Millisecond})

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestFetchFromURLEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for empty body, got nil")
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{input: "https://example.com/guide", expected: true},
		{input: "http://localhost:8080/a", expected: true},
		{input: "ftp://example.com/a", expected: false},
		{input: "article.html", expected: false},
		{input: "/tmp/article.html", expected: false},
		{input: "-", expected: false},
	}

	for _, tt := range tests {
		if got := IsURL(tt.input); got != tt.expected {
			t.Errorf("IsURL(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}
