// Package document loads the articles and keyword lists the checker and fixer work on.
package document

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single fetch, retries included.
const DefaultTimeout = 30 * time.Second

// DefaultRetryMax is the number of retries after the first attempt.
const DefaultRetryMax = 3

// Options configures a Fetcher. Zero values select the defaults.
type Options struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *slog.Logger
}

// Fetcher retrieves article HTML from a file path or an http(s) URL.
type Fetcher struct {
	client  *retryablehttp.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewFetcher creates a fetcher with a retrying HTTP client.
func NewFetcher(opts Options) (fetcher *Fetcher) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := retryablehttp.NewClient()
	client.RetryMax = DefaultRetryMax
	if opts.RetryMax > 0 {
		client.RetryMax = opts.RetryMax
	}
	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}
	client.Logger = logger

	// Retry on rate limiting as well as the default transient failures.
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		retry, checkErr := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		if retry || checkErr != nil {
			return retry, checkErr
		}

		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return true, nil
		}

		return false, nil
	}

	fetcher = &Fetcher{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
	return fetcher
}

// IsURL reports whether input names an http or https resource.
func IsURL(input string) (ok bool) {
	parsedURL, err := url.Parse(input)
	ok = err == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https")
	return ok
}

// Fetch retrieves the document named by input. A URL is fetched over HTTP; anything else is read from disk.
// The markup is returned as-is.
func (f *Fetcher) Fetch(ctx context.Context, input string) (content string, err error) {
	if IsURL(input) {
		ctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		content, err = f.fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch document from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch document from file: %s", input)
		return content, err
	}

	return content, err
}

// fetchFromFile reads a document from disk. "-" reads standard input.
func fetchFromFile(path string) (content string, err error) {
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	if strings.TrimSpace(content) == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

// fetchFromURL retrieves a document over HTTP.
func (f *Fetcher) fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *retryablehttp.Request
	req, err = retryablehttp.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "content-qa/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	f.logger.Debug("fetching document", "url", urlStr)

	var resp *http.Response
	resp, err = f.client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = string(bodyBytes)
	if strings.TrimSpace(content) == "" {
		err = errors.New("fetched content is empty")
		return content, err
	}

	f.logger.Debug("fetched document", "url", urlStr, "bytes", len(bodyBytes))

	return content, err
}
