package yfinance

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"
)

const (
	VERSION = "0.1.0"

	// DefaultTimeout bounds a single document fetch
	DefaultTimeout = 30 * time.Second

	// maxLineBytes is the longest line the fetcher will split out.
	// Statement pages put whole tables on one line.
	maxLineBytes = 1024 * 1024
)

var (
	// ErrMalformedURL is returned when the document URL cannot be requested at all
	ErrMalformedURL = errors.New("malformed URL")
	// ErrTransport covers request, status and read failures
	ErrTransport = errors.New("transport error")
)

// DocumentFetcher returns a remote document as lines of text
type DocumentFetcher interface {
	FetchLines(ctx context.Context, url string) ([]string, error)
}

// BuildUserAgent creates the User-Agent string sent with every request
func BuildUserAgent() string {
	return fmt.Sprintf("go-yfinance/%s", VERSION)
}

// HTTPFetcher fetches documents over HTTP. It does not retry.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPFetcher returns a fetcher with the given timeout (DefaultTimeout if zero)
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: BuildUserAgent(),
	}
}

// FetchLines fetches rawURL and returns its body decoded to UTF-8 and split
// into lines
func (f *HTTPFetcher) FetchLines(ctx context.Context, rawURL string) ([]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrMalformedURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrMalformedURL, err)
	}

	userAgent := f.UserAgent
	if userAgent == "" {
		userAgent = BuildUserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrTransport, u.Host, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrTransport, err)
	}

	lines, err := ReadLines(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}
	return lines, nil
}

// ReadLines splits r into lines, dropping line terminators (LF or CRLF)
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
