// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/gopki/ca-bundle-crawler/src/internal/helper/gc"
)

const (
	// DefaultTimeout bounds a single fetch operation.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps a single download.
	DefaultMaxBytes = 64 << 20
)

var (
	// ErrUnsupportedScheme indicates a URL scheme the client cannot fetch.
	ErrUnsupportedScheme = errors.New("fetch: unsupported scheme")

	// ErrUnexpectedStatus indicates a non-2xx HTTP response.
	ErrUnexpectedStatus = errors.New("fetch: unexpected status")

	// ErrTooLarge indicates a response body over the size cap.
	ErrTooLarge = errors.New("fetch: response body too large")
)

// Error wraps a fetch failure with the location that caused it.
type Error struct {
	Location string
	Err      error
}

func (e *Error) Error() string { return fmt.Sprintf("fetch %s: %v", e.Location, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Fetcher retrieves the raw bytes behind one location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Config holds transport configuration for fetch operations.
type Config struct {
	Timeout   time.Duration // request timeout
	Version   string        // application version for User-Agent
	UserAgent string        // custom User-Agent string, if empty will be constructed from Version
	MaxBytes  int64         // single-download size cap, DefaultMaxBytes when zero

	mu     sync.Mutex
	client *http.Client
}

// NewConfig creates a new transport configuration with default values.
//
// It initializes the configuration with a default timeout of 10 seconds
// and the provided application version.
//
// Parameters:
//   - version: Application version string
//
// Returns:
//   - *Config: New transport configuration
func NewConfig(version string) *Config {
	return &Config{
		Timeout: DefaultTimeout,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
//
// If a custom User-Agent is configured, it returns that. Otherwise, it
// constructs a default one including the application version and GitHub URL.
//
// Returns:
//   - string: User-Agent string
func (c *Config) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("CA-Bundle-Crawler/%s (+https://github.com/gopki/ca-bundle-crawler)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// It creates or reuses an http.Client, ensuring it uses the configured
// timeout. Proxy configuration comes from the environment through the
// default transport.
//
// Returns:
//   - *http.Client: Configured HTTP client
//
// Thread Safety: Safe for concurrent use.
func (c *Config) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

func (c *Config) maxBytes() int64 {
	if c.MaxBytes > 0 {
		return c.MaxBytes
	}
	return DefaultMaxBytes
}

// Client fetches certificate material from local paths, HTTP(S) URLs and
// FTP URLs.
type Client struct {
	Config *Config
	Cache  *Cache // optional download cache, nil disables caching
}

// NewClient creates a fetch client. A nil config gets defaults; a nil
// cache disables the download cache.
func NewClient(config *Config, cache *Cache) *Client {
	if config == nil {
		config = NewConfig("")
	}
	return &Client{Config: config, Cache: cache}
}

// Fetch retrieves the raw bytes behind location.
//
// Locations without a scheme (and single-letter Windows drive schemes)
// are read from the filesystem; http and https go through the HTTP
// client; ftp performs an anonymous RETR. Anything else fails with
// ErrUnsupportedScheme.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - location: Local path or URL to fetch
//
// Returns:
//   - []byte: Fetched content
//   - error: *Error wrapping the cause, if fetching fails
func (c *Client) Fetch(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, &Error{Location: location, Err: err}
		}
		return data, nil
	}

	switch u.Scheme {
	case "http", "https":
		return c.fetchHTTP(ctx, location)
	case "ftp":
		return c.fetchFTP(ctx, u)
	default:
		return nil, &Error{Location: location, Err: fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)}
	}
}

// fetchHTTP performs a GET, consulting the download cache when one is
// configured: fresh entries short-circuit the request entirely, stale
// entries ride along as If-Modified-Since and are reused on 304.
func (c *Client) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	var (
		cachedData []byte
		cachedTime time.Time
		haveCached bool
	)
	if c.Cache != nil {
		if data, modTime, ok := c.Cache.Get(location); ok {
			if c.Cache.Fresh(modTime) {
				return data, nil
			}
			cachedData, cachedTime, haveCached = data, modTime, true
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &Error{Location: location, Err: err}
	}

	// Set the User-Agent header with version information and GitHub link
	req.Header.Set("User-Agent", c.Config.GetUserAgent())
	if haveCached {
		req.Header.Set("If-Modified-Since", cachedTime.UTC().Format(http.TimeFormat))
	}

	resp, err := c.Config.Client().Do(req)
	if err != nil {
		return nil, &Error{Location: location, Err: err}
	}
	defer resp.Body.Close()

	if haveCached && resp.StatusCode == http.StatusNotModified {
		c.Cache.Touch(location)
		return cachedData, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Location: location, Err: fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)}
	}

	data, err := c.readAll(resp.Body)
	if err != nil {
		return nil, &Error{Location: location, Err: err}
	}

	if c.Cache != nil {
		c.Cache.Put(location, data)
	}
	return data, nil
}

// fetchFTP retrieves u by FTP RETR, logging in anonymously unless the URL
// carries credentials.
func (c *Client) fetchFTP(ctx context.Context, u *url.URL) ([]byte, error) {
	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "21")
	}

	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(c.Config.Timeout))
	if err != nil {
		return nil, &Error{Location: u.String(), Err: err}
	}
	defer conn.Quit()

	user, pass := "anonymous", "anonymous"
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}
	if err := conn.Login(user, pass); err != nil {
		return nil, &Error{Location: u.String(), Err: err}
	}

	resp, err := conn.Retr(u.Path)
	if err != nil {
		return nil, &Error{Location: u.String(), Err: err}
	}
	defer resp.Close()

	data, err := c.readAll(resp)
	if err != nil {
		return nil, &Error{Location: u.String(), Err: err}
	}
	return data, nil
}

// readAll drains r through a pooled buffer, enforcing the size cap.
func (c *Client) readAll(r io.Reader) ([]byte, error) {
	limit := c.Config.maxBytes()

	// Get a buffer from the pool
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(io.LimitReader(r, limit+1)); err != nil {
		return nil, err
	}
	if int64(buf.Len()) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}
