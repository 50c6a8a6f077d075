// Package fetch downloads chart payloads over HTTP.
//
// A [Client] validates the URL, retries transient failures with backoff,
// enforces the payload size limit and caches successful responses in a
// [cache.Cache] under an HTTP key:
//
//	client := fetch.NewClient(fetch.Options{Cache: c})
//	data, err := client.Fetch(ctx, "https://charts.example.com/v1/chart/42", false)
//
// A 404 response yields NOT_FOUND; 5xx responses and network failures are
// retried and finally reported as NETWORK_ERROR or TIMEOUT.
package fetch

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kundli/pkg/buildinfo"
	"github.com/matzehuels/kundli/pkg/cache"
	"github.com/matzehuels/kundli/pkg/errors"
	"github.com/matzehuels/kundli/pkg/observability"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second

	// Namespace is the HTTP key namespace of cached payloads.
	Namespace = "payload"
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	Timeout time.Duration
	Retry   cache.RetryPolicy
	TTL     time.Duration
	Headers map[string]string

	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Client fetches payloads with caching and retries. It is safe for
// concurrent use.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	retry   cache.RetryPolicy
	headers map[string]string
	logger  *log.Logger
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retry.Attempts == 0 {
		opts.Retry = cache.DefaultRetry
	}
	if opts.TTL == 0 {
		opts.TTL = cache.HTTPTTL
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		cache:   opts.Cache,
		keyer:   opts.Keyer,
		ttl:     opts.TTL,
		retry:   opts.Retry,
		headers: opts.Headers,
		logger:  opts.Logger,
	}
}

// Fetch returns the body at rawURL. If refresh is true the cache is
// bypassed, but the fresh response is still stored.
func (c *Client) Fetch(ctx context.Context, rawURL string, refresh bool) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	key := c.keyer.HTTPKey(Namespace, rawURL)
	if !refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "http")
			c.logger.Debug("payload from cache", "url", rawURL)
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}

	var body []byte
	err := c.retry.Do(ctx, func() error {
		var err error
		body, err = c.get(ctx, rawURL)
		if err != nil && cache.IsRetryable(err) {
			c.logger.Warn("fetch failed, retrying", "url", rawURL, "err", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "kind", "http", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "http", len(body))
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	u, _ := url.Parse(rawURL)
	hooks := observability.HTTP()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidURL, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, transportError(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, rawURL); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, errors.MaxPayloadBytes+1))
	if err != nil {
		return nil, transportError(err)
	}
	if err := errors.ValidatePayloadSize(len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

func transportError(err error) error {
	var ne net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &ne) && ne.Timeout()) {
		return cache.Retryable(errors.Wrap(errors.ErrCodeTimeout, err, "request timed out"))
	}
	return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "request failed"))
}

func checkStatus(code int, rawURL string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "no payload at %s", rawURL)
	case code >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "%s: status %d", rawURL, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: status %d", rawURL, code)
	}
}
