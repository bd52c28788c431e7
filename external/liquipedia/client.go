package liquipedia

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
	"github.com/riskibarqy/roster-wayback/internal/platform/resilience"
	"github.com/riskibarqy/roster-wayback/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL   = "https://liquipedia.net"
	defaultUserAgent = "RosterWaybackBot/0.1.0"
	maxBodySize      = 8 << 20
	maxRedirects     = 5
)

var errLiquipediaTransient = crerr.New("liquipedia transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Email          string
	Timeout        time.Duration
	Delay          time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Page is a fetched wiki page. URL is the address after redirects.
type Page struct {
	URL  string
	Body []byte
}

// Client fetches wiki pages politely: one request per Delay across all
// callers, with retries on transient failures.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
	delay      time.Duration
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[Page]

	mu          sync.Mutex
	nextRequest time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                     defaultUserAgent,
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			MaxResponseBodySize:      maxBodySize,
			NoDefaultUserAgentHeader: true,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker).
		OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("liquipedia circuit breaker state changed", "from", from, "to", to)
		})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  UserAgent(cfg.Email),
		timeout:    timeout,
		delay:      max(cfg.Delay, 0),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    breaker,
	}
}

// UserAgent follows the wiki's API etiquette of naming a contact address.
func UserAgent(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return defaultUserAgent
	}
	return defaultUserAgent + " (" + email + ")"
}

// ResolveURL turns a wiki href into an absolute URL on the configured host.
func (c *Client) ResolveURL(ref string) (string, error) {
	return resolveURL(c.baseURL+"/", ref)
}

func (c *Client) FetchPage(ctx context.Context, ref string) (Page, error) {
	fullURL, err := c.ResolveURL(ref)
	if err != nil {
		return Page{}, crerr.Wrapf(err, "resolve %q", ref)
	}

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "liquipedia circuit breaker rejected request", "state", c.breaker.State(), "url", fullURL)
		return Page{}, fmt.Errorf("%w: liquipedia is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	page, err, _ := c.flight.Do(fullURL, func() (Page, error) {
		page, reqErr := c.executeRequest(ctx, fullURL)
		c.breaker.Record(reqErr != nil && isLiquipediaCircuitFailure(reqErr))
		return page, reqErr
	})
	return page, err
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) (Page, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.wait(ctx); err != nil {
			return Page{}, err
		}

		page, retryable, err := c.get(fullURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !retryable {
			return Page{}, lastErr
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Page{}, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("liquipedia request failed")
	}
	c.logger.WarnContext(ctx, "liquipedia request failed", "url", fullURL, "error", lastErr)
	return Page{}, lastErr
}

// get performs one GET and follows redirects by hand so the final page URL
// is known.
func (c *Client) get(fullURL string) (Page, bool, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	current := fullURL
	for redirects := 0; ; redirects++ {
		req.Reset()
		resp.Reset()
		req.SetRequestURI(current)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.SetUserAgent(c.userAgent)
		req.Header.Set("Accept", "text/html")
		req.Header.Set("Accept-Encoding", "gzip")

		if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
			return Page{}, true, fmt.Errorf("%w: send request: %v", errLiquipediaTransient, err)
		}

		status := resp.StatusCode()
		if fasthttp.StatusCodeIsRedirect(status) {
			if redirects >= maxRedirects {
				return Page{}, false, fmt.Errorf("too many redirects from %s", fullURL)
			}
			next, err := resolveURL(current, string(resp.Header.Peek(fasthttp.HeaderLocation)))
			if err != nil {
				return Page{}, false, crerr.Wrap(err, "resolve redirect location")
			}
			current = next
			continue
		}

		body, err := resp.BodyUncompressed()
		if err != nil {
			return Page{}, true, fmt.Errorf("%w: read response body: %v", errLiquipediaTransient, err)
		}
		if status >= 200 && status < 300 {
			return Page{URL: current, Body: append([]byte(nil), body...)}, false, nil
		}
		if isRetryableStatus(status) {
			return Page{}, true, fmt.Errorf("%w: status=%d url=%s", errLiquipediaTransient, status, current)
		}
		return Page{}, false, fmt.Errorf("status=%d url=%s", status, current)
	}
}

// wait blocks until this caller's request slot. Slots are Delay apart.
func (c *Client) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}

	c.mu.Lock()
	now := time.Now()
	slot := c.nextRequest
	if slot.Before(now) {
		slot = now
	}
	c.nextRequest = slot.Add(c.delay)
	c.mu.Unlock()

	sleep := time.Until(slot)
	if sleep <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func isLiquipediaCircuitFailure(err error) bool {
	return stderrors.Is(err, errLiquipediaTransient)
}

func resolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
