// Package rates fetches the current USD/BRL quote from dolarhoje.com.
package rates

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/singleflight"

	"github.com/cotacao-api/cotacao/internal/shared"
)

// Fetcher returns the current dollar quote as the upstream page renders it.
type Fetcher interface {
	Dolar(ctx context.Context) (string, error)
}

// Client scrapes the quote from the upstream page. Concurrent calls are
// coalesced through singleflight so a burst of requests produces a single
// upstream hit; the value itself is never cached across calls.
type Client struct {
	url    string
	client *http.Client
	group  singleflight.Group
}

// NewClient constructs a scrape client for the given page URL.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Dolar fetches and extracts the quote. Transport failures, non-2xx answers,
// and pages missing the expected element all surface as ErrUpstreamFetch.
func (c *Client) Dolar(ctx context.Context) (string, error) {
	value, err, _ := singleflightDo(ctx, &c.group, c.url, func() (string, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrUpstreamFetch, err)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrUpstreamFetch, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: upstream status %d", shared.ErrUpstreamFetch, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrUpstreamFetch, err)
	}

	value, exists := doc.Find("input#nacional").Attr("value")
	value = strings.TrimSpace(value)
	if !exists || value == "" {
		return "", fmt.Errorf("%w: quote element not found", shared.ErrUpstreamFetch)
	}
	return value, nil
}

func singleflightDo(ctx context.Context, group *singleflight.Group, key string, fn func() (string, error)) (string, error, bool) {
	resultChan := group.DoChan(key, func() (any, error) {
		return fn()
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err(), false
	case res := <-resultChan:
		value, _ := res.Val.(string)
		return value, res.Err, res.Shared
	}
}

var _ Fetcher = (*Client)(nil)
