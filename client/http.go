package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4

	// maxPages bounds a single kind so a misbehaving server cannot make
	// FetchCatalog spin forever.
	maxPages = 500
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	// Concurrency caps in-flight page requests during FetchCatalog.
	Concurrency int

	log *slog.Logger
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Concurrency: defaultConcurrency,
		log:         slog.New(slog.DiscardHandler),
	}
}

func (c *Client) SetToken(token string) {
	c.Token = token
}

func (c *Client) SetLogger(l *slog.Logger) {
	if l != nil {
		c.log = l
	}
}

// FetchPage returns one page of a catalog section.
func (c *Client) FetchPage(ctx context.Context, kind Kind, page int) (*CatalogPage, error) {
	path := fmt.Sprintf("/api/v1/catalog/%s?page=%d", url.PathEscape(string(kind)), page)
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s page %d: %w", kind, page, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var result CatalogPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode %s page %d: %w", kind, page, err)
	}
	if result.Page == 0 {
		result.Page = page
	}
	for i := range result.Items {
		if result.Items[i].Kind == "" {
			result.Items[i].Kind = kind
		}
	}
	return &result, nil
}

// FetchCatalog fetches every page of every kind concurrently and merges them
// in kind order, then page order. The first page of each kind is fetched
// before the rest because it carries the page count. Items repeated across
// pages are kept once.
func (c *Client) FetchCatalog(ctx context.Context, kinds []Kind) ([]Item, error) {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	start := time.Now()

	firsts := make([]*CatalogPage, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit())
	for i, k := range kinds {
		g.Go(func() error {
			p, err := c.FetchPage(gctx, k, 1)
			if err != nil {
				return err
			}
			firsts[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	pages := make([][]*CatalogPage, len(kinds))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(c.limit())
	for i, k := range kinds {
		total := min(max(firsts[i].TotalPages, 1), maxPages)
		pages[i] = make([]*CatalogPage, total)
		pages[i][0] = firsts[i]
		for p := 2; p <= total; p++ {
			g.Go(func() error {
				page, err := c.FetchPage(gctx, k, p)
				if err != nil {
					return err
				}
				pages[i][p-1] = page
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	var items []Item
	seen := make(map[string]bool)
	for i := range kinds {
		for _, p := range pages[i] {
			for _, it := range p.Items {
				id := string(it.Kind) + "/" + it.ID
				if seen[id] {
					continue
				}
				seen[id] = true
				items = append(items, it)
			}
		}
	}
	c.log.Info("catalog fetched",
		"kinds", len(kinds),
		"items", len(items),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return items, nil
}

func (c *Client) limit() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return defaultConcurrency
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn("catalog request failed", "path", path, "request_id", req.Header.Get("X-Request-ID"), "err", err)
		return nil, err
	}
	c.log.Debug("catalog request",
		"path", path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		if apiErr.Details != "" {
			return fmt.Errorf("API %d: %s: %s", resp.StatusCode, apiErr.Error, apiErr.Details)
		}
		return fmt.Errorf("API %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("API %d: %s", resp.StatusCode, string(body))
}
