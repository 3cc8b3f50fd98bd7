package urlcheck

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

const (
	MaxURLs        = 20
	DefaultTimeout = 8 * time.Second
	defaultLimit   = 8
)

// Result reports the reachability of one URL. Status is 0 when no response was received.
type Result struct {
	URL      string `json:"url"`
	OK       bool   `json:"ok"`
	Status   int    `json:"status"`
	FinalURL string `json:"finalUrl,omitempty"`
}

type Checker struct {
	log     *logger.Logger
	client  *http.Client
	limit   int
	metrics *observability.Metrics
}

type Options struct {
	Timeout     time.Duration
	Concurrency int
	Client      *http.Client
	Metrics     *observability.Metrics
}

func NewChecker(log *logger.Logger, opts Options) *Checker {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = defaultLimit
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Checker{
		log:     log.With("service", "URLChecker"),
		client:  client,
		limit:   opts.Concurrency,
		metrics: opts.Metrics,
	}
}

// Filter keeps http and https URLs, capped at MaxURLs, in input order.
func Filter(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok || !isHTTPURL(s) {
			continue
		}
		out = append(out, s)
		if len(out) == MaxURLs {
			break
		}
	}
	return out
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Check probes every URL concurrently. Results are in input order.
func (c *Checker) Check(ctx context.Context, urls []string) []Result {
	if len(urls) > MaxURLs {
		urls = urls[:MaxURLs]
	}
	results := make([]Result, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = c.probe(gctx, u)
			c.metrics.ObserveURLProbe(results[i].OK)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// probe tries HEAD and falls back to GET when HEAD errors or reports >= 400.
func (c *Checker) probe(ctx context.Context, u string) Result {
	if status, final, err := c.do(ctx, http.MethodHead, u); err == nil && status > 0 && status < 400 {
		return Result{URL: u, OK: true, Status: status, FinalURL: final}
	}
	status, final, err := c.do(ctx, http.MethodGet, u)
	if err != nil {
		c.log.Debug("URL probe failed", "url", u, "error", err)
		return Result{URL: u, OK: false, Status: 0}
	}
	return Result{URL: u, OK: status < 400, Status: status, FinalURL: final}
}

func (c *Checker) do(ctx context.Context, method, u string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return 0, "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, resp.Request.URL.String(), nil
}
