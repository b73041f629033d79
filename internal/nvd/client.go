// Package nvd talks to the NVD 2.0 REST feed and maps raw entries into the
// flat persisted shapes.
package nvd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"
)

// ErrUpstreamUnavailable marks a feed request that errored or returned a
// non-success status. The caller decides whether to retry.
var ErrUpstreamUnavailable = errors.New("upstream feed unavailable")

// FeedConfig holds the feed endpoints and the fixed page size.
type FeedConfig struct {
	CVEURL         string `yaml:"cve_url"`
	SourceURL      string `yaml:"source_url"`
	ResultsPerPage int    `yaml:"results_per_page"`
}

// DefaultFeedConfig returns the public NVD 2.0 endpoints with the default page size.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		CVEURL:         "https://services.nvd.nist.gov/rest/json/cves/2.0",
		SourceURL:      "https://services.nvd.nist.gov/rest/json/sources/2.0",
		ResultsPerPage: 50,
	}
}

// LoadFeedConfig reads the optional YAML feed config. An empty path or a
// missing file falls back to the defaults; unset fields keep their defaults.
func LoadFeedConfig(path string) (FeedConfig, error) {
	cfg := DefaultFeedConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read feed config %s: %w", path, err)
	}

	var fileCfg FeedConfig
	if err := yaml.Unmarshal(content, &fileCfg); err != nil {
		return cfg, fmt.Errorf("failed to parse feed config %s: %w", path, err)
	}

	if fileCfg.CVEURL != "" {
		cfg.CVEURL = fileCfg.CVEURL
	}
	if fileCfg.SourceURL != "" {
		cfg.SourceURL = fileCfg.SourceURL
	}
	if fileCfg.ResultsPerPage > 0 {
		cfg.ResultsPerPage = fileCfg.ResultsPerPage
	}
	return cfg, nil
}

// Client issues paginated GET requests against the vulnerability feed and its
// companion sources feed.
type Client struct {
	cfg FeedConfig
	cli *http.Client
}

// NewClient builds a feed client for the configured endpoints.
func NewClient(cfg FeedConfig) *Client {
	return &Client{
		cfg: cfg,
		cli: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchPage performs one GET against the given URL and returns the parsed
// JSON body. Callers must request further pages explicitly if they need more
// than the default page size.
func (c *Client) FetchPage(ctx context.Context, url string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	res, err := c.cli.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return gjson.Result{}, fmt.Errorf("%w: status %d from %s", ErrUpstreamUnavailable, res.StatusCode, url)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return gjson.ParseBytes(body), nil
}

// FetchVulnerabilityPage requests the first page of the vulnerability feed.
func (c *Client) FetchVulnerabilityPage(ctx context.Context) (gjson.Result, error) {
	url := fmt.Sprintf("%s?resultsPerPage=%d", c.cfg.CVEURL, c.cfg.ResultsPerPage)
	return c.FetchPage(ctx, url)
}

// FetchSourcePage requests the first page of the sources feed.
func (c *Client) FetchSourcePage(ctx context.Context) (gjson.Result, error) {
	url := fmt.Sprintf("%s?resultsPerPage=%d", c.cfg.SourceURL, c.cfg.ResultsPerPage)
	return c.FetchPage(ctx, url)
}
