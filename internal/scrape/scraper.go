// Package scrape fetches directory listings and extracts raw NAP text.
//
// A scrape is a single-shot, timeout-bounded HTTP fetch plus HTML-structure
// extraction. There is no retry within a scan: a directory that keeps
// failing is handled by the health monitor over time.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/citescan/citescan/internal/model"
)

// Scrape errors. These are advisory: callers always receive a usable
// (possibly all-empty) ScrapedNAP alongside them and must never abort a scan
// on their account.
var (
	// ErrExternalStrategy marks directories served by a bulk-data API
	// rather than per-directory scraping.
	ErrExternalStrategy = errors.New("directory uses an external API strategy")
	// ErrNoListing means the search page loaded but no listing link matched.
	ErrNoListing = errors.New("no listing found on search page")
)

const (
	defaultTimeout   = 12 * time.Second
	maxResponseBytes = 2 * 1024 * 1024

	// Many directories block default HTTP client signatures, so requests
	// carry a realistic browser header set.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
)

// Scraper fetches directory pages and extracts NAP fields. Stateless beyond
// its HTTP client; safe for concurrent use.
type Scraper struct {
	client *http.Client
}

// Config holds scraper options.
type Config struct {
	Timeout time.Duration
}

// New creates a scraper with the default timeout.
func New() *Scraper {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scraper with custom options.
func NewWithConfig(cfg Config) *Scraper {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Scrape looks a business up in one directory and extracts its listed NAP.
//
// The returned error is advisory only: on any failure (network, timeout,
// missing listing) the ScrapedNAP is all-empty and the error says why, but
// the caller treats the empty result as "not listed" either way.
func (s *Scraper) Scrape(ctx context.Context, cfg model.DirectoryConfig, params model.SearchParams) (model.ScrapedNAP, error) {
	if cfg.Strategy == model.StrategyExternalAPI {
		return model.ScrapedNAP{}, ErrExternalStrategy
	}

	searchURL := BuildSearchURL(cfg.SearchURLPattern, params)
	searchDoc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return model.ScrapedNAP{}, fmt.Errorf("failed to fetch search page: %w", err)
	}

	if !cfg.RequiresDetailPage {
		return model.ScrapedNAP{
			Name:       extractText(searchDoc, cfg.Selectors.Name),
			Address:    extractText(searchDoc, cfg.Selectors.Address),
			Phone:      extractText(searchDoc, cfg.Selectors.Phone),
			ListingURL: searchURL,
		}, nil
	}

	detailURL, ok := listingLink(searchDoc, cfg.Selectors.ListingLink, searchURL)
	if !ok {
		return model.ScrapedNAP{}, ErrNoListing
	}

	detailDoc, err := s.fetchDocument(ctx, detailURL)
	if err != nil {
		return model.ScrapedNAP{ListingURL: detailURL}, fmt.Errorf("failed to fetch detail page: %w", err)
	}

	sel := cfg.DetailSelectors
	if sel.Empty() {
		sel = cfg.Selectors
	}

	return model.ScrapedNAP{
		Name:       extractText(detailDoc, sel.Name),
		Address:    extractText(detailDoc, sel.Address),
		Phone:      extractText(detailDoc, sel.Phone),
		ListingURL: detailURL,
	}, nil
}

// BuildSearchURL substitutes percent-encoded search parameters into a
// directory's URL template.
func BuildSearchURL(pattern string, params model.SearchParams) string {
	r := strings.NewReplacer(
		"{business}", url.QueryEscape(params.Business),
		"{city}", url.QueryEscape(params.City),
		"{state}", url.QueryEscape(params.State),
	)
	return r.Replace(pattern)
}

func (s *Scraper) fetchDocument(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s responded with status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// extractText pulls the text for one NAP field. Phone numbers rendered as
// tel: links carry the number in the href, not the text node.
func extractText(doc *goquery.Document, selector string) string {
	if selector == "" {
		return ""
	}
	el := doc.Find(selector).First()
	if el.Length() == 0 {
		return ""
	}
	if href, ok := el.Attr("href"); ok && strings.HasPrefix(href, "tel:") {
		return strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
	}
	return strings.TrimSpace(el.Text())
}

// listingLink finds the first listing anchor on a search page and resolves
// relative hrefs against the search page's origin.
func listingLink(doc *goquery.Document, selector, searchURL string) (string, bool) {
	if selector == "" {
		return "", false
	}
	href, ok := doc.Find(selector).First().Attr("href")
	if !ok || href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href, true
	}
	base, err := url.Parse(searchURL)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}
