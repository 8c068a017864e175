package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contextcart/ragsearch/internal/core/domain"
	"github.com/contextcart/ragsearch/internal/infrastructure/resilience"
)

// Options pins the catalog the provider searches against.
type Options struct {
	Engine           string
	AmazonDomain     string
	Language         string
	ShippingLocation string
	Sort             string
}

func DefaultOptions() Options {
	return Options{
		Engine:           "amazon",
		AmazonDomain:     "amazon.in",
		Language:         "amazon.in|en_IN",
		ShippingLocation: "IN",
		Sort:             "exact-aware-popularity-rank",
	}
}

// Client queries the product-search provider. Records come back as opaque
// maps; the only normalization applied is a tracking-free link_clean when
// the provider did not supply one.
type Client struct {
	baseURL    string
	apiKey     string
	opts       Options
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, apiKey string, opts Options, exec *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		opts:       opts,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		exec:       exec,
	}
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.CandidateRecord, error) {
	const op = "product search"

	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, errors.New("query is required"))
	}
	if c.apiKey == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, errors.New("search api key is not configured"))
	}

	var records []domain.CandidateRecord
	call := func(ctx context.Context) error {
		var err error
		records, err = c.search(ctx, op, query)
		return err
	}

	if c.exec == nil {
		if err := call(ctx); err != nil {
			return nil, err
		}
		return records, nil
	}

	if err := c.exec.Execute(ctx, "serpapi.search", call, recordsProviderFailure); err != nil {
		if resilience.IsCircuitOpen(err) {
			return nil, domain.WrapError(domain.ErrProvider, op, err)
		}
		return nil, err
	}
	return records, nil
}

func (c *Client) search(ctx context.Context, op, query string) ([]domain.CandidateRecord, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("engine", c.opts.Engine)
	params.Set("k", query)
	params.Set("amazon_domain", c.opts.AmazonDomain)
	params.Set("language", c.opts.Language)
	params.Set("shipping_location", c.opts.ShippingLocation)
	params.Set("s", c.opts.Sort)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, domain.WrapError(domain.ErrProviderTimeout, op, err)
		}
		return nil, domain.WrapError(domain.ErrProvider, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			return nil, domain.WrapError(domain.ErrProvider, op, fmt.Errorf("provider status: %s", resp.Status))
		}
		return nil, domain.WrapError(domain.ErrProvider, op, fmt.Errorf("provider status: %s: %s", resp.Status, msg))
	}

	var envelope struct {
		OrganicResults []domain.CandidateRecord `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, domain.WrapError(domain.ErrMalformedResponse, op, fmt.Errorf("decode response: %w", err))
	}

	for _, record := range envelope.OrganicResults {
		ensureCleanLink(record)
	}
	return envelope.OrganicResults, nil
}

// ensureCleanLink backfills link_clean from link with the query string
// stripped, so projections never leak tracking parameters.
func ensureCleanLink(record domain.CandidateRecord) {
	if link, ok := record["link_clean"].(string); ok && link != "" {
		return
	}
	link, ok := record["link"].(string)
	if !ok || link == "" {
		return
	}
	u, err := url.Parse(link)
	if err != nil {
		return
	}
	u.RawQuery = ""
	u.Fragment = ""
	record["link_clean"] = u.String()
}

func recordsProviderFailure(err error) bool {
	return domain.IsKind(err, domain.ErrProvider) ||
		domain.IsKind(err, domain.ErrProviderTimeout) ||
		domain.IsKind(err, domain.ErrMalformedResponse)
}
