package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HTTPRateSource fetches rate tables from an exchange-rate service exposing
// GET <baseURL>/<currencyCode> with a JSON body of the form
// {"base": "USD", "rates": {"KES": 130.0, ...}}.
type HTTPRateSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRateSource creates a rate source against the given service URL.
// A nil client falls back to http.DefaultClient; production callers inject
// one with a timeout.
func NewHTTPRateSource(baseURL string, client *http.Client) *HTTPRateSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRateSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rates fetches the rate table for the given base currency. An empty or
// malformed table is reported as an error so the converter can fail open.
func (s *HTTPRateSource) Rates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate service returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rate table: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate table for %s is empty", base)
	}

	return body.Rates, nil
}

// StaticRateSource serves a fixed rate table. Used in tests and as an
// offline fallback.
type StaticRateSource map[string]float64

// Rates returns the fixed table regardless of the requested base.
func (s StaticRateSource) Rates(ctx context.Context, base string) (map[string]float64, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("no rates configured")
	}
	return s, nil
}
