package geocoderepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sanjayz7/Home-Rental-Application5/util/httpx"
)

type httpRepo struct {
	apiKey string
	client *http.Client
}

func NewHTTP(apiKey string) Repo { return &httpRepo{apiKey: apiKey, client: httpx.Client()} }

func (r *httpRepo) Lookup(ctx context.Context, place, country string) (*Result, error) {
	if r.apiKey == "" || place == "" {
		return nil, nil
	}

	// API Ninjas only has a "city" parameter; it tolerates free-form
	// place strings.
	q := url.Values{}
	q.Set("city", place)
	if country != "" {
		q.Set("country", country)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://api.api-ninjas.com/v1/geocoding?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocoding lookup failed: %s", resp.Status)
	}

	var out []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &Result{Latitude: out[0].Latitude, Longitude: out[0].Longitude}, nil
}
