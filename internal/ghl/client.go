// Package ghl fetches contact batches from the GoHighLevel CRM API.
package ghl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"adf-relay/internal/common/config"
	commonerrors "adf-relay/internal/common/errors"
	"adf-relay/internal/common/logger"
	"adf-relay/internal/lead"
)

// Client calls the GHL contacts endpoint with a bearer token. A single batch
// fetch, no pagination, no retry; the upstream contract is best effort.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	locationID string
	log        logger.Logger
}

func NewClient(cfg config.GHLConfig, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.GetDuration(cfg.Timeout)},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		locationID: cfg.LocationID,
		log:        log,
	}
}

type contactsResponse struct {
	Contacts []map[string]interface{} `json:"contacts"`
}

// FetchContacts returns the current contact batch mapped to leads. Every
// failure mode is recovered as an empty slice after logging; the caller never
// sees an error from here.
func (c *Client) FetchContacts(ctx context.Context) []lead.Lead {
	raw, err := c.fetch(ctx)
	if err != nil {
		fetchErr := commonerrors.NewUpstreamFetchFailedError(err)
		c.log.Error("Contact fetch failed, continuing with empty batch", map[string]interface{}{
			"error": fetchErr.Error(),
		})
		return nil
	}

	leads := make([]lead.Lead, 0, len(raw))
	for _, contact := range raw {
		leads = append(leads, lead.FromMap(contact))
	}

	c.log.Info("Fetched contacts from CRM", map[string]interface{}{
		"count": len(leads),
	})
	return leads
}

func (c *Client) fetch(ctx context.Context) ([]map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/contacts?locationId=%s", c.baseURL, url.QueryEscape(c.locationID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building contacts request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contacts request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading contacts response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contacts request returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed contactsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding contacts response: %w", err)
	}

	return parsed.Contacts, nil
}
