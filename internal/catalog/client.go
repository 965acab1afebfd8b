package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pediloya/storefront-backend/pkg/config"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
)

// Client fetches tenant menus from the upstream catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a catalog client from configuration.
func NewClient(cfg config.CatalogConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog base url required")
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.FetchTimeout},
	}, nil
}

// FetchMenu retrieves the commerce info and categorized products for a
// tenant. Any transport or decode failure comes back as a dependency
// error so callers can refuse to open a configuration session.
func (c *Client) FetchMenu(ctx context.Context, tenantID string) (*Menu, error) {
	if tenantID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}

	endpoint := fmt.Sprintf("%s/tenants/%s/menu", c.baseURL, url.PathEscape(tenantID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build menu request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog unavailable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "commerce not found")
	case resp.StatusCode != http.StatusOK:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog unavailable").WithDetails(map[string]any{
			"status": resp.StatusCode,
		})
	}

	var menu Menu
	if err := json.NewDecoder(resp.Body).Decode(&menu); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode menu payload")
	}
	return &menu, nil
}
