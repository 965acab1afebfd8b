package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
)

// Submitter hands a frozen order to the upstream order intake.
type Submitter interface {
	Submit(ctx context.Context, tenantID string, order *Order) error
}

type httpSubmitter struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSubmitter builds a Submitter that POSTs orders to the intake
// endpoint.
func NewHTTPSubmitter(baseURL string, timeout time.Duration) (Submitter, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("submit url required")
	}
	return &httpSubmitter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (s *httpSubmitter) Submit(ctx context.Context, tenantID string, order *Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order")
	}

	url := fmt.Sprintf("%s/tenants/%s/orders", s.baseURL, tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build submit request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order intake unreachable")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("order intake returned status %d", resp.StatusCode))
	}
	return nil
}
