// Package registry is the client side of the patient-registry lookup used to
// validate health card numbers captured over the phone.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Validator checks a cleaned health card number against the registry.
// Implementations must fail closed: a blank number is never valid.
type Validator interface {
	Validate(ctx context.Context, hcn string) (bool, error)
}

// Static is the local stand-in used when no registry address is configured.
// It accepts any syntactically valid 10-digit numeric string.
type Static struct{}

func (Static) Validate(_ context.Context, hcn string) (bool, error) {
	if len(hcn) != 10 {
		return false, nil
	}
	if _, err := strconv.ParseUint(hcn, 10, 64); err != nil {
		return false, nil
	}
	return true, nil
}

// Client validates numbers against a real registry over HTTP.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(5 * time.Second),
	}
}

type validateRequest struct {
	HCN string `json:"hcn"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

// Validate asks the registry whether hcn belongs to a known patient.
// A 404 means "no such patient"; any other non-2xx status or transport
// failure is returned as an error for the caller to map to not-found.
func (c *Client) Validate(ctx context.Context, hcn string) (bool, error) {
	if hcn == "" {
		return false, nil
	}

	var result validateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(validateRequest{HCN: hcn}).
		SetResult(&result).
		Post("/patients/validate")
	if err != nil {
		return false, fmt.Errorf("registry request: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return false, nil
	}
	if resp.IsError() {
		return false, fmt.Errorf("registry returned %s", resp.Status())
	}

	return result.Valid, nil
}
