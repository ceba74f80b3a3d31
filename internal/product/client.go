// Package product contains the client adapter for the remote product
// service, which owns product identity, names, and current prices.
package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"orders-service/internal/model"

	"github.com/rs/zerolog"
)

const cmdValidateProducts = "validate_products"

// Validator resolves product IDs against the remote product service.
// The returned slice contains exactly the subset of requested IDs that
// exist; detecting omitted IDs is the caller's responsibility.
type Validator interface {
	ValidateProducts(ctx context.Context, ids []int64) ([]model.Product, error)
}

// validateRequest is the wire envelope the product service expects.
type validateRequest struct {
	Cmd     string  `json:"cmd"`
	Payload []int64 `json:"payload"`
}

// wireProduct mirrors one product record on the wire. Pointer fields let
// the decoder distinguish missing keys from zero values so a schema
// mismatch fails fast instead of producing half-empty products.
type wireProduct struct {
	ID    *int64   `json:"id"`
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// Client is an HTTP-backed Validator.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a product service client. The timeout bounds each
// validation round trip; the workflow itself adds no deadline.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("client", "product").Logger(),
	}
}

// ValidateProducts sends a batch lookup for the given IDs. Transport
// failures and remote errors surface as ErrProductServiceUnavailable.
func (c *Client) ValidateProducts(ctx context.Context, ids []int64) ([]model.Product, error) {
	body, err := json.Marshal(validateRequest{
		Cmd:     cmdValidateProducts,
		Payload: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode validation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build validation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Int("id_count", len(ids)).Msg("product service unreachable")
		return nil, fmt.Errorf("product service call failed: %w", model.ErrProductServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Int("id_count", len(ids)).
			Msg("product service returned an error status")
		return nil, fmt.Errorf("product service returned status %d: %w", resp.StatusCode, model.ErrProductServiceUnavailable)
	}

	var wire []wireProduct
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		c.logger.Error().Err(err).Msg("failed to decode product service response")
		return nil, fmt.Errorf("failed to decode product service response: %w", model.ErrProductServiceUnavailable)
	}

	products := make([]model.Product, 0, len(wire))
	for i, w := range wire {
		if w.ID == nil || w.Name == nil || w.Price == nil {
			c.logger.Error().Int("index", i).Msg("product service response missing required fields")
			return nil, fmt.Errorf("malformed product record at index %d: %w", i, model.ErrProductServiceUnavailable)
		}
		products = append(products, model.Product{
			ID:    *w.ID,
			Name:  *w.Name,
			Price: *w.Price,
		})
	}

	c.logger.Debug().
		Int("requested", len(ids)).
		Int("resolved", len(products)).
		Msg("validated products")

	return products, nil
}
