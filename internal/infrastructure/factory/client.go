// Package factory talks to the pizza factory that fulfils stored orders and
// issues the verification JWT handed back to the diner.
package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Client submits orders over HTTP with a bearer API key.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
	log    zerolog.Logger
}

func NewClient(url, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		http:   &http.Client{Timeout: defaultTimeout},
		log:    log,
	}
}

type fulfillRequest struct {
	Diner dinerInfo     `json:"diner"`
	Order *domain.Order `json:"order"`
}

type dinerInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type fulfillResponse struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

// Fulfill submits the stored order. A non-2xx response surfaces as
// *domain.FactoryError carrying the factory's report URL.
func (c *Client) Fulfill(ctx context.Context, diner *domain.User, order *domain.Order) (*domain.Fulfillment, error) {
	payload, err := json.Marshal(fulfillRequest{
		Diner: dinerInfo{ID: diner.ID, Name: diner.Name, Email: diner.Email},
		Order: order,
	})
	if err != nil {
		return nil, fmt.Errorf("factory encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/order", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("factory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("factory call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Best effort: the refusal body may carry a report URL.
		var body fulfillResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		c.log.Error().Int("status", resp.StatusCode).Int64("orderId", order.ID).Msg("factory refused order")
		return nil, &domain.FactoryError{ReportURL: body.ReportURL}
	}

	var body fulfillResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("factory decode: %w", err)
	}

	c.log.Info().Int64("orderId", order.ID).Msg("order fulfilled at factory")
	return &domain.Fulfillment{JWT: body.JWT, ReportURL: body.ReportURL}, nil
}
