package lnbot

import (
	"context"
	"net/url"
)

// WebhooksService exposes webhook operations.
type WebhooksService struct {
	client *Client
}

// CreateWebhookRequest registers a delivery URL for wallet events.
type CreateWebhookRequest struct {
	URL string `json:"url"`
}

// CreateWebhookResponse is a freshly registered webhook. The signing secret
// is only ever returned here.
type CreateWebhookResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Secret    string `json:"secret"`
	CreatedAt string `json:"createdAt"`
}

// Webhook is a registered webhook.
type Webhook struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// Create registers a new webhook.
func (s *WebhooksService) Create(ctx context.Context, req *CreateWebhookRequest) (*CreateWebhookResponse, error) {
	var resp CreateWebhookResponse
	if err := s.client.post(ctx, "/v1/webhooks", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// List lists the current wallet's webhooks.
func (s *WebhooksService) List(ctx context.Context) ([]Webhook, error) {
	var resp []Webhook
	if err := s.client.get(ctx, "/v1/webhooks", &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// Delete removes a webhook by ID.
func (s *WebhooksService) Delete(ctx context.Context, id string) error {
	return s.client.del(ctx, "/v1/webhooks/"+url.PathEscape(id))
}
