package lnbot

import (
	"context"
	"fmt"
)

// KeysService exposes API key operations.
type KeysService struct {
	client *Client
}

// APIKey is an API key's metadata. The key value itself is only returned on
// creation and rotation.
type APIKey struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Hint       string `json:"hint"`
	CreatedAt  string `json:"createdAt"`
	LastUsedAt string `json:"lastUsedAt"`
}

// RotatedKey is the result of rotating an API key slot.
type RotatedKey struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// List lists the current wallet's API keys.
func (s *KeysService) List(ctx context.Context) ([]APIKey, error) {
	var resp []APIKey
	if err := s.client.get(ctx, "/v1/keys", &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// Rotate replaces the key in the given slot (1 = primary, 2 = secondary) and
// returns the new key value.
func (s *KeysService) Rotate(ctx context.Context, slot int) (*RotatedKey, error) {
	var resp RotatedKey
	if err := s.client.post(ctx, fmt.Sprintf("/v1/keys/%d/rotate", slot), nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
