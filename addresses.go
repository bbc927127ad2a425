package lnbot

import (
	"context"
	"net/url"

	"github.com/lnbot/lnbot-go/money"
)

// AddressesService exposes Lightning address operations.
type AddressesService struct {
	client *Client
}

// CreateAddressRequest claims a specific Lightning address, or a generated
// one when Address is empty.
type CreateAddressRequest struct {
	Address string `json:"address,omitempty"`
}

// Address is a Lightning address returned by the API.
type Address struct {
	Address   string      `json:"address"`
	Generated bool        `json:"generated"`
	Cost      money.Money `json:"cost"`
	CreatedAt string      `json:"createdAt"`
}

// TransferAddressRequest moves an address to the wallet owning the target
// key.
type TransferAddressRequest struct {
	TargetWalletKey string `json:"targetWalletKey"`
}

// TransferAddressResponse confirms an address transfer.
type TransferAddressResponse struct {
	Address       string `json:"address"`
	TransferredTo string `json:"transferredTo"`
}

// Create creates or claims a Lightning address.
func (s *AddressesService) Create(ctx context.Context, req *CreateAddressRequest) (*Address, error) {
	var resp Address
	if err := s.client.post(ctx, "/v1/addresses", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// List lists the current wallet's Lightning addresses.
func (s *AddressesService) List(ctx context.Context) ([]Address, error) {
	var resp []Address
	if err := s.client.get(ctx, "/v1/addresses", &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// Delete releases a Lightning address.
func (s *AddressesService) Delete(ctx context.Context, address string) error {
	return s.client.del(ctx, "/v1/addresses/"+url.PathEscape(address))
}

// Transfer moves a Lightning address to another wallet.
func (s *AddressesService) Transfer(ctx context.Context, address string, req *TransferAddressRequest) (*TransferAddressResponse, error) {
	var resp TransferAddressResponse
	if err := s.client.post(ctx, "/v1/addresses/"+url.PathEscape(address)+"/transfer", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
