package lnbot

import (
	"context"

	"github.com/lnbot/lnbot-go/money"
)

// WalletsService exposes wallet operations.
type WalletsService struct {
	client *Client
}

// Wallet is a wallet's current state.
type Wallet struct {
	WalletID  string      `json:"walletId"`
	Name      string      `json:"name"`
	Balance   money.Money `json:"balance"`
	OnHold    money.Money `json:"onHold"`
	Available money.Money `json:"available"`
}

// CreateWalletRequest are the parameters for creating a new wallet.
type CreateWalletRequest struct {
	Name string `json:"name,omitempty"`
}

// UpdateWalletRequest are the parameters for updating the current wallet.
type UpdateWalletRequest struct {
	Name string `json:"name"`
}

// CreateWalletResponse is a freshly created wallet, including its
// credentials. The keys and recovery passphrase are only ever returned here.
type CreateWalletResponse struct {
	WalletID           string `json:"walletId"`
	PrimaryKey         string `json:"primaryKey"`
	SecondaryKey       string `json:"secondaryKey"`
	Name               string `json:"name"`
	Address            string `json:"address"`
	RecoveryPassphrase string `json:"recoveryPassphrase"`
}

// Create creates a new wallet. Use NewUnauthenticated for this endpoint; the
// response carries the keys for all subsequent calls.
func (s *WalletsService) Create(ctx context.Context, req *CreateWalletRequest) (*CreateWalletResponse, error) {
	var resp CreateWalletResponse
	if err := s.client.post(ctx, "/v1/wallets", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Current returns the current wallet's state.
func (s *WalletsService) Current(ctx context.Context) (*Wallet, error) {
	var resp Wallet
	if err := s.client.get(ctx, "/v1/wallets/current", &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Update updates the current wallet.
func (s *WalletsService) Update(ctx context.Context, req *UpdateWalletRequest) (*Wallet, error) {
	var resp Wallet
	if err := s.client.patch(ctx, "/v1/wallets/current", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
