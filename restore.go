package lnbot

import "context"

// RestoreService exposes credential restore flows.
type RestoreService struct {
	client *Client
}

// RecoveryRestoreRequest restores a wallet from its recovery passphrase. No
// authentication required.
type RecoveryRestoreRequest struct {
	Passphrase string `json:"passphrase"`
}

// RestoredWallet is a wallet recovered through a restore flow, with fresh
// keys.
type RestoredWallet struct {
	WalletID     string `json:"walletId"`
	Name         string `json:"name"`
	PrimaryKey   string `json:"primaryKey"`
	SecondaryKey string `json:"secondaryKey"`
}

// RestorePasskeyCompleteRequest finishes a passkey restore ceremony with the
// authenticator's assertion.
type RestorePasskeyCompleteRequest struct {
	SessionID string         `json:"sessionId"`
	Assertion map[string]any `json:"assertion"`
}

// Recovery restores a wallet from a recovery passphrase.
func (s *RestoreService) Recovery(ctx context.Context, req *RecoveryRestoreRequest) (*RestoredWallet, error) {
	var resp RestoredWallet
	if err := s.client.post(ctx, "/v1/restore/recovery", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// PasskeyBegin starts a passkey restore ceremony.
func (s *RestoreService) PasskeyBegin(ctx context.Context) (*PasskeyBeginResponse, error) {
	var resp PasskeyBeginResponse
	if err := s.client.post(ctx, "/v1/restore/passkey/begin", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// PasskeyComplete finishes a passkey restore ceremony and returns the
// recovered wallet with fresh keys.
func (s *RestoreService) PasskeyComplete(ctx context.Context, req *RestorePasskeyCompleteRequest) (*RestoredWallet, error) {
	var resp RestoredWallet
	if err := s.client.post(ctx, "/v1/restore/passkey/complete", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
