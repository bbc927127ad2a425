package lnbot

import "context"

// BackupService exposes credential backup flows.
type BackupService struct {
	client *Client
}

// RecoveryBackup carries the wallet's recovery passphrase.
type RecoveryBackup struct {
	Passphrase string `json:"passphrase"`
}

// PasskeyBeginResponse starts a WebAuthn ceremony. Options is the
// browser-facing challenge material, passed through untyped.
type PasskeyBeginResponse struct {
	SessionID string         `json:"sessionId"`
	Options   map[string]any `json:"options"`
}

// BackupPasskeyCompleteRequest finishes a passkey backup ceremony with the
// authenticator's attestation.
type BackupPasskeyCompleteRequest struct {
	SessionID   string         `json:"sessionId"`
	Attestation map[string]any `json:"attestation"`
}

// Recovery returns the wallet's recovery passphrase.
func (s *BackupService) Recovery(ctx context.Context) (*RecoveryBackup, error) {
	var resp RecoveryBackup
	if err := s.client.post(ctx, "/v1/backup/recovery", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// PasskeyBegin starts a passkey backup ceremony.
func (s *BackupService) PasskeyBegin(ctx context.Context) (*PasskeyBeginResponse, error) {
	var resp PasskeyBeginResponse
	if err := s.client.post(ctx, "/v1/backup/passkey/begin", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// PasskeyComplete finishes a passkey backup ceremony. The server responds
// with no body.
func (s *BackupService) PasskeyComplete(ctx context.Context, req *BackupPasskeyCompleteRequest) error {
	return s.client.post(ctx, "/v1/backup/passkey/complete", req, nil)
}
