package lnbot

import (
	"context"

	"github.com/lnbot/lnbot-go/money"
)

// L402Service exposes L402 paywall authentication: minting challenges,
// verifying presented tokens, and paying someone else's challenge.
type L402Service struct {
	client *Client
}

// CreateL402ChallengeRequest mints a challenge (invoice + macaroon) to put in
// front of a paywalled resource.
type CreateL402ChallengeRequest struct {
	Amount        money.Money `json:"amount"`
	Description   string      `json:"description,omitempty"`
	ExpirySeconds int         `json:"expirySeconds,omitempty"`
	Caveats       []string    `json:"caveats,omitempty"`
}

// L402Challenge is a minted challenge. WWWAuthenticate is the ready-to-send
// header value for a 402 response.
type L402Challenge struct {
	Macaroon        string `json:"macaroon"`
	Invoice         string `json:"invoice"`
	PaymentHash     string `json:"paymentHash"`
	ExpiresAt       string `json:"expiresAt"`
	WWWAuthenticate string `json:"wwwAuthenticate"`
}

// VerifyL402Request checks an Authorization header presented by a client.
type VerifyL402Request struct {
	Authorization string `json:"authorization"`
}

// L402Verification is the result of verifying a token. Verification is
// stateless: signature, preimage, and caveats are checked server-side.
type L402Verification struct {
	Valid       bool     `json:"valid"`
	PaymentHash string   `json:"paymentHash"`
	Caveats     []string `json:"caveats"`
	Error       string   `json:"error"`
}

// PayL402Request pays a challenge taken from a WWW-Authenticate header. With
// Wait set, the call blocks server-side until the payment resolves or Timeout
// seconds elapse.
type PayL402Request struct {
	WWWAuthenticate string      `json:"wwwAuthenticate"`
	MaxFee          money.Money `json:"maxFee,omitempty"`
	Reference       string      `json:"reference,omitempty"`
	Wait            *bool       `json:"wait,omitempty"`
	Timeout         int         `json:"timeout,omitempty"`
}

// L402Payment is the result of paying a challenge. Authorization is the
// ready-to-use header value once the payment settles.
type L402Payment struct {
	Authorization string        `json:"authorization"`
	PaymentHash   string        `json:"paymentHash"`
	Preimage      string        `json:"preimage"`
	Amount        money.Money   `json:"amount"`
	Fee           money.Money   `json:"fee"`
	PaymentNumber int           `json:"paymentNumber"`
	Status        PaymentStatus `json:"status"`
}

// VerifyPreimage checks the returned preimage against the challenge's
// payment hash.
func (p *L402Payment) VerifyPreimage() (bool, error) {
	return verifyPreimage(p.Preimage, p.PaymentHash)
}

// CreateChallenge mints an L402 challenge.
func (s *L402Service) CreateChallenge(ctx context.Context, req *CreateL402ChallengeRequest) (*L402Challenge, error) {
	var resp L402Challenge
	if err := s.client.post(ctx, "/v1/l402/challenges", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Verify checks an L402 authorization token.
func (s *L402Service) Verify(ctx context.Context, req *VerifyL402Request) (*L402Verification, error) {
	var resp L402Verification
	if err := s.client.post(ctx, "/v1/l402/verify", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Pay pays an L402 challenge and returns a ready-to-use Authorization header.
func (s *L402Service) Pay(ctx context.Context, req *PayL402Request) (*L402Payment, error) {
	var resp L402Payment
	if err := s.client.post(ctx, "/v1/l402/pay", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
