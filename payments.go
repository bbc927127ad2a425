package lnbot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/lnbot/lnbot-go/money"
	"github.com/lnbot/lnbot-go/sse"
	log "github.com/sirupsen/logrus"
)

// PaymentsService exposes payment operations.
type PaymentsService struct {
	client *Client
}

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentSettled    PaymentStatus = "settled"
	PaymentFailed     PaymentStatus = "failed"
)

// CreatePaymentRequest are the parameters for creating an outgoing payment.
// Target accepts a bolt11 invoice, a Lightning address, or an LNURL; Amount
// is required for the latter two.
type CreatePaymentRequest struct {
	Target         string      `json:"target"`
	Amount         money.Money `json:"amount,omitempty"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
	MaxFee         money.Money `json:"maxFee,omitempty"`
	Reference      string      `json:"reference,omitempty"`
}

// Payment is a payment returned by the API.
type Payment struct {
	Number        int           `json:"number"`
	Status        PaymentStatus `json:"status"`
	Amount        money.Money   `json:"amount"`
	MaxFee        money.Money   `json:"maxFee"`
	ActualFee     *money.Money  `json:"actualFee"`
	ServiceFee    money.Money   `json:"serviceFee"`
	Address       string        `json:"address"`
	Reference     string        `json:"reference"`
	Preimage      string        `json:"preimage"`
	TxNumber      *int          `json:"txNumber"`
	FailureReason string        `json:"failureReason"`
	CreatedAt     string        `json:"createdAt"`
	SettledAt     string        `json:"settledAt"`
}

// PaymentEventType labels a real-time payment event. Unrecognized labels pass
// through unchanged.
type PaymentEventType string

const (
	PaymentEventSettled PaymentEventType = "settled"
	PaymentEventFailed  PaymentEventType = "failed"
)

// PaymentEvent is one event from a payment watch stream.
type PaymentEvent struct {
	Event   PaymentEventType
	Payment Payment
}

// Create creates a new outgoing payment.
func (s *PaymentsService) Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	var resp Payment
	if err := s.client.post(ctx, "/v1/payments", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// List lists payments with optional pagination.
func (s *PaymentsService) List(ctx context.Context, params *ListParams) ([]Payment, error) {
	var resp []Payment
	if err := s.client.getWithParams(ctx, "/v1/payments", params, &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// Get returns a payment by its number.
func (s *PaymentsService) Get(ctx context.Context, number int) (*Payment, error) {
	var resp Payment
	if err := s.client.get(ctx, fmt.Sprintf("/v1/payments/%d", number), &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Watch opens a stream of real-time events for a payment. See
// InvoicesService.Watch for the consumption pattern.
func (s *PaymentsService) Watch(ctx context.Context, number int, timeout time.Duration) (*PaymentEventStream, error) {
	return s.watch(ctx, fmt.Sprintf("/v1/payments/%d/events", number), timeout)
}

// WatchByHash opens a stream of real-time events for the payment identified
// by its payment hash.
func (s *PaymentsService) WatchByHash(ctx context.Context, paymentHash string, timeout time.Duration) (*PaymentEventStream, error) {
	hash, err := lntypes.MakeHashFromStr(paymentHash)
	if err != nil {
		return nil, fmt.Errorf("invalid payment hash: %w", err)
	}

	return s.watch(ctx, "/v1/payments/"+hash.String()+"/events", timeout)
}

func (s *PaymentsService) watch(ctx context.Context, path string, timeout time.Duration) (*PaymentEventStream, error) {
	body, err := s.client.stream(ctx, path, timeout)
	if err != nil {
		return nil, err
	}

	return &PaymentEventStream{body: body, dec: sse.NewDecoder(body)}, nil
}

// PaymentEventStream is a live sequence of payment events, with the same
// semantics as InvoiceEventStream.
type PaymentEventStream struct {
	body io.ReadCloser
	dec  *sse.Decoder
	err  error
}

// Recv blocks until the next event arrives. It returns io.EOF when the
// server closes the stream.
func (s *PaymentEventStream) Recv() (*PaymentEvent, error) {
	if s.err != nil {
		return nil, s.err
	}

	for {
		frame, err := s.dec.Next()
		if err != nil {
			s.err = err

			return nil, err
		}

		if frame.Type == "" {
			continue
		}

		var payment Payment
		if err := json.Unmarshal([]byte(frame.Data), &payment); err != nil {
			s.err = &DecodeError{Err: err}

			return nil, s.err
		}

		log.WithField("event", frame.Type).Debug("payment event received")

		return &PaymentEvent{Event: PaymentEventType(frame.Type), Payment: payment}, nil
	}
}

// Close releases the underlying connection.
func (s *PaymentEventStream) Close() error {
	return s.body.Close()
}
