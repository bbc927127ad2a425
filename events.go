package lnbot

import (
	"context"
	"encoding/json"
	"io"

	"github.com/lnbot/lnbot-go/sse"
	log "github.com/sirupsen/logrus"
)

// EventsService exposes the wallet-wide real-time event stream.
type EventsService struct {
	client *Client
}

// WalletEventKind identifies what happened. Kinds the server adds in the
// future pass through unchanged.
type WalletEventKind string

const (
	EventInvoiceCreated WalletEventKind = "invoice.created"
	EventInvoiceSettled WalletEventKind = "invoice.settled"
	EventPaymentCreated WalletEventKind = "payment.created"
	EventPaymentSettled WalletEventKind = "payment.settled"
	EventPaymentFailed  WalletEventKind = "payment.failed"
)

// WalletEvent is one event from the wallet-wide stream. Data is the
// kind-specific payload, left raw for the caller to decode into an Invoice or
// Payment as appropriate.
type WalletEvent struct {
	Event     WalletEventKind `json:"event"`
	CreatedAt string          `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

// Stream opens the wallet-wide event stream. Unlike the per-entity watch
// streams, the server frames this one with bare "data:" lines, one complete
// event per line.
func (s *EventsService) Stream(ctx context.Context) (*WalletEventStream, error) {
	body, err := s.client.stream(ctx, "/v1/events", 0)
	if err != nil {
		return nil, err
	}

	return &WalletEventStream{body: body, dec: sse.NewDecoder(body)}, nil
}

// WalletEventStream is a live sequence of wallet events.
type WalletEventStream struct {
	body io.ReadCloser
	dec  *sse.Decoder
	err  error
}

// Recv blocks until the next event arrives. It returns io.EOF when the
// server closes the stream.
func (s *WalletEventStream) Recv() (*WalletEvent, error) {
	if s.err != nil {
		return nil, s.err
	}

	frame, err := s.dec.Next()
	if err != nil {
		s.err = err

		return nil, err
	}

	var event WalletEvent
	if err := json.Unmarshal([]byte(frame.Data), &event); err != nil {
		s.err = &DecodeError{Err: err}

		return nil, s.err
	}

	log.WithField("event", event.Event).Debug("wallet event received")

	return &event, nil
}

// Close releases the underlying connection.
func (s *WalletEventStream) Close() error {
	return s.body.Close()
}
