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

// InvoicesService exposes invoice operations.
type InvoicesService struct {
	client *Client
}

// InvoiceStatus is the lifecycle state of an invoice. Values the server adds
// in the future decode as-is rather than failing.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoiceSettled InvoiceStatus = "settled"
	InvoiceExpired InvoiceStatus = "expired"
)

// CreateInvoiceRequest are the parameters for creating a new invoice.
type CreateInvoiceRequest struct {
	Amount    money.Money `json:"amount"`
	Reference string      `json:"reference,omitempty"`
	Memo      string      `json:"memo,omitempty"`
}

// Invoice is an invoice returned by the API. Nullable fields decode to their
// zero values.
type Invoice struct {
	Number    int           `json:"number"`
	Status    InvoiceStatus `json:"status"`
	Amount    money.Money   `json:"amount"`
	Bolt11    string        `json:"bolt11"`
	Reference string        `json:"reference"`
	Memo      string        `json:"memo"`
	Preimage  string        `json:"preimage"`
	TxNumber  *int          `json:"txNumber"`
	CreatedAt string        `json:"createdAt"`
	SettledAt string        `json:"settledAt"`
	ExpiresAt string        `json:"expiresAt"`
}

// CreateInvoiceForWalletRequest creates an invoice on behalf of a wallet
// identified by its public wallet ID.
type CreateInvoiceForWalletRequest struct {
	WalletID string      `json:"walletId"`
	Amount   money.Money `json:"amount"`
}

// CreateInvoiceForAddressRequest creates an invoice for the wallet owning a
// Lightning address.
type CreateInvoiceForAddressRequest struct {
	Address string      `json:"address"`
	Amount  money.Money `json:"amount"`
}

// AddressInvoice is the reduced invoice shape returned by the public,
// unauthenticated invoice endpoints.
type AddressInvoice struct {
	Bolt11    string      `json:"bolt11"`
	Amount    money.Money `json:"amount"`
	ExpiresAt string      `json:"expiresAt"`
}

// InvoiceEventType labels a real-time invoice event. Unrecognized labels pass
// through as values of this type, so new server-side events never break the
// stream.
type InvoiceEventType string

const (
	InvoiceEventSettled InvoiceEventType = "settled"
	InvoiceEventExpired InvoiceEventType = "expired"
)

// InvoiceEvent is one event from an invoice watch stream.
type InvoiceEvent struct {
	Event   InvoiceEventType
	Invoice Invoice
}

// Create creates a new invoice.
func (s *InvoicesService) Create(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error) {
	var resp Invoice
	if err := s.client.post(ctx, "/v1/invoices", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// List lists invoices with optional pagination.
func (s *InvoicesService) List(ctx context.Context, params *ListParams) ([]Invoice, error) {
	var resp []Invoice
	if err := s.client.getWithParams(ctx, "/v1/invoices", params, &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// Get returns an invoice by its number.
func (s *InvoicesService) Get(ctx context.Context, number int) (*Invoice, error) {
	var resp Invoice
	if err := s.client.get(ctx, fmt.Sprintf("/v1/invoices/%d", number), &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetByHash returns an invoice by its payment hash.
func (s *InvoicesService) GetByHash(ctx context.Context, paymentHash string) (*Invoice, error) {
	hash, err := lntypes.MakeHashFromStr(paymentHash)
	if err != nil {
		return nil, fmt.Errorf("invalid payment hash: %w", err)
	}

	var resp Invoice
	if err := s.client.get(ctx, "/v1/invoices/"+hash.String(), &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CreateForWallet creates an invoice for a wallet by its public ID. No
// authentication required; rate limited by IP on the server.
func (s *InvoicesService) CreateForWallet(ctx context.Context, req *CreateInvoiceForWalletRequest) (*AddressInvoice, error) {
	var resp AddressInvoice
	if err := s.client.post(ctx, "/v1/invoices/for-wallet", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CreateForAddress creates an invoice for the wallet owning the given
// Lightning address. No authentication required; rate limited by IP on the
// server.
func (s *InvoicesService) CreateForAddress(ctx context.Context, req *CreateInvoiceForAddressRequest) (*AddressInvoice, error) {
	var resp AddressInvoice
	if err := s.client.post(ctx, "/v1/invoices/for-address", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Watch opens a stream of real-time events for an invoice. Use it to wait for
// an invoice to be settled:
//
//	stream, err := client.Invoices().Watch(ctx, 1, 0)
//	if err != nil { ... }
//	defer stream.Close()
//	for {
//		ev, err := stream.Recv()
//		if err == io.EOF {
//			break
//		}
//		if err != nil { ... }
//		if ev.Event == lnbot.InvoiceEventSettled { ... }
//	}
//
// A non-zero timeout is forwarded to the server, which closes the stream
// after that many seconds; the client enforces no deadline of its own.
func (s *InvoicesService) Watch(ctx context.Context, number int, timeout time.Duration) (*InvoiceEventStream, error) {
	return s.watch(ctx, fmt.Sprintf("/v1/invoices/%d/events", number), timeout)
}

// WatchByHash opens a stream of real-time events for the invoice identified
// by its payment hash.
func (s *InvoicesService) WatchByHash(ctx context.Context, paymentHash string, timeout time.Duration) (*InvoiceEventStream, error) {
	hash, err := lntypes.MakeHashFromStr(paymentHash)
	if err != nil {
		return nil, fmt.Errorf("invalid payment hash: %w", err)
	}

	return s.watch(ctx, "/v1/invoices/"+hash.String()+"/events", timeout)
}

func (s *InvoicesService) watch(ctx context.Context, path string, timeout time.Duration) (*InvoiceEventStream, error) {
	body, err := s.client.stream(ctx, path, timeout)
	if err != nil {
		return nil, err
	}

	return &InvoiceEventStream{body: body, dec: sse.NewDecoder(body)}, nil
}

// InvoiceEventStream is a live sequence of invoice events. Events arrive in
// the order the server sent them; the stream ends with io.EOF when the server
// closes the connection and stays failed after any other error.
type InvoiceEventStream struct {
	body io.ReadCloser
	dec  *sse.Decoder
	err  error
}

// Recv blocks until the next event arrives. It returns io.EOF when the
// server closes the stream.
func (s *InvoiceEventStream) Recv() (*InvoiceEvent, error) {
	if s.err != nil {
		return nil, s.err
	}

	for {
		frame, err := s.dec.Next()
		if err != nil {
			s.err = err

			return nil, err
		}

		// Data lines that arrive before any event label are dropped, the
		// tolerance the live API relies on for keepalive padding.
		if frame.Type == "" {
			continue
		}

		var invoice Invoice
		if err := json.Unmarshal([]byte(frame.Data), &invoice); err != nil {
			s.err = &DecodeError{Err: err}

			return nil, s.err
		}

		log.WithField("event", frame.Type).Debug("invoice event received")

		return &InvoiceEvent{Event: InvoiceEventType(frame.Type), Invoice: invoice}, nil
	}
}

// Close releases the underlying connection. It is safe to call while another
// goroutine is blocked in Recv.
func (s *InvoiceEventStream) Close() error {
	return s.body.Close()
}
