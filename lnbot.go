// Package lnbot is a typed Go client for the LnBot Lightning-wallet API.
//
// Create a client with New (authenticated) or NewUnauthenticated (for wallet
// creation), then reach the API through the resource accessors:
//
//	client := lnbot.New("key_...")
//	wallet, err := client.Wallets().Current(ctx)
//
// Real-time invoice, payment, and wallet events are delivered over
// Server-Sent Events via Watch and Stream methods; see InvoiceEventStream for
// the consumption pattern.
package lnbot

import "net/http"

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.ln.bot"

// Client is an LnBot API client. It is immutable after construction and safe
// for concurrent use; every call issues exactly one HTTP request against the
// configured base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type Option func(*Options)

type Options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the API endpoint. A trailing slash is stripped.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.baseURL = url
	}
}

// WithHTTPClient overrides the underlying http.Client, e.g. to set transport
// timeouts or a proxy. Streaming calls require a client without a global
// timeout, since watch streams are expected to stay open indefinitely.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.httpClient = client
	}
}

// New creates an authenticated client. The key is sent as a bearer token on
// every request.
func New(apiKey string, opts ...Option) *Client {
	client := NewUnauthenticated(opts...)
	client.apiKey = apiKey

	return client
}

// NewUnauthenticated creates a client without credentials, for the endpoints
// that do not require them: wallet creation, restore, and the public invoice
// endpoints.
func NewUnauthenticated(opts ...Option) *Client {
	options := Options{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		httpClient: options.httpClient,
		baseURL:    trimTrailingSlash(options.baseURL),
	}
}

func trimTrailingSlash(url string) string {
	for len(url) > 0 && url[len(url)-1] == '/' {
		url = url[:len(url)-1]
	}

	return url
}

// Wallets returns wallet operations.
func (c *Client) Wallets() *WalletsService { return &WalletsService{client: c} }

// Keys returns API key operations.
func (c *Client) Keys() *KeysService { return &KeysService{client: c} }

// Invoices returns invoice operations.
func (c *Client) Invoices() *InvoicesService { return &InvoicesService{client: c} }

// Payments returns payment operations.
func (c *Client) Payments() *PaymentsService { return &PaymentsService{client: c} }

// Events returns the wallet-wide event stream.
func (c *Client) Events() *EventsService { return &EventsService{client: c} }

// Addresses returns Lightning address operations.
func (c *Client) Addresses() *AddressesService { return &AddressesService{client: c} }

// Transactions returns ledger operations.
func (c *Client) Transactions() *TransactionsService { return &TransactionsService{client: c} }

// Webhooks returns webhook operations.
func (c *Client) Webhooks() *WebhooksService { return &WebhooksService{client: c} }

// Backup returns credential backup operations.
func (c *Client) Backup() *BackupService { return &BackupService{client: c} }

// Restore returns credential restore operations.
func (c *Client) Restore() *RestoreService { return &RestoreService{client: c} }

// L402 returns L402 paywall operations.
func (c *Client) L402() *L402Service { return &L402Service{client: c} }
