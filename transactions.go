package lnbot

import (
	"context"
	"errors"

	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/lnbot/lnbot-go/money"
)

// TransactionsService exposes the wallet ledger.
type TransactionsService struct {
	client *Client
}

// TransactionType distinguishes credits from debits.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// ErrNoPreimage is returned by VerifyPreimage when the transaction carries no
// preimage, e.g. while the payment is still in flight.
var ErrNoPreimage = errors.New("transaction has no preimage")

// Transaction is one ledger entry.
type Transaction struct {
	Number       int             `json:"number"`
	Type         TransactionType `json:"type"`
	Amount       money.Money     `json:"amount"`
	BalanceAfter money.Money     `json:"balanceAfter"`
	NetworkFee   money.Money     `json:"networkFee"`
	ServiceFee   money.Money     `json:"serviceFee"`
	PaymentHash  string          `json:"paymentHash"`
	Preimage     string          `json:"preimage"`
	Reference    string          `json:"reference"`
	Note         string          `json:"note"`
	CreatedAt    string          `json:"createdAt"`
}

// VerifyPreimage checks that the transaction's preimage hashes to its payment
// hash, which is the cryptographic proof that the payment settled.
func (t *Transaction) VerifyPreimage() (bool, error) {
	if t.Preimage == "" {
		return false, ErrNoPreimage
	}

	return verifyPreimage(t.Preimage, t.PaymentHash)
}

func verifyPreimage(preimage, paymentHash string) (bool, error) {
	pre, err := lntypes.MakePreimageFromStr(preimage)
	if err != nil {
		return false, err
	}
	hash, err := lntypes.MakeHashFromStr(paymentHash)
	if err != nil {
		return false, err
	}

	return pre.Matches(hash), nil
}

// List lists ledger entries with optional pagination.
func (s *TransactionsService) List(ctx context.Context, params *ListParams) ([]Transaction, error) {
	var resp []Transaction
	if err := s.client.getWithParams(ctx, "/v1/transactions", params, &resp); err != nil {
		return nil, err
	}

	return resp, nil
}
