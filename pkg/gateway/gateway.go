// Package gateway is the boundary to the external payment provider. The
// server only ever creates payment intents remotely; signature verification
// happens locally against the shared key secret.
package gateway

import (
	"github.com/google/uuid"
)

type Intent struct {
	ID       string `json:"id"`     // gateway order id
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type Client interface {
	// CreateIntent registers amount (minor units) with the provider and
	// returns the gateway order id the client pays against.
	CreateIntent(amount int64, currency, receipt string) (*Intent, error)
	// KeySecret returns the shared secret used for signature checks.
	KeySecret() string
}

// StubClient issues local intent ids without calling out. It stands in for
// the provider in development and tests.
type StubClient struct {
	Secret string
}

func (s *StubClient) CreateIntent(amount int64, currency, receipt string) (*Intent, error) {
	return &Intent{
		ID:       "order_" + uuid.NewString(),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (s *StubClient) KeySecret() string { return s.Secret }
