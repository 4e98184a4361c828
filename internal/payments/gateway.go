// Package payments abstracts the external payment authorization
// collaborator. The storefront only ever exchanges an amount for an
// opaque authorization handle and later receives a confirmed status;
// gateway internals, retries and timeouts live on the collaborator's
// side. A timeout or error from the gateway is a failed authorization,
// never a success.
package payments

import (
	"fmt"

	"github.com/google/uuid"
)

// Intent is a pending charge held by the collaborator. ClientSecret is
// the opaque handle the browser uses to complete the payment.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"` // smallest currency subunit
	Currency     string `json:"currency"`
}

// Gateway is the external payment authorization collaborator.
type Gateway interface {
	CreateIntent(amount int64, currency string) (*Intent, error)
}

// StubGateway issues locally generated intents. It stands in for the
// real collaborator in development and tests.
type StubGateway struct{}

// NewStubGateway creates a new StubGateway.
func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

// CreateIntent returns a fresh intent for the amount.
func (g *StubGateway) CreateIntent(amount int64, currency string) (*Intent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", amount)
	}
	id := "pi_" + uuid.New().String()
	return &Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.New().String(),
		Amount:       amount,
		Currency:     currency,
	}, nil
}
