package ports

import (
	"context"
)

// InitializeRequest starts a hosted checkout. Amount is in minor units.
type InitializeRequest struct {
	Email       string
	AmountMinor int64
	Currency    string
	Reference   string
	CallbackURL string
	Metadata    map[string]any
}

type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaymentGateway is the external card/transfer processor.
type PaymentGateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (InitializeResult, error)
	// VerifySignature checks a webhook body against its signature header.
	VerifySignature(body []byte, signature string) bool
}
