package paystack

import "context"

type ClientInterface interface {
	Configured() bool
	InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error)
}

var _ ClientInterface = (*Client)(nil)
