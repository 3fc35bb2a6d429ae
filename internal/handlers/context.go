package handlers

import (
	"context"
)

// Context keys
type contextKey string

const (
	// AddressKey is the key for the caller's account address in the context
	AddressKey contextKey = "address"
)

// NewContextWithAddress adds an account address to the context
func NewContextWithAddress(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, AddressKey, address)
}

// AddressFromContext extracts the account address from the context
func AddressFromContext(ctx context.Context) (string, bool) {
	address, ok := ctx.Value(AddressKey).(string)
	return address, ok
}
