// Copyright (c) 2025 BVK Chaitanya

package exchange

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrDustTrade          = errors.New("order value is below the exchange minimum")
	ErrInvalidCredentials = errors.New("invalid api credentials")
)

// MarketError is returned when market data for a market could not be
// retrieved.
type MarketError struct {
	Market  string
	Message string
}

func (e *MarketError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("market %s: no market summary", e.Market)
	}
	return fmt.Sprintf("market %s: %s", e.Market, e.Message)
}

// OrderPlacementError is an order placement failure that doesn't match any of
// the known exchange error messages. Response holds the raw exchange response
// for diagnostics.
type OrderPlacementError struct {
	Side     Side
	Market   string
	Message  string
	Response []byte
}

func (e *OrderPlacementError) Error() string {
	return fmt.Sprintf("could not place %s order in %s market: %q", e.Side, e.Market, e.Message)
}

// TransportError wraps network, http status and response decoding failures.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: http status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
