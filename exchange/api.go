// Copyright (c) 2023 BVK Chaitanya

package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type OrderID string

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type Status string

const (
	Open   Status = "OPEN"
	Closed Status = "CLOSED"
)

// Credentials holds the api key and secret for the signed exchange calls.
type Credentials struct {
	Key    string
	Secret string
}

// String never prints the secret.
func (v Credentials) String() string {
	return fmt.Sprintf("{Key: %s Secret: <redacted>}", v.Key)
}

// Order is a limit order placed by the pump cycle. ID and Status are owned by
// the exchange and are only observed locally.
type Order struct {
	ID OrderID

	Side Side

	Quantity   decimal.Decimal
	LimitPrice decimal.Decimal

	Status Status
}

func (v *Order) String() string {
	return fmt.Sprintf("{ID: %s Side %s Price %s Size %s Status %s}",
		v.ID, v.Side, v.LimitPrice.String(), v.Quantity.String(), v.Status)
}
