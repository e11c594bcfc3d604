// Copyright (c) 2025 BVK Chaitanya

package pump

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuantityPlaces is the number of decimal places kept in order quantities.
const QuantityPlaces = 8

// DefaultSafetyFactor reserves a margin for price movement and fees between
// the quote and the buy order.
var DefaultSafetyFactor = decimal.RequireFromString("1.01")

// Plan holds the prices and size computed from a single ask price quote.
type Plan struct {
	Ask decimal.Decimal

	BuyPrice  decimal.Decimal
	Quantity  decimal.Decimal
	SellPrice decimal.Decimal
}

// NewPlan computes the buy price, order quantity and the sell price.
//
//	buyPrice  = ask * buyFactor
//	quantity  = btcAmount / (buyPrice * safetyFactor), truncated
//	sellPrice = ask * (1 + profitPercentage/100)
//
// Sell price is relative to the quoted ask, not to the buy price.
func NewPlan(ask decimal.Decimal, p *Params, safetyFactor decimal.Decimal) (*Plan, error) {
	if !ask.IsPositive() {
		return nil, fmt.Errorf("ask price %s must be positive", ask)
	}
	if !safetyFactor.GreaterThan(one) {
		return nil, fmt.Errorf("safety factor %s must be greater than 1", safetyFactor)
	}

	buyPrice := ask.Mul(p.BuyFactor)
	// QuoRem truncates the quotient at the given precision, so quantity never
	// costs more than the budget.
	quantity, _ := p.BTCAmount.QuoRem(buyPrice.Mul(safetyFactor), QuantityPlaces)
	if !quantity.IsPositive() {
		return nil, &ValidationError{Field: "btc-amount", Value: p.BTCAmount.String(), Reason: fmt.Sprintf("too small to buy at price %s", buyPrice)}
	}
	sellPrice := ask.Mul(hundred.Add(p.ProfitPercentage)).Shift(-2)

	plan := &Plan{
		Ask:       ask,
		BuyPrice:  buyPrice,
		Quantity:  quantity,
		SellPrice: sellPrice,
	}
	return plan, nil
}

func (v *Plan) String() string {
	return fmt.Sprintf("{Ask %s BuyPrice %s Quantity %s SellPrice %s}",
		v.Ask.StringFixed(8), v.BuyPrice.StringFixed(8), v.Quantity.StringFixed(QuantityPlaces), v.SellPrice.StringFixed(8))
}
