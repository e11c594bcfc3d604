// Copyright (c) 2025 BVK Chaitanya

package pump

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bvk/pumpbot/exchange"
	"github.com/shopspring/decimal"
)

// Usage describes the positional arguments accepted by ParseArgs.
const Usage = "<api-key> <api-secret> <btc-amount> <profit-percentage> [buy-factor]"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	// DefaultBuyFactor is used when buy factor argument is not given.
	DefaultBuyFactor = decimal.NewFromInt(1)

	coinRe = regexp.MustCompile("^[a-zA-Z0-9]+$")
)

// ValidationError reports a missing or invalid input parameter.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Params holds the inputs for one pump cycle.
type Params struct {
	Credentials exchange.Credentials

	// Coin is the symbol of the coin to buy with BTC, like "ETH".
	Coin string

	// BTCAmount is the BTC budget for the buy order.
	BTCAmount decimal.Decimal

	// ProfitPercentage sets the sell price relative to the ask price. Negative
	// values accept a loss.
	ProfitPercentage decimal.Decimal

	// BuyFactor multiplies the ask price to get the buy price.
	BuyFactor decimal.Decimal
}

// ParseArgs parses the positional command-line arguments. Coin is not part of
// the arguments and must be set by the caller before Check.
func ParseArgs(args []string) (*Params, error) {
	if len(args) < 4 {
		return nil, &ValidationError{Field: "arguments", Reason: fmt.Sprintf("need at least 4 arguments, got %d; usage: %s", len(args), Usage)}
	}
	if len(args) > 5 {
		return nil, &ValidationError{Field: "arguments", Reason: fmt.Sprintf("need at most 5 arguments, got %d; usage: %s", len(args), Usage)}
	}

	p := &Params{
		Credentials: exchange.Credentials{
			Key:    args[0],
			Secret: args[1],
		},
		BuyFactor: DefaultBuyFactor,
	}

	var err error
	if p.BTCAmount, err = parseDecimal("btc-amount", args[2]); err != nil {
		return nil, err
	}
	if p.ProfitPercentage, err = parseDecimal("profit-percentage", args[3]); err != nil {
		return nil, err
	}
	if len(args) == 5 {
		if p.BuyFactor, err = parseDecimal("buy-factor", args[4]); err != nil {
			return nil, err
		}
	}
	if err := p.checkValues(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Value: s, Reason: "not a decimal number"}
	}
	return v, nil
}

// Check validates all parameters.
func (p *Params) Check() error {
	if len(p.Credentials.Key) == 0 {
		return &ValidationError{Field: "api-key", Reason: "cannot be empty"}
	}
	if len(p.Credentials.Secret) == 0 {
		return &ValidationError{Field: "api-secret", Reason: "cannot be empty"}
	}
	if !coinRe.MatchString(p.Coin) {
		return &ValidationError{Field: "coin", Value: p.Coin, Reason: "must be a non-empty alphanumeric symbol"}
	}
	return p.checkValues()
}

func (p *Params) checkValues() error {
	if !p.BTCAmount.IsPositive() {
		return &ValidationError{Field: "btc-amount", Value: p.BTCAmount.String(), Reason: "must be positive"}
	}
	if p.ProfitPercentage.LessThanOrEqual(hundred.Neg()) {
		return &ValidationError{Field: "profit-percentage", Value: p.ProfitPercentage.String(), Reason: "must be greater than -100"}
	}
	if p.BuyFactor.LessThan(DefaultBuyFactor) {
		return &ValidationError{Field: "buy-factor", Value: p.BuyFactor.String(), Reason: "must be at least 1"}
	}
	return nil
}
