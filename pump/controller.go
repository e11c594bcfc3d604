// Copyright (c) 2025 BVK Chaitanya

// Package pump implements a single buy-then-sell pump cycle.
//
// A cycle has four strictly sequential phases:
//
//  1. Quote: fetch the ask price for the coin's BTC market.
//  2. Plan: compute the buy price, quantity and the sell price.
//  3. Buy: place a limit buy and wait till it is closed.
//  4. Sell: place a limit sell for the same quantity.
//
// A failure in any phase aborts the remaining phases. There is no rollback: a
// failure after the buy order is placed leaves the position open.
package pump

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bvk/pumpbot/ctxutil"
	"github.com/bvk/pumpbot/exchange"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Exchange defines the exchange operations used by a pump cycle.
type Exchange interface {
	GetAskPrice(ctx context.Context, coin string) (decimal.Decimal, error)

	PlaceBuyOrder(ctx context.Context, creds exchange.Credentials, coin string, quantity, price decimal.Decimal) (exchange.OrderID, error)
	PlaceSellOrder(ctx context.Context, creds exchange.Credentials, coin string, quantity, price decimal.Decimal) (exchange.OrderID, error)

	WaitUntilClosed(ctx context.Context, creds exchange.Credentials, id exchange.OrderID) error
}

type Phase string

const (
	PhaseQuote Phase = "quote"
	PhasePlan  Phase = "plan"
	PhaseBuy   Phase = "buy"
	PhaseSell  Phase = "sell"
	PhaseDone  Phase = "done"
)

type Options struct {
	// SafetyFactor must be greater than one. Defaults to DefaultSafetyFactor.
	SafetyFactor decimal.Decimal

	// WaitTimeout limits the wait for the buy order to close. Zero waits
	// forever. Sell order is placed with the caller's context, so it is not
	// affected by this limit.
	WaitTimeout time.Duration
}

func (v *Options) setDefaults() {
	if v.SafetyFactor.IsZero() {
		v.SafetyFactor = DefaultSafetyFactor
	}
}

func (v *Options) Check() error {
	v.setDefaults()
	if !v.SafetyFactor.GreaterThan(one) {
		return &ValidationError{Field: "safety-factor", Value: v.SafetyFactor.String(), Reason: "must be greater than 1"}
	}
	if v.WaitTimeout < 0 {
		return &ValidationError{Field: "wait-timeout", Value: v.WaitTimeout.String(), Reason: "cannot be negative"}
	}
	return nil
}

// Result describes how far a cycle went. Buy is non-nil once the buy order is
// placed and Sell is non-nil once the sell order is placed.
type Result struct {
	Phase Phase

	Plan *Plan

	Buy  *exchange.Order
	Sell *exchange.Order
}

// HasOpenPosition returns true if coins were bought but not put for sale.
func (r *Result) HasOpenPosition() bool {
	return r.Buy != nil && r.Sell == nil
}

type Controller struct {
	opts Options

	exchange Exchange
}

func New(ex Exchange, opts *Options) (*Controller, error) {
	if opts == nil {
		opts = new(Options)
	}
	if err := opts.Check(); err != nil {
		return nil, err
	}
	c := &Controller{
		opts:     *opts,
		exchange: ex,
	}
	return c, nil
}

// Run runs one pump cycle. Returned result is always non-nil and records the
// last phase attempted along with the orders placed so far.
func (c *Controller) Run(ctx context.Context, p *Params) (*Result, error) {
	res := &Result{Phase: PhaseQuote}
	if err := p.Check(); err != nil {
		return res, err
	}

	log := slog.With("cycle", uuid.New().String(), "coin", p.Coin)
	log.InfoContext(ctx, "starting pump cycle", "btc-amount", p.BTCAmount, "profit-percentage", p.ProfitPercentage, "buy-factor", p.BuyFactor)

	ask, err := c.exchange.GetAskPrice(ctx, p.Coin)
	if err != nil {
		return res, fmt.Errorf("could not get ask price for %s: %w", p.Coin, err)
	}

	res.Phase = PhasePlan
	plan, err := NewPlan(ask, p, c.opts.SafetyFactor)
	if err != nil {
		return res, err
	}
	res.Plan = plan
	log.InfoContext(ctx, "computed order prices", "ask", plan.Ask, "buy-price", plan.BuyPrice, "quantity", plan.Quantity, "sell-price", plan.SellPrice)

	res.Phase = PhaseBuy
	buyID, err := c.exchange.PlaceBuyOrder(ctx, p.Credentials, p.Coin, plan.Quantity, plan.BuyPrice)
	if err != nil {
		return res, err
	}
	res.Buy = &exchange.Order{
		ID:         buyID,
		Side:       exchange.Buy,
		Quantity:   plan.Quantity,
		LimitPrice: plan.BuyPrice,
		Status:     exchange.Open,
	}
	log.InfoContext(ctx, "placed buy order", "order", buyID)

	if err := c.waitUntilClosed(ctx, p.Credentials, buyID); err != nil {
		return res, fmt.Errorf("buy order %s may still be open: %w", buyID, err)
	}
	res.Buy.Status = exchange.Closed
	log.InfoContext(ctx, "buy order is closed", "order", buyID)

	res.Phase = PhaseSell
	sellID, err := c.exchange.PlaceSellOrder(ctx, p.Credentials, p.Coin, plan.Quantity, plan.SellPrice)
	if err != nil {
		return res, fmt.Errorf("bought %s %s but could not place the sell order: %w", plan.Quantity, p.Coin, err)
	}
	res.Sell = &exchange.Order{
		ID:         sellID,
		Side:       exchange.Sell,
		Quantity:   plan.Quantity,
		LimitPrice: plan.SellPrice,
		Status:     exchange.Open,
	}
	log.InfoContext(ctx, "placed sell order", "order", sellID)

	res.Phase = PhaseDone
	return res, nil
}

func (c *Controller) waitUntilClosed(ctx context.Context, creds exchange.Credentials, id exchange.OrderID) error {
	wctx, cancel := ctxutil.WithOptionalTimeout(ctx, c.opts.WaitTimeout)
	defer cancel()
	return c.exchange.WaitUntilClosed(wctx, creds, id)
}
