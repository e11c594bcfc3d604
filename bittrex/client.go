// Copyright (c) 2025 BVK Chaitanya

// Package bittrex implements the exchange operations needed by a pump cycle
// on top of the Bittrex v1.1 REST api.
package bittrex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bvk/pumpbot/bittrex/internal"
	"github.com/bvk/pumpbot/exchange"
	"github.com/shopspring/decimal"
)

// Exchange error messages with a typed error.
const (
	msgInsufficientFunds  = "INSUFFICIENT_FUNDS"
	msgDustTrade          = "DUST_TRADE_DISALLOWED_MIN_VALUE_50K_SAT"
	msgInvalidCredentials = "APIKEY_INVALID"
)

// Client is a handle to the exchange. It owns the http transport, so a client
// is expected to be created for a cycle and closed at the end of it.
type Client struct {
	opts Options

	client *internal.Client
}

// New creates a client.
func New(opts *Options) (*Client, error) {
	if opts == nil {
		opts = new(Options)
	}
	if err := opts.Check(); err != nil {
		return nil, err
	}
	client, err := internal.New(opts.internalOptions())
	if err != nil {
		return nil, err
	}
	c := &Client{
		opts:   *opts,
		client: client,
	}
	return c, nil
}

// Close releases the transport.
func (c *Client) Close() error {
	return c.client.Close()
}

// MarketName returns the BTC market name for a coin symbol.
func MarketName(coin string) string {
	return "BTC-" + strings.ToUpper(coin)
}

// GetAskPrice returns the current ask price for the coin's BTC market. Returns
// *exchange.MarketError if the exchange reports a failure or doesn't know the
// market.
func (c *Client) GetAskPrice(ctx context.Context, coin string) (decimal.Decimal, error) {
	market := MarketName(coin)
	resp, err := c.client.GetMarketSummary(ctx, market)
	if err != nil {
		var failure *internal.Failure
		if errors.As(err, &failure) {
			return decimal.Zero, &exchange.MarketError{Market: market, Message: failure.Message}
		}
		return decimal.Zero, fmt.Errorf("could not get market summary for %s: %w", market, err)
	}
	if len(resp) == 0 {
		return decimal.Zero, &exchange.MarketError{Market: market}
	}
	summary := resp[0]
	if err := summary.Check(); err != nil {
		return decimal.Zero, &exchange.MarketError{Market: market, Message: err.Error()}
	}
	return summary.Ask, nil
}

// PlaceBuyOrder places a limit buy order and returns the exchange assigned
// order id. Known exchange failures are reported as exchange.ErrInsufficientFunds,
// exchange.ErrDustTrade and exchange.ErrInvalidCredentials; others as
// *exchange.OrderPlacementError.
func (c *Client) PlaceBuyOrder(ctx context.Context, creds exchange.Credentials, coin string, quantity, price decimal.Decimal) (exchange.OrderID, error) {
	market := MarketName(coin)
	resp, err := c.client.BuyLimit(ctx, creds.Key, creds.Secret, market, quantity, price)
	if err != nil {
		var failure *internal.Failure
		if !errors.As(err, &failure) {
			return "", fmt.Errorf("could not place buy order in %s: %w", market, err)
		}
		switch failure.Message {
		case msgInsufficientFunds:
			return "", fmt.Errorf("could not place buy order in %s: %w", market, exchange.ErrInsufficientFunds)
		case msgDustTrade:
			return "", fmt.Errorf("could not place buy order in %s: %w", market, exchange.ErrDustTrade)
		case msgInvalidCredentials:
			return "", fmt.Errorf("could not place buy order in %s: %w", market, exchange.ErrInvalidCredentials)
		}
		slog.Error("buy order is rejected", "market", market, "response", string(failure.Response))
		return "", &exchange.OrderPlacementError{
			Side:     exchange.Buy,
			Market:   market,
			Message:  failure.Message,
			Response: failure.Response,
		}
	}
	return exchange.OrderID(resp.UUID), nil
}

// PlaceSellOrder places a limit sell order and returns the exchange assigned
// order id. All exchange failures are reported as *exchange.OrderPlacementError.
func (c *Client) PlaceSellOrder(ctx context.Context, creds exchange.Credentials, coin string, quantity, price decimal.Decimal) (exchange.OrderID, error) {
	market := MarketName(coin)
	resp, err := c.client.SellLimit(ctx, creds.Key, creds.Secret, market, quantity, price)
	if err != nil {
		var failure *internal.Failure
		if !errors.As(err, &failure) {
			return "", fmt.Errorf("could not place sell order in %s: %w", market, err)
		}
		slog.Error("sell order is rejected", "market", market, "response", string(failure.Response))
		return "", &exchange.OrderPlacementError{
			Side:     exchange.Sell,
			Market:   market,
			Message:  failure.Message,
			Response: failure.Response,
		}
	}
	return exchange.OrderID(resp.UUID), nil
}

// GetOrder returns the order details known to the exchange.
func (c *Client) GetOrder(ctx context.Context, creds exchange.Credentials, id exchange.OrderID) (*exchange.Order, error) {
	status, err := c.client.GetOrder(ctx, creds.Key, creds.Secret, string(id))
	if err != nil {
		return nil, fmt.Errorf("could not get order %s: %w", id, err)
	}
	order := &exchange.Order{
		ID:         id,
		Quantity:   status.Quantity,
		LimitPrice: status.Limit,
		Status:     exchange.Closed,
	}
	if *status.IsOpen {
		order.Status = exchange.Open
	}
	switch {
	case strings.HasSuffix(status.Type, "BUY"):
		order.Side = exchange.Buy
	case strings.HasSuffix(status.Type, "SELL"):
		order.Side = exchange.Sell
	}
	return order, nil
}

// IsOrderOpen returns false only when the exchange reports the order as
// closed. Any failure in the status query is logged and reported as open, so
// that a wait loop keeps polling.
//
// NOTE: A persistent failure, like bad credentials or an unknown order id,
// keeps the order "open" forever.
func (c *Client) IsOrderOpen(ctx context.Context, creds exchange.Credentials, id exchange.OrderID) bool {
	order, err := c.GetOrder(ctx, creds, id)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("could not check order status (assuming open)", "order", id, "err", err)
		}
		return true
	}
	return order.Status == exchange.Open
}

// WaitUntilClosed blocks till the order is closed on the exchange by checking
// it's status at a fixed interval. Status checks are never concurrent. There
// is no upper limit on the wait; it returns early with the context's cause
// only when the input context is canceled or expires.
func (c *Client) WaitUntilClosed(ctx context.Context, creds exchange.Credentials, id exchange.OrderID) error {
	for n := 1; c.IsOrderOpen(ctx, creds, id); n++ {
		if n%100 == 0 {
			slog.Info("still waiting for order to close", "order", id, "checks", n)
		}
		if err := c.opts.Sleep(ctx, c.opts.PollInterval); err != nil {
			return fmt.Errorf("stopped waiting for order %s: %w", id, err)
		}
	}
	return nil
}
