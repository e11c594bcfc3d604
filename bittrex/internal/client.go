// Copyright (c) 2025 BVK Chaitanya

package internal

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bvk/pumpbot/exchange"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

type Client struct {
	opts Options

	restURL *url.URL

	client *http.Client

	limiter *rate.Limiter

	// ownsClient is true when the http client is created by New and must be
	// released by Close.
	ownsClient bool

	mu        sync.Mutex
	lastNonce int64
}

// New returns a client for the REST api. Returned client and it's http
// transport are valid till Close is called.
func New(opts *Options) (*Client, error) {
	if opts == nil {
		opts = new(Options)
	}
	if err := opts.Check(); err != nil {
		return nil, err
	}
	restURL, _ := url.Parse(opts.RestURL)
	if !strings.HasSuffix(restURL.Path, "/") {
		restURL.Path += "/"
	}

	c := &Client{
		opts:    *opts,
		restURL: restURL,
		client:  opts.HTTPClient,
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: opts.HttpClientTimeout}
		c.ownsClient = true
	}
	if opts.MaxRequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.MaxRequestsPerSecond), 1)
	}
	return c, nil
}

// Close releases the idle connections from the http client.
func (c *Client) Close() error {
	if c.ownsClient {
		c.client.CloseIdleConnections()
	}
	return nil
}

// GetMarketSummary returns the summary rows for a market, like "BTC-ETH".
func (c *Client) GetMarketSummary(ctx context.Context, market string) (GetMarketSummaryResponse, error) {
	addrURL := c.endpoint("public/getmarketsummary", [2]string{"market", market})
	var resp GetMarketSummaryResponse
	if err := c.postJSON(ctx, addrURL, "" /* secret */, &resp); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get market summary", "market", market, "err", err)
		}
		return nil, err
	}
	for _, v := range resp {
		if v == nil {
			return nil, &Failure{Message: "null market summary row"}
		}
	}
	return resp, nil
}

// BuyLimit places a limit buy order.
func (c *Client) BuyLimit(ctx context.Context, key, secret, market string, quantity, price decimal.Decimal) (*OrderUUID, error) {
	return c.limitOrder(ctx, "market/buylimit", key, secret, market, quantity, price)
}

// SellLimit places a limit sell order.
func (c *Client) SellLimit(ctx context.Context, key, secret, market string, quantity, price decimal.Decimal) (*OrderUUID, error) {
	return c.limitOrder(ctx, "market/selllimit", key, secret, market, quantity, price)
}

func (c *Client) limitOrder(ctx context.Context, endpoint, key, secret, market string, quantity, price decimal.Decimal) (*OrderUUID, error) {
	addrURL := c.endpoint(endpoint,
		[2]string{"apikey", key},
		[2]string{"market", market},
		[2]string{"quantity", quantity.String()},
		[2]string{"rate", price.String()},
		[2]string{"nonce", strconv.FormatInt(c.nonce(), 10)})
	resp := new(OrderUUID)
	if err := c.postJSON(ctx, addrURL, secret, resp); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not place limit order", "endpoint", endpoint, "market", market, "quantity", quantity, "rate", price, "err", err)
		}
		return nil, err
	}
	if err := resp.Check(); err != nil {
		return nil, &Failure{Message: err.Error()}
	}
	return resp, nil
}

// GetOrder returns the current status of an order.
func (c *Client) GetOrder(ctx context.Context, key, secret, uuid string) (*OrderStatus, error) {
	addrURL := c.endpoint("account/getorder",
		[2]string{"apikey", key},
		[2]string{"uuid", uuid},
		[2]string{"nonce", strconv.FormatInt(c.nonce(), 10)})
	resp := new(OrderStatus)
	if err := c.postJSON(ctx, addrURL, secret, resp); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not get order status", "uuid", uuid, "err", err)
		}
		return nil, err
	}
	if err := resp.Check(); err != nil {
		return nil, &Failure{Message: err.Error()}
	}
	return resp, nil
}

// Sign returns the uppercase hex encoded HMAC-SHA512 of the url keyed with
// the secret.
func Sign(secret, addrURL string) string {
	hash := hmac.New(sha512.New, []byte(secret))
	io.WriteString(hash, addrURL)
	return strings.ToUpper(hex.EncodeToString(hash.Sum(nil)))
}

// nonce returns current time in epoch milliseconds, but always larger than
// the previously returned value.
func (c *Client) nonce() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.opts.Now().UnixMilli()
	if n <= c.lastNonce {
		n = c.lastNonce + 1
	}
	c.lastNonce = n
	return n
}

// endpoint returns the url for an api path. Query parameters are encoded in
// the given order because the signature covers the full url.
func (c *Client) endpoint(apiPath string, params ...[2]string) *url.URL {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p[0]))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p[1]))
	}
	return &url.URL{
		Scheme:   c.restURL.Scheme,
		Host:     c.restURL.Host,
		Path:     c.restURL.Path + apiPath,
		RawQuery: sb.String(),
	}
}

// postJSON sends a POST request to the url and decodes the response envelope
// into the result pointer. Requests are signed when secret is non-empty.
func (c *Client) postJSON(ctx context.Context, addrURL *url.URL, secret string, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	// Query parameters carry the api key, so they are dropped from errors.
	pathURL := fmt.Sprintf("%s://%s%s", addrURL.Scheme, addrURL.Host, addrURL.Path)

	full := addrURL.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, full, nil)
	if err != nil {
		slog.Error("could not create http post request with context", "url", pathURL, "err", err)
		return &exchange.TransportError{Op: "POST", URL: pathURL, Err: err}
	}
	if secret != "" {
		req.Header.Add("apisign", Sign(secret, full))
	}

	s := time.Now()
	resp, err := c.client.Do(req)
	if d := time.Now().Sub(s); d > c.opts.HttpClientTimeout {
		slog.Warn(fmt.Sprintf("post request took %s which is more than the http client timeout %s", d, c.opts.HttpClientTimeout))
	}
	if err != nil {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		return &exchange.TransportError{Op: "POST", URL: pathURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &exchange.TransportError{Op: "POST", URL: pathURL, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		slog.Warn("http post returned unsuccessful status code", "status-code", resp.StatusCode, "url", pathURL, "response", string(data))
		return &exchange.TransportError{Op: "POST", URL: pathURL, StatusCode: resp.StatusCode}
	}

	if err := decodeResult(data, result); err != nil {
		var failure *Failure
		if errors.As(err, &failure) {
			return err
		}
		slog.Error("could not decode response to json", "url", pathURL, "response", string(data), "err", err)
		return &exchange.TransportError{Op: "decode", URL: pathURL, Err: err}
	}
	return nil
}

// decodeResult unwraps the response envelope. Returns the payload in result
// when success is true and a *Failure error otherwise.
func decodeResult(data []byte, result any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if !env.Success {
		return &Failure{Message: env.Message, Response: data}
	}
	if len(env.Result) == 0 || bytes.Equal(env.Result, []byte("null")) {
		return &Failure{Message: "response has no result", Response: data}
	}
	return json.Unmarshal(env.Result, result)
}
