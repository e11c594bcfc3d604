// Copyright (c) 2025 BVK Chaitanya

package bittrex

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bvk/pumpbot/bittrex/internal"
	"github.com/bvk/pumpbot/ctxutil"
)

// DefaultPollInterval is the delay between order status checks.
const DefaultPollInterval = 100 * time.Millisecond

type Options struct {
	// RestURL is the base url for the REST api. Defaults to the public v1.1
	// endpoint.
	RestURL string

	// Timeout to use for the HTTP requests.
	HttpClientTimeout time.Duration

	// HTTPClient if non-nil is used as the transport. Caller owns it.
	HTTPClient *http.Client

	// MaxRequestsPerSecond limits the http request rate. Zero picks the default.
	MaxRequestsPerSecond int

	// PollInterval is the delay between two order status checks while waiting
	// for an order to close.
	PollInterval time.Duration

	// Sleep blocks for the given duration or till the context is canceled.
	Sleep func(context.Context, time.Duration) error

	// Now returns the current time used for request nonces.
	Now func() time.Time
}

func (v *Options) setDefaults() {
	if v.PollInterval == 0 {
		v.PollInterval = DefaultPollInterval
	}
	if v.Sleep == nil {
		v.Sleep = ctxutil.Sleep
	}
	if v.Now == nil {
		v.Now = time.Now
	}
}

// Check validates the options.
func (v *Options) Check() error {
	v.setDefaults()
	if v.PollInterval < 0 {
		return fmt.Errorf("poll interval cannot be negative: %w", os.ErrInvalid)
	}
	return nil
}

func (v *Options) internalOptions() *internal.Options {
	return &internal.Options{
		RestURL:              v.RestURL,
		HttpClientTimeout:    v.HttpClientTimeout,
		HTTPClient:           v.HTTPClient,
		MaxRequestsPerSecond: v.MaxRequestsPerSecond,
		Now:                  v.Now,
	}
}
