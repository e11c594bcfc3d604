// Copyright (c) 2025 BVK Chaitanya

package internal

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

var RestURL = url.URL{
	Scheme: "https",
	Host:   "bittrex.com",
	Path:   "/api/v1.1/",
}

type Options struct {
	// RestURL is the base url for the REST endpoints.
	RestURL string

	// Timeout to use for the HTTP requests. Ignored when HTTPClient is set.
	HttpClientTimeout time.Duration

	// HTTPClient if non-nil is used for all requests. Caller owns the client
	// and must keep it alive till the Client is closed.
	HTTPClient *http.Client

	// MaxRequestsPerSecond limits the rate of http requests sent by a client.
	MaxRequestsPerSecond int

	// Now returns the current time used for nonce values.
	Now func() time.Time
}

func (v *Options) setDefaults() {
	if v.RestURL == "" {
		v.RestURL = RestURL.String()
	}
	if v.HttpClientTimeout == 0 {
		v.HttpClientTimeout = 10 * time.Second
	}
	if v.MaxRequestsPerSecond == 0 {
		v.MaxRequestsPerSecond = 20
	}
	if v.Now == nil {
		v.Now = time.Now
	}
}

// Check validates the options.
func (v *Options) Check() error {
	v.setDefaults()
	u, err := url.Parse(v.RestURL)
	if err != nil {
		return fmt.Errorf("invalid rest url %q: %w", v.RestURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("rest url %q must use http(s) scheme: %w", v.RestURL, os.ErrInvalid)
	}
	if v.HttpClientTimeout < 0 {
		return fmt.Errorf("http client timeout cannot be negative: %w", os.ErrInvalid)
	}
	if v.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("max requests per second cannot be negative: %w", os.ErrInvalid)
	}
	return nil
}
