// Copyright (c) 2023 BVK Chaitanya

package cmdutil

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/bvk/pumpbot/bittrex"
)

// EnvPrefix is the prefix for environment variables that supply flag
// defaults.
const EnvPrefix = "PUMPBOT_"

type ExchangeFlags struct {
	RestURL              string
	HTTPTimeout          time.Duration
	PollInterval         time.Duration
	MaxRequestsPerSecond int
}

func (ef *ExchangeFlags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&ef.RestURL, "rest-url", os.Getenv(EnvPrefix+"REST_URL"), "base url for the exchange REST api (default is the public endpoint or PUMPBOT_REST_URL value)")
	fset.DurationVar(&ef.HTTPTimeout, "http-timeout", envDuration("HTTP_TIMEOUT", 10*time.Second), "http client timeout")
	fset.DurationVar(&ef.PollInterval, "poll-interval", envDuration("POLL_INTERVAL", bittrex.DefaultPollInterval), "delay between order status checks")
	fset.IntVar(&ef.MaxRequestsPerSecond, "max-requests-per-second", envInt("MAX_REQUESTS_PER_SECOND", 0), "limit on the exchange api request rate (zero picks the default)")
}

// Options returns the exchange client options for the flags.
func (ef *ExchangeFlags) Options() *bittrex.Options {
	return &bittrex.Options{
		RestURL:              ef.RestURL,
		HttpClientTimeout:    ef.HTTPTimeout,
		PollInterval:         ef.PollInterval,
		MaxRequestsPerSecond: ef.MaxRequestsPerSecond,
	}
}

// NewClient returns a exchange client. Caller must close the client.
func (ef *ExchangeFlags) NewClient() (*bittrex.Client, error) {
	return bittrex.New(ef.Options())
}

func envDuration(name string, def time.Duration) time.Duration {
	v := os.Getenv(EnvPrefix + name)
	if len(v) == 0 {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration from the environment", "name", EnvPrefix+name, "value", v, "err", err)
		return def
	}
	return d
}

func envInt(name string, def int) int {
	v := os.Getenv(EnvPrefix + name)
	if len(v) == 0 {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer from the environment", "name", EnvPrefix+name, "value", v, "err", err)
		return def
	}
	return n
}
