// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bvk/pumpbot/pump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visvasity/cli"
)

type testExchange struct {
	mu       sync.Mutex
	requests []string
	statuses atomic.Int32
}

func (e *testExchange) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.mu.Lock()
	e.requests = append(e.requests, r.URL.Path)
	e.mu.Unlock()

	switch strings.TrimPrefix(r.URL.Path, "/api/v1.1/") {
	case "public/getmarketsummary":
		if r.URL.Query().Get("market") != "BTC-ETH" {
			io.WriteString(w, `{"success":false,"message":"INVALID_MARKET","result":null}`)
			return
		}
		io.WriteString(w, `{"success":true,"message":"","result":[{"MarketName":"BTC-ETH","Ask":0.01}]}`)
	case "market/buylimit":
		io.WriteString(w, `{"success":true,"message":"","result":{"uuid":"11111111-2222-3333-4444-555555555555"}}`)
	case "market/selllimit":
		io.WriteString(w, `{"success":true,"message":"","result":{"uuid":"66666666-7777-8888-9999-000000000000"}}`)
	case "account/getorder":
		if e.statuses.Add(1) < 2 {
			io.WriteString(w, `{"success":true,"message":"","result":{"IsOpen":true}}`)
			return
		}
		io.WriteString(w, `{"success":true,"message":"","result":{"IsOpen":false}}`)
	default:
		http.NotFound(w, r)
	}
}

func (e *testExchange) paths() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.requests...)
}

// startTestExchange returns a fake exchange that knows only the BTC-ETH market
// and its base url.
func startTestExchange(t *testing.T) (*testExchange, string) {
	fake := new(testExchange)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, srv.URL + "/api/v1.1/"
}

// testContext returns a context that collects the command output in sb.
func testContext(sb *strings.Builder) context.Context {
	return cli.WithStdout(context.Background(), sb)
}

func newTestPump(t *testing.T, stdin string, flags ...string) (*Pump, *testExchange, *strings.Builder) {
	fake, url := startTestExchange(t)

	c := &Pump{stdin: strings.NewReader(stdin)}
	_, fset, _ := c.Command()
	require.NoError(t, fset.Parse(append([]string{"-rest-url", url}, flags...)))
	return c, fake, new(strings.Builder)
}

func TestPumpCommand(t *testing.T) {
	c, fake, stdout := newTestPump(t, "eth\n")

	err := c.run(testContext(stdout), []string{"key", "secret", "0.02", "40"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/v1.1/public/getmarketsummary",
		"/api/v1.1/market/buylimit",
		"/api/v1.1/account/getorder",
		"/api/v1.1/account/getorder",
		"/api/v1.1/market/selllimit",
	}, fake.paths())

	out := stdout.String()
	assert.Contains(t, out, "Market BTC-ETH")
	assert.Contains(t, out, "Quantity 1.98019801")
	assert.Contains(t, out, "Sell Price 0.01400000")
	assert.Contains(t, out, "Sell Order 66666666-7777-8888-9999-000000000000")
	assert.NotContains(t, out, "WARNING")
	assert.True(t, strings.HasSuffix(out, footer+"\n"))
}

func TestPumpCommandCoinFlag(t *testing.T) {
	c, fake, stdout := newTestPump(t, "", "-coin", "ETH", "-safety-factor", "1.5")

	require.NoError(t, c.run(testContext(stdout), []string{"key", "secret", "0.02", "40", "1.2"}))
	assert.Len(t, fake.paths(), 5)
	assert.Contains(t, stdout.String(), "Buy Factor 1.2")
}

func TestPumpCommandWaitTimeout(t *testing.T) {
	c, _, stdout := newTestPump(t, "eth\n", "-wait-timeout", "10s")
	assert.Equal(t, 10*time.Second, c.waitTimeout)

	require.NoError(t, c.run(testContext(stdout), []string{"key", "secret", "0.02", "40"}))
	assert.Contains(t, stdout.String(), "Sell Order 66666666-7777-8888-9999-000000000000")
}

func TestPumpCommandValidation(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		flags []string
		args  []string
	}{
		{"missing arguments", "eth\n", nil, []string{"key", "secret", "0.02"}},
		{"bad amount", "eth\n", nil, []string{"key", "secret", "lots", "40"}},
		{"bad coin", "e-t-h\n", nil, []string{"key", "secret", "0.02", "40"}},
		{"bad safety factor", "eth\n", []string{"-safety-factor", "1"}, []string{"key", "secret", "0.02", "40"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, fake, stdout := newTestPump(t, test.stdin, test.flags...)

			err := c.run(testContext(stdout), test.args)
			var verr *pump.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Empty(t, fake.paths(), "no network calls expected")
			assert.Contains(t, stdout.String(), footer)
		})
	}
}

func TestPumpCommandNoCoin(t *testing.T) {
	c, fake, stdout := newTestPump(t, "")

	err := c.run(testContext(stdout), []string{"key", "secret", "0.02", "40"})
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Empty(t, fake.paths())
}
