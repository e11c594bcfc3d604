// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bvk/pumpbot/bittrex"
	"github.com/bvk/pumpbot/pump"
	"github.com/bvk/pumpbot/subcmds/cmdutil"
	"github.com/shopspring/decimal"
	"github.com/visvasity/cli"
)

var _ pump.Exchange = &bittrex.Client{}

const footer = "Hope you will make a profit in this pump ;)"

type Pump struct {
	cmdutil.ExchangeFlags

	coin         string
	safetyFactor string
	waitTimeout  time.Duration

	stdin io.Reader
}

func (c *Pump) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("pump", flag.ContinueOnError)
	c.ExchangeFlags.SetFlags(fset)
	fset.StringVar(&c.coin, "coin", "", "coin symbol to buy; prompted from stdin when empty")
	fset.StringVar(&c.safetyFactor, "safety-factor", pump.DefaultSafetyFactor.String(), "budget margin for price movement and fees")
	fset.DurationVar(&c.waitTimeout, "wait-timeout", 0, "max duration to wait for the buy order to close; zero waits forever")
	return "pump", fset, cli.CmdFunc(c.run)
}

func (c *Pump) Purpose() string {
	return "Buys a coin with BTC and puts it up for sale at a profit"
}

func (c *Pump) Description() string {
	return `

Command "pump" runs a single buy-then-sell cycle on the coin's BTC market.

    $ pumpbot pump [flags] ` + pump.Usage + `

The coin symbol is read from the standard input after all the arguments are
validated, so that it can be typed in at the last moment. Use the -coin flag
to skip the prompt. An api-secret of "-" reads the secret from the terminal.

Buy price is the current ask price multiplied by the buy-factor (default 1).
Order quantity is the btc-amount divided by the buy price and the safety
factor. Once the buy order is closed, a sell order for the same quantity is
placed at ask * (1 + profit-percentage/100). Note that the sell price is
relative to the ask price, not the buy price.

Command waits forever for the buy order to close unless a -wait-timeout is
given. The limit only applies to the wait; sell order is placed even if the buy
order closes at the last moment. Interrupting the command or running out of
wait time leaves the buy order open.

`
}

func (c *Pump) run(ctx context.Context, args []string) error {
	stdin, stdout := c.stdin, cli.Stdout(ctx)
	if stdin == nil {
		stdin = os.Stdin
	}
	defer func() {
		fmt.Fprintf(stdout, "\n%s\n", footer)
	}()

	params, err := pump.ParseArgs(args)
	if err != nil {
		return err
	}
	if params.Credentials.Secret == "-" {
		secret, err := readSecret(stdin, stdout, "API Secret: ")
		if err != nil {
			return fmt.Errorf("could not read api secret: %w", err)
		}
		params.Credentials.Secret = secret
	}

	safety, err := decimal.NewFromString(c.safetyFactor)
	if err != nil {
		return &pump.ValidationError{Field: "safety-factor", Value: c.safetyFactor, Reason: "not a decimal number"}
	}

	params.Coin = c.coin
	if len(params.Coin) == 0 {
		coin, err := readWord(stdin, stdout, "Coin Name (example: eth): ")
		if err != nil {
			return fmt.Errorf("could not read coin name: %w", err)
		}
		params.Coin = coin
	}
	if err := params.Check(); err != nil {
		return err
	}

	client, err := c.ExchangeFlags.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	controller, err := pump.New(client, &pump.Options{SafetyFactor: safety, WaitTimeout: c.waitTimeout})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(stdout, "Market %s, BTC Amount %s, Profit Percentage %s, Buy Factor %s\n",
		bittrex.MarketName(params.Coin), params.BTCAmount.StringFixed(8), params.ProfitPercentage, params.BuyFactor)

	res, err := controller.Run(ctx, params)
	printResult(stdout, res)
	if err != nil {
		slog.Error("pump cycle failed", "phase", res.Phase, "err", err)
		return err
	}
	return nil
}

func printResult(w io.Writer, res *pump.Result) {
	if res == nil {
		return
	}
	if res.Plan != nil {
		fmt.Fprintf(w, "Ask Price %s, Buy Price %s, Quantity %s, Sell Price %s\n",
			res.Plan.Ask.StringFixed(8), res.Plan.BuyPrice.StringFixed(8),
			res.Plan.Quantity.StringFixed(pump.QuantityPlaces), res.Plan.SellPrice.StringFixed(8))
	}
	if res.Buy != nil {
		fmt.Fprintf(w, "Buy Order %s (%s)\n", res.Buy.ID, res.Buy.Status)
	}
	if res.Sell != nil {
		fmt.Fprintf(w, "Sell Order %s (%s)\n", res.Sell.ID, res.Sell.Status)
	}
	if res.HasOpenPosition() {
		fmt.Fprintf(w, "WARNING: buy order %s has no matching sell order; position must be closed manually\n", res.Buy.ID)
	}
}
