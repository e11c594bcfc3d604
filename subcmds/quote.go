// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/pumpbot/bittrex"
	"github.com/bvk/pumpbot/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

type Quote struct {
	cmdutil.ExchangeFlags
}

func (c *Quote) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("quote", flag.ContinueOnError)
	c.ExchangeFlags.SetFlags(fset)
	return "quote", fset, cli.CmdFunc(c.run)
}

func (c *Quote) Purpose() string {
	return "Prints the current ask price for a coin's BTC market"
}

func (c *Quote) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("this command takes one (coin) argument")
	}

	client, err := c.ExchangeFlags.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ask, err := client.GetAskPrice(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Stdout(ctx), "%s %s\n", bittrex.MarketName(args[0]), ask.StringFixed(8))
	return nil
}
