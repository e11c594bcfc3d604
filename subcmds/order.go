// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/bvk/pumpbot/exchange"
	"github.com/bvk/pumpbot/subcmds/cmdutil"
	"github.com/google/uuid"
	"github.com/visvasity/cli"
)

type GetOrder struct {
	cmdutil.ExchangeFlags
}

func (c *GetOrder) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("order", flag.ContinueOnError)
	c.ExchangeFlags.SetFlags(fset)
	return "order", fset, cli.CmdFunc(c.run)
}

func (c *GetOrder) Purpose() string {
	return "Prints an order's status from the exchange"
}

func (c *GetOrder) run(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("this command takes three (api-key, api-secret, order-uuid) arguments")
	}
	id, err := uuid.Parse(args[2])
	if err != nil {
		return fmt.Errorf("invalid order uuid %q: %w", args[2], err)
	}

	client, err := c.ExchangeFlags.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	creds := exchange.Credentials{Key: args[0], Secret: args[1]}
	order, err := client.GetOrder(ctx, creds, exchange.OrderID(id.String()))
	if err != nil {
		return err
	}
	jsdata, _ := json.MarshalIndent(order, "", "  ")
	fmt.Fprintf(cli.Stdout(ctx), "%s\n", jsdata)
	return nil
}
