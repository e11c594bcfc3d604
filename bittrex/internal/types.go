// Copyright (c) 2025 BVK Chaitanya

package internal

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// envelope is the common wrapper for all v1.1 api responses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// Failure is returned when the exchange responds with success=false. Response
// holds the raw response body.
type Failure struct {
	Message  string
	Response []byte
}

func (f *Failure) Error() string {
	return fmt.Sprintf("exchange failure: %q", f.Message)
}

/*
{
  "MarketName": "BTC-ETH",
  "High": 0.0135,
  "Low": 0.012,
  "Volume": 3833.97619253,
  "Last": 0.01349998,
  "BaseVolume": 47.03987026,
  "TimeStamp": "2017-04-23T02:25:34.127",
  "Bid": 0.01271001,
  "Ask": 0.012911,
  "OpenBuyOrders": 45,
  "OpenSellOrders": 45,
  "PrevDay": 0.01229501,
  "Created": "2015-08-14T09:02:24.817"
}
*/
type MarketSummary struct {
	MarketName string `json:"MarketName"`

	High       decimal.Decimal `json:"High"`
	Low        decimal.Decimal `json:"Low"`
	Volume     decimal.Decimal `json:"Volume"`
	Last       decimal.Decimal `json:"Last"`
	BaseVolume decimal.Decimal `json:"BaseVolume"`

	TimeStamp string `json:"TimeStamp"`

	Bid decimal.Decimal `json:"Bid"`
	Ask decimal.Decimal `json:"Ask"`

	OpenBuyOrders  int64 `json:"OpenBuyOrders"`
	OpenSellOrders int64 `json:"OpenSellOrders"`

	PrevDay decimal.Decimal `json:"PrevDay"`
	Created string          `json:"Created"`
}

// Check *MUST* validate all important fields we need in the response.
func (v *MarketSummary) Check() error {
	if !v.Ask.IsPositive() {
		return fmt.Errorf("market %q ask price %s is not positive", v.MarketName, v.Ask)
	}
	return nil
}

type GetMarketSummaryResponse []*MarketSummary

type OrderUUID struct {
	UUID string `json:"uuid"`
}

func (v *OrderUUID) Check() error {
	if v.UUID == "" {
		return fmt.Errorf("order uuid cannot be empty")
	}
	return nil
}

type OrderStatus struct {
	OrderUUID string `json:"OrderUuid"`
	Exchange  string `json:"Exchange"`
	Type      string `json:"Type"`

	Quantity          decimal.Decimal `json:"Quantity"`
	QuantityRemaining decimal.Decimal `json:"QuantityRemaining"`
	Limit             decimal.Decimal `json:"Limit"`
	Price             decimal.Decimal `json:"Price"`
	PricePerUnit      decimal.Decimal `json:"PricePerUnit"`

	Opened string `json:"Opened"`
	Closed string `json:"Closed"`

	// IsOpen is a pointer so that a response without the field can be told
	// apart from a closed order.
	IsOpen *bool `json:"IsOpen"`

	CancelInitiated bool `json:"CancelInitiated"`
}

func (v *OrderStatus) Check() error {
	if v.IsOpen == nil {
		return fmt.Errorf("order status %q has no IsOpen field", v.OrderUUID)
	}
	return nil
}
