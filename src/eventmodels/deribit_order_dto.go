package eventmodels

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DeribitOrderPrice is a limit price, or a marker such as "market_price" for orders that
// have no price yet.
type DeribitOrderPrice struct {
	Value  float64
	Marker string
}

func (p *DeribitOrderPrice) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err == nil {
		*p = DeribitOrderPrice{Marker: marker}
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("DeribitOrderPrice: expected a number or a string, got %s", data)
	}

	*p = DeribitOrderPrice{Value: value}
	return nil
}

func (p DeribitOrderPrice) MarshalJSON() ([]byte, error) {
	if p.Marker != "" {
		return json.Marshal(p.Marker)
	}

	return json.Marshal(p.Value)
}

func (p DeribitOrderPrice) String() string {
	if p.Marker != "" {
		return p.Marker
	}

	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

type DeribitOrderDTO struct {
	OrderID        string             `json:"order_id"`
	InstrumentName string             `json:"instrument_name"`
	OrderState     string             `json:"order_state"`
	OrderType      string             `json:"order_type"`
	Direction      string             `json:"direction"`
	Price          *DeribitOrderPrice `json:"price"`
	Amount         float64            `json:"amount"`
	FilledAmount   float64            `json:"filled_amount"`
	Label          string             `json:"label"`
}

type DeribitOrderResultDTO struct {
	Order  DeribitOrderDTO   `json:"order"`
	Trades []json.RawMessage `json:"trades"`
}
