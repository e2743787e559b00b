package eventmodels

import (
	"encoding/json"
	"fmt"
)

// DeribitPriceLevel is a [price, amount] pair.
type DeribitPriceLevel struct {
	Price  float64
	Amount float64
}

func (l *DeribitPriceLevel) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("DeribitPriceLevel: failed to decode price level: %w", err)
	}

	if len(pair) < 2 {
		return fmt.Errorf("DeribitPriceLevel: expected [price, amount], got %d values", len(pair))
	}

	l.Price = pair[0]
	l.Amount = pair[1]
	return nil
}

func (l DeribitPriceLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{l.Price, l.Amount})
}

// Bids and Asks are nil when the key is absent from the reply.
type DeribitOrderBookDTO struct {
	InstrumentName string               `json:"instrument_name"`
	Timestamp      int64                `json:"timestamp"`
	Bids           *[]DeribitPriceLevel `json:"bids"`
	Asks           *[]DeribitPriceLevel `json:"asks"`
	BestBidPrice   *float64             `json:"best_bid_price"`
	BestAskPrice   *float64             `json:"best_ask_price"`
	MarkPrice      *float64             `json:"mark_price"`
	IndexPrice     *float64             `json:"index_price"`
}
