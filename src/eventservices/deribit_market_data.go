package eventservices

import (
	"context"
	"fmt"
	"strings"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

const (
	DefaultInstrumentsCurrency = "BTC"
	DefaultInstrumentsKind     = "any"
)

func (c *DeribitClient) FetchOrderBook(ctx context.Context, instrument string) (*eventmodels.DeribitOrderBookDTO, error) {
	if strings.TrimSpace(instrument) == "" {
		return nil, fmt.Errorf("FetchOrderBook: %w", eventmodels.EmptyInstrumentNameErr)
	}

	params := map[string]interface{}{
		"instrument_name": instrument,
	}

	book, err := callDeribit[eventmodels.DeribitOrderBookDTO](ctx, c, eventmodels.DeribitGetOrderBookMethod, eventmodels.DeribitGetOrderBookRequestID, params, nil)
	if err != nil {
		return nil, fmt.Errorf("FetchOrderBook: unable to fetch order book for %s: %w", instrument, err)
	}

	return book, nil
}

func (c *DeribitClient) FetchInstruments(ctx context.Context, currency, kind string) ([]eventmodels.DeribitInstrumentDTO, error) {
	params := map[string]interface{}{
		"currency": currency,
		"kind":     kind,
	}

	instruments, err := callDeribit[[]eventmodels.DeribitInstrumentDTO](ctx, c, eventmodels.DeribitGetInstrumentsMethod, eventmodels.DeribitGetInstrumentsRequestID, params, nil)
	if err != nil {
		return nil, fmt.Errorf("FetchInstruments: failed to fetch instruments: %w", err)
	}

	return *instruments, nil
}
