package eventservices

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

func (c *DeribitClient) PlaceBuyOrder(ctx context.Context, token *oauth2.Token, instrument string, amount, price float64) (*eventmodels.DeribitOrderResultDTO, error) {
	params := map[string]interface{}{
		"instrument_name": instrument,
		"amount":          amount,
		"price":           price,
	}

	result, err := callDeribit[eventmodels.DeribitOrderResultDTO](ctx, c, eventmodels.DeribitBuyMethod, eventmodels.DeribitBuyRequestID, params, token)
	if err != nil {
		return nil, fmt.Errorf("PlaceBuyOrder: failed to place order: %w", err)
	}

	return result, nil
}

func (c *DeribitClient) CancelOrder(ctx context.Context, token *oauth2.Token, orderID string) (*eventmodels.DeribitOrderDTO, error) {
	params := map[string]interface{}{
		"order_id": orderID,
	}

	order, err := callDeribit[eventmodels.DeribitOrderDTO](ctx, c, eventmodels.DeribitCancelMethod, eventmodels.DeribitCancelRequestID, params, token)
	if err != nil {
		return nil, fmt.Errorf("CancelOrder: failed to cancel order %s: %w", orderID, err)
	}

	return order, nil
}

func (c *DeribitClient) EditOrder(ctx context.Context, token *oauth2.Token, orderID string, amount, price float64) (*eventmodels.DeribitOrderResultDTO, error) {
	params := map[string]interface{}{
		"order_id": orderID,
		"amount":   amount,
		"price":    price,
	}

	result, err := callDeribit[eventmodels.DeribitOrderResultDTO](ctx, c, eventmodels.DeribitEditMethod, eventmodels.DeribitEditRequestID, params, token)
	if err != nil {
		return nil, fmt.Errorf("EditOrder: failed to modify order %s: %w", orderID, err)
	}

	return result, nil
}
