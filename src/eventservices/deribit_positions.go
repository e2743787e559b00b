package eventservices

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

func (c *DeribitClient) FetchPosition(ctx context.Context, token *oauth2.Token, instrument string) (*eventmodels.DeribitPositionDTO, error) {
	params := map[string]interface{}{
		"instrument_name": instrument,
	}

	position, err := callDeribit[eventmodels.DeribitPositionDTO](ctx, c, eventmodels.DeribitGetPositionMethod, eventmodels.DeribitGetPositionRequestID, params, token)
	if err != nil {
		return nil, fmt.Errorf("FetchPosition: could not retrieve position data for %s: %w", instrument, err)
	}

	return position, nil
}
