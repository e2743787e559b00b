package models

import (
	"fmt"
	"strconv"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

func FormatOrder(order eventmodels.DeribitOrderDTO) string {
	price := "market"
	if order.Price != nil {
		price = order.Price.String()
	}

	return fmt.Sprintf("order_id=%s instrument=%s state=%s direction=%s price=%s amount=%s filled=%s",
		order.OrderID,
		order.InstrumentName,
		order.OrderState,
		order.Direction,
		price,
		strconv.FormatFloat(order.Amount, 'f', -1, 64),
		strconv.FormatFloat(order.FilledAmount, 'f', -1, 64),
	)
}
