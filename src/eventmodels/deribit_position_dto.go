package eventmodels

import (
	"encoding/json"
	"strconv"
)

// DeribitPositionDTO carries the allowlisted position fields. Not every field is
// reported for every instrument kind, so each one is optional.
type DeribitPositionDTO struct {
	EstimatedLiquidationPrice *float64 `json:"estimated_liquidation_price"`
	SizeCurrency              *float64 `json:"size_currency"`
	RealizedFunding           *float64 `json:"realized_funding"`
	TotalProfitLoss           *float64 `json:"total_profit_loss"`
	RealizedProfitLoss        *float64 `json:"realized_profit_loss"`
	FloatingProfitLoss        *float64 `json:"floating_profit_loss"`
	Leverage                  *float64 `json:"leverage"`
	AveragePrice              *float64 `json:"average_price"`
	Delta                     *float64 `json:"delta"`
	InterestValue             *float64 `json:"interest_value"`
	MarkPrice                 *float64 `json:"mark_price"`
	SettlementPrice           *float64 `json:"settlement_price"`
	IndexPrice                *float64 `json:"index_price"`
	Direction                 *string  `json:"direction"`
	OpenOrdersMargin          *float64 `json:"open_orders_margin"`
	InitialMargin             *float64 `json:"initial_margin"`
	MaintenanceMargin         *float64 `json:"maintenance_margin"`
	Kind                      *string  `json:"kind"`
	Size                      *float64 `json:"size"`

	nullFields map[string]bool
}

// UnmarshalJSON also records fields that were sent as null, which are reported
// rather than skipped.
func (p *DeribitPositionDTO) UnmarshalJSON(data []byte) error {
	type plain DeribitPositionDTO

	var dto plain
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = DeribitPositionDTO(dto)
	p.nullFields = nil
	for name, value := range raw {
		if string(value) != "null" {
			continue
		}

		if p.nullFields == nil {
			p.nullFields = make(map[string]bool)
		}
		p.nullFields[name] = true
	}

	return nil
}

type DeribitPositionField struct {
	Name  string
	Value string
}

// Fields returns the fields present in the reply, in allowlist order.
func (p DeribitPositionDTO) Fields() []DeribitPositionField {
	type entry struct {
		name string
		num  *float64
		str  *string
	}

	allowlist := []entry{
		{name: "estimated_liquidation_price", num: p.EstimatedLiquidationPrice},
		{name: "size_currency", num: p.SizeCurrency},
		{name: "realized_funding", num: p.RealizedFunding},
		{name: "total_profit_loss", num: p.TotalProfitLoss},
		{name: "realized_profit_loss", num: p.RealizedProfitLoss},
		{name: "floating_profit_loss", num: p.FloatingProfitLoss},
		{name: "leverage", num: p.Leverage},
		{name: "average_price", num: p.AveragePrice},
		{name: "delta", num: p.Delta},
		{name: "interest_value", num: p.InterestValue},
		{name: "mark_price", num: p.MarkPrice},
		{name: "settlement_price", num: p.SettlementPrice},
		{name: "index_price", num: p.IndexPrice},
		{name: "direction", str: p.Direction},
		{name: "open_orders_margin", num: p.OpenOrdersMargin},
		{name: "initial_margin", num: p.InitialMargin},
		{name: "maintenance_margin", num: p.MaintenanceMargin},
		{name: "kind", str: p.Kind},
		{name: "size", num: p.Size},
	}

	fields := make([]DeribitPositionField, 0, len(allowlist))
	for _, e := range allowlist {
		switch {
		case e.num != nil:
			fields = append(fields, DeribitPositionField{Name: e.name, Value: strconv.FormatFloat(*e.num, 'f', -1, 64)})
		case e.str != nil:
			fields = append(fields, DeribitPositionField{Name: e.name, Value: *e.str})
		case p.nullFields[e.name]:
			fields = append(fields, DeribitPositionField{Name: e.name, Value: "null"})
		}
	}

	return fields
}
