package eventmodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeribitPositionDTO(t *testing.T) {
	t.Run("only present fields, in allowlist order", func(t *testing.T) {
		var position DeribitPositionDTO
		err := json.Unmarshal([]byte(`{"size":-20,"kind":"future","average_price":61234.5,"instrument_name":"BTC-PERPETUAL","total_profit_loss":0}`), &position)
		require.NoError(t, err)

		assert.Equal(t, []DeribitPositionField{
			{Name: "total_profit_loss", Value: "0"},
			{Name: "average_price", Value: "61234.5"},
			{Name: "kind", Value: "future"},
			{Name: "size", Value: "-20"},
		}, position.Fields())
	})

	t.Run("null fields are reported", func(t *testing.T) {
		var position DeribitPositionDTO
		err := json.Unmarshal([]byte(`{"size":10,"estimated_liquidation_price":null,"kind":"future","instrument_name":null}`), &position)
		require.NoError(t, err)

		assert.Nil(t, position.EstimatedLiquidationPrice)
		assert.Equal(t, []DeribitPositionField{
			{Name: "estimated_liquidation_price", Value: "null"},
			{Name: "kind", Value: "future"},
			{Name: "size", Value: "10"},
		}, position.Fields())
	})

	t.Run("empty result", func(t *testing.T) {
		assert.Empty(t, DeribitPositionDTO{}.Fields())
	})
}

func TestDeribitOrderPrice(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		var order DeribitOrderDTO
		require.NoError(t, json.Unmarshal([]byte(`{"order_id":"ETH-1","price":50000.5}`), &order))

		require.NotNil(t, order.Price)
		assert.Equal(t, 50000.5, order.Price.Value)
		assert.Equal(t, "50000.5", order.Price.String())
	})

	t.Run("marker", func(t *testing.T) {
		var order DeribitOrderDTO
		require.NoError(t, json.Unmarshal([]byte(`{"order_id":"ETH-9","price":"market_price"}`), &order))

		require.NotNil(t, order.Price)
		assert.Equal(t, "market_price", order.Price.String())
	})

	t.Run("null or absent", func(t *testing.T) {
		var order DeribitOrderDTO
		require.NoError(t, json.Unmarshal([]byte(`{"order_id":"ETH-1","price":null}`), &order))
		assert.Nil(t, order.Price)

		order = DeribitOrderDTO{}
		require.NoError(t, json.Unmarshal([]byte(`{"order_id":"ETH-1"}`), &order))
		assert.Nil(t, order.Price)
	})

	t.Run("other types are rejected", func(t *testing.T) {
		var order DeribitOrderDTO
		assert.Error(t, json.Unmarshal([]byte(`{"price":[1,2]}`), &order))
	})
}

func TestDeribitOrderBookDTO(t *testing.T) {
	t.Run("absent sides stay nil", func(t *testing.T) {
		var book DeribitOrderBookDTO
		require.NoError(t, json.Unmarshal([]byte(`{"bids":[[100.0,2.0],[99.5,1]]}`), &book))

		require.NotNil(t, book.Bids)
		assert.Equal(t, []DeribitPriceLevel{{Price: 100, Amount: 2}, {Price: 99.5, Amount: 1}}, *book.Bids)
		assert.Nil(t, book.Asks)
	})

	t.Run("empty side is present", func(t *testing.T) {
		var book DeribitOrderBookDTO
		require.NoError(t, json.Unmarshal([]byte(`{"bids":[],"asks":[]}`), &book))

		require.NotNil(t, book.Asks)
		assert.Empty(t, *book.Asks)
	})

	t.Run("short price level is rejected", func(t *testing.T) {
		var book DeribitOrderBookDTO
		assert.Error(t, json.Unmarshal([]byte(`{"bids":[[100.0]]}`), &book))
	})
}

func TestDeribitMethod(t *testing.T) {
	assert.True(t, DeribitBuyMethod.IsPrivate())
	assert.True(t, DeribitGetPositionMethod.IsPrivate())
	assert.False(t, DeribitAuthMethod.IsPrivate())
	assert.False(t, DeribitGetOrderBookMethod.IsPrivate())
	assert.False(t, DeribitMethod("privateer/get").IsPrivate())
}

func TestDeribitResponseError(t *testing.T) {
	err := &DeribitResponseError{
		Body:     `{"error":{"code":11044,"message":"not_open_order"}}`,
		RpcError: &DeribitRpcError{Code: 11044, Message: "not_open_order"},
		Err:      MissingResultErr,
	}

	assert.ErrorIs(t, err, MissingResultErr)
	assert.Contains(t, err.Error(), "deribit error 11044: not_open_order")
	assert.Contains(t, err.Error(), `"code":11044`)
}
