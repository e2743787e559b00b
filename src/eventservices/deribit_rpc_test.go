package eventservices

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

func TestNewDeribitRequest(t *testing.T) {
	t.Run("envelope shape", func(t *testing.T) {
		req := NewDeribitRequest(eventmodels.DeribitCancelMethod, eventmodels.DeribitCancelRequestID, map[string]interface{}{
			"order_id": "ETH-123",
		})

		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","method":"private/cancel","params":{"order_id":"ETH-123"},"id":2}`, string(data))
	})

	t.Run("nil params encode as an empty object", func(t *testing.T) {
		data, err := json.Marshal(NewDeribitRequest(eventmodels.DeribitGetInstrumentsMethod, 6, nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","method":"public/get_instruments","params":{},"id":6}`, string(data))
	})
}

func TestInterpretDeribitResponse(t *testing.T) {
	t.Run("result present is a success", func(t *testing.T) {
		result, err := InterpretDeribitResponse([]byte(`{"jsonrpc":"2.0","id":3,"result":{"bids":[]}}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"bids":[]}`, string(result))
	})

	t.Run("error object is a failure", func(t *testing.T) {
		body := `{"jsonrpc":"2.0","id":1,"error":{"code":10004,"message":"order_not_found"}}`
		_, err := InterpretDeribitResponse([]byte(body))
		require.Error(t, err)
		assert.ErrorIs(t, err, eventmodels.MissingResultErr)

		var respErr *eventmodels.DeribitResponseError
		require.True(t, errors.As(err, &respErr))
		assert.Equal(t, body, respErr.Body)
		require.NotNil(t, respErr.RpcError)
		assert.Equal(t, 10004, respErr.RpcError.Code)
		assert.Equal(t, "order_not_found", respErr.RpcError.Message)
	})

	t.Run("empty object is a failure", func(t *testing.T) {
		_, err := InterpretDeribitResponse([]byte(`{}`))
		assert.ErrorIs(t, err, eventmodels.MissingResultErr)
	})

	t.Run("null result is a failure", func(t *testing.T) {
		_, err := InterpretDeribitResponse([]byte(`{"result":null}`))
		assert.ErrorIs(t, err, eventmodels.MissingResultErr)
	})

	t.Run("non-json text is a malformed failure", func(t *testing.T) {
		for _, body := range []string{"<html>bad gateway</html>", "", "[1,2"} {
			_, err := InterpretDeribitResponse([]byte(body))
			assert.ErrorIs(t, err, eventmodels.MalformedResponseErr)
			assert.NotErrorIs(t, err, eventmodels.MissingResultErr)
		}
	})

	t.Run("identical bodies classify identically", func(t *testing.T) {
		body := []byte(`{"result":{"access_token":"T"}}`)
		first, err1 := InterpretDeribitResponse(body)
		second, err2 := InterpretDeribitResponse(body)
		assert.Equal(t, err1, err2)
		assert.Equal(t, first, second)
	})
}

func TestDecodeDeribitResult(t *testing.T) {
	t.Run("decodes into the typed dto", func(t *testing.T) {
		dto, err := DecodeDeribitResult[eventmodels.DeribitAuthResultDTO]([]byte(`{"result":{"access_token":"T","expires_in":900}}`))
		require.NoError(t, err)
		require.NotNil(t, dto.AccessToken)
		assert.Equal(t, "T", *dto.AccessToken)
		assert.Equal(t, int64(900), dto.ExpiresIn)
	})

	t.Run("result of the wrong shape is malformed", func(t *testing.T) {
		_, err := DecodeDeribitResult[[]eventmodels.DeribitInstrumentDTO]([]byte(`{"result":{"instrument_name":"BTC-PERPETUAL"}}`))
		assert.ErrorIs(t, err, eventmodels.MalformedResponseErr)
	})
}
