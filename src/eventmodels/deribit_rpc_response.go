package eventmodels

import (
	"encoding/json"
	"fmt"
)

// DeribitRpcResponse is the generic json-rpc reply. Result is left raw so that each
// operation decodes it into its own DTO exactly once.
type DeribitRpcResponse struct {
	JsonRpc string           `json:"jsonrpc"`
	ID      json.RawMessage  `json:"id,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *DeribitRpcError `json:"error,omitempty"`
}

func (r DeribitRpcResponse) HasResult() bool {
	return len(r.Result) > 0 && string(r.Result) != "null"
}

type DeribitRpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *DeribitRpcError) Error() string {
	return fmt.Sprintf("deribit error %d: %s", e.Code, e.Message)
}

// DeribitResponseError reports a reply that could not be interpreted as a success.
// Body holds the raw response for diagnostics.
type DeribitResponseError struct {
	Body     string
	RpcError *DeribitRpcError
	Err      error
}

func (e *DeribitResponseError) Error() string {
	if e.RpcError != nil {
		return fmt.Sprintf("%v: %v (response: %s)", e.Err, e.RpcError, e.Body)
	}

	return fmt.Sprintf("%v (response: %s)", e.Err, e.Body)
}

func (e *DeribitResponseError) Unwrap() error {
	return e.Err
}
