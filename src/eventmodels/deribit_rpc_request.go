package eventmodels

const JsonRpcVersion = "2.0"

type DeribitRpcRequest struct {
	JsonRpc string                 `json:"jsonrpc"`
	Method  DeribitMethod          `json:"method"`
	Params  map[string]interface{} `json:"params"`
	ID      int                    `json:"id"`
}
