package eventmodels

import "fmt"

var RequestAttemptsExhaustedErr = fmt.Errorf("request attempts exhausted")
var MalformedResponseErr = fmt.Errorf("malformed json-rpc response")
var MissingResultErr = fmt.Errorf("json-rpc response has no result")
var MissingAccessTokenErr = fmt.Errorf("access token not found")
var EmptyInstrumentNameErr = fmt.Errorf("instrument name cannot be empty")
