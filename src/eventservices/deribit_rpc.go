package eventservices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

const DeribitTestnetBaseURL = "https://test.deribit.com/api/v2"

type RequestExecutor interface {
	Execute(ctx context.Context, endpoint string, body []byte, token *oauth2.Token) ([]byte, error)
}

// DeribitClient issues json-rpc calls against BaseURL. It holds no session state: private
// operations take the access token as an argument.
type DeribitClient struct {
	BaseURL  string
	Executor RequestExecutor
}

func NewDeribitClient(baseURL string, executor RequestExecutor) *DeribitClient {
	return &DeribitClient{
		BaseURL:  baseURL,
		Executor: executor,
	}
}

func NewDeribitRequest(method eventmodels.DeribitMethod, id int, params map[string]interface{}) eventmodels.DeribitRpcRequest {
	if params == nil {
		params = map[string]interface{}{}
	}

	return eventmodels.DeribitRpcRequest{
		JsonRpc: eventmodels.JsonRpcVersion,
		Method:  method,
		Params:  params,
		ID:      id,
	}
}

// InterpretDeribitResponse returns the raw result of a json-rpc reply. A reply without a
// result, including one that does not parse, yields a *eventmodels.DeribitResponseError.
func InterpretDeribitResponse(body []byte) (json.RawMessage, error) {
	var response eventmodels.DeribitRpcResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &eventmodels.DeribitResponseError{
			Body: string(body),
			Err:  fmt.Errorf("%w: %v", eventmodels.MalformedResponseErr, err),
		}
	}

	if !response.HasResult() {
		return nil, &eventmodels.DeribitResponseError{
			Body:     string(body),
			RpcError: response.Error,
			Err:      eventmodels.MissingResultErr,
		}
	}

	return response.Result, nil
}

func DecodeDeribitResult[T any](body []byte) (*T, error) {
	result, err := InterpretDeribitResponse(body)
	if err != nil {
		return nil, err
	}

	var dto T
	if err := json.Unmarshal(result, &dto); err != nil {
		return nil, &eventmodels.DeribitResponseError{
			Body: string(body),
			Err:  fmt.Errorf("%w: failed to decode result: %v", eventmodels.MalformedResponseErr, err),
		}
	}

	return &dto, nil
}

func (c *DeribitClient) call(ctx context.Context, method eventmodels.DeribitMethod, id int, params map[string]interface{}, token *oauth2.Token) ([]byte, error) {
	if method.IsPrivate() && (token == nil || token.AccessToken == "") {
		return nil, fmt.Errorf("%s: %w", method, eventmodels.MissingAccessTokenErr)
	}

	payload, err := json.Marshal(NewDeribitRequest(method, id, params))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode request: %w", method, err)
	}

	endpoint, err := url.JoinPath(c.BaseURL, string(method))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to join path: %w", method, err)
	}

	body, err := c.Executor.Execute(ctx, endpoint, payload, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return body, nil
}

func callDeribit[T any](ctx context.Context, c *DeribitClient, method eventmodels.DeribitMethod, id int, params map[string]interface{}, token *oauth2.Token) (*T, error) {
	ctx, span := otel.Tracer("DeribitClient").Start(ctx, method.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rpc.system", "jsonrpc"),
			attribute.String("rpc.method", method.String()),
			attribute.Int("rpc.jsonrpc.request_id", id),
		),
	)
	defer span.End()

	body, err := c.call(ctx, method, id, params, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}

	dto, err := DecodeDeribitResult[T](body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid response")
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return dto, nil
}
