package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/oauth2"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
	DefaultHttpTimeout = 10 * time.Second

	instrumentationName = "github.com/jiaming2012/deribit-trading/src/utils"
)

// RetryPolicy produces a fresh delay strategy for every Execute call.
type RetryPolicy func() backoff.BackOff

func ConstantDelay(delay time.Duration) RetryPolicy {
	return func() backoff.BackOff {
		return backoff.NewConstantBackOff(delay)
	}
}

func NoDelay() RetryPolicy {
	return func() backoff.BackOff {
		return &backoff.ZeroBackOff{}
	}
}

// RequestExecutor posts json bodies, retrying only on transport failures. A request that
// reaches the server counts as delivered whatever its status code.
type RequestExecutor struct {
	Client      *http.Client
	MaxAttempts int
	Policy      RetryPolicy

	attempts metric.Int64Counter
}

func NewRequestExecutor(timeout time.Duration, maxAttempts int, delay time.Duration) *RequestExecutor {
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"deribit.rpc.attempts",
		metric.WithDescription("HTTP attempts made by the request executor"),
	)
	if err != nil {
		log.Warnf("NewRequestExecutor: failed to create attempts counter: %v", err)
	}

	return &RequestExecutor{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		MaxAttempts: maxAttempts,
		Policy:      ConstantDelay(delay),
		attempts:    counter,
	}
}

// Execute returns the body of the first attempt that completes at the transport level.
// When every attempt fails the error wraps eventmodels.RequestAttemptsExhaustedErr.
func (e *RequestExecutor) Execute(ctx context.Context, endpoint string, body []byte, token *oauth2.Token) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("RequestExecutor: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		token.SetAuthHeader(req)
	}

	maxAttempts := e.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	policy := e.Policy
	if policy == nil {
		policy = ConstantDelay(DefaultRetryDelay)
	}

	attempt := 0
	operation := func() ([]byte, error) {
		attempt++

		resp, err := e.post(req, body)
		if err != nil {
			e.recordAttempt(ctx, "transport_error")
			return nil, err
		}

		e.recordAttempt(ctx, "ok")
		return resp, nil
	}

	notify := func(err error, delay time.Duration) {
		log.WithFields(log.Fields{
			"endpoint":     endpoint,
			"attempt":      attempt,
			"max_attempts": maxAttempts,
			"retry_in":     delay,
		}).Warnf("request error: %v, retrying", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy(), uint64(maxAttempts-1)), ctx)

	resp, err := backoff.RetryNotifyWithData(operation, b, notify)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("RequestExecutor: request cancelled after %d attempts: %w", attempt, ctxErr)
		}

		log.WithField("endpoint", endpoint).Errorf("failed to complete the request after %d attempts", attempt)
		return nil, fmt.Errorf("RequestExecutor: %w after %d attempts: %v", eventmodels.RequestAttemptsExhaustedErr, attempt, err)
	}

	return resp, nil
}

func (e *RequestExecutor) post(template *http.Request, body []byte) ([]byte, error) {
	req := template.Clone(template.Context())
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to post request: %w", err)
	}

	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.WithFields(log.Fields{
		"url":    req.URL.String(),
		"status": res.StatusCode,
	}).Debug("request completed")

	return data, nil
}

func (e *RequestExecutor) recordAttempt(ctx context.Context, outcome string) {
	if e.attempts == nil {
		return
	}

	e.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
