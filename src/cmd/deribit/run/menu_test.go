package run

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
	"github.com/jiaming2012/deribit-trading/src/eventservices"
	"github.com/jiaming2012/deribit-trading/src/utils"
)

type fakeExchange struct {
	requests []eventmodels.DeribitRpcRequest
	headers  []http.Header
}

func newFakeExchange(t *testing.T, replies map[eventmodels.DeribitMethod]string) (*fakeExchange, *eventservices.DeribitClient) {
	fake := &fakeExchange{}
	router := mux.NewRouter()

	for method, reply := range replies {
		reply := reply
		router.HandleFunc("/api/v2/"+string(method), func(w http.ResponseWriter, r *http.Request) {
			var req eventmodels.DeribitRpcRequest
			data, _ := io.ReadAll(r.Body)
			if !assert.NoError(t, json.Unmarshal(data, &req)) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			fake.requests = append(fake.requests, req)
			fake.headers = append(fake.headers, r.Header.Clone())
			w.Write([]byte(reply))
		}).Methods(http.MethodPost)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	executor := &utils.RequestExecutor{Client: srv.Client(), MaxAttempts: 3, Policy: utils.NoDelay()}
	return fake, eventservices.NewDeribitClient(srv.URL+"/api/v2", executor)
}

func newTestMenu(input string, client *eventservices.DeribitClient) (*Menu, *bytes.Buffer) {
	out := &bytes.Buffer{}
	token := &oauth2.Token{AccessToken: "T", TokenType: "bearer"}
	return NewMenu(strings.NewReader(input), out, client, token, "BTC", "any"), out
}

func errorMessages(hook *test.Hook) []string {
	var messages []string
	for _, entry := range hook.AllEntries() {
		if entry.Level <= log.ErrorLevel {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

func TestMenu(t *testing.T) {
	ctx := context.Background()
	log.SetOutput(io.Discard)

	t.Run("invalid choices are reported and the loop continues", func(t *testing.T) {
		hook := test.NewGlobal()
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{})
		menu, out := newTestMenu("9 abc 7", client)

		menu.Run(ctx)

		assert.Equal(t, 3, strings.Count(out.String(), "Enter your choice: "))
		assert.Contains(t, out.String(), "Exiting. Thank you!")
		assert.Empty(t, fake.requests)

		messages := errorMessages(hook)
		require.Len(t, messages, 2)
		assert.Contains(t, messages[0], "Invalid option")
		assert.Contains(t, messages[1], "Invalid option")
	})

	t.Run("end of input exits", func(t *testing.T) {
		_, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{})
		menu, out := newTestMenu("", client)

		menu.Run(ctx)

		assert.Equal(t, 1, strings.Count(out.String(), "Enter your choice: "))
		assert.Contains(t, out.String(), "Exiting. Thank you!")
	})

	t.Run("cancelled context exits without requests", func(t *testing.T) {
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitGetInstrumentsMethod: `{"result":[]}`,
		})
		menu, out := newTestMenu("5 5 7", client)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		menu.Run(cancelled)

		assert.Empty(t, fake.requests)
		assert.Equal(t, 1, strings.Count(out.String(), "Enter your choice: "))
		assert.Contains(t, out.String(), "Exiting. Thank you!")
	})

	t.Run("cancellation unblocks a pending read", func(t *testing.T) {
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{})

		in, w := io.Pipe()
		defer w.Close()

		out := &bytes.Buffer{}
		menu := NewMenu(in, out, client, &oauth2.Token{AccessToken: "T"}, "BTC", "any")

		timeout, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		finished := make(chan struct{})
		go func() {
			menu.Run(timeout)
			close(finished)
		}()

		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatal("menu did not return after cancellation")
		}

		assert.Empty(t, fake.requests)
		assert.Contains(t, out.String(), "Exiting. Thank you!")
	})

	t.Run("place order", func(t *testing.T) {
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitBuyMethod: `{"result":{"order":{"order_id":"ETH-1","instrument_name":"BTC-PERPETUAL","order_state":"open","direction":"buy","price":50000,"amount":10},"trades":[]}}`,
		})
		menu, out := newTestMenu("1 BTC-PERPETUAL 10 50000 7", client)

		menu.Run(ctx)

		require.Len(t, fake.requests, 1)
		assert.Equal(t, eventmodels.DeribitBuyMethod, fake.requests[0].Method)
		assert.Equal(t, "Bearer T", fake.headers[0].Get("Authorization"))
		assert.Contains(t, out.String(), "Enter instrument name: Enter amount: Enter price: ")
		assert.Contains(t, out.String(), "Order placed successfully: order_id=ETH-1")
	})

	t.Run("non-numeric amount makes no request", func(t *testing.T) {
		hook := test.NewGlobal()
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitBuyMethod: `{"result":{}}`,
		})
		menu, out := newTestMenu("1 BTC-PERPETUAL ten 7", client)

		menu.Run(ctx)

		assert.Empty(t, fake.requests)
		assert.Contains(t, out.String(), "Exiting. Thank you!")
		require.Len(t, errorMessages(hook), 1)
		assert.Contains(t, errorMessages(hook)[0], "invalid number")
	})

	t.Run("failed operation returns to the menu", func(t *testing.T) {
		hook := test.NewGlobal()
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitCancelMethod: `{"error":{"code":11044,"message":"not_open_order"}}`,
		})
		menu, out := newTestMenu("2 ETH-1 7", client)

		menu.Run(ctx)

		assert.Len(t, fake.requests, 1)
		assert.Equal(t, 2, strings.Count(out.String(), "Enter your choice: "))
		require.Len(t, errorMessages(hook), 1)
		assert.Contains(t, errorMessages(hook)[0], "not_open_order")
	})

	t.Run("order book", func(t *testing.T) {
		_, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitGetOrderBookMethod: `{"result":{"bids":[[100.0,2.0]]}}`,
		})
		menu, out := newTestMenu("3 BTC-PERPETUAL 7", client)

		menu.Run(ctx)

		assert.Contains(t, out.String(), "=== Order Book for BTC-PERPETUAL ===")
		assert.Contains(t, out.String(), "100.00")
		assert.Contains(t, out.String(), "No asks available.")
	})

	t.Run("positions", func(t *testing.T) {
		_, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitGetPositionMethod: `{"result":{"size":10,"kind":"future","delta":0.5,"instrument_name":"BTC-PERPETUAL"}}`,
		})
		menu, out := newTestMenu("4 BTC-PERPETUAL 7", client)

		menu.Run(ctx)

		assert.Contains(t, out.String(), "Position Details for BTC-PERPETUAL:\ndelta: 0.5\nkind: future\nsize: 10\n")
	})

	t.Run("instruments", func(t *testing.T) {
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitGetInstrumentsMethod: `{"result":[{"instrument_name":"BTC-PERPETUAL","kind":"future","expiration_timestamp":0}]}`,
		})
		menu, out := newTestMenu("5 7", client)

		menu.Run(ctx)

		require.Len(t, fake.requests, 1)
		assert.Equal(t, map[string]interface{}{"currency": "BTC", "kind": "any"}, fake.requests[0].Params)
		assert.Equal(t, 1, strings.Count(out.String(), "Instrument: "))
		assert.Contains(t, out.String(), "Instrument: BTC-PERPETUAL, Type: future, Expiry: 0\n")
	})

	t.Run("modify order", func(t *testing.T) {
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitEditMethod: `{"result":{"order":{"order_id":"ETH-1","order_state":"open","price":49000,"amount":20},"trades":[]}}`,
		})
		menu, out := newTestMenu("6 ETH-1 49000 20 7", client)

		menu.Run(ctx)

		require.Len(t, fake.requests, 1)
		assert.Equal(t, map[string]interface{}{"order_id": "ETH-1", "price": 49000.0, "amount": 20.0}, fake.requests[0].Params)
		assert.Contains(t, out.String(), "Order modified successfully: order_id=ETH-1")
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	log.SetOutput(io.Discard)

	t.Run("authentication failure skips the menu", func(t *testing.T) {
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitAuthMethod: `{"result":{}}`,
		})

		session := &Session{Config: DefaultConfig(), Client: client}
		out := &bytes.Buffer{}

		result, err := Run(ctx, session, strings.NewReader("5 7"), out)
		require.NoError(t, err)
		assert.False(t, result.Authenticated)
		assert.Len(t, fake.requests, 1)
		assert.Empty(t, out.String())
	})

	t.Run("token from authentication is used by private calls", func(t *testing.T) {
		fake, client := newFakeExchange(t, map[eventmodels.DeribitMethod]string{
			eventmodels.DeribitAuthMethod:        `{"result":{"access_token":"T","token_type":"bearer","expires_in":900}}`,
			eventmodels.DeribitGetPositionMethod: `{"result":{"size":1}}`,
		})

		cfg := DefaultConfig()
		cfg.Deribit.ClientID = "my_client_id"
		cfg.Deribit.ClientSecret = "my_client_secret"
		session := &Session{Config: cfg, Client: client}
		out := &bytes.Buffer{}

		result, err := Run(ctx, session, strings.NewReader("4 BTC-PERPETUAL 7"), out)
		require.NoError(t, err)
		assert.True(t, result.Authenticated)

		require.Len(t, fake.requests, 2)
		assert.Empty(t, fake.headers[0].Get("Authorization"))
		assert.Equal(t, "Bearer T", fake.headers[1].Get("Authorization"))
		assert.Contains(t, out.String(), "size: 1\n")
	})
}
