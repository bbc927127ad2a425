package lnbot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainPaymentEvents(stream *PaymentEventStream) ([]*PaymentEvent, error) {
	defer stream.Close()

	var events []*PaymentEvent
	for {
		ev, err := stream.Recv()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

func TestPayments_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "lnbc10u...", body["target"])
		assert.Equal(t, float64(10), body["maxFee"])
		assert.NotContains(t, body, "amount")

		w.Write([]byte(`{"number":3,"status":"pending","amount":1000,"maxFee":10,"actualFee":null,"serviceFee":1}`))
	}))
	defer server.Close()

	client := New("key_test", WithBaseURL(server.URL))
	payment, err := client.Payments().Create(context.Background(), &CreatePaymentRequest{
		Target: "lnbc10u...",
		MaxFee: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, payment.Number)
	assert.Equal(t, PaymentPending, payment.Status)
	assert.Nil(t, payment.ActualFee)
	assert.EqualValues(t, 1, payment.ServiceFee)
}

func TestPayments_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "limit=10", r.URL.RawQuery)
		w.Write([]byte(`[{"number":1,"status":"settled","amount":100,"maxFee":5,"actualFee":2,"serviceFee":0}]`))
	}))
	defer server.Close()

	client := New("key_test", WithBaseURL(server.URL))
	payments, err := client.Payments().List(context.Background(), &ListParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.NotNil(t, payments[0].ActualFee)
	assert.EqualValues(t, 2, *payments[0].ActualFee)
}

func TestPayments_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/5", r.URL.Path)
		w.Write([]byte(`{"number":5,"status":"failed","amount":100,"maxFee":5,"actualFee":null,"serviceFee":0,"failureReason":"no route"}`))
	}))
	defer server.Close()

	client := New("key_test", WithBaseURL(server.URL))
	payment, err := client.Payments().Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, payment.Status)
	assert.Equal(t, "no route", payment.FailureReason)
}

func TestPayments_WatchYieldsTerminalEvents(t *testing.T) {
	body := "event: settled\ndata: {\"number\":5,\"status\":\"settled\",\"amount\":100,\"maxFee\":5,\"actualFee\":1,\"serviceFee\":0,\"preimage\":\"aa\"}\n\n" +
		"event: failed\ndata: {\"number\":6,\"status\":\"failed\",\"amount\":200,\"maxFee\":5,\"actualFee\":null,\"serviceFee\":0}\n\n"
	server := httptest.NewServer(sseHandler(t, body))
	defer server.Close()

	client := New("key_test", WithBaseURL(server.URL))
	stream, err := client.Payments().Watch(context.Background(), 5, 0)
	require.NoError(t, err)

	events, err := drainPaymentEvents(stream)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, PaymentEventSettled, events[0].Event)
	assert.Equal(t, "aa", events[0].Payment.Preimage)
	assert.Equal(t, PaymentEventFailed, events[1].Event)
	assert.Equal(t, 6, events[1].Payment.Number)
}

func TestPayments_WatchSendsTimeoutParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/9/events", r.URL.Path)
		assert.Equal(t, "timeout=30", r.URL.RawQuery)
		w.Header().Set("Content-Type", "text/event-stream")
	}))
	defer server.Close()

	client := New("key_test", WithBaseURL(server.URL))
	stream, err := client.Payments().Watch(context.Background(), 9, 30*time.Second)
	require.NoError(t, err)
	_, err = drainPaymentEvents(stream)
	assert.NoError(t, err)
}

func TestPayments_WatchByHash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/"+testPaymentHash+"/events", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
	}))
	defer server.Close()

	client := New("key_test", WithBaseURL(server.URL))
	stream, err := client.Payments().WatchByHash(context.Background(), testPaymentHash, 0)
	require.NoError(t, err)
	_, err = drainPaymentEvents(stream)
	assert.NoError(t, err)
}

func TestPayments_WatchByHashRejectsMalformedHash(t *testing.T) {
	client := New("key_test", WithBaseURL("http://unused.invalid"))
	_, err := client.Payments().WatchByHash(context.Background(), "zz", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment hash")
}

func TestPayments_WatchHTTPErrorEndsBeforeParsing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		w.Write([]byte(`{"message":"wrong wallet"}`))
	}))
	defer server.Close()

	client := New("key_test", WithBaseURL(server.URL))
	stream, err := client.Payments().Watch(context.Background(), 1, 0)
	require.Nil(t, stream)
	assert.ErrorIs(t, err, ErrForbidden)
}
