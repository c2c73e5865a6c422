package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DrishtiGPT-Learning-Backend/internal/logger"
	"DrishtiGPT-Learning-Backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, timeoutSec int) *ChatApiClient {
	return NewChatApiClient(url, "secret-key", "abc-123", timeoutSec, logger.Discard())
}

// TestRequestSendsEnvelope verifies headers and body of the outbound request.
func TestRequestSendsEnvelope(t *testing.T) {
	var got model.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"answer": "A short summary."}`))
	}))
	defer srv.Close()

	answer, err := newTestClient(srv.URL, 5).Request(context.Background(), "7781", model.RequestSummary, "")
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", answer)

	assert.Equal(t, ".", got.Query)
	assert.Equal(t, "7781", got.Inputs.VideoID)
	assert.Equal(t, model.RequestSummary, got.Inputs.RequestType)
	assert.Equal(t, "blocking", got.ResponseMode)
	assert.Equal(t, "", got.ConversationID)
	assert.Equal(t, "abc-123", got.User)
}

// TestRequestFallbackAnswer verifies a 200 without answer yields the fallback literal.
func TestRequestFallbackAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"conversation_id": "x"}`))
	}))
	defer srv.Close()

	answer, err := newTestClient(srv.URL, 5).Request(context.Background(), "7781", model.RequestQuiz, "quiz me")
	require.NoError(t, err)
	assert.Equal(t, FallbackAnswer, answer)
}

// TestRequestAPIErrorWithMessage verifies status and server message end up in the error.
func TestRequestAPIErrorWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"internal error"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 5)
	_, err := c.Request(context.Background(), "7781", model.RequestQuiz, "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "internal error", apiErr.Message)

	text := c.RequestText(context.Background(), "7781", model.RequestQuiz, "")
	assert.Contains(t, text, "500")
	assert.Contains(t, text, "internal error")
	assert.Equal(t, "Error: 500 - internal error", text)
}

// TestRequestAPIErrorRawBody verifies the raw body is used when no message field exists.
func TestRequestAPIErrorRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 5).Request(context.Background(), "7782", model.RequestSummary, "")
	require.Error(t, err)
	assert.Equal(t, "Error: 502 - upstream unavailable", err.Error())
}

// TestRequestTransportError verifies connection failures are returned, not raised.
func TestRequestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(url, 5)
	_, err := c.Request(context.Background(), "7781", model.RequestSummary, "")
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.False(t, tErr.Timeout())
	assert.Contains(t, c.RequestText(context.Background(), "7781", model.RequestSummary, ""), "Error: request failed")
}

// TestRequestTimeout verifies the client deadline turns into a TransportError.
func TestRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv.URL, 5).Request(ctx, "7781", model.RequestSummary, "")
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.True(t, tErr.Timeout() || errors.Is(err, context.DeadlineExceeded))
}

// TestRequestUndecodableBody verifies a garbled 200 body is a transport failure.
func TestRequestUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 5).Request(context.Background(), "7781", model.RequestSummary, "")
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
}

func TestRequestRejectsUnknownType(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1", 1).Request(context.Background(), "7781", model.RequestType("essay"), "")
	require.Error(t, err)
	var tErr *TransportError
	assert.False(t, errors.As(err, &tErr))
}
