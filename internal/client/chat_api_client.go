package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"DrishtiGPT-Learning-Backend/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	// FallbackAnswer is returned when a 200 response carries no answer.
	FallbackAnswer = "No response available."
	DefaultQuery   = "."
	responseMode   = "blocking"
)

// TransportError means the chat API could not be reached or its reply could not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Error: request failed - %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was the client-side deadline.
func (e *TransportError) Timeout() bool {
	var netErr net.Error
	return errors.Is(e.Err, context.DeadlineExceeded) || (errors.As(e.Err, &netErr) && netErr.Timeout())
}

// APIError is a non-200 reply from the chat API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error: %d - %s", e.StatusCode, e.Message)
}

type ChatApiClient struct {
	BaseURL string
	User    string
	http    *resty.Client
	log     *logrus.Entry
}

func NewChatApiClient(baseURL, apiKey, user string, timeoutSec int, logger *logrus.Logger) *ChatApiClient {
	entry := logger.WithField("component", "chat-client")
	rc := resty.New().
		SetTimeout(time.Duration(timeoutSec)*time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(entry)

	return &ChatApiClient{
		BaseURL: baseURL,
		User:    user,
		http:    rc,
		log:     entry,
	}
}

// Request sends one blocking chat request and returns the answer text. Failures come
// back as *TransportError or *APIError; there is no retry.
func (c *ChatApiClient) Request(ctx context.Context, videoID string, requestType model.RequestType, query string) (string, error) {
	if !requestType.Valid() {
		return "", fmt.Errorf("unknown request type %q", requestType)
	}
	if strings.TrimSpace(query) == "" {
		query = DefaultQuery
	}
	payload := model.ChatRequest{
		Query: query,
		Inputs: model.ChatInputs{
			VideoID:     videoID,
			RequestType: requestType,
		},
		ResponseMode:   responseMode,
		ConversationID: "",
		User:           c.User,
	}

	log := c.log.WithFields(logrus.Fields{"video_id": videoID, "request_type": requestType})
	log.Debug("[ChatAPI] sending request")
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.BaseURL)
	if err != nil {
		tErr := &TransportError{Err: err}
		if tErr.Timeout() {
			log.Warnf("[ChatAPI] request timed out (client timeout %s)", c.http.GetClient().Timeout)
		} else {
			log.WithError(err).Warn("[ChatAPI] request failed")
		}
		return "", tErr
	}

	body := resp.Body()
	log = log.WithFields(logrus.Fields{"status": resp.StatusCode(), "elapsed": time.Since(start).String()})

	if resp.StatusCode() != http.StatusOK {
		message := strings.TrimSpace(string(body))
		var errResp model.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			message = errResp.Message
		}
		log.Warnf("[ChatAPI] non-200 response: %s", message)
		return "", &APIError{StatusCode: resp.StatusCode(), Message: message}
	}

	var chatResp model.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		log.WithError(err).Warnf("[ChatAPI] unreadable response body (%d bytes)", len(body))
		return "", &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	log.Debugf("[ChatAPI] received answer (%d bytes)", len(chatResp.Answer))

	if chatResp.Answer == "" {
		return FallbackAnswer, nil
	}
	return chatResp.Answer, nil
}

// RequestText never fails: it returns the answer, or the formatted error text that is
// shown to the learner in its place.
func (c *ChatApiClient) RequestText(ctx context.Context, videoID string, requestType model.RequestType, query string) string {
	answer, err := c.Request(ctx, videoID, requestType, query)
	if err != nil {
		return err.Error()
	}
	return answer
}
