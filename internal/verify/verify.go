// Package verify checks API settings by sending a minimal chat completion
// before an install starts.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/version"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}
var retryDelay = 250 * time.Millisecond

const verifyRetryCount = 1

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// RateLimitError indicates the API rejected the request with 429.
type RateLimitError struct {
	Status  string
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf(messages.VerifyRateLimitedFmt, e.Status)
	}
	return fmt.Sprintf(messages.VerifyRateLimitedFmt, e.Status) + ": " + e.Message
}

// IsRateLimitError reports whether err represents an API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []json.RawMessage `json:"choices"`
	Error   *apiError         `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
}

// Endpoint returns the chat completions URL for apiURL, which may be an API
// root or a full endpoint.
func Endpoint(apiURL string) string {
	return config.NormalizeAPIBase(apiURL) + "/chat/completions"
}

// Verify sends a one-message chat completion with the given settings. ok is
// true when the API answered with at least one choice; otherwise message
// describes the failure.
func Verify(ctx context.Context, model string, apiURL string, apiKey string) (ok bool, message string) {
	if err := Check(ctx, model, apiURL, apiKey); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// Check is Verify with an error result.
func Check(ctx context.Context, model string, apiURL string, apiKey string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(apiKey) == "" {
		return errors.New(messages.VerifyKeyRequired)
	}
	if strings.TrimSpace(model) == "" {
		return errors.New(messages.VerifyModelRequired)
	}
	body, err := json.Marshal(chatRequest{
		Model: strings.TrimSpace(model),
		Messages: []chatMessage{
			{Role: "system", Content: "You are a test assistant."},
			{Role: "user", Content: "Hello"},
		},
	})
	if err != nil {
		return fmt.Errorf(messages.VerifyEncodeRequestFmt, err)
	}
	endpoint := Endpoint(apiURL)

	for attempt := 0; attempt <= verifyRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf(messages.VerifyCreateRequestFmt, err)
		}
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(apiKey))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "ppt-install/"+version.Plugin)

		resp, err := httpClient.Do(req)
		if err != nil {
			if shouldRetry(err, 0, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return fmt.Errorf(messages.VerifyRequestFailedFmt, endpoint, err)
		}

		if resp.StatusCode != http.StatusOK {
			detail := readErrorMessage(resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests {
				return &RateLimitError{Status: resp.Status, Message: detail}
			}
			if shouldRetry(nil, resp.StatusCode, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			if detail != "" {
				return fmt.Errorf(messages.VerifyStatusDetailFmt, resp.Status, detail)
			}
			return fmt.Errorf(messages.VerifyStatusFmt, resp.Status)
		}

		var payload chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			_ = resp.Body.Close()
			return fmt.Errorf(messages.VerifyDecodeResponseFmt, err)
		}
		_ = resp.Body.Close()
		if payload.Error != nil && payload.Error.Message != "" {
			return errors.New(payload.Error.Message)
		}
		if len(payload.Choices) == 0 {
			return errors.New(messages.VerifyEmptyResponse)
		}
		return nil
	}

	return fmt.Errorf(messages.VerifyRequestFailedFmt, endpoint, errors.New("retry budget exhausted"))
}

// readErrorMessage extracts error.message from an API error body, or returns
// the trimmed body text.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var payload chatResponse
	if json.Unmarshal(data, &payload) == nil && payload.Error != nil {
		return strings.TrimSpace(payload.Error.Message)
	}
	return strings.TrimSpace(string(data))
}

func shouldRetry(err error, statusCode int, attempt int) bool {
	if attempt >= verifyRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}
