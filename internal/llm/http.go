package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/huimingz/aicommit/internal/log"
)

// DefaultTimeout bounds every backend call
const DefaultTimeout = 60 * time.Second

// httpBackend posts JSON to a provider endpoint and returns the raw reply
type httpBackend struct {
	provider string
	baseURL  string
	client   *http.Client

	// beforeRequest is called before each request (for auth headers, etc.)
	beforeRequest func(req *http.Request)
}

func (b *httpBackend) endpoint(path string) string {
	return strings.TrimRight(b.baseURL, "/") + path
}

// post sends payload and returns the status code and non-empty body.
// Transport failures and empty bodies come back as ConnectionFailed.
func (b *httpBackend) post(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := b.endpoint(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, newError(KindConnectionFailed, b.provider, 0, "invalid request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if b.beforeRequest != nil {
		b.beforeRequest(req)
	}

	log.DebugRequest(req.Method, url, body)
	start := time.Now()

	resp, err := b.client.Do(req)
	if err != nil {
		return 0, nil, newError(KindConnectionFailed, b.provider, 0, "request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, newError(KindConnectionFailed, b.provider, resp.StatusCode, "failed to read response", err)
	}

	log.DebugDuration(b.provider+" request", time.Since(start))
	log.DebugResponse(resp.StatusCode, respBody)

	if len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil, connectionFailed(b.provider, resp.StatusCode, "empty response from %s", url)
	}
	return resp.StatusCode, respBody, nil
}

// isSuccess reports a 2xx status
func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// backendError decodes an error field sent either as a plain string
// or as an object with a message.
type backendError struct {
	Message string
}

// UnmarshalJSON implements json.Unmarshaler
func (e *backendError) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Message = s
		return nil
	}
	var obj struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Message = obj.Message
	if e.Message == "" && obj.Type != "" {
		e.Message = obj.Type
	}
	return nil
}

// present reports whether the backend actually sent an error
func (e *backendError) present() bool {
	return e != nil && strings.TrimSpace(e.Message) != ""
}

// decodeReply unmarshals body into reply, classifying failures
func (b *httpBackend) decodeReply(status int, body []byte, reply interface{}) error {
	if err := json.Unmarshal(body, reply); err != nil {
		if !isSuccess(status) {
			return newError(KindBackendError, b.provider, status, fmt.Sprintf("HTTP %d: %s", status, snippet(body)), nil)
		}
		return newError(KindBackendError, b.provider, status, "invalid JSON response", err)
	}
	return nil
}

// snippet shortens a body for error messages
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if r := []rune(s); len(r) > 200 {
		return string(r[:200]) + "..."
	}
	return s
}
