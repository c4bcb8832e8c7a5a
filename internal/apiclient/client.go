// Package apiclient provides the single configured HTTP client the LifeOS
// pages and services use to talk to the REST backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/logger"
	"lifeos/internal/uuid"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 1 << 20

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request is sent without credentials.
type TokenSource interface {
	Token() string
}

// Client communicates with the LifeOS REST API. It never retries; every
// failure is logged once and returned to the caller as an *errors.AppError.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a client for the API at baseURL. tokens may be nil for
// unauthenticated use; a nil httpClient gets a default one without timeout.
func New(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: httpClient,
	}
}

// BaseURL returns the API base endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, "", out)
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := encode(in)
	if err != nil {
		return err
	}
	return c.Do(ctx, http.MethodPost, path, body, "application/json", out)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := encode(in)
	if err != nil {
		return err
	}
	return c.Do(ctx, http.MethodPut, path, body, "application/json", out)
}

// Delete issues a DELETE and discards the response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, "", nil)
}

// PostForm issues a form-encoded POST.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

// Do sends a request to path (relative to the base URL), attaching the
// bearer token when one is present, and decodes a 2xx JSON body into out
// when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	requestID := uuid.New()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Errorf("creating request: %w", err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		appErr := apperrors.Wrap(apperrors.ErrNetwork, err)
		c.logFailure(method, path, requestID, appErr)
		return appErr
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		code, message := parseErrorBody(raw)
		appErr := apperrors.FromStatus(resp.StatusCode, code, message)
		c.logFailure(method, path, requestID, appErr)
		return appErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		appErr := apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("decoding %s %s response: %w", method, path, err))
		c.logFailure(method, path, requestID, appErr)
		return appErr
	}
	return nil
}

func (c *Client) logFailure(method, path, requestID string, err *apperrors.AppError) {
	fields := []interface{}{
		"method", method,
		"path", path,
		"request_id", requestID,
		"code", err.Code,
		"message", err.Message,
	}
	if err.StatusCode != 0 {
		fields = append(fields, "status", err.StatusCode)
	}
	if err.Internal != nil {
		fields = append(fields, "internal", err.Internal.Error())
	}
	logger.Get().Errorw("api error", fields...)
}

func encode(in interface{}) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Errorf("encoding request body: %w", err))
	}
	return bytes.NewReader(b), nil
}

// parseErrorBody extracts a code and message from the error shapes the
// backend may return: {"error":{"code","message"}}, {"error":"..."},
// {"detail":"..."} or {"detail":[{"msg":"..."}]}.
func parseErrorBody(raw []byte) (code, message string) {
	var body struct {
		Error   json.RawMessage `json:"error"`
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", strings.TrimSpace(string(raw))
	}

	if len(body.Error) > 0 {
		var obj struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body.Error, &obj); err == nil {
			return obj.Code, obj.Message
		}
		var s string
		if err := json.Unmarshal(body.Error, &s); err == nil {
			return "", s
		}
	}

	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return "", s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return "", strings.Join(msgs, "; ")
		}
	}

	return "", body.Message
}
