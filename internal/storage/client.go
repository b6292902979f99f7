// Package storage is the thin client for the content-addressed
// pinning service. The transport is an opaque key-addressed upload
// API returning a content address per upload; no retries, a failed
// upload fails the one-shot build.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	apiSecret  string
}

// APIError represents a structured pinning-service error response.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error,omitempty"`
	RequestID  string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("storage error: status=%d request_id=%s message=%s", e.StatusCode, e.RequestID, e.Message)
	}
	return fmt.Sprintf("storage error: status=%d request_id=%s", e.StatusCode, e.RequestID)
}

// NewClient returns a pinning client with a default timeout.
func NewClient(endpoint, apiKey, apiSecret string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinFile uploads data under the given name and returns its content
// address.
func (c *Client) PinFile(ctx context.Context, name string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.apiSecret)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		// Best effort: the service reports {"error": "..."} on failure.
		_ = json.Unmarshal(b, apiErr)
		if apiErr.Message == "" && len(b) > 0 {
			apiErr.Message = string(b)
		}
		return "", apiErr
	}

	var pr pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if pr.IpfsHash == "" {
		return "", fmt.Errorf("upload response missing content address (request_id=%s)", requestID)
	}
	return pr.IpfsHash, nil
}
