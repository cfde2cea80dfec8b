package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/heomin86/obsidian-audio-generator/internal/core"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	requestTimeout = 60 * time.Second
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// postJSON sends a JSON payload and returns the raw response body. A
// non-success status is converted into a *core.ExternalServiceError carrying
// the status and body.
func postJSON(
	ctx context.Context,
	client *http.Client,
	backendID, url string,
	headers map[string]string,
	payload any,
) ([]byte, error) {
	requestBody, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", backendID, marshalErr)
	}

	httpReq, reqErr := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(requestBody),
	)
	if reqErr != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", backendID, reqErr)
	}

	httpReq.Header.Set(headerContentType, contentTypeJSON)

	for name, value := range headers {
		httpReq.Header.Set(name, value)
	}

	resp, doErr := client.Do(httpReq)
	if doErr != nil {
		return nil, fmt.Errorf("failed to reach %s backend: %w", backendID, doErr)
	}

	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", backendID, readErr)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &core.ExternalServiceError{
			Backend:    backendID,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

// getStatusOK reports whether a GET to url answers 200. Any failure,
// including a transport error, reports false.
func getStatusOK(
	ctx context.Context,
	client *http.Client,
	url string,
	headers map[string]string,
) bool {
	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if reqErr != nil {
		return false
	}

	for name, value := range headers {
		httpReq.Header.Set(name, value)
	}

	resp, doErr := client.Do(httpReq)
	if doErr != nil {
		return false
	}

	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}
