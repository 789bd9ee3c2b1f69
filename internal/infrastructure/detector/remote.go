package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

const defaultTimeout = 60 * time.Second

// RemoteDetector calls an external inference endpoint over HTTP. The
// image goes out as a raw request body and the endpoint answers with
// the detection result JSON.
type RemoteDetector struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRemoteDetector creates a detector for the given endpoint. An empty
// apiKey leaves the auth header off.
func NewRemoteDetector(endpoint, apiKey string) *RemoteDetector {
	return &RemoteDetector{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// Detect posts the image to the endpoint and decodes the result.
func (d *RemoteDetector) Detect(ctx context.Context, image []byte) (*entity.DetectorResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("build detector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-image")
	if d.apiKey != "" {
		req.Header.Set("x-api-key", d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call detector endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("detector endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var result entity.DetectorResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode detector response: %w", err)
	}

	return &result, nil
}

var _ port.Detector = (*RemoteDetector)(nil)
