package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"soundhive/internal/shared"
)

const defaultDetectorURL string = "http://localhost:8081"

// Scores maps expression category names to confidence values.
type Scores map[string]float64

// Detector runs facial-expression detection on a single frame.
//
// An image with no detectable face yields [shared.ErrNoFace]; model or
// runtime failures yield [shared.ErrDetectionFailed].
type Detector interface {
	DetectExpressions(ctx context.Context, frame *Frame) (Scores, error)
}

// ProxyDetector calls the expression-detection proxy, a small HTTP service
// wrapping the detection model.
type ProxyDetector struct {
	baseURL    string
	httpClient *http.Client
}

// NewProxyDetector creates a detector client for the given proxy URL.
func NewProxyDetector(baseURL string) *ProxyDetector {
	if baseURL == "" {
		baseURL = defaultDetectorURL
	}
	return &ProxyDetector{baseURL: baseURL, httpClient: http.DefaultClient}
}

// DetectExpressions posts the frame to POST /api/detect and returns the
// expression scores for the single detected face.
func (d *ProxyDetector) DetectExpressions(ctx context.Context, frame *Frame) (Scores, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/api/detect", bytes.NewReader(frame.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDetectionFailed, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDetectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: detector returned status %d", shared.ErrDetectionFailed, resp.StatusCode)
	}

	var result struct {
		Expressions Scores `json:"expressions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDetectionFailed, err)
	}

	if len(result.Expressions) == 0 {
		return nil, shared.ErrNoFace
	}

	return result.Expressions, nil
}
