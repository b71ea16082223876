package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/bennypn/ai-kop-indosat/config"
	"github.com/bennypn/ai-kop-indosat/utils"
)

const requestAttempts = 3

// HTTPDetector calls the YOLO model serving endpoint. The model itself is a
// black box; this client only speaks its JSON contract.
type HTTPDetector struct {
	endpoint string
	client   *http.Client
}

func NewHTTPDetector() *HTTPDetector {
	return &HTTPDetector{
		endpoint: config.Cfg.Inference.DetectorEndpoint,
		client: &http.Client{
			Timeout: time.Duration(config.Cfg.Inference.TimeoutSeconds) * time.Second,
		},
	}
}

type detectResponse struct {
	Regions []Region `json:"regions"`
}

func (d *HTTPDetector) Detect(ctx context.Context, img image.Image) ([]Region, error) {
	payload, err := utils.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %v", err)
	}

	body, err := postImage(ctx, d.client, d.endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("detector request failed: %v", err)
	}

	var resp detectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse detector response: %v", err)
	}
	return resp.Regions, nil
}

// postImage sends PNG bytes to an inference endpoint with retries.
func postImage(ctx context.Context, client *http.Client, endpoint string, payload []byte) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "image/png")

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %d", resp.StatusCode)
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(requestAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying inference request",
				"attempt", n+1,
				"endpoint", endpoint,
				"err", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}
