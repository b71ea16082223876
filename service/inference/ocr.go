package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/bennypn/ai-kop-indosat/config"
	"github.com/bennypn/ai-kop-indosat/utils"
)

// HTTPTextExtractor calls the OCR serving endpoint on cropped regions.
type HTTPTextExtractor struct {
	endpoint string
	client   *http.Client
}

func NewHTTPTextExtractor() *HTTPTextExtractor {
	return &HTTPTextExtractor{
		endpoint: config.Cfg.Inference.OCREndpoint,
		client: &http.Client{
			Timeout: time.Duration(config.Cfg.Inference.TimeoutSeconds) * time.Second,
		},
	}
}

type extractResponse struct {
	Text string `json:"text"`
}

func (e *HTTPTextExtractor) Extract(ctx context.Context, img image.Image) (string, error) {
	payload, err := utils.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("failed to encode crop: %v", err)
	}

	body, err := postImage(ctx, e.client, e.endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("ocr request failed: %v", err)
	}

	var resp extractResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse ocr response: %v", err)
	}
	return resp.Text, nil
}
