// internal/recognition/vision.go
package recognition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"calee/internal/models"
)

const visionPrompt = `Analyze the food in this image and answer with JSON only.

Identify every food item and estimate for each:
1. name
2. confidence (a float between 0 and 1)
3. estimated calories (kcal)
4. macronutrients in grams: carbohydrates, protein, fat

Respond in exactly this format:
{
  "foods": [
    {
      "name": "steamed white rice",
      "confidence": 0.95,
      "estimated_calories": 200,
      "estimated_macros": {"carbohydrates": 45, "protein": 4, "fat": 0.5},
      "suggested_servings": 1.0
    }
  ]
}

Return only the JSON, no other text.`

// VisionClient calls an OpenAI-compatible chat completions endpoint with a
// vision model.
type VisionClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
	logger     *slog.Logger
}

type VisionOption func(*VisionClient)

func WithHTTPClient(c *http.Client) VisionOption {
	return func(v *VisionClient) { v.httpClient = c }
}

func WithLogger(l *slog.Logger) VisionOption {
	return func(v *VisionClient) { v.logger = l }
}

func NewVisionClient(apiURL, apiKey, model string, timeout time.Duration, opts ...VisionOption) *VisionClient {
	apiURL = strings.TrimRight(apiURL, "/")
	if !strings.HasSuffix(apiURL, "/chat/completions") {
		apiURL += "/chat/completions"
	}

	v := &VisionClient{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *VisionClient) Recognize(ctx context.Context, image []byte, contentType string) ([]models.RecognizedFood, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	completionRequest := map[string]any{
		"model": v.model,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
					{"type": "text", "text": visionPrompt},
				},
			},
		},
		"temperature": 0.1, // low temperature for consistent estimates
	}

	content, err := v.callAPI(ctx, completionRequest)
	if err != nil {
		return nil, err
	}

	foods := ParseFoods(content)
	v.logger.Debug("vision recognition finished", "model", v.model, "foods", len(foods))
	return foods, nil
}

// callAPI posts the request and returns choices[0].message.content.
func (v *VisionClient) callAPI(ctx context.Context, payload any) (string, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: HTTP request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: request failed with status %d: %s", ErrUpstream, resp.StatusCode, truncate(string(body), 200))
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("%w: unexpected response format", ErrUpstream)
	}
	return content.String(), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
