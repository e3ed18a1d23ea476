package visuals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"econoshorts/config"
)

const openAIImagesURL = "https://api.openai.com/v1/images/generations"

// OpenAIGenerator requests images from the OpenAI images API and downloads
// the returned URL.
type OpenAIGenerator struct {
	apiKey  string
	model   string
	size    string
	quality string
	style   string
	client  *http.Client
}

func NewOpenAIGenerator(apiKey string, cfg config.AIImageConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		apiKey:  apiKey,
		model:   cfg.Model,
		size:    cfg.Size,
		quality: cfg.Quality,
		style:   cfg.Style,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (g *OpenAIGenerator) Name() string { return "openai" }

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality,omitempty"`
	Style   string `json:"style,omitempty"`
	N       int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate requests one image. The API only supports fixed sizes, so the
// configured size is used and the caller rescales; width/height pick the
// orientation (portrait vs. landscape) when they disagree with the config.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, width, height int, outPath string) error {
	size := g.size
	if width > height {
		size = "1792x1024"
	}
	body, err := json.Marshal(imageRequest{
		Model:   g.model,
		Prompt:  prompt,
		Size:    size,
		Quality: g.quality,
		Style:   g.style,
		N:       1,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIImagesURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var parsed imageResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("decode image response: %w", err)
	}
	if parsed.Error != nil {
		return fmt.Errorf("openai: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return fmt.Errorf("openai: status %d, no image returned", resp.StatusCode)
	}

	return downloadFile(ctx, g.client, parsed.Data[0].URL, outPath)
}
