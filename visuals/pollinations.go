package visuals

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"time"
)

// PollinationsGenerator fetches images from pollinations.ai. It needs no API
// key, which makes it the terminal provider of the generation chain (the
// gradient fallback in the visualizer covers the case where even this fails).
type PollinationsGenerator struct {
	client *http.Client
}

func NewPollinationsGenerator() *PollinationsGenerator {
	return &PollinationsGenerator{client: &http.Client{Timeout: 60 * time.Second}}
}

func (g *PollinationsGenerator) Name() string { return "pollinations" }

func (g *PollinationsGenerator) Generate(ctx context.Context, prompt string, width, height int, outPath string) error {
	if prompt == "" {
		return fmt.Errorf("empty prompt")
	}
	// Deterministic seed per prompt so reruns reuse the same image.
	h := fnv.New32a()
	h.Write([]byte(prompt))
	imageURL := fmt.Sprintf(
		"https://image.pollinations.ai/prompt/%s?width=%d&height=%d&nologo=true&model=flux&seed=%d",
		url.PathEscape(prompt), width, height, h.Sum32()%10000,
	)
	return downloadFile(ctx, g.client, imageURL, outPath)
}
