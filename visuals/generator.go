package visuals

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"econoshorts/config"
)

// Generator produces an image for a prompt and writes it to outPath.
// Implementations are a small closed set of providers; the chain below
// gives them an explicit fallback order.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string, width, height int, outPath string) error
}

// ErrNoProviders is returned when a chain has nothing to try.
var ErrNoProviders = errors.New("no image providers configured")

// Chain tries each provider in order and returns the first success.
type Chain struct {
	providers []Generator
}

// NewChain builds a provider chain from configuration. The primary provider
// comes first; Pollinations is always appended because it needs no key.
func NewChain(cfg config.AIImageConfig) *Chain {
	var providers []Generator
	if cfg.Provider == "openai" {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			providers = append(providers, NewOpenAIGenerator(key, cfg))
		} else {
			log.Println("[visuals] OPENAI_API_KEY not set, skipping OpenAI provider")
		}
	}
	providers = append(providers, NewPollinationsGenerator())
	return &Chain{providers: providers}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Generate(ctx context.Context, prompt string, width, height int, outPath string) error {
	if len(c.providers) == 0 {
		return ErrNoProviders
	}
	var lastErr error
	for _, p := range c.providers {
		if err := p.Generate(ctx, prompt, width, height, outPath); err != nil {
			log.Printf("[visuals] provider %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("all image providers failed: %w", lastErr)
}

// downloadFile fetches url into path, validating the response looks like an
// actual image rather than an error page.
func downloadFile(ctx context.Context, client *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) < 100 {
		return fmt.Errorf("response too small (%d bytes)", len(data))
	}
	return os.WriteFile(path, data, 0o644)
}
