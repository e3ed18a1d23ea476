package tts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"econoshorts/config"
)

// Synthesizer turns narration text into an audio file.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text, outPath string) error
}

// ErrNoProviders means every synthesizer in the chain failed.
var ErrNoProviders = errors.New("tts: no provider produced audio")

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Chain tries synthesizers in order and returns on the first success.
type Chain struct {
	providers []Synthesizer
}

func NewChain(providers ...Synthesizer) *Chain {
	return &Chain{providers: providers}
}

// NewChainFromConfig builds the provider chain for cfg. The configured
// provider goes first; the keyless basic provider always terminates the
// chain so narration generation cannot fail on missing credentials alone.
func NewChainFromConfig(cfg config.TTSConfig) *Chain {
	if cfg.Provider == "basic" {
		return NewChain(NewBasic(cfg.LanguageCode))
	}

	var providers []Synthesizer
	ordered := []string{cfg.Provider, "elevenlabs", "google"}
	seen := map[string]bool{}
	for _, name := range ordered {
		if seen[name] {
			continue
		}
		seen[name] = true
		switch name {
		case "elevenlabs":
			if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
				providers = append(providers, NewElevenLabs(key, cfg.Voice))
			} else {
				log.Println("[tts] ELEVENLABS_API_KEY not set, skipping elevenlabs")
			}
		case "google":
			if key := os.Getenv("GOOGLE_TTS_API_KEY"); key != "" {
				providers = append(providers, NewGoogle(key, cfg))
			} else {
				log.Println("[tts] GOOGLE_TTS_API_KEY not set, skipping google")
			}
		}
	}
	providers = append(providers, NewBasic(cfg.LanguageCode))
	return NewChain(providers...)
}

// Synthesize walks the chain until one provider writes outPath.
func (c *Chain) Synthesize(ctx context.Context, text, outPath string) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrNoProviders
	}
	var lastErr error
	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := p.Synthesize(ctx, text, outPath); err != nil {
			log.Printf("[tts] %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		log.Printf("[tts] ✅ narration via %s", p.Name())
		return p.Name(), nil
	}
	return "", fmt.Errorf("%w: last error: %v", ErrNoProviders, lastErr)
}
