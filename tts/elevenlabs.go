package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const elevenLabsEndpoint = "https://api.elevenlabs.io/v1/text-to-speech/%s"

// defaultVoiceID is ElevenLabs' multilingual "Rachel" voice.
const defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// ElevenLabs synthesizes with the ElevenLabs multilingual model.
type ElevenLabs struct {
	apiKey  string
	voiceID string
}

func NewElevenLabs(apiKey, voiceID string) *ElevenLabs {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	return &ElevenLabs{apiKey: apiKey, voiceID: voiceID}
}

func (e *ElevenLabs) Name() string { return "elevenlabs" }

func (e *ElevenLabs) Synthesize(ctx context.Context, text, outPath string) error {
	body, err := json.Marshal(map[string]any{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
		"voice_settings": map[string]any{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf(elevenLabsEndpoint, e.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode, snippet)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write narration: %w", err)
	}
	return nil
}
