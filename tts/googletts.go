package tts

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"econoshorts/config"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

// Google synthesizes via the Cloud Text-to-Speech REST API.
type Google struct {
	apiKey string
	cfg    config.TTSConfig
}

func NewGoogle(apiKey string, cfg config.TTSConfig) *Google {
	return &Google{apiKey: apiKey, cfg: cfg}
}

func (g *Google) Name() string { return "google" }

func (g *Google) Synthesize(ctx context.Context, text, outPath string) error {
	svc, err := texttospeech.NewService(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("tts service: %w", err)
	}

	voiceName := g.cfg.Voice
	if voiceName == "" {
		voiceName = g.cfg.LanguageCode + "-Neural2-A"
	}
	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: g.cfg.LanguageCode,
			Name:         voiceName,
		},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  g.cfg.SpeakingRate,
		},
	}

	resp, err := svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return fmt.Errorf("decode audio: %w", err)
	}
	return os.WriteFile(outPath, audio, 0o644)
}
