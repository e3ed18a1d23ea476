package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"econoshorts/config"
	"econoshorts/visuals"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ThumbnailGenerator produces a still image for a topic using the same
// image backend as the scene visualizer. It runs as an independent
// post-step: failure here never affects the main video job.
type ThumbnailGenerator struct {
	cfg       config.ThumbnailConfig
	generator visuals.Generator
	tempDir   string
}

func NewThumbnailGenerator(cfg *config.Config, generator visuals.Generator) *ThumbnailGenerator {
	return &ThumbnailGenerator{
		cfg:       cfg.Video.Thumbnail,
		generator: generator,
		tempDir:   cfg.Paths.Temp,
	}
}

// Generate writes a thumbnail at outPath sized to the configured resolution.
func (t *ThumbnailGenerator) Generate(ctx context.Context, topic, outPath string) error {
	if t.generator == nil {
		return fmt.Errorf("thumbnail: no image backend configured")
	}
	prompt := fmt.Sprintf(
		"YouTube thumbnail for video about %s. Eye-catching, professional, high contrast, bold text overlay. 16:9 aspect ratio.",
		topic,
	)

	raw := filepath.Join(t.tempDir, fmt.Sprintf("thumb_raw_%d.png", time.Now().UnixMilli()))
	if err := t.generator.Generate(ctx, prompt, 1792, 1024, raw); err != nil {
		return fmt.Errorf("thumbnail image: %w", err)
	}
	defer os.Remove(raw)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	err := ffmpeg.Input(raw).
		Output(outPath, ffmpeg.KwArgs{
			"vf":       fmt.Sprintf("scale=%d:%d", t.cfg.Width, t.cfg.Height),
			"frames:v": 1,
		}).
		OverWriteOutput().Silent(true).Run()
	if err != nil {
		return fmt.Errorf("thumbnail resize: %w", err)
	}
	return nil
}
