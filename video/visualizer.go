package video

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"econoshorts/config"
	"econoshorts/types"
	"econoshorts/visuals"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Visualizer turns a scene into a renderable clip of exactly the scene's
// duration at the target resolution. Generated-image mode can always
// degrade to the gradient fallback, which has no external dependency.
type Visualizer struct {
	cfg       config.BackgroundConfig
	videoCfg  config.VideoConfig
	generator visuals.Generator
	style     string
	tempDir   string
	width     int
	height    int
}

func NewVisualizer(cfg *config.Config, generator visuals.Generator, style string) (*Visualizer, error) {
	width, height, err := cfg.Video.Size()
	if err != nil {
		return nil, err
	}
	tempDir := filepath.Join(cfg.Paths.Temp, "ai_images")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image temp dir: %w", err)
	}
	return &Visualizer{
		cfg:       cfg.Background,
		videoCfg:  cfg.Video,
		generator: generator,
		style:     style,
		tempDir:   tempDir,
		width:     width,
		height:    height,
	}, nil
}

// RenderScene produces the clip for one scene in outDir. Errors on the image
// generation path never propagate; they downgrade to the gradient fallback.
func (v *Visualizer) RenderScene(ctx context.Context, scene types.Scene, outDir string) (string, error) {
	outPath := filepath.Join(outDir, fmt.Sprintf("scene_%03d.mp4", scene.Index))

	if v.cfg.Type == "generated" && v.cfg.AIImage.Enabled && v.generator != nil {
		imgPath, err := v.generateImage(ctx, scene)
		if err != nil {
			log.Printf("[visuals] scene %d image generation failed, using gradient fallback: %v", scene.Index, err)
		} else if err := v.kenBurnsClip(imgPath, scene.DurationSeconds, outPath); err != nil {
			log.Printf("[visuals] scene %d ken burns failed, using gradient fallback: %v", scene.Index, err)
		} else {
			return outPath, nil
		}
	}

	if err := v.gradientClip(scene.DurationSeconds, outPath); err != nil {
		return "", fmt.Errorf("gradient fallback: %w", err)
	}
	return outPath, nil
}

// generateImage requests an image for the scene and persists it to the temp
// directory keyed by scene index and timestamp, for reuse and debugging.
func (v *Visualizer) generateImage(ctx context.Context, scene types.Scene) (string, error) {
	prompt := visuals.BuildPrompt(visuals.TagRule{Tag: scene.VisualTag, Prompt: scene.ImagePrompt}, v.style)
	imgPath := filepath.Join(v.tempDir, fmt.Sprintf("scene_%d_%d.png", scene.Index, time.Now().UnixMilli()))
	if err := v.generator.Generate(ctx, prompt, v.width, v.height, imgPath); err != nil {
		return "", err
	}
	return imgPath, nil
}

// kenBurnsClip loops a still image and applies a continuous zoom from 1.0 to
// the configured factor. The output cap "t" pins the clip to the scene
// duration; the looped still is otherwise endless.
func (v *Visualizer) kenBurnsClip(imgPath string, duration float64, outPath string) error {
	return v.kenBurnsStream(imgPath, duration, outPath).
		OverWriteOutput().Silent(true).Run()
}

func (v *Visualizer) kenBurnsStream(imgPath string, duration float64, outPath string) *ffmpeg.Stream {
	fps := v.videoCfg.FPS
	totalFrames := int(duration * float64(fps))
	if totalFrames < 1 {
		totalFrames = 1
	}
	zoom := v.cfg.AIImage.ZoomFactor
	zoomStep := (zoom - 1.0) / float64(totalFrames)

	// Upscale before zoompan to avoid jitter from subpixel sampling.
	zoomFilter := fmt.Sprintf(
		"scale=%d:%d,zoompan=z='min(zoom+%.6f,%.3f)':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=%d:fps=%d:s=%dx%d",
		v.width*2, v.height*2, zoomStep, zoom, totalFrames, fps, v.width, v.height,
	)

	return ffmpeg.Input(imgPath, ffmpeg.KwArgs{"loop": 1}).
		Output(outPath, ffmpeg.KwArgs{
			"t":       fmt.Sprintf("%.3f", duration),
			"vf":      zoomFilter,
			"c:v":     v.videoCfg.Codec,
			"preset":  v.videoCfg.Preset,
			"pix_fmt": "yuv420p",
			"r":       fps,
			"an":      "",
		})
}

// gradientClip renders a static gradient fill of the exact duration. This is
// the guaranteed-available fallback.
func (v *Visualizer) gradientClip(duration float64, outPath string) error {
	return v.gradientStream(duration, outPath).
		OverWriteOutput().Silent(true).Run()
}

func (v *Visualizer) gradientStream(duration float64, outPath string) *ffmpeg.Stream {
	colors := v.cfg.GradientColors
	c0, c1 := colors[0], colors[len(colors)-1]
	src := fmt.Sprintf("gradients=s=%dx%d:c0=%s:c1=%s:d=%.3f",
		v.width, v.height, c0, c1, duration)

	return ffmpeg.Input(src, ffmpeg.KwArgs{"f": "lavfi"}).
		Output(outPath, ffmpeg.KwArgs{
			"t":       fmt.Sprintf("%.3f", duration),
			"c:v":     v.videoCfg.Codec,
			"preset":  v.videoCfg.Preset,
			"pix_fmt": "yuv420p",
			"r":       v.videoCfg.FPS,
			"an":      "",
		})
}
