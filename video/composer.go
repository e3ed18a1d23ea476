package video

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"econoshorts/config"
	"econoshorts/types"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Composer layers the concatenated scene clips, captions, disclaimer and
// mixed audio into one encoded file. The output is written to a temp path
// and renamed into place on success, so a crashed render never leaves a
// corrupt file at the published path.
type Composer struct {
	subtitles  config.SubtitleConfig
	disclaimer config.DisclaimerConfig
	preset     string
}

func NewComposer(cfg *config.Config) *Composer {
	return &Composer{
		subtitles:  cfg.Subtitles,
		disclaimer: cfg.Video.Disclaimer,
		preset:     cfg.Video.Preset,
	}
}

// Render executes the full composition. Intermediates live in workDir and
// are removed on every exit path.
func (c *Composer) Render(job types.RenderJob, workDir string) (err error) {
	if len(job.SceneClips) == 0 {
		return fmt.Errorf("render: no scene clips")
	}
	if len(job.SceneClips) != len(job.Scenes) {
		return fmt.Errorf("render: %d clips for %d scenes", len(job.SceneClips), len(job.Scenes))
	}

	listFile := filepath.Join(workDir, "concat_list.txt")
	assFile := filepath.Join(workDir, "captions.ass")
	tmpOut := filepath.Join(workDir, "render_tmp.mp4")
	defer func() {
		os.Remove(listFile)
		os.Remove(assFile)
		if err != nil {
			os.Remove(tmpOut)
		}
	}()

	if err = writeConcatList(job.SceneClips, listFile); err != nil {
		return fmt.Errorf("concat list: %w", err)
	}

	video := ffmpeg.Input(listFile, ffmpeg.KwArgs{"f": "concat", "safe": 0})

	if c.subtitles.Enabled && len(job.Captions) > 0 {
		if err = WriteASS(job.Captions, c.subtitles, job.Width, job.Height, assFile); err != nil {
			return fmt.Errorf("captions: %w", err)
		}
		video = video.Filter("ass", ffmpeg.Args{escapeFilterPath(assFile)})
	}

	if c.disclaimer.Enabled && job.DisclaimerText != "" {
		video = video.Filter("drawtext", ffmpeg.Args{}, ffmpeg.KwArgs{
			"text":       escapeDrawtext(job.DisclaimerText),
			"fontcolor":  c.disclaimer.Color,
			"fontsize":   c.disclaimer.FontSize,
			"box":        1,
			"boxcolor":   "black@0.5",
			"boxborderw": 8,
			"x":          "(w-text_w)/2",
			"y":          fmt.Sprintf("h-%d", job.Height/12),
		})
	}

	audio := ffmpeg.Input(job.MixedAudioPath).Audio()

	// The visual track governs the output duration; audio is neither
	// stretched nor looped to fit.
	visualDur := job.TotalVisualSeconds()

	err = ffmpeg.Output([]*ffmpeg.Stream{video, audio}, tmpOut, ffmpeg.KwArgs{
		"c:v":      job.VideoCodec,
		"c:a":      job.AudioCodec,
		"b:a":      config.AudioBitrate,
		"r":        job.FPS,
		"s":        fmt.Sprintf("%dx%d", job.Width, job.Height),
		"t":        fmt.Sprintf("%.3f", visualDur),
		"pix_fmt":  "yuv420p",
		"preset":   c.preset,
		"movflags": "+faststart",
	}).OverWriteOutput().Silent(true).Run()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	if err = os.Rename(tmpOut, job.OutputPath); err != nil {
		return fmt.Errorf("publish output: %w", err)
	}
	log.Printf("[render] ✅ video written: %s (%.1fs)", job.OutputPath, visualDur)
	return nil
}

// writeConcatList emits the ffmpeg concat-demuxer list in index order.
func writeConcatList(clips []string, path string) error {
	lines := make([]string, 0, len(clips))
	for _, clip := range clips {
		abs, err := filepath.Abs(clip)
		if err != nil {
			abs = clip
		}
		lines = append(lines, fmt.Sprintf("file '%s'", filepath.ToSlash(abs)))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// escapeFilterPath prepares a path for use inside an ffmpeg filter argument.
func escapeFilterPath(p string) string {
	p = filepath.ToSlash(p)
	return strings.ReplaceAll(p, ":", "\\:")
}

func escapeDrawtext(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	s = strings.ReplaceAll(s, ":", "\\:")
	return s
}
