package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"econoshorts/config"
	"econoshorts/market"
	"econoshorts/rssfeeds"
	"econoshorts/scriptgen"
	"econoshorts/tts"
	"econoshorts/types"
	"econoshorts/video"
	"econoshorts/visuals"

	"github.com/google/uuid"
)

// Archiver pushes a finished render to long-term storage.
type Archiver interface {
	ArchiveRender(ctx context.Context, runID, videoPath, sidecarPath string) error
}

// Uploader publishes a finished render.
type Uploader interface {
	Upload(ctx context.Context, videoPath, thumbnailPath string, script *types.Script) (videoURL string, err error)
}

// SeenStore remembers which topics already produced a video.
type SeenStore interface {
	MarkSeen(ctx context.Context, topic string) (first bool, err error)
}

// StageReport records one pipeline stage's outcome.
type StageReport struct {
	Stage   string        `json:"stage"`
	Status  string        `json:"status"` // ok | failed | skipped
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// JobResult is the full record of one pipeline run.
type JobResult struct {
	ID            string        `json:"id"`
	Topic         string        `json:"topic"`
	OutputPath    string        `json:"output_path,omitempty"`
	ThumbnailPath string        `json:"thumbnail_path,omitempty"`
	SidecarPath   string        `json:"sidecar_path,omitempty"`
	VideoURL      string        `json:"video_url,omitempty"`
	Stages        []StageReport `json:"stages"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
	Success       bool          `json:"success"`
	Error         string        `json:"error,omitempty"`
}

// ManualJob carries caller-provided inputs that bypass collection stages.
type ManualJob struct {
	Topic          string
	ScriptText     string
	AudioPath      string // pre-recorded narration; skips TTS
	TargetDuration float64
	OutputPath     string
}

// Runner wires the full production pipeline. Post-render stages (thumbnail,
// sidecar, archive, upload) can fail without invalidating the rendered file.
type Runner struct {
	cfg        *config.Config
	scripts    *scriptgen.Generator // nil without an API key
	narration  *tts.Chain
	images     visuals.Generator
	allocator  *video.Allocator
	visualizer *video.Visualizer
	mixer      *video.Mixer
	composer   *video.Composer
	thumbs     *video.ThumbnailGenerator
	archiver   Archiver  // optional
	uploader   Uploader  // optional
	seen       SeenStore // optional
}

// NewRunner assembles a Runner from config. The scripts generator is absent
// when COHERE_API_KEY is unset; auto jobs then fail at the script stage
// while manual jobs with a provided script still run.
func NewRunner(cfg *config.Config, archiver Archiver, uploader Uploader, seen SeenStore) (*Runner, error) {
	images := visuals.NewChain(cfg.Background.AIImage)
	visualizer, err := video.NewVisualizer(cfg, images, cfg.Background.Style)
	if err != nil {
		return nil, err
	}

	var scripts *scriptgen.Generator
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		scripts, err = scriptgen.New(key, cfg.Script)
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("[pipeline] COHERE_API_KEY not set, auto script generation disabled")
	}

	return &Runner{
		cfg:        cfg,
		scripts:    scripts,
		narration:  tts.NewChainFromConfig(cfg.TTS),
		images:     images,
		allocator:  video.NewAllocator(cfg.Scenes, visuals.DefaultTagTable()),
		visualizer: visualizer,
		mixer:      video.NewMixer(cfg.Audio),
		composer:   video.NewComposer(cfg),
		thumbs:     video.NewThumbnailGenerator(cfg, images),
		archiver:   archiver,
		uploader:   uploader,
		seen:       seen,
	}, nil
}

// RunAuto executes the autopilot pipeline: collect news and market data,
// generate a script, then render and publish.
func (r *Runner) RunAuto(ctx context.Context, targetDuration float64) *JobResult {
	res := newResult("")

	if targetDuration == 0 {
		targetDuration = r.cfg.Scheduler.TargetDuration
	}
	if err := video.ValidateTargetDuration(targetDuration); err != nil {
		res.fail("validate", err)
		return res.finish()
	}

	var (
		articles []*types.Article
		quotes   []types.Quote
		script   *types.Script
	)

	res.stage("collect", func() error {
		articles = rssfeeds.CollectEconomicNews(ctx, 10)
		if len(articles) == 0 {
			return fmt.Errorf("no economic articles collected")
		}
		topics := rssfeeds.TrendingTopics(articles)
		if len(topics) > 0 {
			res.Topic = topics[0]
		} else {
			res.Topic = articles[0].Title
		}
		rssfeeds.ExtractAllContent(topN(articles, 5))
		quotes = market.FetchDefaultQuotes(ctx)
		return nil
	})
	if res.failed() {
		return res.finish()
	}

	if r.seen != nil {
		first, err := r.seen.MarkSeen(ctx, res.Topic)
		if err != nil {
			log.Printf("[pipeline] seen store unavailable: %v", err)
		} else if !first {
			res.skip("dedup", "topic already covered: "+res.Topic)
			return res.finish()
		}
	}

	res.stage("script", func() error {
		if r.scripts == nil {
			return scriptgen.ErrNoAPIKey
		}
		var err error
		script, err = r.scripts.Generate(ctx, res.Topic, topN(articles, 5), quotes)
		return err
	})
	if res.failed() {
		return res.finish()
	}

	return r.produce(ctx, res, script, "", targetDuration)
}

// RunManual renders from caller-provided inputs.
func (r *Runner) RunManual(ctx context.Context, job ManualJob) *JobResult {
	res := newResult(job.Topic)

	target := job.TargetDuration
	if target == 0 {
		target = r.cfg.Scheduler.TargetDuration
	}
	if err := video.ValidateTargetDuration(target); err != nil {
		res.fail("validate", err)
		return res.finish()
	}

	script := &types.Script{Title: job.Topic, Script: job.ScriptText}
	if job.ScriptText == "" {
		res.fail("validate", fmt.Errorf("manual job needs a script"))
		return res.finish()
	}
	if job.OutputPath != "" {
		res.OutputPath = job.OutputPath
	}
	return r.produce(ctx, res, script, job.AudioPath, target)
}

// produce is the shared render path: narration, timing, visuals, captions,
// mix, composition, then the non-fatal post steps.
func (r *Runner) produce(ctx context.Context, res *JobResult, script *types.Script, audioPath string, targetDuration float64) *JobResult {
	runDir := filepath.Join(r.cfg.Paths.Temp, "job_"+res.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		res.fail("workspace", err)
		return res.finish()
	}

	if res.Topic == "" {
		res.Topic = script.Title
	}
	if res.OutputPath == "" {
		name := fmt.Sprintf("shorts_%s.mp4", time.Now().Format("20060102_150405"))
		res.OutputPath = filepath.Join(r.cfg.Paths.Output, name)
	}

	narrationPath := audioPath
	res.stage("narration", func() error {
		if narrationPath != "" {
			if _, err := os.Stat(narrationPath); err != nil {
				return fmt.Errorf("narration file: %w", err)
			}
			return nil
		}
		narrationPath = filepath.Join(runDir, "narration.mp3")
		_, err := r.narration.Synthesize(ctx, script.Script, narrationPath)
		return err
	})
	if res.failed() {
		return res.finish()
	}

	// Narration length wins over the requested target when probeable, so
	// visuals track the actual voice track.
	total := targetDuration
	if dur, err := video.ProbeDuration(narrationPath); err == nil && dur > 0 {
		total = dur
	} else if err != nil {
		log.Printf("[pipeline] probe failed, using target %.0fs: %v", targetDuration, err)
	}

	var scenes []types.Scene
	res.stage("allocate", func() error {
		var err error
		scenes, err = r.allocator.Allocate(script.Script, total)
		return err
	})
	if res.failed() {
		return res.finish()
	}

	var clips []string
	res.stage("visualize", func() error {
		for _, scene := range scenes {
			clip, err := r.visualizer.RenderScene(ctx, scene, runDir)
			if err != nil {
				return fmt.Errorf("scene %d: %w", scene.Index, err)
			}
			clips = append(clips, clip)
		}
		return nil
	})
	if res.failed() {
		return res.finish()
	}

	visualTotal := 0.0
	for _, s := range scenes {
		visualTotal += s.DurationSeconds
	}
	captions := video.BuildCaptionCues(script.Script, visualTotal, r.cfg.Subtitles)
	soundCues := video.PlanSoundCues(script.Script, visualTotal, r.cfg.Audio.SoundEffects)

	mixedPath := narrationPath
	res.stage("mix", func() error {
		var err error
		mixedPath, err = r.mixer.Mix(narrationPath, visualTotal, soundCues, filepath.Join(runDir, "mixed.m4a"))
		return err
	})
	if res.failed() {
		return res.finish()
	}

	res.stage("compose", func() error {
		width, height, err := r.cfg.Video.Size()
		if err != nil {
			return err
		}
		return r.composer.Render(types.RenderJob{
			NarrationPath:  narrationPath,
			Scenes:         scenes,
			SceneClips:     clips,
			Captions:       captions,
			SoundCues:      soundCues,
			MixedAudioPath: mixedPath,
			Width:          width,
			Height:         height,
			FPS:            r.cfg.Video.FPS,
			VideoCodec:     r.cfg.Video.Codec,
			AudioCodec:     r.cfg.Video.AudioCodec,
			DisclaimerText: r.cfg.Video.Disclaimer.Text,
			OutputPath:     res.OutputPath,
		}, runDir)
	})
	if res.failed() {
		return res.finish()
	}
	res.Success = true

	// Post-render stages: log-and-continue on failure.
	if r.cfg.Video.Thumbnail.Enabled {
		res.stagePost("thumbnail", func() error {
			path := thumbnailPathFor(res.OutputPath)
			if err := r.thumbs.Generate(ctx, res.Topic, path); err != nil {
				return err
			}
			res.ThumbnailPath = path
			return nil
		})
	}
	res.stagePost("sidecar", func() error {
		path := sidecarPathFor(res.OutputPath)
		if err := video.WriteSidecar(path, res.Topic, script.Script, scenes); err != nil {
			return err
		}
		res.SidecarPath = path
		return nil
	})
	if r.archiver != nil {
		res.stagePost("archive", func() error {
			return r.archiver.ArchiveRender(ctx, res.ID, res.OutputPath, res.SidecarPath)
		})
	}
	if r.uploader != nil && r.cfg.Upload.Enabled {
		res.stagePost("upload", func() error {
			url, err := r.uploader.Upload(ctx, res.OutputPath, res.ThumbnailPath, script)
			if err != nil {
				return err
			}
			res.VideoURL = url
			return nil
		})
	}

	return res.finish()
}

func newResult(topic string) *JobResult {
	return &JobResult{
		ID:        uuid.NewString()[:8],
		Topic:     topic,
		StartedAt: time.Now(),
	}
}

// stage runs fn as a fatal stage: a failure marks the whole job failed.
func (r *JobResult) stage(name string, fn func() error) {
	start := time.Now()
	err := fn()
	report := StageReport{Stage: name, Status: "ok", Elapsed: time.Since(start)}
	if err != nil {
		report.Status = "failed"
		report.Error = err.Error()
		r.Error = fmt.Sprintf("%s: %v", name, err)
		log.Printf("[pipeline] ❌ %s: %v", name, err)
	} else {
		log.Printf("[pipeline] %s done in %s", name, report.Elapsed.Round(time.Millisecond))
	}
	r.Stages = append(r.Stages, report)
}

// stagePost runs fn as a non-fatal stage after a successful render.
func (r *JobResult) stagePost(name string, fn func() error) {
	start := time.Now()
	err := fn()
	report := StageReport{Stage: name, Status: "ok", Elapsed: time.Since(start)}
	if err != nil {
		report.Status = "failed"
		report.Error = err.Error()
		log.Printf("[pipeline] %s failed (render kept): %v", name, err)
	}
	r.Stages = append(r.Stages, report)
}

func (r *JobResult) fail(stage string, err error) {
	r.Stages = append(r.Stages, StageReport{Stage: stage, Status: "failed", Error: err.Error()})
	r.Error = fmt.Sprintf("%s: %v", stage, err)
}

func (r *JobResult) skip(stage, reason string) {
	r.Stages = append(r.Stages, StageReport{Stage: stage, Status: "skipped", Error: reason})
	log.Printf("[pipeline] %s skipped: %s", stage, reason)
}

func (r *JobResult) failed() bool { return r.Error != "" }

func (r *JobResult) finish() *JobResult {
	r.FinishedAt = time.Now()
	return r
}

func topN(articles []*types.Article, n int) []*types.Article {
	if len(articles) <= n {
		return articles
	}
	return articles[:n]
}

func thumbnailPathFor(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return videoPath[:len(videoPath)-len(ext)] + "_thumb.jpg"
}

func sidecarPathFor(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return videoPath[:len(videoPath)-len(ext)] + ".json"
}
