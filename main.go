package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"econoshorts/api"
	"econoshorts/config"
	"econoshorts/kafka"
	"econoshorts/pipeline"
	"econoshorts/scheduler"
	"econoshorts/storage"
	"econoshorts/upload"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	var (
		mode       = flag.String("mode", "manual", "manual | auto | serve | schedule")
		configPath = flag.String("config", "config.yaml", "path to YAML config")
		topic      = flag.String("topic", "", "video topic")
		scriptFile = flag.String("script-file", "", "narration script file (manual mode)")
		audioPath  = flag.String("audio", "", "pre-recorded narration file (skips TTS)")
		duration   = flag.Float64("duration", 0, "target video duration in seconds")
		output     = flag.String("output", "", "output video path")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, cleanup, err := buildRunner(ctx, cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer cleanup()

	switch *mode {
	case "manual":
		scriptText, err := readScript(*scriptFile)
		if err != nil {
			log.Fatalf("script: %v", err)
		}
		res := runner.RunManual(ctx, pipeline.ManualJob{
			Topic:          *topic,
			ScriptText:     scriptText,
			AudioPath:      *audioPath,
			TargetDuration: *duration,
			OutputPath:     *output,
		})
		printSummary(res)
		if !res.Success {
			os.Exit(1)
		}

	case "auto":
		res := runner.RunAuto(ctx, *duration)
		printSummary(res)
		if !res.Success && res.Error != "" {
			os.Exit(1)
		}

	case "serve":
		serve(ctx, cfg, runner)

	case "schedule":
		sched := scheduler.New(cfg.Scheduler, runner)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("scheduler: %v", err)
		}
		<-ctx.Done()
		sched.Stop()

	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[config] %s not found, using defaults", path)
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildRunner wires optional integrations (S3, Redis, YouTube) around the
// pipeline. Each is enabled only when its configuration is present.
func buildRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, func(), error) {
	cleanup := func() {}

	archive, err := storage.NewS3Archive(ctx, os.Getenv("AWS_REGION"))
	if err != nil {
		log.Printf("[init] S3 archive disabled: %v", err)
	}
	seen, err := storage.NewSeenTopicsFromEnv(ctx)
	if err != nil {
		log.Printf("[init] topic dedup disabled: %v", err)
	}
	if seen != nil {
		cleanup = func() { seen.Close() }
	}

	var uploader pipeline.Uploader
	if cfg.Upload.Enabled {
		yt, err := upload.NewYouTubeUploader(ctx, cfg.Upload)
		if err != nil {
			log.Printf("[init] YouTube upload disabled: %v", err)
		} else {
			uploader = yt
		}
	}

	// interface values must stay nil when the concrete value is nil
	var archiver pipeline.Archiver
	if archive != nil {
		archiver = archive
	}
	var seenStore pipeline.SeenStore
	if seen != nil {
		seenStore = seen
	}

	runner, err := pipeline.NewRunner(cfg, archiver, uploader, seenStore)
	if err != nil {
		return nil, nil, err
	}
	return runner, cleanup, nil
}

func serve(ctx context.Context, cfg *config.Config, runner *pipeline.Runner) {
	if consumer, err := kafka.NewJobConsumer(runner); err != nil {
		log.Printf("[init] kafka intake disabled: %v", err)
	} else if consumer != nil {
		if err := consumer.Start(ctx); err != nil {
			log.Printf("[init] kafka intake failed to start: %v", err)
		} else {
			defer consumer.Close()
		}
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	srv := &http.Server{Addr: addr, Handler: api.NewServer(cfg, runner).Router()}

	go func() {
		log.Printf("Starting API server on %s", addr)
		log.Println("API endpoints available:")
		log.Println("  GET  /api/health")
		log.Println("  POST /api/jobs")
		log.Println("  GET  /api/jobs")
		log.Println("  GET  /api/jobs/:id")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func readScript(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("manual mode needs -script-file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// printSummary renders the per-stage outcome table for CLI runs.
func printSummary(res *pipeline.JobResult) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("econoshorts run "+res.ID) + "\n\n")

	for _, stage := range res.Stages {
		mark := okStyle.Render("✔")
		detail := stage.Elapsed.Round(time.Millisecond).String()
		if stage.Status == "failed" {
			mark = failStyle.Render("✘")
			detail = stage.Error
		} else if stage.Status == "skipped" {
			mark = "–"
			detail = stage.Error
		}
		fmt.Fprintf(&b, "%s %-12s %s\n", mark, stage.Stage, detail)
	}

	b.WriteString("\n")
	if res.Success {
		b.WriteString(okStyle.Render("video: " + res.OutputPath))
		if res.VideoURL != "" {
			b.WriteString("\n" + okStyle.Render("url:   "+res.VideoURL))
		}
	} else if res.Error != "" {
		b.WriteString(failStyle.Render("failed: " + res.Error))
	} else {
		b.WriteString("skipped")
	}

	fmt.Println(boxStyle.Render(b.String()))
}
