package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is loaded once at process start and passed to each component's
// constructor. It is treated as immutable after Load returns.
type Config struct {
	Video      VideoConfig      `yaml:"video"`
	Subtitles  SubtitleConfig   `yaml:"subtitles"`
	Background BackgroundConfig `yaml:"background"`
	Scenes     SceneConfig      `yaml:"scenes"`
	Audio      AudioConfig      `yaml:"audio"`
	Script     ScriptConfig     `yaml:"script"`
	TTS        TTSConfig        `yaml:"tts"`
	Upload     UploadConfig     `yaml:"upload"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Paths      PathsConfig      `yaml:"paths"`
}

type VideoConfig struct {
	Resolution string           `yaml:"resolution"` // WxH, e.g. 1080x1920
	FPS        int              `yaml:"fps"`
	Codec      string           `yaml:"codec"`
	AudioCodec string           `yaml:"audio_codec"`
	Preset     string           `yaml:"preset"`
	Disclaimer DisclaimerConfig `yaml:"disclaimer"`
	Thumbnail  ThumbnailConfig  `yaml:"thumbnail"`
}

type DisclaimerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Text     string `yaml:"text"`
	FontSize int    `yaml:"font_size"`
	Color    string `yaml:"color"`
}

type ThumbnailConfig struct {
	Enabled bool `yaml:"enabled"`
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
}

type SubtitleConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Font              string  `yaml:"font"`
	FontSize          int     `yaml:"font_size"`
	FontColor         string  `yaml:"font_color"`
	OutlineColor      string  `yaml:"outline_color"`
	OutlineWidth      float64 `yaml:"outline_width"`
	AnchorVertical    string  `yaml:"anchor_vertical"`   // top | center | bottom
	AnchorHorizontal  string  `yaml:"anchor_horizontal"` // left | center
	BoxEnabled        bool    `yaml:"box_enabled"`
	BoxOpacity        float64 `yaml:"box_opacity"`
	Animation         string  `yaml:"animation"` // none | fade | slide | bounce | typewriter
	WordsPerSecond    float64 `yaml:"words_per_second"`
	DisplayMultiplier float64 `yaml:"display_multiplier"`
}

type BackgroundConfig struct {
	Type           string        `yaml:"type"`  // gradient | generated
	Style          string        `yaml:"style"` // professional | cinematic | anime | 3d
	GradientColors []string      `yaml:"gradient_colors"`
	AIImage        AIImageConfig `yaml:"ai_image"`
}

type AIImageConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Provider   string  `yaml:"provider"` // openai | pollinations
	Model      string  `yaml:"model"`
	Size       string  `yaml:"size"`
	Quality    string  `yaml:"quality"`
	Style      string  `yaml:"style"` // vivid | natural
	ZoomFactor float64 `yaml:"zoom_factor"`
}

type SceneConfig struct {
	MinSceneDuration float64 `yaml:"min_scene_duration"`
	MaxSceneDuration float64 `yaml:"max_scene_duration"`
}

type AudioConfig struct {
	BackgroundMusic MusicConfig  `yaml:"background_music"`
	SoundEffects    EffectConfig `yaml:"sound_effects"`
}

type MusicConfig struct {
	Enabled bool    `yaml:"enabled"`
	Path    string  `yaml:"path"`
	Volume  float64 `yaml:"volume"`
	FadeIn  float64 `yaml:"fade_in"`
	FadeOut float64 `yaml:"fade_out"`
}

type EffectConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	Dir     string  `yaml:"dir"`
}

type ScriptConfig struct {
	Model       string  `yaml:"model"`
	Style       string  `yaml:"style"`
	MinLength   int     `yaml:"min_length"`
	MaxLength   int     `yaml:"max_length"`
	Temperature float64 `yaml:"temperature"`
}

type TTSConfig struct {
	Provider     string  `yaml:"provider"` // elevenlabs | google | basic
	Voice        string  `yaml:"voice"`
	LanguageCode string  `yaml:"language_code"`
	SpeakingRate float64 `yaml:"speaking_rate"`
}

type UploadConfig struct {
	Enabled            bool   `yaml:"enabled"`
	ServiceAccountFile string `yaml:"service_account_file"`
	CategoryID         string `yaml:"category_id"`
	PrivacyStatus      string `yaml:"privacy_status"`
}

type SchedulerConfig struct {
	Cron           string      `yaml:"cron"`
	TargetDuration float64     `yaml:"target_duration"`
	Retry          RetryConfig `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts  int     `yaml:"max_attempts"`
	DelaySeconds float64 `yaml:"delay_seconds"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
	Audio  string `yaml:"audio"`
}

// Load reads a YAML config file, applies defaults and returns the Config.
// Components receive the result by injection; nothing re-reads the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Config with every default applied, for runs without a
// config file and for tests.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Video.Resolution == "" {
		c.Video.Resolution = "1080x1920"
	}
	if c.Video.FPS == 0 {
		c.Video.FPS = 30
	}
	if c.Video.Codec == "" {
		c.Video.Codec = DefaultVideoCodec
	}
	if c.Video.AudioCodec == "" {
		c.Video.AudioCodec = DefaultAudioCodec
	}
	if c.Video.Preset == "" {
		c.Video.Preset = DefaultVideoPreset
	}
	if c.Video.Disclaimer.Text == "" {
		c.Video.Disclaimer.Text = DefaultDisclaimerText
	}
	if c.Video.Disclaimer.FontSize == 0 {
		c.Video.Disclaimer.FontSize = 24
	}
	if c.Video.Disclaimer.Color == "" {
		c.Video.Disclaimer.Color = "#cccccc"
	}
	if c.Video.Thumbnail.Width == 0 {
		c.Video.Thumbnail.Width = 1280
	}
	if c.Video.Thumbnail.Height == 0 {
		c.Video.Thumbnail.Height = 720
	}
	if c.Subtitles.Font == "" {
		c.Subtitles.Font = "NanumGothic"
	}
	if c.Subtitles.FontSize == 0 {
		c.Subtitles.FontSize = 60
	}
	if c.Subtitles.FontColor == "" {
		c.Subtitles.FontColor = "#ffffff"
	}
	if c.Subtitles.OutlineColor == "" {
		c.Subtitles.OutlineColor = "#000000"
	}
	if c.Subtitles.OutlineWidth == 0 {
		c.Subtitles.OutlineWidth = 3
	}
	if c.Subtitles.AnchorVertical == "" {
		c.Subtitles.AnchorVertical = "center"
	}
	if c.Subtitles.AnchorHorizontal == "" {
		c.Subtitles.AnchorHorizontal = "center"
	}
	if c.Subtitles.Animation == "" {
		c.Subtitles.Animation = "fade"
	}
	if c.Subtitles.WordsPerSecond == 0 {
		c.Subtitles.WordsPerSecond = 3
	}
	if c.Subtitles.DisplayMultiplier == 0 {
		c.Subtitles.DisplayMultiplier = 1.5
	}
	if c.Background.Type == "" {
		c.Background.Type = "gradient"
	}
	if c.Background.Style == "" {
		c.Background.Style = "professional"
	}
	if len(c.Background.GradientColors) == 0 {
		c.Background.GradientColors = []string{"#0f2027", "#203a43", "#2c5364"}
	}
	if c.Background.AIImage.Provider == "" {
		c.Background.AIImage.Provider = "openai"
	}
	if c.Background.AIImage.Model == "" {
		c.Background.AIImage.Model = "dall-e-3"
	}
	if c.Background.AIImage.Size == "" {
		c.Background.AIImage.Size = "1024x1792"
	}
	if c.Background.AIImage.Quality == "" {
		c.Background.AIImage.Quality = "hd"
	}
	if c.Background.AIImage.Style == "" {
		c.Background.AIImage.Style = "vivid"
	}
	if c.Background.AIImage.ZoomFactor == 0 {
		c.Background.AIImage.ZoomFactor = 1.2
	}
	if c.Scenes.MinSceneDuration == 0 {
		c.Scenes.MinSceneDuration = 3
	}
	if c.Scenes.MaxSceneDuration == 0 {
		c.Scenes.MaxSceneDuration = 10
	}
	if c.Audio.BackgroundMusic.Volume == 0 {
		c.Audio.BackgroundMusic.Volume = 0.15
	}
	if c.Audio.BackgroundMusic.FadeIn == 0 {
		c.Audio.BackgroundMusic.FadeIn = 1.0
	}
	if c.Audio.BackgroundMusic.FadeOut == 0 {
		c.Audio.BackgroundMusic.FadeOut = 2.0
	}
	if c.Audio.SoundEffects.Volume == 0 {
		c.Audio.SoundEffects.Volume = 0.4
	}
	if c.Audio.SoundEffects.Dir == "" {
		c.Audio.SoundEffects.Dir = "data/audio/sfx"
	}
	if c.Script.Model == "" {
		c.Script.Model = "command-r-plus-08-2024"
	}
	if c.Script.Style == "" {
		c.Script.Style = "경제사냥꾼"
	}
	if c.Script.MinLength == 0 {
		c.Script.MinLength = 150
	}
	if c.Script.MaxLength == 0 {
		c.Script.MaxLength = 200
	}
	if c.Script.Temperature == 0 {
		c.Script.Temperature = 0.7
	}
	if c.TTS.Provider == "" {
		c.TTS.Provider = "elevenlabs"
	}
	if c.TTS.LanguageCode == "" {
		c.TTS.LanguageCode = "ko-KR"
	}
	if c.TTS.SpeakingRate == 0 {
		c.TTS.SpeakingRate = 1.1
	}
	if c.Upload.CategoryID == "" {
		c.Upload.CategoryID = "25" // News & Politics
	}
	if c.Upload.PrivacyStatus == "" {
		c.Upload.PrivacyStatus = "public"
	}
	if c.Scheduler.Cron == "" {
		c.Scheduler.Cron = "0 9,18 * * *"
	}
	if c.Scheduler.TargetDuration == 0 {
		c.Scheduler.TargetDuration = 60
	}
	if c.Scheduler.Retry.MaxAttempts == 0 {
		c.Scheduler.Retry.MaxAttempts = 3
	}
	if c.Scheduler.Retry.DelaySeconds == 0 {
		c.Scheduler.Retry.DelaySeconds = 30
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/videos"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Audio == "" {
		c.Paths.Audio = "data/audio"
	}
}

func (c *Config) validate() error {
	if _, _, err := c.Video.Size(); err != nil {
		return err
	}
	if c.Scenes.MinSceneDuration > c.Scenes.MaxSceneDuration {
		return fmt.Errorf("scenes: min_scene_duration %.1f exceeds max_scene_duration %.1f",
			c.Scenes.MinSceneDuration, c.Scenes.MaxSceneDuration)
	}
	return nil
}

// Size parses the WxH resolution string.
func (v VideoConfig) Size() (width, height int, err error) {
	parts := strings.SplitN(v.Resolution, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("video: invalid resolution %q", v.Resolution)
	}
	width, err = strconv.Atoi(parts[0])
	if err == nil {
		height, err = strconv.Atoi(parts[1])
	}
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("video: invalid resolution %q", v.Resolution)
	}
	return width, height, nil
}
