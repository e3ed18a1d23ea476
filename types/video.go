package types

// Scene is one timed visual+narration beat of the output video.
// Scenes are created once by the timing allocator and are immutable afterwards.
type Scene struct {
	Index           int     `json:"index"`
	Text            string  `json:"text"`
	DurationSeconds float64 `json:"duration_seconds"`
	VisualTag       string  `json:"visual_tag"`
	ImagePrompt     string  `json:"image_prompt"`
}

// CaptionCue is one on-screen text fragment with its display window.
type CaptionCue struct {
	Content      string  `json:"content"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

// SoundCue is a non-narration audio event mixed in at an absolute timestamp.
type SoundCue struct {
	EffectID      string  `json:"effect_id"`
	TimingSeconds float64 `json:"timing_seconds"`
	Volume        float64 `json:"volume"`
}

// RenderJob aggregates everything the composer needs to produce one video file.
// A RenderJob is constructed fresh per video and never shared.
type RenderJob struct {
	NarrationPath  string       `json:"narration_path"`
	Scenes         []Scene      `json:"scenes"`
	SceneClips     []string     `json:"scene_clips"`
	Captions       []CaptionCue `json:"captions"`
	SoundCues      []SoundCue   `json:"sound_cues"`
	MixedAudioPath string       `json:"mixed_audio_path"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	FPS            int          `json:"fps"`
	VideoCodec     string       `json:"video_codec"`
	AudioCodec     string       `json:"audio_codec"`
	DisclaimerText string       `json:"disclaimer_text,omitempty"`
	OutputPath     string       `json:"output_path"`
}

// TotalVisualSeconds is the duration of the concatenated visual track.
// The output file's duration is governed by this, not by the audio track.
func (j RenderJob) TotalVisualSeconds() float64 {
	var sum float64
	for _, s := range j.Scenes {
		sum += s.DurationSeconds
	}
	return sum
}

// RenderResult reports the outcome of one render.
type RenderResult struct {
	OutputPath    string `json:"output_path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	SidecarPath   string `json:"sidecar_path,omitempty"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}
