package video

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"econoshorts/config"
	"econoshorts/types"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Mixer layers narration with optional background music and sound effect
// cues. Narration is never time-shifted or trimmed; any missing optional
// asset is silently omitted, so narration-only output is always valid.
type Mixer struct {
	music   config.MusicConfig
	effects config.EffectConfig
}

func NewMixer(cfg config.AudioConfig) *Mixer {
	return &Mixer{music: cfg.BackgroundMusic, effects: cfg.SoundEffects}
}

// Mix produces one audio track of the narration's duration at outPath and
// returns its path. With zero optional layers the narration file itself is
// returned untouched.
func (m *Mixer) Mix(narrationPath string, totalDuration float64, cues []types.SoundCue, outPath string) (string, error) {
	musicPath := m.musicPath()
	effectInputs := m.resolveEffects(cues)

	if musicPath == "" && len(effectInputs) == 0 {
		return narrationPath, nil
	}

	streams := []*ffmpeg.Stream{ffmpeg.Input(narrationPath).Audio()}
	if musicPath != "" {
		streams = append(streams, m.musicStream(musicPath, totalDuration))
	}
	for _, ei := range effectInputs {
		streams = append(streams, effectStream(ei))
	}

	mixed := ffmpeg.Filter(streams, "amix", ffmpeg.Args{}, ffmpeg.KwArgs{
		"inputs":    len(streams),
		"duration":  "first", // narration governs the mixed length
		"normalize": 0,
	})

	err := mixed.Output(outPath, ffmpeg.KwArgs{
		"c:a": "aac",
		"b:a": config.AudioBitrate,
		"t":   fmt.Sprintf("%.3f", totalDuration),
	}).OverWriteOutput().Silent(true).Run()
	if err != nil {
		return "", fmt.Errorf("audio mix: %w", err)
	}
	return outPath, nil
}

// musicStream loops or trims the background track to the narration duration
// and applies volume scaling with fade in/out.
func (m *Mixer) musicStream(path string, totalDuration float64) *ffmpeg.Stream {
	fadeOutStart := totalDuration - m.music.FadeOut
	if fadeOutStart < 0 {
		fadeOutStart = 0
	}
	return ffmpeg.Input(path, ffmpeg.KwArgs{"stream_loop": -1}).Audio().
		Filter("atrim", ffmpeg.Args{}, ffmpeg.KwArgs{"duration": fmt.Sprintf("%.3f", totalDuration)}).
		Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", m.music.Volume)}).
		Filter("afade", ffmpeg.Args{}, ffmpeg.KwArgs{"t": "in", "st": 0, "d": fmt.Sprintf("%.2f", m.music.FadeIn)}).
		Filter("afade", ffmpeg.Args{}, ffmpeg.KwArgs{"t": "out", "st": fmt.Sprintf("%.3f", fadeOutStart), "d": fmt.Sprintf("%.2f", m.music.FadeOut)})
}

type effectInput struct {
	path string
	cue  types.SoundCue
}

func effectStream(ei effectInput) *ffmpeg.Stream {
	delayMs := int(ei.cue.TimingSeconds * 1000)
	return ffmpeg.Input(ei.path).Audio().
		Filter("adelay", ffmpeg.Args{fmt.Sprintf("%d|%d", delayMs, delayMs)}).
		Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", ei.cue.Volume)})
}

// musicPath returns the configured background track if enabled and present.
func (m *Mixer) musicPath() string {
	if !m.music.Enabled || m.music.Path == "" {
		return ""
	}
	if _, err := os.Stat(m.music.Path); err != nil {
		log.Printf("[audio] background music missing: %s, mixing without it", m.music.Path)
		return ""
	}
	return m.music.Path
}

// resolveEffects maps cues to files under the effects dir, dropping cues
// whose file does not exist.
func (m *Mixer) resolveEffects(cues []types.SoundCue) []effectInput {
	if !m.effects.Enabled {
		return nil
	}
	var inputs []effectInput
	for _, cue := range cues {
		path := filepath.Join(m.effects.Dir, cue.EffectID+".mp3")
		if _, err := os.Stat(path); err != nil {
			log.Printf("[audio] effect %q missing, skipping cue at %.1fs", cue.EffectID, cue.TimingSeconds)
			continue
		}
		inputs = append(inputs, effectInput{path: path, cue: cue})
	}
	return inputs
}

var emphasisPattern = regexp.MustCompile(`\d+(?:\.\d+)?\s*[%원만억조$]`)

// ctaWords are the subscribe/like phrasings that gate the call-to-action cue.
var ctaWords = []string{"구독", "좋아요", "subscribe", "like button"}

// PlanSoundCues places effects at fixed anchor points of the narration:
// intro at 0, hook at 2.5s, key-point and chart reveal at 40%, conclusion at
// 70%, and a call-to-action at 90% only when the script asks for it.
func PlanSoundCues(script string, totalDuration float64, cfg config.EffectConfig) []types.SoundCue {
	if !cfg.Enabled || totalDuration <= 0 {
		return nil
	}
	vol := cfg.Volume

	cues := []types.SoundCue{
		{EffectID: "whoosh", TimingSeconds: 0.0, Volume: vol},
	}
	if totalDuration > 2.5 {
		cues = append(cues, types.SoundCue{EffectID: "pop", TimingSeconds: 2.5, Volume: vol})
	}
	if emphasisPattern.MatchString(script) {
		cues = append(cues, types.SoundCue{EffectID: "ding", TimingSeconds: totalDuration * 0.4, Volume: vol})
	}
	cues = append(cues,
		types.SoundCue{EffectID: "reveal", TimingSeconds: totalDuration * 0.4, Volume: vol},
		types.SoundCue{EffectID: "success-chime", TimingSeconds: totalDuration * 0.7, Volume: vol},
	)

	lower := strings.ToLower(script)
	for _, w := range ctaWords {
		if strings.Contains(lower, w) {
			cues = append(cues, types.SoundCue{EffectID: "subscribe", TimingSeconds: totalDuration * 0.9, Volume: vol})
			break
		}
	}

	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].TimingSeconds < cues[j].TimingSeconds
	})
	return cues
}
