package video

import (
	"errors"
	"fmt"
	"strings"

	"econoshorts/config"
	"econoshorts/types"
	"econoshorts/visuals"
)

// ErrEmptyScript is returned when the script contains no sentences after
// splitting.
var ErrEmptyScript = errors.New("script contains no sentences")

// ErrInvalidDuration is returned when a target duration falls outside the
// accepted range. Callers validate before allocation; the allocator itself
// assumes a valid target.
var ErrInvalidDuration = errors.New("target duration out of range")

// ValidateTargetDuration rejects targets outside [20s, 30min] before any
// expensive work begins.
func ValidateTargetDuration(seconds float64) error {
	if seconds < config.MinTargetDuration || seconds > config.MaxTargetDuration {
		return fmt.Errorf("%w: %.1fs (accepted %.0f-%.0f)",
			ErrInvalidDuration, seconds, config.MinTargetDuration, config.MaxTargetDuration)
	}
	return nil
}

// Allocator converts a narration script and a target duration into an
// ordered scene list. Allocation is deterministic: the same (script, target)
// pair always yields the same scenes.
type Allocator struct {
	minScene float64
	maxScene float64
	tags     []visuals.TagRule
}

func NewAllocator(cfg config.SceneConfig, tags []visuals.TagRule) *Allocator {
	return &Allocator{
		minScene: cfg.MinSceneDuration,
		maxScene: cfg.MaxSceneDuration,
		tags:     tags,
	}
}

// Allocate splits the script into sentence scenes, each clamped into
// [minScene, maxScene]. Clamping does not renormalize: the sum of scene
// durations may drift from targetDuration whenever the per-sentence average
// falls outside the clamp range.
func (a *Allocator) Allocate(script string, targetDuration float64) ([]types.Scene, error) {
	sentences := SplitSentences(script)
	if len(sentences) == 0 {
		return nil, ErrEmptyScript
	}

	avg := targetDuration / float64(len(sentences))
	duration := clamp(avg, a.minScene, a.maxScene)

	scenes := make([]types.Scene, 0, len(sentences))
	for i, sentence := range sentences {
		rule := visuals.Match(a.tags, sentence)
		scenes = append(scenes, types.Scene{
			Index:           i,
			Text:            sentence,
			DurationSeconds: duration,
			VisualTag:       rule.Tag,
			ImagePrompt:     rule.Prompt,
		})
	}
	return scenes, nil
}

// sentence-terminal punctuation, Korean full-width forms included
const terminals = ".!?。！？"

// SplitSentences splits text on sentence-terminal punctuation and discards
// empty fragments.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(terminals, r) {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
