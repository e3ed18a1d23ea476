package video

import (
	"math"
	"testing"

	"econoshorts/config"
	"econoshorts/types"
)

func effectCfg(enabled bool) config.EffectConfig {
	return config.EffectConfig{Enabled: enabled, Dir: "assets/sfx", Volume: 0.5}
}

func findCue(cues []types.SoundCue, id string) (types.SoundCue, bool) {
	for _, c := range cues {
		if c.EffectID == id {
			return c, true
		}
	}
	return types.SoundCue{}, false
}

func TestPlanSoundCuesAnchors(t *testing.T) {
	script := "비트코인이 10% 급등했습니다. 구독과 좋아요 부탁드립니다."
	cues := PlanSoundCues(script, 60, effectCfg(true))

	want := map[string]float64{
		"whoosh":        0,
		"pop":           2.5,
		"ding":          24, // 40%, script carries a numeric emphasis
		"reveal":        24,
		"success-chime": 42,
		"subscribe":     54,
	}
	for id, at := range want {
		cue, ok := findCue(cues, id)
		if !ok {
			t.Errorf("missing cue %q", id)
			continue
		}
		if math.Abs(cue.TimingSeconds-at) > 1e-9 {
			t.Errorf("cue %q at %.1f, want %.1f", id, cue.TimingSeconds, at)
		}
		if cue.Volume != 0.5 {
			t.Errorf("cue %q volume %.2f, want 0.5", id, cue.Volume)
		}
	}
}

func TestPlanSoundCuesGating(t *testing.T) {
	// no numbers, no call to action
	cues := PlanSoundCues("시장이 조용합니다.", 60, effectCfg(true))
	if _, ok := findCue(cues, "ding"); ok {
		t.Error("ding planned without numeric emphasis")
	}
	if _, ok := findCue(cues, "subscribe"); ok {
		t.Error("subscribe planned without call to action")
	}

	// short narration drops the 2.5s hook
	cues = PlanSoundCues("짧음.", 2, effectCfg(true))
	if _, ok := findCue(cues, "pop"); ok {
		t.Error("pop planned past end of narration")
	}

	if cues := PlanSoundCues("아무거나.", 60, effectCfg(false)); cues != nil {
		t.Error("cues planned while effects disabled")
	}
}

func TestPlanSoundCuesSortedAndInBounds(t *testing.T) {
	cues := PlanSoundCues("코스피 2,500 돌파! 구독 눌러주세요.", 45, effectCfg(true))
	for i, c := range cues {
		if c.TimingSeconds < 0 || c.TimingSeconds >= 45 {
			t.Errorf("cue %q at %.1f outside narration", c.EffectID, c.TimingSeconds)
		}
		if i > 0 && cues[i].TimingSeconds < cues[i-1].TimingSeconds {
			t.Errorf("cues out of order at %d", i)
		}
	}
}

func TestMixWithoutOptionalLayers(t *testing.T) {
	m := NewMixer(config.AudioConfig{
		BackgroundMusic: config.MusicConfig{Enabled: false},
		SoundEffects:    config.EffectConfig{Enabled: false},
	})
	got, err := m.Mix("narration.mp3", 30, nil, "out.m4a")
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if got != "narration.mp3" {
		t.Fatalf("expected narration passthrough, got %q", got)
	}
}

func TestMixMissingAssetsFallThrough(t *testing.T) {
	// music enabled but pointing at a missing file, effects cue with no file
	// on disk: both layers drop out and narration passes through unmixed
	m := NewMixer(config.AudioConfig{
		BackgroundMusic: config.MusicConfig{Enabled: true, Path: "missing/bgm.mp3", Volume: 0.15},
		SoundEffects:    effectCfg(true),
	})
	cues := []types.SoundCue{{EffectID: "whoosh", TimingSeconds: 0, Volume: 0.5}}
	got, err := m.Mix("narration.mp3", 30, cues, "out.m4a")
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if got != "narration.mp3" {
		t.Fatalf("expected narration passthrough, got %q", got)
	}
}
