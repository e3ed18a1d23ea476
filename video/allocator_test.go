package video

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"econoshorts/config"
	"econoshorts/visuals"
)

func newTestAllocator() *Allocator {
	return NewAllocator(config.SceneConfig{MinSceneDuration: 3, MaxSceneDuration: 10}, visuals.DefaultTagTable())
}

func TestAllocateSceneCountAndBounds(t *testing.T) {
	a := newTestAllocator()
	script := "비트코인이 10% 급등했습니다. 현재 가격은 5천850만원입니다. 투자자들이 주목하고 있습니다."

	scenes, err := a.Allocate(script, 20)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(scenes) != 3 {
		t.Fatalf("expected 3 scenes, got %d", len(scenes))
	}
	for i, s := range scenes {
		if s.Index != i {
			t.Errorf("scene %d has index %d", i, s.Index)
		}
		if s.DurationSeconds < 3 || s.DurationSeconds > 10 {
			t.Errorf("scene %d duration %.2f outside [3,10]", i, s.DurationSeconds)
		}
	}
}

func TestAllocateDriftWhenAverageOutsideClampRange(t *testing.T) {
	a := newTestAllocator()
	// Two sentences at 1800s target: avg 900s clamps to 10s each, so the
	// total drifts far below the requested duration.
	scenes, err := a.Allocate("금리가 올랐습니다. 시장이 흔들립니다.", 1800)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	var sum float64
	for _, s := range scenes {
		sum += s.DurationSeconds
	}
	if math.Abs(sum-1800) < 1 {
		t.Fatalf("expected drift from target, got sum %.1f", sum)
	}
	if sum != 20 {
		t.Fatalf("expected clamped sum 20, got %.1f", sum)
	}
}

func TestAllocateIdempotent(t *testing.T) {
	a := newTestAllocator()
	script := "주식 시장이 급락했습니다. 환율이 치솟았습니다. 기업 실적이 발표됩니다."

	first, err := a.Allocate(script, 60)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	second, err := a.Allocate(script, 60)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same input produced different scene lists")
	}
}

func TestAllocateEmptyScript(t *testing.T) {
	a := newTestAllocator()
	for _, script := range []string{"", "...", "  . ! ? "} {
		if _, err := a.Allocate(script, 60); !errors.Is(err, ErrEmptyScript) {
			t.Errorf("script %q: expected ErrEmptyScript, got %v", script, err)
		}
	}
}

func TestAllocateVisualTags(t *testing.T) {
	a := newTestAllocator()
	scenes, err := a.Allocate("비트코인이 급등했습니다. 날씨가 좋습니다.", 30)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	// first matching keyword wins: 비트코인 appears before 급등 in the table
	if scenes[0].VisualTag != "crypto" {
		t.Errorf("expected crypto tag, got %q", scenes[0].VisualTag)
	}
	if scenes[1].VisualTag != "generic" {
		t.Errorf("expected generic fallback, got %q", scenes[1].VisualTag)
	}
}

func TestValidateTargetDuration(t *testing.T) {
	for _, d := range []float64{20, 60, 1800} {
		if err := ValidateTargetDuration(d); err != nil {
			t.Errorf("duration %.0f should be valid: %v", d, err)
		}
	}
	for _, d := range []float64{19, 1801, 0, -5} {
		if err := ValidateTargetDuration(d); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %.0f: expected ErrInvalidDuration, got %v", d, err)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("첫 문장입니다。 둘째! 셋째? 넷째.")
	if len(got) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(got), got)
	}
	// trailing fragment without terminal punctuation still counts
	got = SplitSentences("마침표 없음")
	if len(got) != 1 || got[0] != "마침표 없음" {
		t.Fatalf("unexpected split: %v", got)
	}
}
