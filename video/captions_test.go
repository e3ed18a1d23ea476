package video

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"econoshorts/config"
)

func testSubtitleConfig() config.SubtitleConfig {
	cfg := config.Default().Subtitles
	return cfg
}

func TestBuildCaptionCuesTiming(t *testing.T) {
	cfg := testSubtitleConfig()
	cues := BuildCaptionCues("금리가 또 올랐습니다 여러분", 10, cfg)
	if len(cues) != 4 {
		t.Fatalf("expected 4 cues, got %d", len(cues))
	}
	for i, c := range cues {
		if c.StartSeconds >= 10 {
			t.Errorf("cue %d starts at %.2f, beyond total", i, c.StartSeconds)
		}
		if c.EndSeconds > 10 {
			t.Errorf("cue %d ends at %.2f, beyond total", i, c.EndSeconds)
		}
		if c.EndSeconds <= c.StartSeconds {
			t.Errorf("cue %d has non-positive span", i)
		}
		if i > 0 && cues[i].StartSeconds < cues[i-1].StartSeconds {
			t.Errorf("cue %d starts before cue %d", i, i-1)
		}
	}
	// words_per_second 3 means each word advances by 1/3s
	step := cues[1].StartSeconds - cues[0].StartSeconds
	if step < 0.33 || step > 0.34 {
		t.Errorf("unexpected word step %.3f", step)
	}
}

func TestBuildCaptionCuesStopsAtTotal(t *testing.T) {
	cfg := testSubtitleConfig()
	words := strings.Repeat("단어 ", 100)
	cues := BuildCaptionCues(words, 5, cfg)
	if len(cues) == 0 {
		t.Fatal("expected cues")
	}
	last := cues[len(cues)-1]
	if last.StartSeconds >= 5 {
		t.Errorf("last cue starts at %.2f, should be below total", last.StartSeconds)
	}
	if last.EndSeconds > 5 {
		t.Errorf("last cue ends at %.2f, should be capped at total", last.EndSeconds)
	}
	// 100 words at 3 wps cannot all fit in 5 seconds
	if len(cues) >= 100 {
		t.Errorf("cue emission did not stop at total: %d cues", len(cues))
	}
}

func TestBuildCaptionCuesEmptyText(t *testing.T) {
	if cues := BuildCaptionCues("   ", 10, testSubtitleConfig()); len(cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(cues))
	}
}

func TestWriteASS(t *testing.T) {
	cfg := testSubtitleConfig()
	cues := BuildCaptionCues("비트코인 급등", 10, cfg)

	path := filepath.Join(t.TempDir(), "subs.ass")
	if err := WriteASS(cues, cfg, 1080, 1920, path); err != nil {
		t.Fatalf("WriteASS: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	content := string(data)
	for _, want := range []string{"[Script Info]", "[V4+ Styles]", "[Events]", "Dialogue:", "비트코인"} {
		if !strings.Contains(content, want) {
			t.Errorf("ASS output missing %q", want)
		}
	}
	if strings.Count(content, "Dialogue:") != len(cues) {
		t.Errorf("expected %d dialogue lines", len(cues))
	}
}

func TestFormatASSTimestamp(t *testing.T) {
	cases := map[float64]string{
		0:      "0:00:00.00",
		2.5:    "0:00:02.50",
		65.25:  "0:01:05.25",
		3661.5: "1:01:01.50",
	}
	for in, want := range cases {
		if got := formatASSTimestamp(in); got != want {
			t.Errorf("formatASSTimestamp(%.2f) = %q, want %q", in, got, want)
		}
	}
}

func TestHexToASSColor(t *testing.T) {
	if got := hexToASSColor("#FFFFFF"); got != "&H00FFFFFF" {
		t.Errorf("white: got %q", got)
	}
	if got := hexToASSColor("#FF0000"); got != "&H000000FF" {
		t.Errorf("red should flip to BGR: got %q", got)
	}
}
