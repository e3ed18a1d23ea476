package video

import (
	"strings"
	"testing"

	"econoshorts/config"
)

func testVisualizer() *Visualizer {
	return &Visualizer{
		cfg: config.BackgroundConfig{
			Type:           "generated",
			GradientColors: []string{"#1a1a2e", "#16213e"},
			AIImage:        config.AIImageConfig{Enabled: true, ZoomFactor: 1.15},
		},
		videoCfg: config.VideoConfig{FPS: 30, Codec: "libx264", Preset: "medium"},
		width:    1080,
		height:   1920,
	}
}

func TestKenBurnsStreamCapsOutputDuration(t *testing.T) {
	v := testVisualizer()
	args := v.kenBurnsStream("img.png", 6.67, "out.mp4").GetArgs()

	inputIdx, capIdx := -1, -1
	for i, a := range args {
		switch {
		case a == "-i":
			inputIdx = i
		case a == "-t" && i+1 < len(args) && args[i+1] == "6.670":
			capIdx = i
		}
	}
	if inputIdx < 0 {
		t.Fatalf("no -i in args: %v", args)
	}
	if capIdx < 0 {
		t.Fatalf("no -t 6.670 in args: %v", args)
	}
	// A looped still is endless; the cap must sit on the output side or the
	// clip runs away to totalFrames per input frame.
	if capIdx < inputIdx {
		t.Errorf("-t applied to input, args %v", args)
	}

	joined := strings.Join(args, " ")
	for _, want := range []string{"-loop 1", "zoompan", "d=200", "fps=30", "s=1080x1920", "scale=2160:3840"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestGradientStreamDuration(t *testing.T) {
	v := testVisualizer()
	args := strings.Join(v.gradientStream(5.0, "out.mp4").GetArgs(), " ")

	for _, want := range []string{"-f lavfi", "gradients=s=1080x1920", "c0=#1a1a2e", "c1=#16213e", "-t 5.000"} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q: %s", want, args)
		}
	}
}
