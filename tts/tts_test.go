package tts

import (
	"context"
	"errors"
	"testing"
)

type fakeSynthesizer struct {
	name  string
	err   error
	calls int
}

func (f *fakeSynthesizer) Name() string { return f.name }

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, outPath string) error {
	f.calls++
	return f.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeSynthesizer{name: "first"}
	second := &fakeSynthesizer{name: "second"}
	chain := NewChain(first, second)

	used, err := chain.Synthesize(context.Background(), "텍스트", "out.mp3")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if used != "first" {
		t.Errorf("used %q, want first", used)
	}
	if second.calls != 0 {
		t.Error("second provider called despite first succeeding")
	}
}

func TestChainFallsThrough(t *testing.T) {
	first := &fakeSynthesizer{name: "first", err: errors.New("quota")}
	second := &fakeSynthesizer{name: "second"}
	chain := NewChain(first, second)

	used, err := chain.Synthesize(context.Background(), "텍스트", "out.mp3")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if used != "second" {
		t.Errorf("used %q, want second", used)
	}
	if first.calls != 1 {
		t.Error("first provider not attempted")
	}
}

func TestChainAllFail(t *testing.T) {
	chain := NewChain(
		&fakeSynthesizer{name: "a", err: errors.New("down")},
		&fakeSynthesizer{name: "b", err: errors.New("down")},
	)
	if _, err := chain.Synthesize(context.Background(), "텍스트", "out.mp3"); !errors.Is(err, ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}

func TestChainHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &fakeSynthesizer{name: "a"}
	if _, err := NewChain(p).Synthesize(ctx, "텍스트", "out.mp3"); err == nil {
		t.Fatal("expected context error")
	}
	if p.calls != 0 {
		t.Error("provider called after cancellation")
	}
}

func TestChunkText(t *testing.T) {
	chunks := chunkText("하나 둘 셋 넷", 5)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	for _, c := range chunks {
		if n := len([]rune(c)); n > 5 {
			t.Errorf("chunk %q has %d runes", c, n)
		}
	}
	if chunks := chunkText("   ", 100); chunks != nil {
		t.Errorf("expected no chunks for blank text, got %v", chunks)
	}
}
