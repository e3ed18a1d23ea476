package visuals

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMatchFirstRuleWins(t *testing.T) {
	rules := DefaultTagTable()
	// 비트코인 appears before 급등 in the table
	rule := Match(rules, "비트코인 급등 소식")
	if rule.Tag != "crypto" {
		t.Errorf("tag %q, want crypto", rule.Tag)
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	rule := Match(DefaultTagTable(), "Bitcoin hits record high")
	if rule.Tag != "crypto" {
		t.Errorf("tag %q, want crypto", rule.Tag)
	}
}

func TestMatchFallback(t *testing.T) {
	rule := Match(DefaultTagTable(), "오늘 날씨가 맑습니다")
	if rule.Tag != FallbackRule.Tag {
		t.Errorf("tag %q, want fallback", rule.Tag)
	}
	if rule.Prompt == "" {
		t.Error("fallback rule needs a prompt")
	}
}

func TestBuildPrompt(t *testing.T) {
	rule := TagRule{Tag: "rates", Prompt: "interest rate graph"}
	prompt := BuildPrompt(rule, "cinematic")
	for _, want := range []string{"interest rate graph", "cinematic lighting", "no text", "vertical composition"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}
	// unknown style falls back to professional
	prompt = BuildPrompt(rule, "vaporwave")
	if !strings.Contains(prompt, "corporate aesthetic") {
		t.Errorf("unknown style should use professional template: %s", prompt)
	}
}

type fakeGenerator struct {
	name  string
	err   error
	calls int
}

func (f *fakeGenerator) Name() string { return f.name }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, width, height int, outPath string) error {
	f.calls++
	return f.err
}

func TestChainFallbackOrder(t *testing.T) {
	first := &fakeGenerator{name: "first", err: errors.New("quota")}
	second := &fakeGenerator{name: "second"}
	chain := &Chain{providers: []Generator{first, second}}

	if err := chain.Generate(context.Background(), "prompt", 1080, 1920, "out.png"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls first=%d second=%d", first.calls, second.calls)
	}
}

func TestChainAllFail(t *testing.T) {
	chain := &Chain{providers: []Generator{
		&fakeGenerator{name: "a", err: errors.New("down")},
	}}
	if err := chain.Generate(context.Background(), "prompt", 1080, 1920, "out.png"); err == nil {
		t.Fatal("expected error when every provider fails")
	}
}

func TestChainEmpty(t *testing.T) {
	chain := &Chain{}
	if err := chain.Generate(context.Background(), "prompt", 1080, 1920, "out.png"); !errors.Is(err, ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}
