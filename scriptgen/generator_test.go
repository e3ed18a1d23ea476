package scriptgen

import (
	"errors"
	"strings"
	"testing"

	"econoshorts/config"
	"econoshorts/types"
)

func TestParseScriptPlainJSON(t *testing.T) {
	raw := `{"title":"금리 또 인상","hook":"또 올랐습니다","script":"한국은행이 금리를 올렸습니다.","key_points":["0.25%p 인상"],"hashtags":["#금리"],"thumbnail_text":"금리 인상"}`
	s, err := ParseScript(raw)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Title != "금리 또 인상" || len(s.KeyPoints) != 1 {
		t.Errorf("unexpected script: %+v", s)
	}
}

func TestParseScriptCodeFence(t *testing.T) {
	raw := "물론입니다! 대본입니다:\n```json\n{\"title\":\"제목\",\"script\":\"본문입니다.\"}\n```\n도움이 되셨길!"
	s, err := ParseScript(raw)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Script != "본문입니다." {
		t.Errorf("script %q", s.Script)
	}
}

func TestParseScriptTitleFallsBackToHook(t *testing.T) {
	s, err := ParseScript(`{"hook":"훅 문장","script":"본문."}`)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Title != "훅 문장" {
		t.Errorf("title %q, want hook fallback", s.Title)
	}
}

func TestParseScriptRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "no json here", `{"title":"제목만"}`} {
		if _, err := ParseScript(raw); err == nil {
			t.Errorf("ParseScript(%q) should fail", raw)
		}
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New("", config.ScriptConfig{}); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	articles := []*types.Article{{Source: "한국경제", Title: "환율 급등", Summary: "원달러 환율이 치솟았다"}}
	quotes := []types.Quote{{Symbol: "^KS11", Name: "KOSPI", Price: 2501.2, ChangePercent: -1.3}}

	msg := buildMessage("환율", articles, quotes)
	for _, want := range []string{"주제: 환율", "한국경제", "환율 급등", "KOSPI", "-1.30%"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildMessagePrefersExtractedText(t *testing.T) {
	articles := []*types.Article{{
		Source:          "매일경제",
		Title:           "코스피 반등",
		Summary:         "짧은 요약",
		FullContentText: "본문 전체 텍스트가 프롬프트에 들어간다",
	}}

	msg := buildMessage("코스피", articles, nil)
	if !strings.Contains(msg, "본문 전체 텍스트가 프롬프트에 들어간다") {
		t.Errorf("message should carry extracted text, got %q", msg)
	}
	if strings.Contains(msg, "짧은 요약") {
		t.Errorf("summary should be superseded by extracted text")
	}
}
