package scriptgen

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"econoshorts/config"
	"econoshorts/types"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// ErrNoAPIKey means the generator was constructed without a Cohere key.
var ErrNoAPIKey = errors.New("scriptgen: COHERE_API_KEY not set")

const preambleTemplate = `당신은 '%s' 스타일의 경제 유튜브 쇼츠 작가입니다.
주어진 뉴스와 시장 데이터로 시청자를 붙잡는 짧은 내레이션 대본을 씁니다.
규칙:
- 첫 문장은 3초 안에 시선을 끄는 훅
- 구체적인 숫자를 반드시 포함 (퍼센트, 원화 금액)
- 문장은 짧게, 구어체로
- 전체 길이 %d~%d자
- 마지막에 구독과 좋아요 요청
반드시 아래 JSON 형식으로만 답하세요:
{"title": "...", "hook": "...", "script": "...", "key_points": ["..."], "hashtags": ["..."], "thumbnail_text": "..."}`

// Generator produces structured narration scripts with the Cohere chat API.
type Generator struct {
	client *cohereclient.Client
	cfg    config.ScriptConfig
}

// New builds a Generator. The HTTP client forces HTTP/1.1; the Cohere edge
// intermittently resets HTTP/2 streams on long generations.
func New(apiKey string, cfg config.ScriptConfig) (*Generator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	httpClient := &http.Client{
		Timeout: 120 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Generator{client: client, cfg: cfg}, nil
}

// Generate writes a narration script for topic, grounded on the supplied
// articles and market quotes.
func (g *Generator) Generate(ctx context.Context, topic string, articles []*types.Article, quotes []types.Quote) (*types.Script, error) {
	preamble := fmt.Sprintf(preambleTemplate, g.cfg.Style, g.cfg.MinLength, g.cfg.MaxLength)
	message := buildMessage(topic, articles, quotes)

	resp, err := g.client.Chat(ctx, &cohere.ChatRequest{
		Model:       &g.cfg.Model,
		Preamble:    &preamble,
		Message:     message,
		Temperature: &g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat: %w", err)
	}

	script, err := ParseScript(resp.Text)
	if err != nil {
		return nil, err
	}
	log.Printf("[script] ✅ generated %q (%d chars)", script.Title, len([]rune(script.Script)))
	return script, nil
}

// buildMessage assembles the user turn: topic, article digests, then quotes.
// Extracted full text beats the feed summary when the extractor got through.
func buildMessage(topic string, articles []*types.Article, quotes []types.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "주제: %s\n", topic)

	if len(articles) > 0 {
		b.WriteString("\n관련 뉴스:\n")
		for i, a := range articles {
			if i >= 5 {
				break
			}
			body := a.FullContentText
			if body == "" {
				body = a.Summary
			}
			if body == "" {
				body = a.Excerpt
			}
			fmt.Fprintf(&b, "- [%s] %s: %s\n", a.Source, a.Title, truncateRunes(body, 300))
		}
	}
	if len(quotes) > 0 {
		b.WriteString("\n시장 데이터:\n")
		for _, q := range quotes {
			fmt.Fprintf(&b, "- %s (%s): %.2f (%+.2f%%)\n", q.Name, q.Symbol, q.Price, q.ChangePercent)
		}
	}
	b.WriteString("\n위 내용으로 쇼츠 대본을 JSON으로 작성하세요.")
	return b.String()
}

// ParseScript extracts the JSON object from a model response, tolerating
// markdown code fences and leading prose.
func ParseScript(raw string) (*types.Script, error) {
	text := strings.TrimSpace(raw)
	if i := strings.Index(text, "```"); i >= 0 {
		text = text[i+3:]
		text = strings.TrimPrefix(text, "json")
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response: %q", truncateRunes(raw, 120))
	}

	var script types.Script
	if err := json.Unmarshal([]byte(text[start:end+1]), &script); err != nil {
		return nil, fmt.Errorf("parse script JSON: %w", err)
	}
	if script.Script == "" {
		return nil, errors.New("script field empty in response")
	}
	if script.Title == "" {
		script.Title = script.Hook
	}
	return &script, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
