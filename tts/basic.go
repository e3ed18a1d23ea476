package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const basicEndpoint = "https://translate.google.com/translate_tts"

// basicChunkLimit is the longest text the translate endpoint accepts per call.
const basicChunkLimit = 200

// Basic is the keyless fallback synthesizer. It chunks the text and
// concatenates the returned MP3 segments; MPEG frames concatenate cleanly
// so no re-encode is needed.
type Basic struct {
	lang string
}

func NewBasic(languageCode string) *Basic {
	// the endpoint wants a bare language tag, not a BCP-47 locale
	lang, _, _ := strings.Cut(languageCode, "-")
	if lang == "" {
		lang = "ko"
	}
	return &Basic{lang: lang}
}

func (b *Basic) Name() string { return "basic" }

func (b *Basic) Synthesize(ctx context.Context, text, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, chunk := range chunkText(text, basicChunkLimit) {
		if err := b.fetchChunk(ctx, chunk, out); err != nil {
			return err
		}
	}
	return nil
}

func (b *Basic) fetchChunk(ctx context.Context, chunk string, out io.Writer) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", b.lang)
	q.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, basicEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("basic tts request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("basic tts status %d", resp.StatusCode)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write narration: %w", err)
	}
	return nil
}

// chunkText splits text into pieces of at most limit runes, preferring to
// break at whitespace.
func chunkText(text string, limit int) []string {
	var chunks []string
	var current strings.Builder
	count := 0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
		count = 0
	}

	for _, field := range strings.Fields(text) {
		n := len([]rune(field))
		if count > 0 && count+1+n > limit {
			flush()
		}
		if count > 0 {
			current.WriteByte(' ')
			count++
		}
		current.WriteString(field)
		count += n
	}
	flush()
	return chunks
}
