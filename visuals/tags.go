package visuals

import "strings"

// TagRule maps a script keyword to a visual tag and a base image prompt.
// Rules are matched in order; the first hit wins.
type TagRule struct {
	Keyword string
	Tag     string
	Prompt  string
}

// FallbackRule is used when no keyword matches a scene's text.
var FallbackRule = TagRule{
	Tag:    "generic",
	Prompt: "professional business background with financial elements",
}

// DefaultTagTable is the shared keyword-to-visual lookup injected into the
// scene visualizer. Korean keywords first, then English equivalents.
func DefaultTagTable() []TagRule {
	return []TagRule{
		{"비트코인", "crypto", "Bitcoin cryptocurrency chart"},
		{"bitcoin", "crypto", "Bitcoin cryptocurrency chart"},
		{"코인", "crypto", "cryptocurrency trading screen"},
		{"주식", "stocks", "stock market trading floor"},
		{"stock", "stocks", "stock market trading floor"},
		{"급등", "surge", "rising green chart arrow"},
		{"surge", "surge", "rising green chart arrow"},
		{"급락", "crash", "falling red chart"},
		{"하락", "crash", "falling red chart"},
		{"환율", "forex", "currency exchange rates"},
		{"금리", "rates", "interest rate graph"},
		{"시장", "market", "bustling stock exchange"},
		{"market", "market", "bustling stock exchange"},
		{"기업", "corporate", "modern office building"},
		{"투자", "investing", "investment portfolio dashboard"},
		{"경제", "economy", "modern financial district"},
		{"economy", "economy", "modern financial district"},
	}
}

// Match returns the first rule whose keyword appears in text, or FallbackRule.
func Match(rules []TagRule, text string) TagRule {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(lower, strings.ToLower(r.Keyword)) {
			return r
		}
	}
	return FallbackRule
}

// styleTemplates map a style preset name to prompt modifiers.
var styleTemplates = map[string]string{
	"professional": "clean corporate aesthetic, soft studio lighting, 4K, photorealistic",
	"cinematic":    "cinematic lighting, dramatic contrast, shallow depth of field, film grain",
	"anime":        "anime illustration style, vibrant colors, detailed line art",
	"3d":           "3D render, octane, glossy surfaces, volumetric lighting",
}

// BuildPrompt combines a tag rule's base prompt with the style template.
// Unknown styles fall back to professional.
func BuildPrompt(rule TagRule, style string) string {
	tmpl, ok := styleTemplates[style]
	if !ok {
		tmpl = styleTemplates["professional"]
	}
	return rule.Prompt + ", " + tmpl + ", no text, no watermark, vertical composition"
}
