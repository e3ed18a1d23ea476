package video

import (
	"fmt"
	"os"
	"strings"

	"econoshorts/config"
	"econoshorts/types"
)

// BuildCaptionCues tokenizes text into word cues starting at t=0. Each cue
// displays for wordDuration*multiplier so consecutive cues overlap slightly
// for readability. No cue starts at or after totalDuration, and every cue
// ends by totalDuration.
func BuildCaptionCues(text string, totalDuration float64, cfg config.SubtitleConfig) []types.CaptionCue {
	words := strings.Fields(text)
	if len(words) == 0 || totalDuration <= 0 {
		return nil
	}

	wordDuration := 1.0 / cfg.WordsPerSecond
	display := wordDuration * cfg.DisplayMultiplier

	cues := make([]types.CaptionCue, 0, len(words))
	start := 0.0
	for _, word := range words {
		if start >= totalDuration {
			break
		}
		end := start + display
		if end > totalDuration {
			end = totalDuration
		}
		cues = append(cues, types.CaptionCue{
			Content:      word,
			StartSeconds: start,
			EndSeconds:   end,
		})
		start += wordDuration
	}
	return cues
}

// WriteASS renders caption cues to an ASS subtitle file carrying the
// configured style. The named animation only changes presentation overrides;
// cue timing is untouched.
func WriteASS(cues []types.CaptionCue, cfg config.SubtitleConfig, width, height int, outPath string) error {
	file, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "[Script Info]")
	fmt.Fprintln(file, "Title: econoshorts captions")
	fmt.Fprintln(file, "ScriptType: v4.00+")
	fmt.Fprintf(file, "PlayResX: %d\n", width)
	fmt.Fprintf(file, "PlayResY: %d\n", height)
	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[V4+ Styles]")
	fmt.Fprintln(file, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding")

	borderStyle := 1
	backColour := "&H00000000"
	if cfg.BoxEnabled {
		// BorderStyle 3 draws an opaque box; alpha is (1-opacity) in ASS.
		borderStyle = 3
		alpha := int((1 - cfg.BoxOpacity) * 255)
		backColour = fmt.Sprintf("&H%02X000000", alpha)
	}

	fmt.Fprintf(file, "Style: Default,%s,%d,%s,%s,%s,%s,-1,0,0,0,100,100,0,0,%d,%.0f,0,%d,40,40,%d,1\n",
		cfg.Font, cfg.FontSize,
		hexToASSColor(cfg.FontColor), hexToASSColor(cfg.FontColor),
		hexToASSColor(cfg.OutlineColor), backColour,
		borderStyle, cfg.OutlineWidth,
		assAlignment(cfg.AnchorVertical, cfg.AnchorHorizontal),
		verticalMargin(cfg.AnchorVertical, height),
	)

	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[Events]")
	fmt.Fprintln(file, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text")

	for _, cue := range cues {
		text := animationOverride(cfg.Animation, cue, width, height) + escapeASSText(cue.Content)
		fmt.Fprintf(file, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTimestamp(cue.StartSeconds),
			formatASSTimestamp(cue.EndSeconds),
			text)
	}
	return nil
}

// animationOverride returns the ASS override tags for the named animation.
func animationOverride(name string, cue types.CaptionCue, width, height int) string {
	durMs := int((cue.EndSeconds - cue.StartSeconds) * 1000)
	switch name {
	case "fade":
		return `{\fad(200,200)}`
	case "slide":
		// slide in from below the anchor position over the first 250ms
		x := width / 2
		y := height / 2
		return fmt.Sprintf(`{\move(%d,%d,%d,%d,0,250)}`, x, y+80, x, y)
	case "bounce":
		return `{\t(0,150,\fscx120\fscy120)\t(150,300,\fscx100\fscy100)}`
	case "typewriter":
		// spread karaoke timing across the cue; \k units are centiseconds
		perChar := durMs / 10
		n := len([]rune(cue.Content))
		if n > 0 {
			perChar = durMs / n / 10
		}
		if perChar < 1 {
			perChar = 1
		}
		var b strings.Builder
		b.WriteString("{")
		for range []rune(cue.Content) {
			fmt.Fprintf(&b, `\k%d`, perChar)
		}
		b.WriteString("}")
		return b.String()
	default: // none
		return ""
	}
}

// assAlignment maps anchors onto the ASS numpad alignment scheme.
func assAlignment(vertical, horizontal string) int {
	row := 1 // bottom
	switch vertical {
	case "center":
		row = 4
	case "top":
		row = 7
	}
	col := 1
	if horizontal == "center" {
		col = 2
	}
	return row + col - 1
}

func verticalMargin(vertical string, height int) int {
	if vertical == "bottom" {
		return height / 5
	}
	return 40
}

// hexToASSColor converts "#RRGGBB" to the ASS &HBBGGRR& form.
func hexToASSColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return "&H00FFFFFF"
	}
	rr, gg, bb := hex[0:2], hex[2:4], hex[4:6]
	return fmt.Sprintf("&H00%s%s%s", strings.ToUpper(bb), strings.ToUpper(gg), strings.ToUpper(rr))
}

// formatASSTimestamp converts seconds to the ASS h:mm:ss.cc form.
func formatASSTimestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int((seconds - float64(hours*3600)) / 60)
	secs := int(seconds) % 60
	centisecs := int((seconds - float64(int(seconds))) * 100)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centisecs)
}

func escapeASSText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return s
}
