package formpdf

import "strings"

// widthFunc measures the rendered width of a string in document units for
// the font currently in effect. Production code passes
// (*gofpdf.Fpdf).GetStringWidth; tests pass fakes.
type widthFunc func(s string) float64

// wrapText breaks text into lines that each fit maxWidth under the given
// width function. The input is first split on explicit line breaks (CRLF and
// CR normalized to LF), so blank lines survive as empty output lines. Within
// a paragraph, whitespace-delimited tokens are packed greedily; a single
// token wider than maxWidth is hard-split character by character, which
// guarantees progress even for pathological unbroken input. The result is
// never empty: empty input yields a single empty line so callers can always
// reserve one line of height.
//
// Callers must ensure maxWidth > 0; RenderConfig validation rejects
// geometry that would violate this before any wrapping happens.
func wrapText(text string, maxWidth float64, width widthFunc) []string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var lines []string
	for _, p := range strings.Split(s, "\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			lines = append(lines, "")
			continue
		}

		cur := ""
		for _, tok := range strings.Fields(p) {
			trial := tok
			if cur != "" {
				trial = cur + " " + tok
			}
			if width(trial) <= maxWidth {
				cur = trial
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
			}
			if width(tok) > maxWidth {
				cur = hardSplit(tok, maxWidth, width, &lines)
			} else {
				cur = tok
			}
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// hardSplit appends full chunks of an oversized token to lines and returns
// the trailing partial chunk. A chunk always takes at least one rune, even
// when that rune alone exceeds maxWidth.
func hardSplit(tok string, maxWidth float64, width widthFunc, lines *[]string) string {
	chunk := ""
	for _, r := range tok {
		trial := chunk + string(r)
		if width(trial) <= maxWidth {
			chunk = trial
			continue
		}
		if chunk != "" {
			*lines = append(*lines, chunk)
		}
		chunk = string(r)
	}
	return chunk
}
