package formpdf

import (
	"io"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

// Legacy layout constants, in mm. The legacy path keeps the wider margins
// of the old fixed-schema report.
const (
	legacyMargin     = 25.0
	legacyLogoWidth  = 70.0
	legacyLogoHeight = 22.0
)

// RenderLegacy renders the deprecated fixed-schema layout used before
// submissions carried sections: a flat "key: value" dump under the title,
// with no header repetition and no per-page footer. It exists only so old
// payloads keep producing a document; submissions with sections always take
// the dynamic Render path.
//
// Fields other than submission_id and timestamp are emitted in sorted key
// order, so reruns over the same payload stay byte-identical.
func RenderLegacy(w io.Writer, title string, fields map[string]string, cfg *RenderConfig) error {
	if cfg == nil {
		cfg = NewRenderConfig()
	}

	pdf := gofpdf.New("P", "mm", cfg.PageSize, "")
	pageW, pageH := pdf.GetPageSize()
	if err := cfg.validate(pageW, pageH); err != nil {
		return newRenderError("validate", err)
	}

	pdf.SetCreationDate(cfg.creationDate())
	pdf.SetAutoPageBreak(false, 0)
	if title != "" {
		pdf.SetTitle(title, true)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	y := legacyMargin

	if len(cfg.Logo) > 0 {
		name, err := registerLogo(pdf, cfg.Logo)
		if err != nil {
			return newRenderError("logo", err)
		}
		pdf.ImageOptions(name, legacyMargin, y, legacyLogoWidth, legacyLogoHeight, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		y += legacyLogoHeight + 8
	}

	pdf.SetFont(cfg.FontFamily, "B", 14)
	pdf.Text(legacyMargin, y+5, tr(title))
	y += 10

	pdf.SetFont(cfg.FontFamily, "", 10)
	for _, k := range []string{"submission_id", "timestamp"} {
		pdf.Text(legacyMargin, y+4, tr(k+": "+fields[k]))
		y += 6
	}
	y += 4

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "submission_id" || k == "timestamp" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pdf.SetFont(cfg.FontFamily, "", 9)
	for _, k := range keys {
		for _, ln := range wrapText(tr(k+": "+fields[k]), pageW-2*legacyMargin, pdf.GetStringWidth) {
			if y > pageH-20 {
				pdf.AddPage()
				y = legacyMargin
			}
			pdf.Text(legacyMargin, y+3.5, ln)
			y += 5
		}
	}

	pdf.SetFont(cfg.FontFamily, "", cfg.FooterSize)
	pdf.Text(legacyMargin, pageH-cfg.FooterOffset, tr(cfg.FooterText))

	if pdf.Err() {
		return newRenderError("RenderLegacy", pdf.Error())
	}
	return pdf.Output(w)
}
