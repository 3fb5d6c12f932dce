package formpdf

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
)

// Header layout constants, in mm.
const (
	logoGap       = 6 // below the logo
	titleHeight   = 9 // title cell height and advance
	headerBoxGap  = 8 // below the metadata box
	metaInset     = 3 // metadata text inset from the box border
	metaLineStep  = 6 // vertical step between the two metadata lines
	metaFirstLine = 3 // first metadata line offset from the box top
)

// header draws the fixed title block at the top of the current page and
// leaves the cursor at the first content position. It runs once on page 1
// and again on every page break.
func (ps *pageState) header() {
	cfg := ps.cfg
	y := cfg.Margin

	if ps.qrName != "" {
		side := cfg.QRSize
		barcode.Barcode(ps.pdf, ps.qrName, ps.pageW-cfg.Margin-side, cfg.Margin, side, side, false)
	}

	if ps.logoName != "" {
		x := (ps.pageW - cfg.LogoWidth) / 2
		ps.pdf.ImageOptions(ps.logoName, x, y, cfg.LogoWidth, cfg.LogoHeight, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		y += cfg.LogoHeight + logoGap
	}

	ps.pdf.SetFont(cfg.FontFamily, "B", cfg.TitleSize)
	ps.pdf.SetXY(cfg.Margin, y)
	ps.pdf.CellFormat(ps.contentWidth(), titleHeight, ps.tr(ps.doc.Title), "", 0, "C", false, 0, "")
	y += titleHeight

	// Metadata box: fixed height regardless of field content. Empty fields
	// leave blank space rather than being wrapped.
	boxW := ps.contentWidth()
	ps.pdf.Rect(cfg.Margin, y, boxW, cfg.HeaderBoxHeight, "D")

	leftX := cfg.Margin + metaInset
	rightX := cfg.Margin + boxW/2 + metaInset
	colW := boxW/2 - 2*metaInset

	ps.pdf.SetFont(cfg.FontFamily, "", cfg.MetaSize)
	line := func(x, ly float64, s string) {
		ps.pdf.SetXY(x, ly)
		ps.pdf.CellFormat(colW, cfg.LineHeight, s, "", 0, "L", false, 0, "")
	}

	ly := y + metaFirstLine
	line(leftX, ly, ps.tr("Reference: "+ps.doc.Identifier))
	line(rightX, ly, ps.tr("Status: "+ps.doc.Status))

	ly += metaLineStep
	if ps.doc.Timestamp != "" {
		line(leftX, ly, ps.tr("Date: "+ps.doc.Timestamp))
	}
	line(rightX, ly, ps.tr("Consent: "+strings.ToUpper(ps.doc.Consent)))

	ps.pdf.SetY(y + cfg.HeaderBoxHeight + headerBoxGap)
}

// footer draws the document-version string left-aligned and the page number
// right-aligned at a constant offset from the page bottom. It runs
// immediately before every page break and once when the document closes.
func (ps *pageState) footer() {
	cfg := ps.cfg
	ps.pdf.SetFont(cfg.FontFamily, "", cfg.FooterSize)

	baseY := ps.pageH - cfg.FooterOffset
	ps.pdf.Text(cfg.Margin, baseY, ps.tr(cfg.FooterText))

	pageText := fmt.Sprintf("Page %d", ps.pdf.PageNo())
	ps.pdf.Text(ps.pageW-cfg.Margin-ps.pdf.GetStringWidth(pageText), baseY, pageText)
}
