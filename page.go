package formpdf

import "github.com/jung-kurt/gofpdf"

// pageState owns all mutable state of a single composition: the pdf handle,
// derived geometry, and the names of registered resources. One pageState is
// allocated per Render call and discarded with it, so independent
// compositions can run concurrently without locking.
type pageState struct {
	pdf *gofpdf.Fpdf
	cfg *RenderConfig
	doc *Document
	tr  func(string) string // UTF-8 to cp1252 for the core fonts

	pageW, pageH float64
	valueColW    float64

	logoName string // registered logo resource; "" when absent
	qrName   string // registered reference QR; "" when disabled
}

func (ps *pageState) contentWidth() float64 {
	return ps.pageW - 2*ps.cfg.Margin
}

// ensureSpace starts a new page when a block of the given height would cross
// the bottom margin; otherwise it is a no-op. This is the only mechanism
// that advances pages. Every drawing routine calls it sized to the exact
// block it is about to emit — skipping the call clips content against the
// bottom margin. AddPage paints the closing page's footer and the new
// page's header through the callbacks registered in compose, and the page
// number advances by exactly one.
func (ps *pageState) ensureSpace(height float64) {
	if ps.pdf.GetY()+height > ps.pageH-ps.cfg.Margin {
		ps.pdf.AddPage()
	}
}
