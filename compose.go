package formpdf

import (
	"bytes"
	"io"

	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
)

// Render composes doc into a finished PDF written to w.
//
// The composition is synchronous and CPU-bound: it either completes and
// writes the full document or fails before any output. Given identical
// (doc, cfg) inputs the emitted bytes are identical, which archival
// consumers depend on. A nil cfg uses NewRenderConfig defaults.
func Render(w io.Writer, doc *Document, cfg *RenderConfig) error {
	pdf, err := compose(doc, cfg)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return newRenderError("Render", err)
	}
	return nil
}

// RenderBytes is Render into a fresh byte buffer.
func RenderBytes(doc *Document, cfg *RenderConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// compose builds the document without finalizing output, so tests can
// inspect page counts before serialization.
func compose(doc *Document, cfg *RenderConfig) (*gofpdf.Fpdf, error) {
	if doc == nil {
		return nil, newRenderError("Render", ErrNilDocument)
	}
	if cfg == nil {
		cfg = NewRenderConfig()
	}

	pdf := gofpdf.New("P", "mm", cfg.PageSize, "")
	pageW, pageH := pdf.GetPageSize()
	if err := cfg.validate(pageW, pageH); err != nil {
		return nil, newRenderError("validate", err)
	}

	pdf.SetCreationDate(cfg.creationDate())
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}

	ps := &pageState{
		pdf:       pdf,
		cfg:       cfg,
		doc:       doc,
		tr:        pdf.UnicodeTranslatorFromDescriptor(""),
		pageW:     pageW,
		pageH:     pageH,
		valueColW: cfg.valueColWidth(pageW),
	}

	if len(cfg.Logo) > 0 {
		name, err := registerLogo(pdf, cfg.Logo)
		if err != nil {
			return nil, newRenderError("logo", err)
		}
		ps.logoName = name
	}
	if cfg.QRSize > 0 && doc.Identifier != "" {
		ps.qrName = barcode.RegisterQR(pdf, doc.Identifier, qr.M, qr.Unicode)
	}

	pdf.SetHeaderFunc(ps.header)
	pdf.SetFooterFunc(ps.footer)
	pdf.AddPage()

	for _, sec := range doc.Sections {
		ps.renderSection(sec)
	}

	if pdf.Err() {
		return nil, newRenderError("Render", pdf.Error())
	}
	return pdf, nil
}
