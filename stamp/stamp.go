// Package stamp overlays archival markings on an already rendered PDF: a
// rotated translucent banner on every page and a machine-readable PDF417
// strip with the submission reference on the first page.
//
// It re-imports the source document page by page with the gofpdi contrib
// package and draws the overlay on top, so the source layout is untouched.
package stamp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// ErrEmptySource is returned when there is no PDF to stamp.
var ErrEmptySource = errors.New("stamp: empty source document")

// A4 portrait in points, used when a page carries no usable MediaBox.
const (
	fallbackPageW = 595.28
	fallbackPageH = 841.89
)

// Reference strip geometry, in points.
const (
	stripWidth   = 130.0
	stripHeight  = 36.0
	stripMargin  = 24.0
	pdf417Cols   = 4
	pdf417SecLvl = 2
)

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// Stamp defines the archival overlay.
type Stamp struct {
	Text      string   // banner text, e.g. "ARCHIVED COPY"
	Reference string   // submission reference encoded as PDF417; empty skips the strip
	FontSize  float64  // banner font size in points (default: 52)
	Color     RGBColor // banner color (default: light gray)
	Opacity   float64  // 0.0 to 1.0 (default: 0.25)
	Angle     float64  // banner rotation in degrees (default: 45)

	// CreationDate is embedded in the output metadata. Zero means a fixed
	// epoch, so stamping the same source twice yields identical bytes.
	CreationDate time.Time
}

// Apply stamps every page of src and writes the result to w.
func Apply(w io.Writer, src []byte, st Stamp) error {
	if len(src) == 0 {
		return ErrEmptySource
	}
	if st.FontSize == 0 {
		st.FontSize = 52
	}
	if st.Opacity == 0 {
		st.Opacity = 0.25
	}
	if st.Angle == 0 {
		st.Angle = 45
	}
	if st.Color == (RGBColor{}) {
		st.Color = RGBColor{190, 190, 190}
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	created := st.CreationDate
	if created.IsZero() {
		created = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	pdf.SetCreationDate(created)
	imp := gofpdi.NewImporter()

	rs := io.ReadSeeker(bytes.NewReader(src))

	// Importing the first page parses the whole document; the page-size map
	// then tells us how many pages there are.
	firstTpl := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	sizes := imp.GetPageSizes()
	pageCount := len(sizes)
	if pageCount == 0 {
		return fmt.Errorf("stamp: source has no pages")
	}

	var stripKey string
	if st.Reference != "" {
		stripKey = barcode.RegisterPdf417(pdf, st.Reference, pdf417Cols, pdf417SecLvl)
	}

	for i := 1; i <= pageCount; i++ {
		tplID := firstTpl
		if i > 1 {
			tplID = imp.ImportPageFromStream(pdf, &rs, i, "/MediaBox")
		}

		pw, ph := pageSize(sizes, i)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pw, Ht: ph})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, pw, ph)

		if st.Text != "" {
			drawBanner(pdf, st, pw, ph)
		}
		if stripKey != "" && i == 1 {
			barcode.Barcode(pdf, stripKey, stripMargin, ph-stripMargin-stripHeight, stripWidth, stripHeight, false)
		}
	}

	if pdf.Err() {
		return fmt.Errorf("stamp: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func pageSize(sizes map[int]map[string]map[string]float64, page int) (w, h float64) {
	if dims, ok := sizes[page]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			w = mb["w"]
			h = mb["h"]
		}
	}
	if w == 0 || h == 0 {
		w = fallbackPageW
		h = fallbackPageH
	}
	return w, h
}

// drawBanner renders the banner text rotated around the page center.
func drawBanner(pdf *gofpdf.Fpdf, st Stamp, pageW, pageH float64) {
	pdf.SetFont("Helvetica", "B", st.FontSize)
	pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	pdf.SetAlpha(st.Opacity, "Normal")

	textW := pdf.GetStringWidth(st.Text)
	cx := pageW / 2
	cy := pageH / 2

	pdf.TransformBegin()
	pdf.TransformRotate(st.Angle, cx, cy)
	pdf.Text(cx-textW/2, cy+st.FontSize/3, st.Text)
	pdf.TransformEnd()

	pdf.SetAlpha(1.0, "Normal")
}
