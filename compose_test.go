package formpdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func testDoc(rows int) *Document {
	sec := Section{Title: "Form Responses"}
	for i := 0; i < rows; i++ {
		sec.Rows = append(sec.Rows, Row{
			Label: fmt.Sprintf("Question %d", i+1),
			Value: fmt.Sprintf("Answer %d", i+1),
		})
	}
	return &Document{
		Title:      "Customer Complaint Form — Submission",
		Identifier: "CC-2025-0042",
		Timestamp:  "2025-06-01 10:30",
		Status:     "Received",
		Consent:    "yes",
		Sections:   []Section{sec},
	}
}

func testConfig() *RenderConfig {
	return NewRenderConfig(WithFooterText("Test Co • Complaint Form v3"))
}

// testLogoPNG builds a small in-memory PNG so logo tests need no fixtures.
func testLogoPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 1, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
	return buf.Bytes()
}

func TestRenderSinglePage(t *testing.T) {
	pdf, err := compose(testDoc(3), testConfig())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if pdf.PageNo() != 1 {
		t.Errorf("page count = %d, want 1", pdf.PageNo())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not start with %PDF")
	}
	t.Logf("single-page document: %d bytes", buf.Len())
}

func TestRenderBreaksToSecondPage(t *testing.T) {
	// 26 short rows overflow one page's usable height; the straddling row
	// moves whole to page 2 and the header is repainted there.
	pdf, err := compose(testDoc(26), testConfig())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if pdf.PageNo() != 2 {
		t.Errorf("page count = %d, want 2", pdf.PageNo())
	}
}

func TestPageNumbersAdvanceByOne(t *testing.T) {
	for rows := 1; rows <= 60; rows += 12 {
		pdf, err := compose(testDoc(rows), testConfig())
		if err != nil {
			t.Fatalf("compose %d rows: %v", rows, err)
		}
		if pdf.PageNo() < 1 {
			t.Fatalf("%d rows: page count %d", rows, pdf.PageNo())
		}
		t.Logf("%d rows -> %d pages", rows, pdf.PageNo())
	}
}

func TestDeterministicOutput(t *testing.T) {
	cfg := NewRenderConfig(
		WithFooterText("Test Co • Complaint Form v3"),
		WithLogo(testLogoPNG(t)),
		WithReferenceQR(16),
	)
	doc := testDoc(8)

	a, err := RenderBytes(doc, cfg)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := RenderBytes(doc, cfg)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two compositions of the same input differ")
	}
}

func TestEmptyRowsAreFiltered(t *testing.T) {
	withNoise := testDoc(3)
	withNoise.Sections[0].Rows = append(withNoise.Sections[0].Rows,
		Row{Label: "Unanswered", Value: "   "},
		Row{Label: "", Value: "orphan value"},
	)

	clean, err := RenderBytes(testDoc(3), testConfig())
	if err != nil {
		t.Fatalf("render clean: %v", err)
	}
	noisy, err := RenderBytes(withNoise, testConfig())
	if err != nil {
		t.Fatalf("render noisy: %v", err)
	}
	if !bytes.Equal(clean, noisy) {
		t.Error("rows with empty label or value changed the output")
	}
}

func TestFilteredSectionProducesNothing(t *testing.T) {
	base := testDoc(4)

	padded := testDoc(4)
	padded.Sections = []Section{
		padded.Sections[0],
		{Title: "All Empty", Rows: []Row{
			{Label: "A", Value: ""},
			{Label: "B", Value: "  "},
		}},
	}

	a, err := RenderBytes(base, testConfig())
	if err != nil {
		t.Fatalf("render base: %v", err)
	}
	b, err := RenderBytes(padded, testConfig())
	if err != nil {
		t.Fatalf("render padded: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("a fully filtered section still affected the output")
	}
}

func TestUnbrokenValueHardSplits(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 9)

	cfg := testConfig()
	pageW, _ := pdf.GetPageSize()
	wrapWidth := cfg.valueColWidth(pageW) - valueWrapInset

	lines := wrapText(strings.Repeat("X", 600), wrapWidth, pdf.GetStringWidth)
	if len(lines) < 2 {
		t.Fatalf("expected hard split into multiple lines, got %d", len(lines))
	}
	for _, ln := range lines {
		if pdf.GetStringWidth(ln) > wrapWidth {
			t.Errorf("line of %d chars measures %.2f, over %.2f", len(ln), pdf.GetStringWidth(ln), wrapWidth)
		}
	}

	_, valueH, rowH := rowHeights(1, len(lines), false, cfg)
	if valueH != cfg.LineHeight*float64(len(lines)) {
		t.Errorf("value block %.2f, want %.2f for %d lines", valueH, cfg.LineHeight*float64(len(lines)), len(lines))
	}
	if rowH != valueH+cfg.RowPadding {
		t.Errorf("row height %.2f, want value block plus padding %.2f", rowH, valueH+cfg.RowPadding)
	}

	doc := testDoc(0)
	doc.Sections[0].Rows = []Row{{Label: "Serial", Value: strings.Repeat("X", 600)}}
	out, err := compose(doc, cfg)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if out.PageNo() != 1 {
		t.Errorf("hard-split row spilled to page %d", out.PageNo())
	}
}

func TestLongTextMinimumBoxHeight(t *testing.T) {
	cfg := testConfig()

	_, short, _ := rowHeights(1, 1, false, cfg)
	if short != cfg.LineHeight*cfg.MinValueLines {
		t.Errorf("short field box %.2f, want %.2f", short, cfg.LineHeight*cfg.MinValueLines)
	}

	_, long, _ := rowHeights(1, 1, true, cfg)
	if long != cfg.LineHeight*cfg.MinValueLinesLong {
		t.Errorf("long-text field box %.2f, want %.2f", long, cfg.LineHeight*cfg.MinValueLinesLong)
	}
	if long <= short {
		t.Error("long-text minimum is not larger than the short minimum")
	}
}

func TestGrowValueBoxChangesLayout(t *testing.T) {
	doc := testDoc(0)
	doc.Sections[0].Rows = []Row{{Label: "Details", Value: strings.Repeat("word ", 80)}}

	plain, err := RenderBytes(doc, testConfig())
	if err != nil {
		t.Fatalf("render plain: %v", err)
	}
	grown, err := RenderBytes(doc, NewRenderConfig(
		WithFooterText("Test Co • Complaint Form v3"),
		WithGrowValueBox(true),
	))
	if err != nil {
		t.Fatalf("render grown: %v", err)
	}
	if bytes.Equal(plain, grown) {
		t.Error("grow-box mode produced identical bytes to the default mode")
	}
}

func TestDegenerateGeometryRejected(t *testing.T) {
	bad := []*RenderConfig{
		NewRenderConfig(WithMargin(0)),
		NewRenderConfig(WithMargin(-5)),
		NewRenderConfig(WithLabelColumn(300, 4)),   // value column squeezed below zero
		NewRenderConfig(WithLabelColumn(166.5, 4)), // value wrap width squeezed below zero
		NewRenderConfig(WithLabelColumn(1, 4)),     // label wrap width squeezed below zero
	}
	for i, cfg := range bad {
		var buf bytes.Buffer
		err := Render(&buf, testDoc(1), cfg)
		if !errors.Is(err, ErrBadGeometry) {
			t.Errorf("config %d: err = %v, want ErrBadGeometry", i, err)
		}
		if buf.Len() != 0 {
			t.Errorf("config %d: wrote %d bytes despite invalid geometry", i, buf.Len())
		}
	}
}

func TestNilDocumentRejected(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, testConfig()); !errors.Is(err, ErrNilDocument) {
		t.Fatalf("err = %v, want ErrNilDocument", err)
	}
}

func TestBadLogoRejected(t *testing.T) {
	cfg := NewRenderConfig(WithLogo([]byte("not an image")))
	var buf bytes.Buffer
	if err := Render(&buf, testDoc(1), cfg); !errors.Is(err, ErrBadLogo) {
		t.Fatalf("err = %v, want ErrBadLogo", err)
	}
}

func TestLegacyRender(t *testing.T) {
	fields := map[string]string{
		"submission_id": "SUB-9",
		"timestamp":     "2025-06-01 10:30",
		"product_name":  "Nova X2",
		"lot_number":    "L-2231",
		"description":   strings.Repeat("legacy free text ", 40),
	}

	var a, b bytes.Buffer
	if err := RenderLegacy(&a, "Old Payload", fields, testConfig()); err != nil {
		t.Fatalf("legacy render: %v", err)
	}
	if err := RenderLegacy(&b, "Old Payload", fields, testConfig()); err != nil {
		t.Fatalf("legacy rerender: %v", err)
	}
	if !bytes.HasPrefix(a.Bytes(), []byte("%PDF")) {
		t.Error("legacy output does not start with %PDF")
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("legacy output is not deterministic")
	}
	t.Logf("legacy document: %d bytes", a.Len())
}
