package formpdf

import "math"

// Row layout constants, in mm.
const (
	labelWrapInset      = 2   // label wrap width = label column width - inset
	valueWrapInset      = 4   // value wrap width = value column width - inset
	boxInset            = 0.7 // value box inset from the row's top and bottom edges
	valueTextPad        = 0.5 // required clearance between the last line and the box bottom
	sectionTitleReserve = 12  // space reserved before drawing a section title
	sectionTitleHeight  = 7   // section title cell height and advance
)

// rowHeights computes the block heights for a row from its wrapped line
// counts. The value block never goes below the minimum-height policy for
// the row's field category; with GrowValueBox it additionally gets enough
// headroom that no wrapped line can fall below the box bottom.
func rowHeights(labelLines, valueLines int, longText bool, cfg *RenderConfig) (labelH, valueH, rowH float64) {
	labelH = math.Max(cfg.LineHeight*float64(labelLines), cfg.LineHeight)

	minLines := cfg.MinValueLines
	if longText {
		minLines = cfg.MinValueLinesLong
	}
	valueH = math.Max(cfg.LineHeight*float64(valueLines), cfg.LineHeight*minLines)
	if cfg.GrowValueBox {
		grown := cfg.LineHeight*float64(valueLines) + 2*(boxInset+valueTextPad)
		if grown > valueH {
			valueH = grown
		}
	}

	rowH = math.Max(labelH, valueH) + cfg.RowPadding
	return labelH, valueH, rowH
}

// renderSection lays out one titled group of rows. Sections whose rows all
// filter out draw nothing — no title, no vertical advance.
func (ps *pageState) renderSection(sec Section) {
	rows := renderableRows(sec.Rows)
	if len(rows) == 0 {
		return
	}
	cfg := ps.cfg

	ps.ensureSpace(sectionTitleReserve)
	ps.pdf.SetFont(cfg.FontFamily, "B", cfg.SectionSize)
	y := ps.pdf.GetY()
	ps.pdf.SetXY(cfg.Margin, y)
	ps.pdf.CellFormat(ps.contentWidth(), sectionTitleHeight, ps.tr(sectionTitle(sec)), "", 0, "L", false, 0, "")
	ps.pdf.SetY(y + sectionTitleHeight)

	for _, row := range rows {
		ps.renderRow(row)
	}

	ps.pdf.SetY(ps.pdf.GetY() + cfg.SectionGap)
}

// renderRow draws one label/value pair: wrapped label lines on the left, a
// bordered box with the wrapped value lines on the right. The row is sized
// before drawing and reserved as one block, so it never splits across a
// page boundary — either it fits on the current page or the whole row moves
// to the next one.
func (ps *pageState) renderRow(row Row) {
	cfg := ps.cfg

	// Translate before wrapping so measurement sees the bytes that will be
	// drawn.
	ps.pdf.SetFont(cfg.FontFamily, "B", cfg.LabelSize)
	labelLines := wrapText(ps.tr(row.Label), cfg.LabelColWidth-labelWrapInset, ps.pdf.GetStringWidth)
	ps.pdf.SetFont(cfg.FontFamily, "", cfg.ValueSize)
	valueLines := wrapText(ps.tr(row.Value), ps.valueColW-valueWrapInset, ps.pdf.GetStringWidth)

	_, _, rowH := rowHeights(len(labelLines), len(valueLines), row.LongText, cfg)

	ps.ensureSpace(rowH + cfg.RowGap)
	top := ps.pdf.GetY()

	ps.pdf.SetFont(cfg.FontFamily, "B", cfg.LabelSize)
	ly := top + boxInset
	for _, ln := range labelLines {
		ps.pdf.SetXY(cfg.Margin, ly)
		ps.pdf.CellFormat(cfg.LabelColWidth-labelWrapInset, cfg.LineHeight, ln, "", 0, "L", false, 0, "")
		ly += cfg.LineHeight
	}

	boxX := cfg.Margin + cfg.LabelColWidth + cfg.ColumnGap
	boxY := top + boxInset
	boxH := rowH - 2*boxInset
	ps.pdf.Rect(boxX, boxY, ps.valueColW, boxH, "D")

	ps.pdf.SetFont(cfg.FontFamily, "", cfg.ValueSize)
	ty := boxY
	for _, ln := range valueLines {
		// Lines that would land below the box bottom are dropped silently.
		if !cfg.GrowValueBox && ty+cfg.LineHeight > boxY+boxH-valueTextPad {
			break
		}
		ps.pdf.SetXY(boxX+valueWrapInset/2, ty)
		ps.pdf.CellFormat(ps.valueColW-valueWrapInset, cfg.LineHeight, ln, "", 0, "L", false, 0, "")
		ty += cfg.LineHeight
	}

	ps.pdf.SetY(top + rowH + cfg.RowGap)
}
