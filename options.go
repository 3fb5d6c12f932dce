package formpdf

import (
	"fmt"
	"time"
)

// Layout defaults, in millimeters on A4 portrait. They reproduce the
// house complaint-form layout; override individual values with options.
const (
	defaultMargin          = 18.0
	defaultLineHeight      = 5.5
	defaultLabelColWidth   = 70.0
	defaultColumnGap       = 4.0
	defaultRowPadding      = 2.0
	defaultRowGap          = 2.0
	defaultSectionGap      = 4.0
	defaultHeaderBoxHeight = 22.0
	defaultFooterOffset    = 12.0
	defaultLogoWidth       = 80.0
	defaultLogoHeight      = 24.0
)

// defaultCreationDate pins the PDF metadata clock so that composing the same
// document twice yields identical bytes. Callers that want the real
// submission time stamped into the metadata pass WithCreationDate.
var defaultCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// RenderConfig is the immutable style and geometry configuration for one
// composition. Build it with NewRenderConfig; the zero value is not usable.
// A RenderConfig may be shared by concurrent compositions as long as nothing
// mutates it (including the Logo slice).
type RenderConfig struct {
	PageSize   string  // gofpdf page size name, e.g. "A4"
	Margin     float64 // uniform page margin
	LineHeight float64 // text line advance

	LabelColWidth float64 // label column width
	ColumnGap     float64 // gap between label column and value box

	FontFamily  string
	TitleSize   float64
	SectionSize float64
	LabelSize   float64
	ValueSize   float64
	MetaSize    float64 // header metadata box text
	FooterSize  float64

	FooterText   string  // document-version string, left-aligned in the footer
	FooterOffset float64 // footer baseline distance from the page bottom

	HeaderBoxHeight float64 // fixed metadata box height, content-independent

	Logo       []byte  // optional raster logo (PNG or JPEG); nil skips the logo
	LogoWidth  float64 // drawn logo box width
	LogoHeight float64 // drawn logo box height

	QRSize float64 // side of the header reference QR; 0 disables it

	MinValueLines     float64 // minimum value box height for short fields, in lines
	MinValueLinesLong float64 // minimum value box height for long-text fields, in lines

	RowPadding float64 // vertical padding added to each row's content height
	RowGap     float64 // gap between consecutive rows
	SectionGap float64 // gap after a section's last row

	// GrowValueBox sizes every value box to hold all of its wrapped lines.
	// When false the box is sized from the minimum-height policy alone and
	// lines that land below the box bottom are silently dropped, matching
	// the historical output that archived documents were compared against.
	GrowValueBox bool

	CreationDate time.Time // PDF metadata creation date; zero means defaultCreationDate
}

// Option is a functional option for configuring a RenderConfig via
// NewRenderConfig.
type Option func(*RenderConfig)

// WithFooterText sets the document-version string drawn in every footer.
func WithFooterText(text string) Option {
	return func(c *RenderConfig) {
		c.FooterText = text
	}
}

// WithLogo sets the raster logo drawn centered at the top of every page.
// PNG and JPEG bytes are accepted; nil disables the logo.
func WithLogo(img []byte) Option {
	return func(c *RenderConfig) {
		c.Logo = img
	}
}

// WithCreationDate sets the PDF metadata creation date. Compositions with
// the same date and inputs are byte-identical.
func WithCreationDate(t time.Time) Option {
	return func(c *RenderConfig) {
		c.CreationDate = t
	}
}

// WithGrowValueBox makes value boxes grow to fit every wrapped line instead
// of truncating lines below the computed box height.
func WithGrowValueBox(grow bool) Option {
	return func(c *RenderConfig) {
		c.GrowValueBox = grow
	}
}

// WithReferenceQR enables a QR code of the document identifier in the top
// right corner of every header, sized to the given side length. A size of 0
// disables it.
func WithReferenceQR(size float64) Option {
	return func(c *RenderConfig) {
		c.QRSize = size
	}
}

// WithMargin sets the uniform page margin.
func WithMargin(margin float64) Option {
	return func(c *RenderConfig) {
		c.Margin = margin
	}
}

// WithLabelColumn sets the label column width and the gap separating it
// from the value box.
func WithLabelColumn(width, gap float64) Option {
	return func(c *RenderConfig) {
		c.LabelColWidth = width
		c.ColumnGap = gap
	}
}

// WithLongTextMinLines sets the minimum value box height, in lines, for
// rows marked LongText.
func WithLongTextMinLines(lines float64) Option {
	return func(c *RenderConfig) {
		c.MinValueLinesLong = lines
	}
}

// NewRenderConfig builds a RenderConfig with the house defaults applied and
// then the given options.
func NewRenderConfig(opts ...Option) *RenderConfig {
	cfg := &RenderConfig{
		PageSize:          "A4",
		Margin:            defaultMargin,
		LineHeight:        defaultLineHeight,
		LabelColWidth:     defaultLabelColWidth,
		ColumnGap:         defaultColumnGap,
		FontFamily:        "Helvetica",
		TitleSize:         15,
		SectionSize:       11,
		LabelSize:         9,
		ValueSize:         9,
		MetaSize:          10,
		FooterSize:        8,
		FooterText:        "Customer Complaint Form",
		FooterOffset:      defaultFooterOffset,
		HeaderBoxHeight:   defaultHeaderBoxHeight,
		LogoWidth:         defaultLogoWidth,
		LogoHeight:        defaultLogoHeight,
		MinValueLines:     1.5,
		MinValueLinesLong: 4,
		RowPadding:        defaultRowPadding,
		RowGap:            defaultRowGap,
		SectionGap:        defaultSectionGap,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// validate rejects geometry that would corrupt output or stall the wrapper.
// It runs before any drawing; a failure here is a configuration bug, not a
// data error.
func (c *RenderConfig) validate(pageW, pageH float64) error {
	if c.Margin <= 0 || c.LineHeight <= 0 {
		return fmt.Errorf("%w: margin %.2f, line height %.2f", ErrBadGeometry, c.Margin, c.LineHeight)
	}
	// Wrap widths are the column widths minus their text insets; both must
	// stay positive or the wrapper's precondition is violated.
	if c.LabelColWidth <= labelWrapInset || c.ColumnGap < 0 {
		return fmt.Errorf("%w: label column %.2f, gap %.2f", ErrBadGeometry, c.LabelColWidth, c.ColumnGap)
	}
	if w := c.valueColWidth(pageW); w <= valueWrapInset+1 {
		return fmt.Errorf("%w: value column width %.2f on page width %.2f", ErrBadGeometry, w, pageW)
	}
	if pageH-2*c.Margin < c.LineHeight {
		return fmt.Errorf("%w: usable page height %.2f below one line", ErrBadGeometry, pageH-2*c.Margin)
	}
	if c.MinValueLines <= 0 || c.MinValueLinesLong <= 0 {
		return fmt.Errorf("%w: minimum value lines %.2f/%.2f", ErrBadGeometry, c.MinValueLines, c.MinValueLinesLong)
	}
	return nil
}

// valueColWidth derives the value box width from the page width and the
// fixed left-hand geometry.
func (c *RenderConfig) valueColWidth(pageW float64) float64 {
	return pageW - 2*c.Margin - c.LabelColWidth - c.ColumnGap
}

// creationDate resolves the effective metadata date.
func (c *RenderConfig) creationDate() time.Time {
	if c.CreationDate.IsZero() {
		return defaultCreationDate
	}
	return c.CreationDate
}
