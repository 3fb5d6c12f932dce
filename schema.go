// Package formpdf renders structured form submissions into paginated,
// reproducible PDF documents.
//
// A Document is an ordered set of titled sections, each holding label/value
// rows. The renderer measures text with real font metrics, wraps it into the
// label and value columns, sizes each row from the wrapped content, and
// repaints the header and footer on every page boundary. Rendering is a pure
// function of (Document, RenderConfig): identical inputs produce
// byte-identical output, which archival consumers rely on.
//
// Example:
//
//	doc := &formpdf.Document{
//	    Title:      "Customer Complaint Form — Submission",
//	    Identifier: "CC-2025-0042",
//	    Sections: []formpdf.Section{{
//	        Title: "Form Responses",
//	        Rows:  []formpdf.Row{{Label: "Product Name", Value: "Nova X2"}},
//	    }},
//	}
//	cfg := formpdf.NewRenderConfig(formpdf.WithFooterText("ACME GmbH • Complaint Form"))
//	pdf, err := formpdf.RenderBytes(doc, cfg)
package formpdf

import "strings"

// Document describes one submission to render. It is immutable once handed
// to Render; the engine never writes to it.
type Document struct {
	Title      string    `json:"title,omitempty"`
	Identifier string    `json:"identifier,omitempty"`
	Timestamp  string    `json:"timestamp,omitempty"`
	Status     string    `json:"status,omitempty"`
	Consent    string    `json:"consent,omitempty"` // rendered upper-cased in the header box
	Sections   []Section `json:"sections"`
}

// Section is a titled, ordered group of label/value rows. A section whose
// rows all filter out contributes nothing to the output, not even its title.
type Section struct {
	Title string `json:"title,omitempty"`
	Rows  []Row  `json:"rows"`
}

// Row is one label/value pair, rendered as a left-aligned label next to a
// bordered value box. LongText marks free-form fields that get a larger
// minimum box height regardless of content length.
type Row struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	LongText bool   `json:"longText,omitempty"`
}

// renderable reports whether the row survives filtering: both label and
// value must be non-empty after trimming. Rows failing this are silently
// dropped, never an error.
func (r Row) renderable() bool {
	return strings.TrimSpace(r.Label) != "" && strings.TrimSpace(r.Value) != ""
}

// renderableRows returns the trimmed rows that survive filtering, in order.
func renderableRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !r.renderable() {
			continue
		}
		out = append(out, Row{
			Label:    strings.TrimSpace(r.Label),
			Value:    strings.TrimSpace(r.Value),
			LongText: r.LongText,
		})
	}
	return out
}

// sectionTitle returns the heading to draw for a section, defaulting the
// title when the payload left it blank.
func sectionTitle(s Section) string {
	t := strings.TrimSpace(s.Title)
	if t == "" {
		return "Form Details"
	}
	return t
}
