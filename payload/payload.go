// Package payload parses form-submission dispatch events into the document
// model the renderer consumes.
//
// Events arrive as the JSON body of a repository-dispatch style webhook:
// the interesting fields live under "client_payload", sometimes nested one
// level deeper under "client_payload.data". Both shapes are accepted and
// merged, the inner data winning on conflicts. Malformed pieces
// (non-string values, non-mapping rows, missing titles) are normalized to
// absent rather than rejected, so a partially valid submission still
// produces a document.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/formworks/formpdf"
)

// ErrMissingID is returned when a payload carries neither a submission id
// nor a complaint id; without one the document cannot be filed.
var ErrMissingID = errors.New("payload: missing submission_id/complaint_id")

// Keys that are routing or bookkeeping data, never form answers.
var technicalKeys = map[string]bool{
	"submission_id":        true,
	"complaint_id":         true,
	"complaintid":          true,
	"timestamp":            true,
	"submission_timestamp": true,
	"form_title":           true,
	"email_to":             true,
	"sections":             true,
}

// longTextMarkers flag field keys whose answers are free-form prose; their
// rows get the larger minimum value-box height.
var longTextMarkers = []string{"description", "details", "comment", "message", "note"}

// ParseOptions injects the caller's ambient defaults. The package never
// reads the environment itself.
type ParseOptions struct {
	// StatusOverride, when non-empty, wins over any status in the payload.
	StatusOverride string
	// InternalEmail is always added to the recipient list when set.
	InternalEmail string
}

// Submission is one parsed form submission.
type Submission struct {
	SubmissionID string
	ComplaintID  string
	Timestamp    string
	FormTitle    string
	Consent      string // normalized to "yes" or "no"
	Status       string
	EmailTo      []string
	Fields       map[string]string
	Sections     []formpdf.Section
}

// Document builds the renderer's document from the submission under the
// given title.
func (s *Submission) Document(title string) *formpdf.Document {
	return &formpdf.Document{
		Title:      title,
		Identifier: s.SubmissionID,
		Timestamp:  s.Timestamp,
		Status:     s.Status,
		Consent:    s.Consent,
		Sections:   s.Sections,
	}
}

// Parse decodes a dispatch event into a Submission.
func Parse(event []byte, opts ParseOptions) (*Submission, error) {
	var ev map[string]any
	if err := json.Unmarshal(event, &ev); err != nil {
		return nil, fmt.Errorf("payload: decoding event: %w", err)
	}

	clientPayload, _ := ev["client_payload"].(map[string]any)
	if clientPayload == nil {
		clientPayload = map[string]any{}
	}

	// Some senders wrap everything inside client_payload.data; merge both
	// shapes so either works, with the inner data winning on conflicts.
	merged := map[string]any{}
	if data, ok := clientPayload["data"].(map[string]any); ok {
		for k, v := range data {
			merged[k] = v
		}
	}
	for k, v := range clientPayload {
		if k == "data" {
			continue
		}
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}

	submissionID := firstNonEmpty(
		safeString(clientPayload["submission_id"]),
		safeString(merged["submission_id"]),
		safeString(merged["complaint_id"]),
	)
	complaintID := firstNonEmpty(
		safeString(clientPayload["complaint_id"]),
		safeString(merged["complaint_id"]),
		submissionID,
	)
	timestamp := firstNonEmpty(
		safeString(clientPayload["submission_timestamp"]),
		safeString(merged["submission_timestamp"]),
		safeString(clientPayload["timestamp"]),
		safeString(merged["timestamp"]),
	)
	formTitle := firstNonEmpty(
		safeString(clientPayload["form_title"]),
		safeString(merged["form_title"]),
		"Customer Complaint Form",
	)

	consent := strings.ToLower(safeString(merged["contact_consent"]))
	if consent != "yes" && consent != "no" {
		consent = "no"
	}

	status := firstNonEmpty(opts.StatusOverride, safeString(merged["status"]), "Received")

	var recipients []string
	if opts.InternalEmail != "" {
		recipients = append(recipients, opts.InternalEmail)
	}
	// The submitter is copied only with explicit consent; upstream already
	// wipes the address when consent is "no", this is the second guard.
	customer := firstNonEmpty(
		safeString(merged["email_address"]),
		safeString(merged["email"]),
		safeString(merged["email_address_2"]),
	)
	if consent == "yes" && customer != "" && !contains(recipients, customer) {
		recipients = append(recipients, customer)
	}

	fields := map[string]string{}
	for k, v := range merged {
		if s := safeString(v); s != "" {
			fields[k] = s
		}
	}

	var sections []formpdf.Section
	if raw, ok := clientPayload["sections"].([]any); ok && len(raw) > 0 {
		sections = parseSections(raw)
	} else if raw, ok := merged["sections"].([]any); ok && len(raw) > 0 {
		sections = parseSections(raw)
	} else {
		sections = buildSections(merged)
	}

	if submissionID == "" {
		submissionID = complaintID
	}
	if submissionID == "" {
		return nil, ErrMissingID
	}

	return &Submission{
		SubmissionID: submissionID,
		ComplaintID:  firstNonEmpty(complaintID, submissionID),
		Timestamp:    timestamp,
		FormTitle:    formTitle,
		Consent:      consent,
		Status:       status,
		EmailTo:      recipients,
		Fields:       fields,
		Sections:     sections,
	}, nil
}

// parseSections converts explicitly provided sections. Entries that are not
// mappings are skipped; rows are normalized the same way.
func parseSections(raw []any) []formpdf.Section {
	var out []formpdf.Section
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sec := formpdf.Section{Title: safeString(m["title"])}
		rows, _ := m["rows"].([]any)
		for _, ri := range rows {
			rm, ok := ri.(map[string]any)
			if !ok {
				continue
			}
			long, _ := rm["longText"].(bool)
			if !long {
				long, _ = rm["long_text"].(bool)
			}
			sec.Rows = append(sec.Rows, formpdf.Row{
				Label:    safeString(rm["label"]),
				Value:    safeString(rm["value"]),
				LongText: long,
			})
		}
		out = append(out, sec)
	}
	return out
}

// buildSections assembles one "Form Responses" section from whatever loose
// fields the event carries. This is what keeps the pipeline resilient to
// form-question changes: unknown fields still render. Keys are sorted so
// repeated runs over the same payload produce the same document.
func buildSections(merged map[string]any) []formpdf.Section {
	keys := make([]string, 0, len(merged))
	for k := range merged {
		if technicalKeys[k] {
			continue
		}
		if safeString(merged[k]) == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	sec := formpdf.Section{Title: "Form Responses"}
	for _, k := range keys {
		sec.Rows = append(sec.Rows, formpdf.Row{
			Label:    TitleLabel(k),
			Value:    safeString(merged[k]),
			LongText: isLongTextKey(k),
		})
	}
	return []formpdf.Section{sec}
}

// TitleLabel converts a snake_case field key into a readable label, e.g.
// "lot_serial_number" becomes "Lot Serial Number".
func TitleLabel(key string) string {
	k := strings.ReplaceAll(key, "__", " ")
	k = strings.TrimSpace(strings.ReplaceAll(k, "_", " "))
	if k == "" {
		return ""
	}
	words := strings.Fields(k)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isLongTextKey(key string) bool {
	k := strings.ToLower(key)
	for _, m := range longTextMarkers {
		if strings.Contains(k, m) {
			return true
		}
	}
	return false
}

// safeString coerces a decoded JSON value to a trimmed string. Mappings and
// lists have no string form and normalize to absent.
func safeString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
