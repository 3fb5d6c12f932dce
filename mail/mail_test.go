package mail

import (
	"strings"
	"testing"
)

func TestNewSubmissionMessage(t *testing.T) {
	pdf := []byte("%PDF-1.3 test")
	msg := NewSubmissionMessage(
		[]string{"quality@example.com"},
		"New complaint received",
		"A new complaint was submitted.",
		"CC-2025-0042",
		"complaint.pdf",
		pdf,
	)

	if !strings.Contains(msg.TextBody, "A new complaint was submitted.") {
		t.Error("body text missing")
	}
	if !strings.Contains(msg.TextBody, "Submission reference: CC-2025-0042") {
		t.Error("reference line missing")
	}
	if msg.AttachmentName != "complaint.pdf" {
		t.Errorf("attachment name: got %q", msg.AttachmentName)
	}
	if len(msg.AttachmentPDF) != len(pdf) {
		t.Error("attachment bytes not carried")
	}
}

func TestNewSubmissionMessageEmptyBody(t *testing.T) {
	msg := NewSubmissionMessage([]string{"a@b.c"}, "Subject", "", "S1", "f.pdf", nil)
	if msg.TextBody != "Submission reference: S1" {
		t.Errorf("empty body should leave only the reference line, got %q", msg.TextBody)
	}
}

func TestSendTestModeSkipsProvider(t *testing.T) {
	// No API key configured; test mode must still succeed.
	cfg := Settings{TestMode: true}
	msg := &Message{To: []string{"a@b.c"}, Subject: "S", TextBody: "body"}

	if err := Send(cfg, msg); err != nil {
		t.Errorf("test mode send failed: %v", err)
	}
}

func TestSendValidation(t *testing.T) {
	cfg := Settings{TestMode: true}

	if err := Send(cfg, &Message{Subject: "S", TextBody: "body"}); err == nil {
		t.Error("expected error for missing recipients")
	}
	if err := Send(cfg, &Message{To: []string{"a@b.c"}, Subject: "S"}); err == nil {
		t.Error("expected error for missing body")
	}
}

func TestSendRequiresAPIKeyOutsideTestMode(t *testing.T) {
	cfg := Settings{}
	msg := &Message{To: []string{"a@b.c"}, Subject: "S", TextBody: "body"}

	err := Send(cfg, msg)
	if err == nil || !strings.Contains(err.Error(), "RESEND_API_KEY") {
		t.Errorf("expected missing-key error, got %v", err)
	}
}
