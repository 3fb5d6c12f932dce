// Package mail delivers the rendered submission PDF by email through the
// Resend API. In test mode the message is logged to the console instead of
// being sent, so local runs never hit the provider.
package mail

import (
	"fmt"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Settings holds the provider configuration.
type Settings struct {
	ResendAPIKey string
	From         string // sender address
	FromName     string // display name, e.g. "Quality Team"
	TestMode     bool   // log instead of send
}

// Message is one outgoing notification.
type Message struct {
	To       []string
	Subject  string
	TextBody string

	// AttachmentName and AttachmentPDF carry the rendered document; both
	// empty means no attachment.
	AttachmentName string
	AttachmentPDF  []byte
}

// NewSubmissionMessage builds the standard notification for a processed
// submission: the configured body followed by the reference line.
func NewSubmissionMessage(to []string, subject, body, submissionID, filename string, pdf []byte) *Message {
	text := strings.TrimSpace(body)
	if text != "" {
		text += "\n\n"
	}
	text += "Submission reference: " + submissionID

	return &Message{
		To:             to,
		Subject:        subject,
		TextBody:       text,
		AttachmentName: filename,
		AttachmentPDF:  pdf,
	}
}

// Send delivers the message via Resend.
func Send(cfg Settings, msg *Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("mail: message has no recipients")
	}
	if msg.TextBody == "" {
		return fmt.Errorf("mail: message has no body")
	}

	if cfg.TestMode {
		logMessageToConsole(msg)
		log.Printf("Email logged (test mode, not sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("mail: RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	from := cfg.From
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.TextBody,
	}
	if len(msg.AttachmentPDF) > 0 {
		params.Attachments = []*resend.Attachment{{
			Content:     msg.AttachmentPDF,
			Filename:    msg.AttachmentName,
			ContentType: "application/pdf",
		}}
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("mail: sending via Resend: %w", err)
	}

	log.Printf("Email sent via Resend (ID: %s) to: %v", sent.Id, msg.To)
	return nil
}

func logMessageToConsole(msg *Message) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode, not sent)\n%s", separator, separator)
	log.Printf("To: %v", msg.To)
	log.Printf("Subject: %s", msg.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", msg.TextBody)
	if len(msg.AttachmentPDF) > 0 {
		log.Printf("Attachment: %s (%d bytes)", msg.AttachmentName, len(msg.AttachmentPDF))
	}
	log.Printf("%s\n", separator)
}
