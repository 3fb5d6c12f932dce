// Command formpdf turns a form-submission dispatch event into a finished
// complaint document: it renders the PDF, archives a stamped copy, and
// emails the original to the configured recipients.
//
// The event file is taken from GITHUB_EVENT_PATH when running inside a
// workflow, or from EVENT_PATH for local runs.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/formworks/formpdf"
	"github.com/formworks/formpdf/archive"
	"github.com/formworks/formpdf/config"
	"github.com/formworks/formpdf/mail"
	"github.com/formworks/formpdf/payload"
	"github.com/formworks/formpdf/stamp"
)

// result is the single JSON line printed on success, for the workflow step
// that follows to pick up.
type result struct {
	RunID        string   `json:"run_id"`
	SubmissionID string   `json:"submission_id"`
	ArchiveKey   string   `json:"archive_key"`
	ArchiveURL   string   `json:"archive_url,omitempty"`
	Recipients   []string `json:"recipients"`
	PDFBytes     int      `json:"pdf_bytes"`
}

func main() {
	cfg := config.Load()
	runID := uuid.New().String()
	ctx := context.Background()

	event, err := os.ReadFile(cfg.EventPath)
	if err != nil {
		log.Fatalf("[%s] reading event %s: %v", runID, cfg.EventPath, err)
	}

	sub, err := payload.Parse(event, payload.ParseOptions{
		StatusOverride: cfg.ComplaintStatus,
		InternalEmail:  cfg.InternalEmail,
	})
	if err != nil {
		log.Fatalf("[%s] parsing event: %v", runID, err)
	}
	log.Printf("[%s] parsed submission %s (%d sections)", runID, sub.SubmissionID, len(sub.Sections))

	pdf, err := render(cfg, sub)
	if err != nil {
		log.Fatalf("[%s] rendering: %v", runID, err)
	}
	log.Printf("[%s] rendered %d bytes", runID, len(pdf))

	submittedAt := parseTimestamp(sub.Timestamp)

	var stamped bytes.Buffer
	err = stamp.Apply(&stamped, pdf, stamp.Stamp{
		Text:         "ARCHIVED COPY",
		Reference:    sub.SubmissionID,
		CreationDate: submittedAt,
	})
	if err != nil {
		log.Fatalf("[%s] stamping archive copy: %v", runID, err)
	}

	key := archive.Key(cfg.ArchivePrefix, sub.SubmissionID, submittedAt)
	arch, err := newArchiver(ctx, cfg)
	if err != nil {
		log.Fatalf("[%s] initializing archive: %v", runID, err)
	}
	if err := arch.Put(ctx, key, stamped.Bytes()); err != nil {
		log.Fatalf("[%s] archiving: %v", runID, err)
	}
	url, err := arch.SignedURL(ctx, key, 24*time.Hour)
	if err != nil {
		log.Printf("[%s] signed URL unavailable: %v", runID, err)
		url = ""
	}
	log.Printf("[%s] archived as %s", runID, key)

	if len(sub.EmailTo) > 0 {
		msg := mail.NewSubmissionMessage(sub.EmailTo, cfg.MailSubject, cfg.MailBody, sub.SubmissionID, cfg.PDFFilename, pdf)
		if err := mail.Send(mailSettings(cfg), msg); err != nil {
			log.Fatalf("[%s] sending notification: %v", runID, err)
		}
	} else {
		log.Printf("[%s] no recipients configured, skipping email", runID)
	}

	out := result{
		RunID:        runID,
		SubmissionID: sub.SubmissionID,
		ArchiveKey:   key,
		ArchiveURL:   url,
		Recipients:   sub.EmailTo,
		PDFBytes:     len(pdf),
	}
	if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
		log.Fatalf("[%s] writing result: %v", runID, err)
	}
}

// render produces the document: the sectioned layout when the submission
// carries sections, the legacy flat layout otherwise.
func render(cfg *config.Config, sub *payload.Submission) ([]byte, error) {
	opts := []formpdf.Option{
		formpdf.WithFooterText(cfg.DocVersion),
		formpdf.WithReferenceQR(16),
	}
	if cfg.LogoPath != "" {
		logo, err := os.ReadFile(cfg.LogoPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, formpdf.WithLogo(logo))
	}
	if ts := parseTimestampStrict(sub.Timestamp); !ts.IsZero() {
		opts = append(opts, formpdf.WithCreationDate(ts))
	}
	rc := formpdf.NewRenderConfig(opts...)

	if len(sub.Sections) > 0 {
		return formpdf.RenderBytes(sub.Document(sub.FormTitle), rc)
	}

	var buf bytes.Buffer
	if err := formpdf.RenderLegacy(&buf, sub.FormTitle, sub.Fields, rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newArchiver(ctx context.Context, cfg *config.Config) (archive.Archiver, error) {
	if cfg.ArchiveBucket != "" {
		return archive.NewS3Archive(ctx, archive.S3Config{
			Bucket:          cfg.ArchiveBucket,
			Region:          cfg.ArchiveRegion,
			Endpoint:        cfg.ArchiveEndpoint,
			AccessKeyID:     cfg.ArchiveAccessKey,
			SecretAccessKey: cfg.ArchiveSecretKey,
		})
	}
	return archive.NewDirArchive(cfg.ArchiveDir), nil
}

func mailSettings(cfg *config.Config) mail.Settings {
	return mail.Settings{
		ResendAPIKey: cfg.ResendAPIKey,
		From:         cfg.EmailFrom,
		FromName:     cfg.EmailFromName,
		TestMode:     cfg.EmailTestMode,
	}
}

var timestampLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// parseTimestampStrict returns the zero time when the submission timestamp
// does not match a known layout.
func parseTimestampStrict(ts string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// parseTimestamp falls back to the current time for the archive path when
// the submission timestamp is missing or unparseable.
func parseTimestamp(ts string) time.Time {
	if t := parseTimestampStrict(ts); !t.IsZero() {
		return t
	}
	return time.Now().UTC()
}
