// Package config loads the pipeline settings from the environment, with a
// .env file picked up for local runs.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Event input
	EventPath string // JSON event file; GITHUB_EVENT_PATH wins when set

	// Document
	DocVersion      string // footer text, e.g. "QF-031 Rev. 3"
	ComplaintStatus string // status override for incoming submissions
	LogoPath        string // optional PNG/JPEG logo file
	PDFFilename     string // attachment filename

	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // when true, emails are logged to console instead of sent
	InternalEmail string
	MailSubject   string
	MailBody      string

	// Archive (S3-compatible; empty bucket selects the local directory backend)
	ArchiveBucket    string
	ArchiveRegion    string
	ArchiveEndpoint  string
	ArchiveAccessKey string
	ArchiveSecretKey string
	ArchivePrefix    string
	ArchiveDir       string // local backend root
}

func Load() *Config {
	// Load .env file (ignore error if not present, use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	eventPath := getEnv("GITHUB_EVENT_PATH", "")
	if eventPath == "" {
		eventPath = getEnv("EVENT_PATH", "event.json")
	}

	return &Config{
		EventPath:        eventPath,
		DocVersion:       getEnv("DOC_VERSION", "QF-031 Rev. 1"),
		ComplaintStatus:  getEnv("COMPLAINT_STATUS", ""),
		LogoPath:         getEnv("LOGO_PATH", ""),
		PDFFilename:      getEnv("PDF_FILENAME", "complaint.pdf"),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		EmailFrom:        getEnv("EMAIL_FROM", "noreply@example.com"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Quality Team"),
		EmailTestMode:    getEnvBool("EMAIL_TEST_MODE", true), // default true for safety
		InternalEmail:    getEnv("LAB_EMAIL", ""),
		MailSubject:      getEnv("MAIL_SUBJECT", "New customer complaint received"),
		MailBody:         getEnv("MAIL_BODY", "A new customer complaint form was submitted. The rendered document is attached."),
		ArchiveBucket:    getEnv("ARCHIVE_BUCKET", ""),
		ArchiveRegion:    getEnv("ARCHIVE_REGION", ""),
		ArchiveEndpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
		ArchiveAccessKey: getEnv("ARCHIVE_ACCESS_KEY_ID", ""),
		ArchiveSecretKey: getEnv("ARCHIVE_SECRET_ACCESS_KEY", ""),
		ArchivePrefix:    getEnv("ARCHIVE_PREFIX", "Submissions"),
		ArchiveDir:       getEnv("ARCHIVE_DIR", "archive"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
