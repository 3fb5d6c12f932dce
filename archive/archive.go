// Package archive stores rendered submission PDFs. The primary backend is
// any S3-compatible object store (AWS S3, Cloudflare R2, MinIO); a local
// directory backend serves development and air-gapped runs.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver stores a finished document under a key and hands out a link to
// retrieve it later.
type Archiver interface {
	Put(ctx context.Context, key string, pdf []byte) error
	SignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// Key builds the archive key for a submission:
//
//	<prefix>/2025/06/01/complaint_CC-2025-0042.pdf
//
// The identifier is sanitized so it cannot escape the date folder or break
// object-store tooling.
func Key(prefix, submissionID string, when time.Time) string {
	safe := sanitizeID(submissionID)
	if safe == "" {
		safe = "unknown"
	}
	datePath := when.UTC().Format("2006/01/02")
	return path.Join(prefix, datePath, "complaint_"+safe+".pdf")
}

var idSanitizer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"#", "-",
	"?", "-",
	" ", "-",
)

func sanitizeID(id string) string {
	return strings.Trim(idSanitizer.Replace(strings.TrimSpace(id)), "-.")
}

// S3Config holds the connection settings for an S3-compatible store.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS default, e.g.
	// https://<account>.r2.cloudflarestorage.com for Cloudflare R2.
	Endpoint string
}

// S3Archive stores documents in an S3-compatible bucket.
type S3Archive struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// NewS3Archive builds an archive backed by the configured bucket.
func NewS3Archive(ctx context.Context, cfg S3Config) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive: bucket name is required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archive{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
	}, nil
}

// Put uploads the document.
func (a *S3Archive) Put(ctx context.Context, key string, pdf []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(pdf),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(pdf))),
	})
	if err != nil {
		return fmt.Errorf("archive: uploading %s: %w", key, err)
	}
	return nil
}

// SignedURL generates a presigned GET link for temporary access.
func (a *S3Archive) SignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	req, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("archive: signing %s: %w", key, err)
	}
	return req.URL, nil
}

// DirArchive stores documents under a base directory on the local
// filesystem. Keys map directly to relative paths.
type DirArchive struct {
	baseDir string
}

// NewDirArchive builds a filesystem-backed archive rooted at baseDir.
func NewDirArchive(baseDir string) *DirArchive {
	return &DirArchive{baseDir: baseDir}
}

// Put writes the document to <baseDir>/<key>, creating directories as
// needed.
func (a *DirArchive) Put(ctx context.Context, key string, pdf []byte) error {
	full := filepath.Join(a.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("archive: creating directory for %s: %w", key, err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("archive: creating %s: %w", key, err)
	}
	if _, err := io.Copy(f, bytes.NewReader(pdf)); err != nil {
		f.Close()
		return fmt.Errorf("archive: writing %s: %w", key, err)
	}
	// A failed close means a failed flush; the archive copy must not be
	// reported as written.
	if err := f.Close(); err != nil {
		return fmt.Errorf("archive: closing %s: %w", key, err)
	}
	return nil
}

// SignedURL returns the local path; files need no signing.
func (a *DirArchive) SignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return filepath.Join(a.baseDir, filepath.FromSlash(key)), nil
}
