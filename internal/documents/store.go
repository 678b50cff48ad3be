// Package documents stores uploaded client documents in object storage.
// The intake flow keeps only reference metadata; binaries go straight to
// the bucket via presigned URLs.
package documents

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/sealbook/notary-platform/internal/intake"
	"github.com/sealbook/notary-platform/pkg/logging"
)

// uploadURLTTL bounds how long a presigned upload link stays valid.
const uploadURLTTL = 15 * time.Minute

// PresignAPI is the subset of the S3 presign client used by Store.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store issues upload URLs and builds the document metadata the intake
// form carries.
type Store struct {
	bucket  string
	presign PresignAPI
	logger  *logging.Logger
}

// NewStore creates a document store. An empty bucket disables uploads.
func NewStore(presign PresignAPI, bucket string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{bucket: bucket, presign: presign, logger: logger}
}

// Enabled reports whether object storage is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.bucket != "" && s.presign != nil
}

// UploadTicket pairs the metadata to attach to the form with the URL the
// browser PUTs the file to.
type UploadTicket struct {
	Ref       intake.DocumentRef `json:"ref"`
	UploadURL string             `json:"upload_url"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// CreateUpload issues a presigned PUT for one document and returns the
// reference the form should record once the upload completes.
func (s *Store) CreateUpload(ctx context.Context, orgID, sessionID, serviceID, fileName, contentType string) (*UploadTicket, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("documents: object storage not configured")
	}
	if serviceID == "" || fileName == "" {
		return nil, fmt.Errorf("documents: service id and file name are required")
	}

	key := path.Join("documents", orgID, sessionID, uuid.NewString()+"-"+sanitizeFileName(fileName))
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLTTL))
	if err != nil {
		return nil, fmt.Errorf("documents: presign upload for %s: %w", key, err)
	}

	s.logger.Info("upload URL issued", "key", key, "service_id", serviceID)
	return &UploadTicket{
		Ref: intake.DocumentRef{
			ServiceID:   serviceID,
			FileName:    fileName,
			StorageKey:  key,
			ContentType: contentType,
		},
		UploadURL: req.URL,
		ExpiresAt: time.Now().Add(uploadURLTTL),
	}, nil
}

// sanitizeFileName keeps object keys flat and predictable.
func sanitizeFileName(name string) string {
	name = path.Base(name)
	replacer := strings.NewReplacer(" ", "_", "#", "_", "?", "_", "%", "_")
	return replacer.Replace(name)
}
