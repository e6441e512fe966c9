package ports

import (
	"context"
	"time"
)

// Storage bucket names for uploaded files.
const (
	BucketReceipts = "receipts"
	BucketAvatars  = "avatars"
	BucketLogos    = "logos"
)

// FileUpload carries an uploaded file from the transport layer.
type FileUpload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// BlobStore is the external file storage collaborator: store bytes, get
// back a durable reference and a time-limited signed URL. The URL is an
// opaque string to everything above this interface.
type BlobStore interface {
	Put(ctx context.Context, bucket, name string, content []byte, contentType string) error
	SignedURL(bucket, name string, ttl time.Duration) (string, error)
}
