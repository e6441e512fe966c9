// Package storage provides a disk-backed blob store with HMAC-signed
// download URLs. Files live under <root>/<bucket>/<name>; a URL is valid
// until its embedded expiry and its signature covers bucket, name and
// expiry so neither can be swapped.
package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var (
	ErrInvalidSignature = errors.New("storage: invalid or expired signature")
	ErrNotFound         = errors.New("storage: file not found")
)

// DiskStore implements ports.BlobStore on the local filesystem.
type DiskStore struct {
	root    string
	secret  []byte
	baseURL string
}

// NewDiskStore creates the root directory if needed. baseURL is the external
// prefix signed URLs are built on, without a trailing slash.
func NewDiskStore(root, baseURL string, secret []byte) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStore{root: root, secret: secret, baseURL: baseURL}, nil
}

func (d *DiskStore) Put(_ context.Context, bucket, name string, content []byte, _ string) error {
	dir := filepath.Join(d.root, filepath.Base(bucket))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s/%s: %w", bucket, name, err)
	}
	return nil
}

// SignedURL builds a download URL that Verify accepts until expiry.
func (d *DiskStore) SignedURL(bucket, name string, ttl time.Duration) (string, error) {
	exp := time.Now().Add(ttl).Unix()
	sig := d.sign(bucket, name, exp)
	return fmt.Sprintf("%s/files/%s/%s?exp=%d&sig=%s", d.baseURL, bucket, name, exp, sig), nil
}

// Verify checks the signature and expiry extracted from a download request.
func (d *DiskStore) Verify(bucket, name string, exp int64, sig string) error {
	if time.Now().Unix() > exp {
		return ErrInvalidSignature
	}
	want := d.sign(bucket, name, exp)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrInvalidSignature
	}
	return nil
}

// Open returns a reader over a stored file. Callers must close it.
func (d *DiskStore) Open(bucket, name string) (io.ReadCloser, error) {
	path := filepath.Join(d.root, filepath.Base(bucket), filepath.Base(name))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s/%s: %w", bucket, name, err)
	}
	return f, nil
}

func (d *DiskStore) sign(bucket, name string, exp int64) string {
	mac := hmac.New(sha256.New, d.secret)
	io.WriteString(mac, bucket+"/"+name+":"+strconv.FormatInt(exp, 10))
	return hex.EncodeToString(mac.Sum(nil))
}
