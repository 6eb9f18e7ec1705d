package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// ReportKey returns the object key of an archived report file.
func ReportKey(prefix string, reportType domain.ReportType, fileName string) string {
	return path.Join(prefix, string(reportType), fileName)
}

type objectArchive struct {
	store         port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewObjectArchive keeps report files in bucket through store.
func NewObjectArchive(store port.ObjectStorage, bucket string, presignExpiry int64) port.ReportArchive {
	return &objectArchive{store: store, bucket: bucket, presignExpiry: presignExpiry}
}

func (a *objectArchive) Enabled() bool { return true }

func (a *objectArchive) Store(ctx context.Context, key, contentType string, content []byte) error {
	_, err := a.store.Upload(ctx, port.UploadInput{
		Bucket:      a.bucket,
		Key:         key,
		Body:        bytes.NewReader(content),
		ContentType: contentType,
		FileName:    path.Base(key),
		Size:        int64(len(content)),
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", key, err)
	}
	return nil
}

func (a *objectArchive) URL(ctx context.Context, key string) (string, error) {
	return a.store.GetPresignedURL(ctx, a.bucket, key, a.presignExpiry)
}

type noopArchive struct{}

// NewNoopArchive returns an archive that keeps nothing.
func NewNoopArchive() port.ReportArchive {
	return noopArchive{}
}

func (noopArchive) Enabled() bool { return false }

func (noopArchive) Store(context.Context, string, string, []byte) error { return nil }

func (noopArchive) URL(context.Context, string) (string, error) {
	return "", domain.ErrArchiveDisabled
}
