package storage

import (
	"context"
	"time"
)

// Standard upload folders.
const (
	FolderRepairPhotos = "wrenchworks/repairs"
	FolderInvoices     = "wrenchworks/invoices"
)

// StorageService stores and serves media files (repair photos, invoice PDFs).
type StorageService interface {
	// UploadFile uploads a local file into destFolder and returns its public ID.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL returns a plain delivery URL for a public asset.
	GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error)
	// GetSecureDownloadURL returns a signed URL that expires after the given duration.
	GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
}
