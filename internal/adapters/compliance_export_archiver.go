package adapters

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"aptivai_backend/internal/adapters/storage"
	compliancesvc "aptivai_backend/internal/compliance/service"
)

// ComplianceExportArchiver stores compliance exports in object storage.
type ComplianceExportArchiver struct {
	storage storage.StorageService
	bucket  string
	now     func() time.Time
}

// NewComplianceExportArchiver creates a new export archiver adapter.
func NewComplianceExportArchiver(storageSvc storage.StorageService, bucket string) *ComplianceExportArchiver {
	return &ComplianceExportArchiver{storage: storageSvc, bucket: bucket, now: time.Now}
}

// Archive uploads the export under a per-month folder and presigns a download link.
func (a *ComplianceExportArchiver) Archive(ctx context.Context, fileName string, body []byte) (compliancesvc.ArchivedFile, error) {
	folder := fmt.Sprintf("compliance/%s", a.now().UTC().Format("2006-01"))
	fileKey, err := a.storage.UploadFile(ctx, a.bucket, folder, fileName, compliancesvc.ExportContentType, bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return compliancesvc.ArchivedFile{}, err
	}

	presigned, err := a.storage.GenerateDownloadURL(ctx, a.bucket, fileKey)
	if err != nil {
		return compliancesvc.ArchivedFile{}, err
	}
	return compliancesvc.ArchivedFile{
		URL:       presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

// Compile-time check that ComplianceExportArchiver implements compliance/service.Archiver.
var _ compliancesvc.Archiver = (*ComplianceExportArchiver)(nil)
