package adapters

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"aptivai_backend/internal/adapters/storage"
)

type fakeStorage struct {
	uploaded    []byte
	folder      string
	contentType string
	uploadErr   error
}

func (f *fakeStorage) UploadFile(_ context.Context, _, folder, fileName, contentType string, reader io.Reader, _ int64) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploaded, f.folder, f.contentType = body, folder, contentType
	return folder + "/" + fileName, nil
}

func (f *fakeStorage) GenerateDownloadURL(_ context.Context, bucket, fileKey string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: "https://minio.local/" + bucket + "/" + fileKey, FileKey: fileKey, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeStorage) EnsureBucketExists(context.Context, string) error { return nil }

func TestComplianceExportArchiverUploadsAndPresigns(t *testing.T) {
	store := &fakeStorage{}
	archiver := NewComplianceExportArchiver(store, "compliance-exports")
	archiver.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }

	got, err := archiver.Archive(context.Background(), "compliance-log-2026-10-18.json", []byte(`{"count":0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.folder != "compliance/2026-10" || store.contentType != "application/json" || string(store.uploaded) != `{"count":0}` {
		t.Errorf("unexpected upload: folder=%q type=%q body=%q", store.folder, store.contentType, store.uploaded)
	}
	if got.FileKey != "compliance/2026-10/compliance-log-2026-10-18.json" || got.URL == "" {
		t.Errorf("unexpected archived file %+v", got)
	}
}

func TestComplianceExportArchiverReturnsUploadError(t *testing.T) {
	archiver := NewComplianceExportArchiver(&fakeStorage{uploadErr: errors.New("bucket missing")}, "b")
	if _, err := archiver.Archive(context.Background(), "x.json", nil); err == nil {
		t.Fatal("expected error")
	}
}
