package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aptivai_backend/internal/compliance/domain"
	"aptivai_backend/internal/compliance/transport"
	"aptivai_backend/platform/apperr"
)

// ExportContentType is the media type of an export document.
const ExportContentType = "application/json"

// Archiver stores a rendered export and returns a download link for it.
type Archiver interface {
	Archive(ctx context.Context, fileName string, body []byte) (ArchivedFile, error)
}

// ArchivedFile locates an archived export.
type ArchivedFile struct {
	URL       string
	FileKey   string
	ExpiresAt time.Time
}

// Export renders every entry matching the filter, with all fields verbatim.
// It returns the file name and the JSON body.
func (s *Service) Export(ctx context.Context, req transport.QueryRequest) (string, []byte, error) {
	doc, err := s.exportDocument(ctx, req)
	if err != nil {
		return "", nil, err
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, apperr.Internal("failed to render compliance export")
	}
	return exportFileName(doc.ExportedAt), body, nil
}

// CanArchive reports whether an archive store is configured.
func (s *Service) CanArchive() bool {
	return s.archiver != nil
}

// ArchiveExport renders the export and stores it in object storage.
func (s *Service) ArchiveExport(ctx context.Context, req transport.QueryRequest) (transport.ArchiveResponse, error) {
	if s.archiver == nil {
		return transport.ArchiveResponse{}, apperr.BadRequest("export archiving is not configured")
	}

	doc, err := s.exportDocument(ctx, req)
	if err != nil {
		return transport.ArchiveResponse{}, err
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return transport.ArchiveResponse{}, apperr.Internal("failed to render compliance export")
	}

	archived, err := s.archiver.Archive(ctx, exportFileName(doc.ExportedAt), body)
	if err != nil {
		s.log.Error("failed to archive compliance export", "error", err)
		return transport.ArchiveResponse{}, apperr.Wrap(apperr.KindInternal, "failed to archive compliance export", err)
	}

	s.log.Info("compliance export archived", "fileKey", archived.FileKey, "count", doc.Count)
	return transport.ArchiveResponse{
		URL:       archived.URL,
		FileKey:   archived.FileKey,
		ExpiresAt: archived.ExpiresAt,
		Count:     doc.Count,
	}, nil
}

func (s *Service) exportDocument(ctx context.Context, req transport.QueryRequest) (transport.ExportDocument, error) {
	filter, err := parseFilter(req)
	if err != nil {
		return transport.ExportDocument{}, err
	}
	entries, err := s.query(ctx, filter)
	if err != nil {
		return transport.ExportDocument{}, err
	}
	return transport.ExportDocument{
		ExportedAt: time.Now().UTC(),
		Filters:    echoFilters(filter),
		Count:      len(entries),
		Entries:    entries,
	}, nil
}

func echoFilters(f domain.Filter) transport.ExportFilters {
	out := transport.ExportFilters{Search: f.Search, Status: string(f.Status), Agent: f.Agent}
	if out.Status == "" {
		out.Status = domain.FilterAll
	}
	if out.Agent == "" {
		out.Agent = domain.FilterAll
	}
	return out
}

func exportFileName(at time.Time) string {
	return fmt.Sprintf("compliance-log-%s.json", at.Format("2006-01-02"))
}
