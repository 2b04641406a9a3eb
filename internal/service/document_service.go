package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"conversational-rag-be/internal/dto"
	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/internal/pkg/serverutils"
	"conversational-rag-be/internal/repository/contract"
	"conversational-rag-be/internal/repository/memory"
	"conversational-rag-be/internal/repository/specification"
	"conversational-rag-be/pkg/ingest"
	"conversational-rag-be/pkg/rag/indexer"
)

const documentLogModule = "DocumentService"

// IDocumentService handles the document side of a session: ingest sources,
// build and register the retrieval handle, tear it all down again.
type IDocumentService interface {
	Upload(ctx context.Context, sessionID string, files []*multipart.FileHeader, urls []string) (*dto.UploadDocumentsResponse, error)
	Reset(ctx context.Context, sessionID string) (*dto.ResetSessionResponse, error)
}

type documentService struct {
	loader    *ingest.Loader
	indexer   *indexer.Indexer
	documents contract.DocumentEmbeddingRepository
	registry  *memory.RetrieverRegistry
	logger    logger.ILogger
}

func NewDocumentService(
	loader *ingest.Loader,
	ix *indexer.Indexer,
	documents contract.DocumentEmbeddingRepository,
	registry *memory.RetrieverRegistry,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		loader:    loader,
		indexer:   ix,
		documents: documents,
		registry:  registry,
		logger:    log,
	}
}

func (s *documentService) Upload(ctx context.Context, sessionID string, files []*multipart.FileHeader, urls []string) (*dto.UploadDocumentsResponse, error) {
	if len(files) == 0 && len(urls) == 0 {
		return nil, serverutils.ErrNoSources
	}

	tempPaths, err := s.saveTempFiles(files)
	defer cleanupTempFiles(tempPaths)
	if err != nil {
		s.logger.Error(documentLogModule, "Failed to stage uploaded files", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	sources := append(tempPaths, urls...)
	docs := s.loader.LoadSources(ctx, sources)

	ret, err := s.indexer.BuildRetriever(ctx, docs, sessionID)
	if err != nil {
		s.logger.Error(documentLogModule, "Failed to build retriever", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	// A nil retriever means every source failed or was skipped: nothing got
	// indexed, so any prior handle for the session stays in place.
	if ret != nil {
		s.registry.Save(sessionID, ret)
	}

	return &dto.UploadDocumentsResponse{
		SessionId:     sessionID,
		SourcesLoaded: len(docs),
	}, nil
}

// Reset drops every indexed chunk of the session and forgets its retrieval
// handle. Subsequent chats fail the upload precondition until a new upload.
func (s *documentService) Reset(ctx context.Context, sessionID string) (*dto.ResetSessionResponse, error) {
	count, err := s.documents.Count(ctx, specification.ByNamespace{Namespace: sessionID})
	if err != nil {
		s.logger.Error(documentLogModule, "Failed to count session chunks", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if err := s.documents.DeleteByNamespace(ctx, sessionID); err != nil {
		s.logger.Error(documentLogModule, "Failed to delete session chunks", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}
	s.registry.Delete(sessionID)

	s.logger.Info(documentLogModule, "Session index reset", map[string]interface{}{
		"session_id": sessionID,
		"chunks":     count,
	})
	return &dto.ResetSessionResponse{
		SessionId:     sessionID,
		ChunksRemoved: count,
	}, nil
}

// saveTempFiles stages the multipart attachments on disk so the type-specific
// loaders can work from paths. The original extension is preserved because
// dispatch keys on it.
func (s *documentService) saveTempFiles(files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return paths, fmt.Errorf("open upload %q: %w", fileHeader.Filename, err)
		}

		suffix := filepath.Ext(fileHeader.Filename)
		tmp, err := os.CreateTemp("", "upload-*"+suffix)
		if err != nil {
			src.Close()
			return paths, fmt.Errorf("create temp file: %w", err)
		}

		_, err = io.Copy(tmp, src)
		src.Close()
		tmp.Close()
		if err != nil {
			return append(paths, tmp.Name()), fmt.Errorf("stage upload %q: %w", fileHeader.Filename, err)
		}
		paths = append(paths, tmp.Name())
	}
	return paths, nil
}

func cleanupTempFiles(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}
