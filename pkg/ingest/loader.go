package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"conversational-rag-be/internal/pkg/logger"
)

const logModule = "DocumentIngestor"

// Loader resolves heterogeneous sources (file paths, URLs) into documents.
// A single bad source never aborts the batch: failures are logged and the
// loader moves on.
type Loader struct {
	logger logger.ILogger
	web    *webFetcher
}

func NewLoader(log logger.ILogger) *Loader {
	return &Loader{
		logger: log,
		web:    newWebFetcher(),
	}
}

// LoadSources loads every source it can and skips the rest. An empty input
// yields an empty result, not an error.
func (l *Loader) LoadSources(ctx context.Context, sources []string) []Document {
	if len(sources) == 0 {
		l.logger.Warn(logModule, "No sources were provided for processing", nil)
		return []Document{}
	}

	documents := make([]Document, 0, len(sources))
	for _, source := range sources {
		doc, ok := l.loadOne(ctx, source)
		if !ok {
			continue
		}
		documents = append(documents, doc)
	}

	l.logger.Info(logModule, "Finished loading sources", map[string]interface{}{
		"requested": len(sources),
		"loaded":    len(documents),
	})
	return documents
}

func (l *Loader) loadOne(ctx context.Context, source string) (Document, bool) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		content, err := l.web.Fetch(ctx, source)
		if err != nil {
			l.logger.Error(logModule, "Failed to load URL", map[string]interface{}{
				"source": source,
				"error":  err.Error(),
			})
			return Document{}, false
		}
		return Document{Source: source, Content: content}, true
	}

	ext := strings.ToLower(filepath.Ext(source))
	var (
		content string
		err     error
	)
	switch ext {
	case ".pdf":
		content, err = loadPDF(source)
	case ".txt", ".text", ".md":
		content, err = loadTextFile(source)
	default:
		l.logger.Warn(logModule, "Unsupported file extension, skipping source", map[string]interface{}{
			"source":    filepath.Base(source),
			"extension": ext,
		})
		return Document{}, false
	}

	if err != nil {
		l.logger.Error(logModule, "Failed to load file", map[string]interface{}{
			"source": filepath.Base(source),
			"error":  err.Error(),
		})
		return Document{}, false
	}

	return Document{Source: filepath.Base(source), Content: content}, true
}
