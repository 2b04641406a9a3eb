package ingest

// Document is one normalized unit of loaded content. Source keeps the
// provenance (file name or URL) for retrieval metadata.
type Document struct {
	Source  string
	Content string
}
