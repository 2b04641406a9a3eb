package agent

import (
	"context"
	"fmt"
	"strings"

	"conversational-rag-be/pkg/rag/retriever"
)

// Tool is one action the reasoning loop may take. The tool set for this
// service always contains exactly one retrieval tool.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input string) (string, error)
}

const (
	retrieverToolName        = "search_documents"
	retrieverToolDescription = "Search and retrieve information from the documents the user uploaded. " +
		"Input is a plain-text search query. Prefer this tool whenever the question could be answered from the uploaded documents."
)

// RetrieverTool wraps a session-scoped retrieval handle as an agent tool.
type RetrieverTool struct {
	retriever *retriever.Retriever
}

func NewRetrieverTool(r *retriever.Retriever) *RetrieverTool {
	return &RetrieverTool{retriever: r}
}

func (t *RetrieverTool) Name() string {
	return retrieverToolName
}

func (t *RetrieverTool) Description() string {
	return retrieverToolDescription
}

func (t *RetrieverTool) Call(ctx context.Context, input string) (string, error) {
	chunks, err := t.retriever.Retrieve(ctx, input)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "No relevant passages were found in the uploaded documents.", nil
	}

	var sb strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		sb.WriteString(fmt.Sprintf("[%s] %s", chunk.Source, chunk.Document))
	}
	return sb.String(), nil
}
