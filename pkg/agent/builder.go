package agent

import (
	"fmt"

	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/pkg/llm"
	"conversational-rag-be/pkg/rag/retriever"
)

// Builder constructs reasoning agents bound to a session's retrieval handle.
// One builder is created at startup; Build is called once per chat turn.
type Builder struct {
	llm           llm.LLMProvider
	logger        logger.ILogger
	template      string
	maxIterations int
}

func NewBuilder(llmProvider llm.LLMProvider, log logger.ILogger) (*Builder, error) {
	if llmProvider == nil {
		return nil, fmt.Errorf("agent builder requires an LLM provider")
	}
	if !validTemplate(reactTemplate) {
		return nil, fmt.Errorf("reasoning template is missing required placeholders")
	}
	return &Builder{
		llm:           llmProvider,
		logger:        log,
		template:      reactTemplate,
		maxIterations: defaultMaxIterations,
	}, nil
}

// Build wraps the retrieval handle as the agent's single tool and binds it to
// the reasoning template.
func (b *Builder) Build(ret *retriever.Retriever) (*Agent, []Tool, error) {
	if ret == nil {
		return nil, nil, fmt.Errorf("cannot build agent without a retriever")
	}

	tools := []Tool{NewRetrieverTool(ret)}
	a := &Agent{
		llm:           b.llm,
		tools:         tools,
		template:      b.template,
		maxIterations: b.maxIterations,
		logger:        b.logger,
	}
	return a, tools, nil
}
