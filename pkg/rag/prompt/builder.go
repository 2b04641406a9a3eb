package prompt

import "strings"

// Builder assembles the reasoning-loop input for one chat turn. Section order
// is fixed (history, memory, question) and empty sections keep their headers
// so the template the agent sees stays stable across turns.
type Builder struct {
	history  string
	memories []string
	question string
}

func NewBuilder(history string, memories []string, question string) *Builder {
	return &Builder{
		history:  history,
		memories: memories,
		question: question,
	}
}

func (b *Builder) Build() string {
	var sb strings.Builder

	sb.WriteString("Short-Term Conversation History:\n")
	sb.WriteString(b.history)
	sb.WriteString("\n\n")

	sb.WriteString("Long-Term Semantic Memory:\n")
	sb.WriteString(strings.Join(b.memories, "\n"))
	sb.WriteString("\n\n")

	sb.WriteString("User Query:\n")
	sb.WriteString(b.question)

	return sb.String()
}
