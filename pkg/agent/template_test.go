package agent

import (
	"strings"
	"testing"
)

func TestRenderPromptFillsPlaceholders(t *testing.T) {
	tool := &fakeTool{name: "search_documents", result: ""}
	out := renderPrompt(reactTemplate, []Tool{tool}, "my question", "Thought: prior step\n")

	for _, placeholder := range templatePlaceholders {
		if strings.Contains(out, placeholder) {
			t.Errorf("placeholder %s left unrendered", placeholder)
		}
	}
	if !strings.Contains(out, "Question: my question") {
		t.Error("input missing from rendered prompt")
	}
	if !strings.Contains(out, "Thought: prior step") {
		t.Error("scratchpad missing from rendered prompt")
	}
	if !strings.Contains(out, "search_documents: test tool") {
		t.Error("tool description missing from rendered prompt")
	}
}

func TestTemplateContainsFallbackRule(t *testing.T) {
	if !strings.Contains(reactTemplate, "explicitly state that the documents do not contain this information") {
		t.Error("template must instruct the model to flag answers that fall back to general knowledge")
	}
}

func TestValidTemplate(t *testing.T) {
	if !validTemplate(reactTemplate) {
		t.Error("shipped template must be valid")
	}
	if validTemplate("no placeholders at all") {
		t.Error("template without placeholders must be rejected")
	}
	if validTemplate("{tools} {tool_names} {input}") {
		t.Error("template missing the scratchpad must be rejected")
	}
}
