package agent

import (
	"context"
	"fmt"
	"strings"

	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/pkg/llm"
)

const logModule = "ReasoningLoop"

const defaultMaxIterations = 6

// Agent runs a bounded think-act-observe loop over an LLM and a tool set.
// It is stateless across turns; callers rebuild it per chat turn from the
// session's cached retrieval handle.
type Agent struct {
	llm           llm.LLMProvider
	tools         []Tool
	template      string
	maxIterations int
	logger        logger.ILogger
}

// Run drives the loop until the model emits a Final Answer. Malformed
// intermediate steps are recoverable: the loop feeds a corrective observation
// back and continues. Provider errors and iteration exhaustion are not.
func (a *Agent) Run(ctx context.Context, input string) (string, error) {
	var scratchpad strings.Builder

	for i := 0; i < a.maxIterations; i++ {
		promptText := renderPrompt(a.template, a.tools, input, scratchpad.String())

		output, err := a.llm.Generate(ctx, promptText, llm.WithTemperature(0.2))
		if err != nil {
			return "", fmt.Errorf("reasoning provider: %w", err)
		}

		a.logger.Debug(logModule, "Model step", map[string]interface{}{
			"iteration": i,
			"prompt":    promptText,
			"output":    output,
		})

		if answer, ok := extractFinalAnswer(output); ok {
			return answer, nil
		}

		action, actionInput, ok := parseAction(output)
		if !ok {
			// Recoverable parse failure: steer the model back to the format.
			a.logger.Warn(logModule, "Unparsable reasoning step, re-prompting", map[string]interface{}{
				"iteration": i,
			})
			scratchpad.WriteString(output)
			scratchpad.WriteString("\nObservation: Your previous response did not follow the format. " +
				"Reply with either an Action and Action Input, or a Final Answer.\n")
			continue
		}

		observation := a.callTool(ctx, action, actionInput)
		scratchpad.WriteString(fmt.Sprintf("%s\nObservation: %s\n", strings.TrimSpace(output), observation))
	}

	return "", fmt.Errorf("reasoning loop exceeded %d iterations without a final answer", a.maxIterations)
}

func (a *Agent) callTool(ctx context.Context, name, input string) string {
	for _, t := range a.tools {
		if t.Name() != name {
			continue
		}
		result, err := t.Call(ctx, input)
		if err != nil {
			// Tool errors are observations, not loop failures: the model can
			// decide to retry or answer without the tool.
			a.logger.Error(logModule, "Tool call failed", map[string]interface{}{
				"tool":  name,
				"error": err.Error(),
			})
			return fmt.Sprintf("The tool %s failed: %v", name, err)
		}
		return result
	}
	return fmt.Sprintf("Unknown tool %q. Available tools: %s", name, toolNames(a.tools))
}

func toolNames(tools []Tool) string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}

// extractFinalAnswer pulls the text after the last "Final Answer:" marker.
func extractFinalAnswer(output string) (string, bool) {
	idx := strings.LastIndex(output, "Final Answer:")
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(output[idx+len("Final Answer:"):]), true
}

// parseAction extracts the Action / Action Input pair from a reasoning step.
func parseAction(output string) (action, input string, ok bool) {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "Action:") {
			continue
		}
		action = strings.TrimSpace(strings.TrimPrefix(trimmed, "Action:"))
		for _, next := range lines[i+1:] {
			nextTrimmed := strings.TrimSpace(next)
			if strings.HasPrefix(nextTrimmed, "Action Input:") {
				input = strings.TrimSpace(strings.TrimPrefix(nextTrimmed, "Action Input:"))
				break
			}
		}
		if action != "" {
			return action, input, true
		}
	}
	return "", "", false
}
