package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"conversational-rag-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// scriptedLLM returns canned outputs in order and records every prompt.
type scriptedLLM struct {
	outputs []string
	err     error
	prompts []string
}

func (f *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (f *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.outputs) == 0 {
		return "", errors.New("script exhausted")
	}
	out := f.outputs[0]
	f.outputs = f.outputs[1:]
	return out, nil
}

type fakeTool struct {
	name   string
	result string
	err    error
	inputs []string
}

func (t *fakeTool) Name() string        { return t.name }
func (t *fakeTool) Description() string { return "test tool" }
func (t *fakeTool) Call(ctx context.Context, input string) (string, error) {
	t.inputs = append(t.inputs, input)
	return t.result, t.err
}

func newTestAgent(provider llm.LLMProvider, tools ...Tool) *Agent {
	return &Agent{
		llm:           provider,
		tools:         tools,
		template:      reactTemplate,
		maxIterations: defaultMaxIterations,
		logger:        nopLogger{},
	}
}

func TestRunImmediateFinalAnswer(t *testing.T) {
	provider := &scriptedLLM{outputs: []string{
		"Thought: I can answer directly.\nFinal Answer: forty-two",
	}}
	a := newTestAgent(provider)

	answer, err := a.Run(context.Background(), "what is the answer?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "forty-two" {
		t.Errorf("answer = %q, want %q", answer, "forty-two")
	}
}

func TestRunToolCallFlow(t *testing.T) {
	tool := &fakeTool{name: "search_documents", result: "[report.pdf] revenue grew 12%"}
	provider := &scriptedLLM{outputs: []string{
		"Thought: I should search.\nAction: search_documents\nAction Input: revenue growth",
		"Thought: I now know the final answer\nFinal Answer: Revenue grew 12% last year.",
	}}
	a := newTestAgent(provider, tool)

	answer, err := a.Run(context.Background(), "how did revenue change?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Revenue grew 12% last year." {
		t.Errorf("answer = %q", answer)
	}

	if len(tool.inputs) != 1 || tool.inputs[0] != "revenue growth" {
		t.Errorf("tool inputs = %v, want [revenue growth]", tool.inputs)
	}

	// The second prompt must carry the observation from the first step.
	if len(provider.prompts) != 2 {
		t.Fatalf("llm called %d times, want 2", len(provider.prompts))
	}
	if !strings.Contains(provider.prompts[1], "Observation: [report.pdf] revenue grew 12%") {
		t.Error("second prompt is missing the tool observation")
	}
}

func TestRunRecoversFromUnparsableStep(t *testing.T) {
	provider := &scriptedLLM{outputs: []string{
		"I will just ramble without any structure here.",
		"Thought: back on track.\nFinal Answer: done",
	}}
	a := newTestAgent(provider)

	answer, err := a.Run(context.Background(), "q")
	if err != nil {
		t.Fatalf("unparsable step must be recoverable, got error: %v", err)
	}
	if answer != "done" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(provider.prompts[1], "did not follow the format") {
		t.Error("corrective observation missing from the retry prompt")
	}
}

func TestRunToolErrorBecomesObservation(t *testing.T) {
	tool := &fakeTool{name: "search_documents", err: errors.New("index unavailable")}
	provider := &scriptedLLM{outputs: []string{
		"Action: search_documents\nAction Input: anything",
		"Final Answer: I could not consult the documents.",
	}}
	a := newTestAgent(provider, tool)

	answer, err := a.Run(context.Background(), "q")
	if err != nil {
		t.Fatalf("tool failure must not abort the loop: %v", err)
	}
	if answer == "" {
		t.Fatal("expected an answer")
	}
	if !strings.Contains(provider.prompts[1], "index unavailable") {
		t.Error("tool error must be surfaced as an observation")
	}
}

func TestRunUnknownToolObservation(t *testing.T) {
	tool := &fakeTool{name: "search_documents", result: "x"}
	provider := &scriptedLLM{outputs: []string{
		"Action: consult_oracle\nAction Input: anything",
		"Final Answer: ok",
	}}
	a := newTestAgent(provider, tool)

	if _, err := a.Run(context.Background(), "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.prompts[1], `Unknown tool "consult_oracle"`) {
		t.Error("unknown tool must produce a corrective observation")
	}
}

func TestRunProviderErrorIsFatal(t *testing.T) {
	provider := &scriptedLLM{err: errors.New("connection refused")}
	a := newTestAgent(provider)

	_, err := a.Run(context.Background(), "q")
	if err == nil {
		t.Fatal("provider error must abort the loop")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error must wrap the provider cause, got %v", err)
	}
}

func TestRunIterationExhaustion(t *testing.T) {
	outputs := make([]string, defaultMaxIterations)
	for i := range outputs {
		outputs[i] = "Action: search_documents\nAction Input: again"
	}
	tool := &fakeTool{name: "search_documents", result: "nothing new"}
	provider := &scriptedLLM{outputs: outputs}
	a := newTestAgent(provider, tool)

	_, err := a.Run(context.Background(), "q")
	if err == nil {
		t.Fatal("loop must fail after exhausting its iterations")
	}
}

func TestExtractFinalAnswer(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		wantOk bool
	}{
		{
			name:   "plain final answer",
			output: "Thought: done\nFinal Answer: hello",
			want:   "hello",
			wantOk: true,
		},
		{
			name:   "no marker",
			output: "Thought: still working\nAction: search_documents",
			wantOk: false,
		},
		{
			name:   "uses the last marker",
			output: "Final Answer: draft\nThought: wait\nFinal Answer: final",
			want:   "final",
			wantOk: true,
		},
		{
			name:   "multiline answer",
			output: "Final Answer: line one\nline two",
			want:   "line one\nline two",
			wantOk: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractFinalAnswer(tt.output)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("answer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantAction string
		wantInput  string
		wantOk     bool
	}{
		{
			name:       "standard pair",
			output:     "Thought: search\nAction: search_documents\nAction Input: growth",
			wantAction: "search_documents",
			wantInput:  "growth",
			wantOk:     true,
		},
		{
			name:       "action without input",
			output:     "Action: search_documents",
			wantAction: "search_documents",
			wantInput:  "",
			wantOk:     true,
		},
		{
			name:   "no action",
			output: "Thought: hmm",
			wantOk: false,
		},
		{
			name:       "indented lines",
			output:     "  Action: search_documents\n  Action Input: q",
			wantAction: "search_documents",
			wantInput:  "q",
			wantOk:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, input, ok := parseAction(tt.output)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if action != tt.wantAction {
				t.Errorf("action = %q, want %q", action, tt.wantAction)
			}
			if input != tt.wantInput {
				t.Errorf("input = %q, want %q", input, tt.wantInput)
			}
		})
	}
}
