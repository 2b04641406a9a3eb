package agent

import "strings"

// reactTemplate drives the think-act-observe loop. The fallback rule is part
// of the behavioral contract: when the documents lack the answer, the agent
// must say so explicitly before answering from general knowledge.
const reactTemplate = `You are a helpful assistant answering questions about the user's uploaded documents.
The input may include the recent conversation history and relevant long-term memories; use them for context.

You have access to the following tools:

{tools}

Use this exact format:

Question: the input you must answer
Thought: reason about what to do next
Action: the tool to use, one of [{tool_names}]
Action Input: the input to the tool
Observation: the result of the action
... (Thought/Action/Action Input/Observation can repeat)
Thought: I now know the final answer
Final Answer: the final answer to the question

Rules:
- Always search the user's documents first when the question could be answered from them.
- If the uploaded documents do not contain the answer, your Final Answer must explicitly state that the documents do not contain this information, and only then provide an answer from general knowledge.
- The Final Answer is plain text addressed to the user.

Begin!

Question: {input}
{agent_scratchpad}`

var templatePlaceholders = []string{"{tools}", "{tool_names}", "{input}", "{agent_scratchpad}"}

// renderPrompt fills the template for one loop iteration.
func renderPrompt(template string, tools []Tool, input, scratchpad string) string {
	descriptions := make([]string, len(tools))
	names := make([]string, len(tools))
	for i, t := range tools {
		descriptions[i] = t.Name() + ": " + t.Description()
		names[i] = t.Name()
	}

	out := template
	out = strings.ReplaceAll(out, "{tools}", strings.Join(descriptions, "\n"))
	out = strings.ReplaceAll(out, "{tool_names}", strings.Join(names, ", "))
	out = strings.ReplaceAll(out, "{input}", input)
	out = strings.ReplaceAll(out, "{agent_scratchpad}", scratchpad)
	return out
}

// validTemplate checks that every placeholder the loop depends on is present.
func validTemplate(template string) bool {
	for _, p := range templatePlaceholders {
		if !strings.Contains(template, p) {
			return false
		}
	}
	return true
}
