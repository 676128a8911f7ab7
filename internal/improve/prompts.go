package improve

import (
	"fmt"
	"strings"

	"github.com/polishedai/polished/internal/llm"
	"github.com/polishedai/polished/internal/polish"
)

// temperature keeps rewrites close to the input while allowing rephrasing.
const temperature = 0.4

const systemTemplate = `You are a writing assistant working inside a browser extension.
The user has selected a segment of text from an email or chat message.

Your goals, in order of importance:
1. Add missing punctuation.
2. Fix capitalization errors.
3. Improve grammar and sentence structure.
4. Adjust the tone to be %s.

Input text: "%s"

Return ONLY the improved text. Do not wrap it in quotes. Do not add a preamble such as "Here is the improved text". Just the text.`

// buildMessages returns the conversation sent for one improvement.
func buildMessages(text string, tone polish.Tone) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: fmt.Sprintf(systemTemplate, strings.ToLower(tone.String()), text)},
		{Role: llm.RoleUser, Content: text},
	}
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{"“", "”"},
	{"'", "'"},
}

// cleanResult trims the model output and removes one pair of wrapping
// quotes unless the input was itself quoted that way.
func cleanResult(input, output string) string {
	out := strings.TrimSpace(output)
	in := strings.TrimSpace(input)
	for _, q := range quotePairs {
		if len(out) < len(q[0])+len(q[1]) {
			continue
		}
		if strings.HasPrefix(out, q[0]) && strings.HasSuffix(out, q[1]) {
			if strings.HasPrefix(in, q[0]) && strings.HasSuffix(in, q[1]) {
				return out
			}
			return strings.TrimSpace(out[len(q[0]) : len(out)-len(q[1])])
		}
	}
	return out
}
