package improve

import (
	"github.com/polishedai/polished/internal/llm"
	"github.com/polishedai/polished/internal/polish"
)

// Estimate is the projected cost of improving one piece of text.
type Estimate struct {
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
}

// EstimateRequest projects token usage and cost for one Improve call
// without contacting the provider. The rewrite is assumed to be about as
// long as the input.
func EstimateRequest(model, text string, tone polish.Tone) Estimate {
	in := 0
	for _, m := range buildMessages(text, tone) {
		in += llm.EstimateTokens(m.Content)
	}
	out := llm.EstimateTokens(text)
	return Estimate{
		Model:        model,
		InputTokens:  in,
		OutputTokens: out,
		CostUSD:      llm.EstimateCost(model, in, out),
	}
}
