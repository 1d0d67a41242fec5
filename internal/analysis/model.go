package analysis

import "context"

// Result is the parsed outcome of one report analysis. It is immutable for
// the rest of the visit; a new upload produces a new Result.
type Result struct {
	Summary    string `json:"summary"`
	Specialist string `json:"specialist"`
	Advice     string `json:"advice"`
	Sources    string `json:"sources"`
}

// Citation is one grounding reference returned alongside the model text.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ModelOutput is the raw material the parser works over: free text plus
// whatever grounding citations the model attached.
type ModelOutput struct {
	Text      string
	Citations []Citation
}

// ModelClient is the boundary to the generative model. The model is a black
// box: image plus prompt in, text plus citations out.
type ModelClient interface {
	Analyze(ctx context.Context, image []byte, mimeType, prompt string) (*ModelOutput, error)
}
