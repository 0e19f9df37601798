package models

// TokenUsage holds the token counters reported by the inference API. Any of
// the fields may be zero when the provider does not report them.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// AIResponse is the text produced by one successful generation call.
type AIResponse struct {
	Text  string
	Usage *TokenUsage
}
