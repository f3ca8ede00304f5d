package source

// rawEntry represents a single line in a Claude Code JSONL session file.
// Fields the aggregation core doesn't consume are ignored by the decoder.
type rawEntry struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
	Cwd       string      `json:"cwd,omitempty"`
	UUID      string      `json:"uuid,omitempty"`
	Message   *rawMessage `json:"message,omitempty"`
}

// rawMessage represents the assistant's message envelope.
type rawMessage struct {
	ID    string    `json:"id"`
	Model string    `json:"model"`
	Usage *rawUsage `json:"usage,omitempty"`
}

// rawUsage holds token counts from the API response.
type rawUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
}
