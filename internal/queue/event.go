// Package queue defines the message payloads exchanged over the broker and
// the background consumer that applies them.
package queue

// GenerationQueueName is the durable queue carrying completion events.
const GenerationQueueName = "generation.completed"

// Tool identifiers carried in completion events.
const (
	ToolCaption = "caption"
	ToolVoice   = "voice"
)

// GenerationCompletedEvent is published when an AI tool finishes a
// generation for an account.  The consumer applies the usage accounting, so
// the request path never writes the counter directly and the counter only
// ever moves forward.
type GenerationCompletedEvent struct {
	AccountID   string `json:"account_id"`
	Tool        string `json:"tool"`
	CompletedAt string `json:"completed_at"` // RFC 3339, UTC
}
