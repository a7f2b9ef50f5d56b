package types

import "time"

// ReplyMetadata carries diagnostics about how a reply was produced.
type ReplyMetadata struct {
	ProcessingTime time.Duration
	Reasoning      string
	ModelUsed      string
	Timestamp      time.Time
}

// Reply is the final engine output for one message.
type Reply struct {
	Text     string
	Strategy Strategy
	Emotion  EmotionResult
	Metadata ReplyMetadata
}
