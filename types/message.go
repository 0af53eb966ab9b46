package types

import (
	"time"
)

// MessageKind identifies who produced a message within a turn.
type MessageKind string

const (
	KindUser   MessageKind = "user"
	KindAgent  MessageKind = "agent"
	KindExpert MessageKind = "expert"
)

// Message is a single recorded utterance within a turn. Messages are
// immutable once recorded; ordering is insertion order within the turn.
type Message struct {
	Sender    AgentID     `json:"sender"`
	Content   string      `json:"content"`
	Kind      MessageKind `json:"kind"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessage creates a new message with the given kind, sender and content.
func NewMessage(kind MessageKind, sender AgentID, content string) Message {
	return Message{
		Sender:    sender,
		Content:   content,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a message recorded on behalf of the end user.
func NewUserMessage(content string) Message {
	return NewMessage(KindUser, "user", content)
}

// NewAgentMessage creates a message recorded on behalf of a domain agent.
func NewAgentMessage(sender AgentID, content string) Message {
	return NewMessage(KindAgent, sender, content)
}

// NewExpertMessage creates a message recorded on behalf of the human expert.
func NewExpertMessage(sender AgentID, content string) Message {
	return NewMessage(KindExpert, sender, content)
}
