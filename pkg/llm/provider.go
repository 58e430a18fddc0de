package llm

import (
	"context"
)

// Roles in the provider turn format. Stored history maps onto these 1:1.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message represents a chat turn in a provider-agnostic format.
type Message struct {
	Role    string
	Content string
}

// LLMProvider defines the contract for any LLM backend. The last message in
// history is the prompt being answered; earlier entries are replayed context,
// oldest first.
type LLMProvider interface {
	Chat(ctx context.Context, history []Message) (string, error)
}
