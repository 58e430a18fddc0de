package entity

// Message is a single conversation turn half. Role is one of the
// constant.ChatMessageRole* values; history order is replayed verbatim as
// context for the next model call, so it is append-only.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatThread is one named conversation belonging to a session. A completed
// turn always appends exactly two messages (user then model), so History has
// even length between requests.
type ChatThread struct {
	ChatID  string    `json:"chat_id"`
	Title   string    `json:"title"`
	History []Message `json:"history"`
}
