package entity

// SessionState is everything the server remembers about one browser session.
// It is loaded, mutated and saved whole on each request; the session backend
// only guarantees safety for a single browser's sequential requests.
type SessionState struct {
	User      *User                  `json:"user,omitempty"`
	GuestMode bool                   `json:"guest_mode"`
	Chats     map[string]*ChatThread `json:"chats"`
	ChatOrder []string               `json:"chat_order"`
}

func NewSessionState() *SessionState {
	return &SessionState{
		Chats:     make(map[string]*ChatThread),
		ChatOrder: make([]string, 0),
	}
}

// Authenticated reports whether the session may use the chat API. Guest mode
// counts as authenticated.
func (s *SessionState) Authenticated() bool {
	return s.User != nil || s.GuestMode
}

// AddChat inserts a thread and records its position so listing preserves
// creation order.
func (s *SessionState) AddChat(chat *ChatThread) {
	if s.Chats == nil {
		s.Chats = make(map[string]*ChatThread)
	}
	s.Chats[chat.ChatID] = chat
	s.ChatOrder = append(s.ChatOrder, chat.ChatID)
}

// RemoveChat deletes a thread. It reports false when the id is unknown;
// deleting twice is an error at the service layer, not a no-op.
func (s *SessionState) RemoveChat(chatID string) bool {
	if _, ok := s.Chats[chatID]; !ok {
		return false
	}
	delete(s.Chats, chatID)
	for i, id := range s.ChatOrder {
		if id == chatID {
			s.ChatOrder = append(s.ChatOrder[:i], s.ChatOrder[i+1:]...)
			break
		}
	}
	return true
}

// OrderedChats returns threads in creation order, skipping any dangling ids.
func (s *SessionState) OrderedChats() []*ChatThread {
	chats := make([]*ChatThread, 0, len(s.ChatOrder))
	for _, id := range s.ChatOrder {
		if chat, ok := s.Chats[id]; ok {
			chats = append(chats, chat)
		}
	}
	return chats
}

// Reset clears identity, guest flag and all threads. Used by logout;
// calling it on an already empty session is harmless.
func (s *SessionState) Reset() {
	s.User = nil
	s.GuestMode = false
	s.Chats = make(map[string]*ChatThread)
	s.ChatOrder = make([]string, 0)
}
