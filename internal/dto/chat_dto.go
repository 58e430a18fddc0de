package dto

import "ai-webchat-be/internal/entity"

type ChatSummaryResponse struct {
	ChatID string `json:"chat_id"`
	Title  string `json:"title"`
}

type CreateChatResponse struct {
	ChatID string `json:"chat_id"`
	Title  string `json:"title"`
}

type ChatDetailResponse struct {
	Title   string           `json:"title"`
	History []entity.Message `json:"history"`
}

// AttachedFileDTO is a file payload pasted into the chat composer. Content is
// sent to the model inside the message text but never persisted to history.
type AttachedFileDTO struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content"`
}

type SendMessageRequest struct {
	Message string            `json:"message"`
	Files   []AttachedFileDTO `json:"files" validate:"omitempty,dive"`
}

// Empty reports whether there is nothing to send at all: no message text and
// no file payload either.
func (r *SendMessageRequest) Empty() bool {
	return r.Message == "" && len(r.Files) == 0
}

type SendMessageResponse struct {
	Reply string `json:"reply"`
}

type DeleteChatResponse struct {
	Message string `json:"message"`
}

type TestGeminiResponse struct {
	Status   string `json:"status"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}
