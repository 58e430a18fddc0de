package service

import (
	"context"
	"strings"

	"ai-webchat-be/internal/constant"
	"ai-webchat-be/internal/dto"
	"ai-webchat-be/internal/entity"
	"ai-webchat-be/internal/pkg/logger"
	"ai-webchat-be/pkg/llm"

	"github.com/google/uuid"
)

// IChatService is CRUD over the session's chat threads plus the message turn.
// It mutates the SessionState it is handed; persisting the state back into
// the session store is the caller's job.
type IChatService interface {
	List(state *entity.SessionState) []*dto.ChatSummaryResponse
	Create(state *entity.SessionState) *dto.CreateChatResponse
	Get(state *entity.SessionState, chatID string) (*dto.ChatDetailResponse, error)
	Delete(state *entity.SessionState, chatID string) error
	SendMessage(ctx context.Context, state *entity.SessionState, chatID string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type chatService struct {
	gateway ILLMGatewayService
	log     logger.ILogger
}

func NewChatService(gateway ILLMGatewayService, log logger.ILogger) IChatService {
	return &chatService{
		gateway: gateway,
		log:     log,
	}
}

func (s *chatService) List(state *entity.SessionState) []*dto.ChatSummaryResponse {
	chats := state.OrderedChats()
	res := make([]*dto.ChatSummaryResponse, 0, len(chats))
	for _, chat := range chats {
		res = append(res, &dto.ChatSummaryResponse{
			ChatID: chat.ChatID,
			Title:  chat.Title,
		})
	}
	return res
}

func (s *chatService) Create(state *entity.SessionState) *dto.CreateChatResponse {
	chat := &entity.ChatThread{
		ChatID:  uuid.NewString(),
		Title:   constant.DefaultChatTitle,
		History: make([]entity.Message, 0),
	}
	state.AddChat(chat)

	return &dto.CreateChatResponse{
		ChatID: chat.ChatID,
		Title:  chat.Title,
	}
}

func (s *chatService) Get(state *entity.SessionState, chatID string) (*dto.ChatDetailResponse, error) {
	chat, ok := state.Chats[chatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	return &dto.ChatDetailResponse{
		Title:   chat.Title,
		History: chat.History,
	}, nil
}

func (s *chatService) Delete(state *entity.SessionState, chatID string) error {
	if !state.RemoveChat(chatID) {
		return ErrChatNotFound
	}
	return nil
}

// SendMessage runs one turn: validate input, replay stored history as
// provider context, call the gateway, then append the user/model pair and
// derive the title on the thread's first completed turn. The gateway never
// fails, so a provider problem still lands in history as the model reply.
func (s *chatService) SendMessage(ctx context.Context, state *entity.SessionState, chatID string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if req.Empty() {
		return nil, ErrEmptyMessage
	}

	chat, ok := state.Chats[chatID]
	if !ok {
		return nil, ErrChatNotFound
	}

	history := make([]llm.Message, 0, len(chat.History))
	for _, msg := range chat.History {
		history = append(history, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	// The prompt may carry inlined file contents; those go to the model but
	// never into stored history.
	reply := s.gateway.Generate(ctx, req.Message, history)
	stored := storedUserMessage(req)

	chat.History = append(chat.History,
		entity.Message{Role: constant.ChatMessageRoleUser, Content: stored},
		entity.Message{Role: constant.ChatMessageRoleModel, Content: reply},
	)

	if chat.Title == constant.DefaultChatTitle && len(chat.History) == 2 {
		chat.Title = deriveTitle(stored)
	}

	s.log.Debug("chat", "Turn completed", map[string]interface{}{
		"chat_id": chatID,
		"turns":   len(chat.History) / 2,
	})

	return &dto.SendMessageResponse{Reply: reply}, nil
}

// storedUserMessage is what goes into history for display: the original
// message with any appended attachment block stripped off.
func storedUserMessage(req *dto.SendMessageRequest) string {
	if len(req.Files) == 0 {
		return req.Message
	}
	if i := strings.Index(req.Message, constant.AttachedFilesMarker); i >= 0 {
		return req.Message[:i]
	}
	return req.Message
}

// deriveTitle truncates the first user message to the title limit, marking
// truncation with an ellipsis. File-only turns get a fixed placeholder.
func deriveTitle(message string) string {
	if message == "" {
		message = constant.FileUploadTitle
	}
	runes := []rune(message)
	if len(runes) > constant.ChatTitleMaxLen {
		return string(runes[:constant.ChatTitleMaxLen]) + "..."
	}
	return message
}
