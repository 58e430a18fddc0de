package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ai-webchat-be/internal/constant"
	"ai-webchat-be/internal/pkg/logger"
	"ai-webchat-be/pkg/llm"
	"ai-webchat-be/pkg/llm/gemini"
)

// ILLMGatewayService is the one outbound path to the text-generation
// provider. Generate never fails outward: provider problems come back as
// fixed human-readable reply strings, shown to the user like any chat reply.
type ILLMGatewayService interface {
	Generate(ctx context.Context, prompt string, history []llm.Message) string
}

type llmGatewayService struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewLLMGatewayService(provider llm.LLMProvider, log logger.ILogger) ILLMGatewayService {
	return &llmGatewayService{
		provider: provider,
		log:      log,
	}
}

func (s *llmGatewayService) Generate(ctx context.Context, prompt string, history []llm.Message) string {
	if strings.TrimSpace(prompt) == "" {
		return constant.ErrMsgEmptyPrompt
	}

	turns := make([]llm.Message, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, llm.Message{Role: llm.RoleUser, Content: prompt})

	reply, err := s.provider.Chat(ctx, turns)
	if err != nil {
		s.log.Error("llm", "Provider call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return classifyProviderError(err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return constant.EmptyReplyPlaceholder
	}
	return reply
}

// classifyProviderError maps a provider failure onto one of the fixed reply
// strings using the typed HTTP status. Purely cosmetic: there is no retry.
func classifyProviderError(err error) string {
	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized,
			apiErr.StatusCode == http.StatusBadRequest && apiErr.HasMarker("API_KEY"):
			return constant.ErrMsgInvalidAPIKey
		case apiErr.StatusCode == http.StatusNotFound:
			return constant.ErrMsgModelNotFound
		case apiErr.StatusCode == http.StatusForbidden:
			return constant.ErrMsgAccessDenied
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return constant.ErrMsgQuotaExceeded
		}
	}
	return "❌ Error: " + err.Error()
}
