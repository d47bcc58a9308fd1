package service

import (
	"context"
	"fmt"

	"hustle-mentor-be/internal/config"
	"hustle-mentor-be/internal/dto"
	"hustle-mentor-be/internal/pkg/logger"
	"hustle-mentor-be/internal/pkg/serverutils"
	"hustle-mentor-be/pkg/guidancecache"
	"hustle-mentor-be/pkg/journey"
	"hustle-mentor-be/pkg/llm"
)

// systemPrompt fixes the mentor persona for every completion call.
const systemPrompt = `You are The Hustle Mentor, a concise, practical business coach for South African youth.
- Give clear, actionable steps with bullet points.
- Keep the tone encouraging but direct.
- Assume low budget, mobile-first, and WhatsApp-friendly tactics.
- When suggesting pricing, include quick sanity checks.
- Keep answers short (under 180 words) unless more detail is clearly needed.`

const (
	guidanceTemperature = 0.5
	guidanceMaxTokens   = 400
)

type IGuidanceService interface {
	journey.Gateway
	RequestGuidance(ctx context.Context, req *dto.GuidanceRequest) (*dto.GuidanceResponse, error)
}

type guidanceService struct {
	provider llm.LLMProvider
	cache    *guidancecache.Cache
	aiCfg    config.AIConfig
	log      logger.ILogger
}

func NewGuidanceService(
	provider llm.LLMProvider,
	cache *guidancecache.Cache,
	aiCfg config.AIConfig,
	log logger.ILogger,
) IGuidanceService {
	return &guidanceService{
		provider: provider,
		cache:    cache,
		aiCfg:    aiCfg,
		log:      log,
	}
}

// RequestGuidance is the HTTP-facing entry. A missing stage id or a missing
// note field is rejected before any network call.
func (s *guidanceService) RequestGuidance(ctx context.Context, req *dto.GuidanceRequest) (*dto.GuidanceResponse, error) {
	if req.StageId == "" || req.Note == nil {
		return nil, serverutils.NewInvalidPayload()
	}
	text, err := s.Guide(ctx, journey.GuidanceContext{
		StageId:       req.StageId,
		StageTitle:    req.StageTitle,
		Prompt:        req.Prompt,
		Note:          *req.Note,
		PreviousNotes: req.PreviousNotes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.GuidanceResponse{Message: text}, nil
}

// Guide forwards the stage context to the completion provider. Credentials
// are checked here, at request time; identical contexts within the cache TTL
// skip the model round trip.
func (s *guidanceService) Guide(ctx context.Context, gc journey.GuidanceContext) (string, error) {
	if s.aiCfg.LLMProvider == "openai" && s.aiCfg.OpenAIAPIKey == "" {
		return "", serverutils.NewConfigurationError("Missing OPENAI_API_KEY")
	}

	key := guidancecache.Key(gc.StageId, gc.StageTitle, gc.Prompt, gc.Note, gc.PreviousNotes)
	if text, ok := s.cache.Get(ctx, key); ok {
		return text, nil
	}

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserMessage(gc)},
	}

	text, err := s.provider.Chat(ctx, history,
		llm.WithTemperature(guidanceTemperature),
		llm.WithMaxTokens(guidanceMaxTokens),
	)
	if err != nil {
		s.log.Error("guidance", "Upstream completion call failed", map[string]interface{}{
			"error":    err.Error(),
			"stage_id": gc.StageId,
		})
		return "", serverutils.NewGatewayUnavailable(err)
	}

	s.cache.Set(ctx, key, text)
	return text, nil
}

func buildUserMessage(gc journey.GuidanceContext) string {
	title := gc.StageTitle
	if title == "" {
		title = gc.StageId
	}
	note := gc.Note
	if note == "" {
		note = "None provided"
	}
	prev := gc.PreviousNotes
	if prev == "" {
		prev = "None provided"
	}
	return fmt.Sprintf("Stage: %s\nPrompt: %s\nCurrent note: %s\nPrevious notes: %s",
		title, gc.Prompt, note, prev)
}
