package llm

import (
	"github.com/rs/zerolog"

	"github.com/Manideep236692/IARE-ChatBot/internal/config"
)

// ModeMock selects the mock client.
const ModeMock = "mock"

// NewLLMClient creates an LLM client based on cfg.LLMMode.
// If the mode is "mock", returns a MockClient; otherwise returns a real Client.
func NewLLMClient(cfg *config.Config, log zerolog.Logger) LLMClient {
	if cfg.LLMMode == ModeMock {
		log.Info().Msg("LLM_MODE=mock detected, using mock LLM client")
		return NewMockClient()
	}
	if cfg.LLMAPIKey == "" {
		log.Warn().Str("base_url", cfg.LLMBaseURL).Msg("LLM_API_KEY is empty, upstream calls will likely fail")
	}
	return NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
}
