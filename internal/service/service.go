package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Manideep236692/IARE-ChatBot/internal/adapter/llm"
	"github.com/Manideep236692/IARE-ChatBot/internal/config"
	"github.com/Manideep236692/IARE-ChatBot/internal/logger"
	"github.com/Manideep236692/IARE-ChatBot/internal/metrics"
	"github.com/Manideep236692/IARE-ChatBot/internal/policy"
	"github.com/Manideep236692/IARE-ChatBot/internal/prompts"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
)

// AIResponder produces one assistant reply for a conversation window.
type AIResponder interface {
	Generate(ctx context.Context, preamble string, history []llm.ChatMessage, userText string) (string, error)
	Ping(ctx context.Context) error
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

// Service wires the session manager, conversation engine and export builder
// over one store.
type Service struct {
	*SessionManager
	*ConversationEngine
	*ExportBuilder

	store     store.Store
	responder AIResponder
	metrics   *metrics.Metrics
	log       zerolog.Logger
	now       Clock
}

func New(db store.Store, responder AIResponder, persona *prompts.Persona, policyEngine *policy.Engine, cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) *Service {
	now := Clock(func() time.Time { return time.Now().UTC() })

	sessions := NewSessionManager(db, policyEngine, m, now)
	contexts := NewContextBuilder(db, cfg.ContextWindow)
	engine := NewConversationEngine(db, sessions, contexts, responder, persona, logger.Component(log, "conversation"), m, now)
	exports := NewExportBuilder(db, sessions, cfg.AssistantLabel, m, now)

	return &Service{
		SessionManager:     sessions,
		ConversationEngine: engine,
		ExportBuilder:      exports,
		store:              db,
		responder:          responder,
		metrics:            m,
		log:                log,
		now:                now,
	}
}

// SetClock replaces the clock of every component.
func (s *Service) SetClock(now Clock) {
	s.now = now
	s.SessionManager.now = now
	s.ConversationEngine.now = now
	s.ExportBuilder.now = now
}
