package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Manideep236692/IARE-ChatBot/internal/adapter/llm"
	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/metrics"
	"github.com/Manideep236692/IARE-ChatBot/internal/prompts"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
)

// FallbackResponse is stored and returned when the responder fails.
const FallbackResponse = "I apologize, but I'm having trouble processing your request right now. Please try again later or contact support if the issue persists."

// ConversationEngine runs one user turn end to end.
type ConversationEngine struct {
	store     store.Store
	sessions  *SessionManager
	contexts  *ContextBuilder
	responder AIResponder
	persona   *prompts.Persona
	log       zerolog.Logger
	metrics   *metrics.Metrics
	now       Clock
}

func NewConversationEngine(db store.Store, sessions *SessionManager, contexts *ContextBuilder, responder AIResponder, persona *prompts.Persona, log zerolog.Logger, m *metrics.Metrics, now Clock) *ConversationEngine {
	return &ConversationEngine{
		store:     db,
		sessions:  sessions,
		contexts:  contexts,
		responder: responder,
		persona:   persona,
		log:       log,
		metrics:   m,
		now:       now,
	}
}

// SendTurn answers req and persists the user and assistant messages together
// with the session counters. A failed responder call is answered with
// FallbackResponse and still persisted.
func (e *ConversationEngine) SendTurn(ctx context.Context, user *domain.User, req domain.TurnRequest) (*domain.TurnResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message is required: %w", domain.ErrInvalidInput)
	}

	session, isNew, err := e.sessions.ResolveOrCreate(ctx, user, req.SessionID, req.Message, req.Category)
	if err != nil {
		return nil, err
	}

	pending := domain.Message{Role: domain.RoleUser, Content: req.Message, Category: req.Category}
	window, err := e.contexts.ForSession(ctx, session, isNew, pending)
	if err != nil {
		e.metrics.RecordTurn(metrics.OutcomeError)
		return nil, err
	}

	preamble, err := e.persona.Render(req.Category)
	if err != nil {
		e.metrics.RecordTurn(metrics.OutcomeError)
		return nil, err
	}

	reply, degraded := e.respond(ctx, session.SessionID, preamble, window)

	userMsg := &domain.Message{
		MessageID: domain.NewMessageID(),
		SessionID: session.SessionID,
		Role:      domain.RoleUser,
		Content:   req.Message,
		Category:  req.Category,
	}
	assistantMsg := &domain.Message{
		MessageID: domain.NewMessageID(),
		SessionID: session.SessionID,
		Role:      domain.RoleAssistant,
		Content:   reply,
		Category:  req.Category,
	}

	err = e.store.WithTx(ctx, func(tx store.Tx) error {
		at, err := e.nextTimestamp(ctx, tx, session.SessionID)
		if err != nil {
			return err
		}
		if !isNew {
			current, err := tx.GetSession(ctx, session.SessionID)
			if err != nil {
				return err
			}
			if current == nil {
				return fmt.Errorf("session %s: %w", session.SessionID, domain.ErrNotFound)
			}
		} else {
			session.CreatedAt = at
			session.UpdatedAt = at
			if err := tx.CreateSession(ctx, session); err != nil {
				return err
			}
		}

		userMsg.CreatedAt = at
		assistantMsg.CreatedAt = at.Add(time.Microsecond)
		if err := tx.CreateMessage(ctx, userMsg); err != nil {
			return err
		}
		if err := tx.CreateMessage(ctx, assistantMsg); err != nil {
			return err
		}

		_, err = e.sessions.RecordTurn(ctx, tx, user, session.SessionID, req.Message, assistantMsg.CreatedAt)
		return err
	})
	if err != nil {
		e.metrics.RecordTurn(metrics.OutcomeError)
		e.log.Error().Err(err).Str("session_id", session.SessionID).Msg("failed to persist turn")
		return nil, domain.NewStorageError("persist turn", err)
	}

	if degraded {
		e.metrics.RecordTurn(metrics.OutcomeFallback)
	} else {
		e.metrics.RecordTurn(metrics.OutcomeOK)
	}

	return &domain.TurnResult{
		MessageID: assistantMsg.MessageID,
		Response:  reply,
		Category:  req.Category,
		Timestamp: assistantMsg.CreatedAt,
		SessionID: session.SessionID,
	}, nil
}

// respond calls the responder with window, whose last entry is the current
// user message. It reports true when the fallback text was used.
func (e *ConversationEngine) respond(ctx context.Context, sessionID, preamble string, window []llm.ChatMessage) (string, bool) {
	history := window[:len(window)-1]
	current := window[len(window)-1].Content

	start := time.Now()
	reply, err := e.responder.Generate(ctx, preamble, history, current)
	e.metrics.RecordUpstream(time.Since(start), err)
	if err != nil {
		e.log.Warn().Err(err).Str("session_id", sessionID).Msg("AI responder failed, answering with fallback")
		return FallbackResponse, true
	}
	return reply, false
}

// nextTimestamp returns the current time, moved past the latest message of
// the session so that turns never interleave.
func (e *ConversationEngine) nextTimestamp(ctx context.Context, tx store.Tx, sessionID string) (time.Time, error) {
	at := e.now().UTC()
	latest, err := tx.LatestMessageTime(ctx, sessionID)
	if err != nil {
		return time.Time{}, err
	}
	if !latest.IsZero() && !at.After(latest) {
		at = latest.Add(time.Microsecond)
	}
	return at, nil
}
