package service

import (
	"context"

	"github.com/Manideep236692/IARE-ChatBot/internal/adapter/llm"
	"github.com/Manideep236692/IARE-ChatBot/internal/config"
	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
)

// ContextBuilder selects the recent messages sent to the responder.
type ContextBuilder struct {
	store  store.Store
	window int
}

func NewContextBuilder(db store.Store, window int) *ContextBuilder {
	if window <= 0 {
		window = config.DefaultContextWindow
	}
	return &ContextBuilder{store: db, window: window}
}

// Build keeps the last window messages in their original order.
func (b *ContextBuilder) Build(messages []domain.Message) []llm.ChatMessage {
	if len(messages) > b.window {
		messages = messages[len(messages)-b.window:]
	}
	out := make([]llm.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, llm.ChatMessage{Role: msg.Role.ChatRole(), Content: msg.Content})
	}
	return out
}

// ForSession builds the window from the session's persisted messages followed
// by pending. History is not loaded for a session that is not yet saved.
func (b *ContextBuilder) ForSession(ctx context.Context, session *domain.Session, isNew bool, pending ...domain.Message) ([]llm.ChatMessage, error) {
	var history []domain.Message
	if !isNew {
		var err error
		history, err = b.store.ListMessages(ctx, session.SessionID)
		if err != nil {
			return nil, domain.NewStorageError("load history", err)
		}
	}
	return b.Build(append(history, pending...)), nil
}
