package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/export"
	"github.com/Manideep236692/IARE-ChatBot/internal/metrics"
	"github.com/Manideep236692/IARE-ChatBot/internal/policy"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
)

// ExportBuilder assembles history exports.
type ExportBuilder struct {
	store          store.Store
	sessions       *SessionManager
	assistantLabel string
	metrics        *metrics.Metrics
	now            Clock
}

func NewExportBuilder(db store.Store, sessions *SessionManager, assistantLabel string, m *metrics.Metrics, now Clock) *ExportBuilder {
	return &ExportBuilder{
		store:          db,
		sessions:       sessions,
		assistantLabel: assistantLabel,
		metrics:        m,
		now:            now,
	}
}

// ExportAll renders every session of user, most recently updated first.
func (b *ExportBuilder) ExportAll(ctx context.Context, user *domain.User, format string) (*domain.ExportFile, error) {
	f, err := domain.ParseExportFormat(format)
	if err != nil {
		return nil, err
	}

	sessions, err := b.store.ListSessionsByUser(ctx, user.UserID, 0, 0)
	if err != nil {
		return nil, domain.NewStorageError("list sessions", err)
	}

	doc := b.newDocument(export.ScopeAll, user)
	for _, session := range sessions {
		messages, err := b.store.ListMessages(ctx, session.SessionID)
		if err != nil {
			return nil, domain.NewStorageError("list messages", err)
		}
		doc.Sessions = append(doc.Sessions, export.SessionBlock{Session: session, Messages: messages})
	}

	return b.render(f, doc, "chat-history")
}

// ExportOne renders a single owned session. Ownership is checked before the
// format, so callers who do not own sessionID never learn more than
// not-found or forbidden.
func (b *ExportBuilder) ExportOne(ctx context.Context, user *domain.User, sessionID, format string) (*domain.ExportFile, error) {
	session, err := b.sessions.getOwned(ctx, user, sessionID, policy.ActionExport)
	if err != nil {
		return nil, err
	}
	f, err := domain.ParseExportFormat(format)
	if err != nil {
		return nil, err
	}
	messages, err := b.store.ListMessages(ctx, session.SessionID)
	if err != nil {
		return nil, domain.NewStorageError("list messages", err)
	}

	doc := b.newDocument(export.ScopeSession, user)
	doc.Sessions = []export.SessionBlock{{Session: *session, Messages: messages}}

	return b.render(f, doc, "conversation-"+session.SessionID)
}

func (b *ExportBuilder) newDocument(scope export.Scope, user *domain.User) *export.Document {
	return &export.Document{
		Scope:          scope,
		User:           *user,
		ExportedAt:     b.now(),
		AssistantLabel: b.assistantLabel,
	}
}

func (b *ExportBuilder) render(f domain.ExportFormat, doc *export.Document, basename string) (*domain.ExportFile, error) {
	var buf bytes.Buffer
	if err := export.Render(&buf, f, doc); err != nil {
		return nil, fmt.Errorf("failed to render %s export: %w", f, err)
	}
	b.metrics.RecordExport(string(f), string(doc.Scope))

	return &domain.ExportFile{
		Format:      f,
		Filename:    basename + "." + string(f),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
