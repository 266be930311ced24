package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/metrics"
	"github.com/Manideep236692/IARE-ChatBot/internal/policy"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
)

const (
	titleMaxLen   = 50
	titleKeepLen  = 47
	titleEllipsis = "..."

	defaultPageSize = 20
	maxPageSize     = 100
)

// SessionManager owns session lifecycle and ownership checks.
type SessionManager struct {
	store   store.Store
	policy  *policy.Engine
	metrics *metrics.Metrics
	now     Clock
}

func NewSessionManager(db store.Store, policyEngine *policy.Engine, m *metrics.Metrics, now Clock) *SessionManager {
	return &SessionManager{store: db, policy: policyEngine, metrics: m, now: now}
}

// DeriveTitle keeps text up to 50 characters and otherwise cuts it to 47
// characters followed by "...".
func DeriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleMaxLen {
		return text
	}
	return string(runes[:titleKeepLen]) + titleEllipsis
}

// ResolveOrCreate returns the caller's session, or a new unsaved session when
// sessionID is empty. The new session is inserted with the first turn.
func (m *SessionManager) ResolveOrCreate(ctx context.Context, user *domain.User, sessionID, firstMessage, category string) (*domain.Session, bool, error) {
	if sessionID != "" {
		session, err := m.getOwned(ctx, user, sessionID, policy.ActionWrite)
		return session, false, err
	}

	now := m.now()
	return &domain.Session{
		SessionID: domain.NewSessionID(),
		UserID:    user.UserID,
		Title:     DeriveTitle(firstMessage),
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}, true, nil
}

// RecordTurn applies one completed turn to the session counters inside tx.
func (m *SessionManager) RecordTurn(ctx context.Context, tx store.Tx, user *domain.User, sessionID, userText string, at time.Time) (*domain.Session, error) {
	ok, err := tx.RecordTurn(ctx, sessionID, user.UserID, userText, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	session, err := tx.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return session, nil
}

// GetOwned returns the session if it exists and belongs to user.
func (m *SessionManager) GetOwned(ctx context.Context, user *domain.User, sessionID string) (*domain.Session, error) {
	return m.getOwned(ctx, user, sessionID, policy.ActionRead)
}

// GetSessionDetail returns an owned session with its messages.
func (m *SessionManager) GetSessionDetail(ctx context.Context, user *domain.User, sessionID string) (*domain.SessionDetail, error) {
	session, err := m.GetOwned(ctx, user, sessionID)
	if err != nil {
		return nil, err
	}
	messages, err := m.store.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, domain.NewStorageError("list messages", err)
	}
	return &domain.SessionDetail{Session: *session, Messages: messages}, nil
}

// ListForUser returns every session of user, most recently updated first.
func (m *SessionManager) ListForUser(ctx context.Context, user *domain.User) ([]domain.Session, error) {
	sessions, err := m.store.ListSessionsByUser(ctx, user.UserID, 0, 0)
	if err != nil {
		return nil, domain.NewStorageError("list sessions", err)
	}
	return sessions, nil
}

// ListPageForUser returns one zero-based page of the user's sessions.
func (m *SessionManager) ListPageForUser(ctx context.Context, user *domain.User, page, size int) (*domain.SessionPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	total, err := m.store.CountSessionsByUser(ctx, user.UserID)
	if err != nil {
		return nil, domain.NewStorageError("count sessions", err)
	}
	sessions, err := m.store.ListSessionsByUser(ctx, user.UserID, size, page*size)
	if err != nil {
		return nil, domain.NewStorageError("list sessions", err)
	}
	return &domain.SessionPage{Sessions: sessions, Page: page, Size: size, Total: total}, nil
}

// DeleteOwned removes an owned session and all of its messages.
func (m *SessionManager) DeleteOwned(ctx context.Context, user *domain.User, sessionID string) error {
	if _, err := m.getOwned(ctx, user, sessionID, policy.ActionDelete); err != nil {
		return err
	}

	err := m.store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.DeleteSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return domain.NewStorageError("delete session", err)
	}
	m.metrics.RecordSessionDeleted()
	return nil
}

func (m *SessionManager) getOwned(ctx context.Context, user *domain.User, sessionID, action string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is empty: %w", domain.ErrNotFound)
	}
	session, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, domain.NewStorageError("get session", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err := m.authorize(ctx, user, session, action); err != nil {
		return nil, err
	}
	return session, nil
}

func (m *SessionManager) authorize(ctx context.Context, user *domain.User, session *domain.Session, action string) error {
	allowed, err := m.policy.Allowed(ctx, policy.AccessInput{
		Action:    action,
		UserID:    user.UserID,
		OwnerID:   session.UserID,
		SessionID: session.SessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to check session access: %w", err)
	}
	if !allowed {
		return fmt.Errorf("session %s: %w", session.SessionID, domain.ErrForbidden)
	}
	return nil
}
