package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
)

func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// CreateTestUser provisions a user with the given email.
func CreateTestUser(t *testing.T, s store.Store, email string) *domain.User {
	t.Helper()

	user, err := s.UpsertUser(context.Background(), &domain.User{
		UserID:    domain.NewUserID(),
		Email:     email,
		Name:      "Test " + email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateTestSession inserts a session with the given messages, alternating
// USER and ASSISTANT and spaced one second apart starting at start.
func CreateTestSession(t *testing.T, s store.Store, user *domain.User, title string, start time.Time, contents ...string) *domain.Session {
	t.Helper()

	ctx := context.Background()
	session := &domain.Session{
		SessionID: domain.NewSessionID(),
		UserID:    user.UserID,
		Title:     title,
		CreatedAt: start,
		UpdatedAt: start,
	}
	messages := make([]*domain.Message, 0, len(contents))
	for i, content := range contents {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		msg := &domain.Message{
			MessageID: domain.NewMessageID(),
			SessionID: session.SessionID,
			Role:      role,
			Content:   content,
			CreatedAt: start.Add(time.Duration(i) * time.Second),
		}
		messages = append(messages, msg)
		session.MessageCount++
		session.UpdatedAt = msg.CreatedAt
		if role == domain.RoleUser {
			session.LastMessage = content
		}
	}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.CreateSession(ctx, session); err != nil {
			return err
		}
		for _, msg := range messages {
			if err := tx.CreateMessage(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}
