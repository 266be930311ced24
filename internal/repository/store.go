// Package store defines the storage interface and its SQLite implementation.
package store

import (
	"context"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

// Store defines the interface for data persistence.
// Single-row reads return (nil, nil) when the row does not exist.
type Store interface {
	// User operations
	UpsertUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Session operations
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	ListSessionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Session, error)
	CountSessionsByUser(ctx context.Context, userID string) (int, error)

	// Message operations
	GetMessage(ctx context.Context, messageID string) (*domain.Message, error)
	ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error)
	UpdateMessageFeedback(ctx context.Context, messageID, feedback string) (bool, error)

	// WithTx runs fn in a write transaction. It commits when fn returns nil
	// and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// Tx is the set of writes that must commit together.
type Tx interface {
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	CreateSession(ctx context.Context, session *domain.Session) error
	CreateMessage(ctx context.Context, message *domain.Message) error
	// LatestMessageTime returns the zero time for a session without messages.
	LatestMessageTime(ctx context.Context, sessionID string) (time.Time, error)
	// RecordTurn bumps the counters of a session owned by userID.
	// It reports false when no such session exists.
	RecordTurn(ctx context.Context, sessionID, userID, lastMessage string, at time.Time) (bool, error)
	// DeleteSession removes the session and all of its messages.
	DeleteSession(ctx context.Context, sessionID string) (bool, error)
}
