package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	inMemory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")

	db, err := sql.Open("sqlite3", withDefaultParams(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if inMemory {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// withDefaultParams turns on foreign keys for every pooled connection and
// makes transactions take the write lock up front.
func withDefaultParams(dsn string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000", "_txlock=immediate"}
	for _, p := range params {
		key := p[:strings.IndexByte(p, '=')+1]
		if strings.Contains(dsn, key) {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + p
		} else {
			dsn += "?" + p
		}
	}
	return dsn
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			last_message TEXT NOT NULL DEFAULT '',
			message_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, updated_at)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('USER', 'ASSISTANT')),
			content TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			feedback TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx runs fn inside a transaction.
func (s *SQLiteStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&sqliteTx{q: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpsertUser creates the user or updates the name of an existing one.
// The stored user, with its original ID, is returned.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, email, name, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET name = excluded.name`,
		user.UserID, user.Email, user.Name, user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s.GetUserByEmail(ctx, user.Email)
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, email, name, created_at FROM users WHERE email = ?`,
		email).Scan(&user.UserID, &user.Email, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return getSession(ctx, s.db, sessionID)
}

// ListSessionsByUser lists a user's sessions, most recently updated first.
// A non-positive limit returns every session.
func (s *SQLiteStore) ListSessionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Session, error) {
	query := `SELECT session_id, user_id, title, category, last_message, message_count, created_at, updated_at
		FROM sessions WHERE user_id = ? ORDER BY updated_at DESC, rowid DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(&session.SessionID, &session.UserID, &session.Title, &session.Category,
			&session.LastMessage, &session.MessageCount, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// CountSessionsByUser counts a user's sessions.
func (s *SQLiteStore) CountSessionsByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// GetMessage retrieves a message by ID.
func (s *SQLiteStore) GetMessage(ctx context.Context, messageID string) (*domain.Message, error) {
	var msg domain.Message
	var feedback sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT message_id, session_id, role, content, category, feedback, created_at FROM messages WHERE message_id = ?`,
		messageID).Scan(&msg.MessageID, &msg.SessionID, &msg.Role, &msg.Content, &msg.Category, &feedback, &msg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	msg.Feedback = feedback.String
	return &msg, nil
}

// ListMessages returns all messages of a session in timestamp order.
func (s *SQLiteStore) ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, session_id, role, content, category, feedback, created_at
		 FROM messages WHERE session_id = ? ORDER BY created_at ASC, rowid ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		var feedback sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.SessionID, &msg.Role, &msg.Content, &msg.Category, &feedback, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Feedback = feedback.String
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// UpdateMessageFeedback overwrites the feedback of a message.
func (s *SQLiteStore) UpdateMessageFeedback(ctx context.Context, messageID, feedback string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE messages SET feedback = ? WHERE message_id = ?`, feedback, messageID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// sqliteTx implements Tx on top of *sql.Tx.
type sqliteTx struct {
	q querier
}

func (t *sqliteTx) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return getSession(ctx, t.q, sessionID)
}

func (t *sqliteTx) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := t.q.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, title, category, last_message, message_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.SessionID, session.UserID, session.Title, session.Category, session.LastMessage,
		session.MessageCount, session.CreatedAt, session.UpdatedAt)
	return err
}

func (t *sqliteTx) CreateMessage(ctx context.Context, message *domain.Message) error {
	var feedback sql.NullString
	if message.Feedback != "" {
		feedback = sql.NullString{String: message.Feedback, Valid: true}
	}
	_, err := t.q.ExecContext(ctx,
		`INSERT INTO messages (message_id, session_id, role, content, category, feedback, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.MessageID, message.SessionID, message.Role, message.Content, message.Category, feedback, message.CreatedAt)
	return err
}

func (t *sqliteTx) LatestMessageTime(ctx context.Context, sessionID string) (time.Time, error) {
	var ts time.Time
	err := t.q.QueryRowContext(ctx,
		`SELECT created_at FROM messages WHERE session_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		sessionID).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	return ts, err
}

func (t *sqliteTx) RecordTurn(ctx context.Context, sessionID, userID, lastMessage string, at time.Time) (bool, error) {
	result, err := t.q.ExecContext(ctx,
		`UPDATE sessions SET last_message = ?, message_count = message_count + 2, updated_at = ?
		 WHERE session_id = ? AND user_id = ?`,
		lastMessage, at, sessionID, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (t *sqliteTx) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	if _, err := t.q.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return false, err
	}
	result, err := t.q.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func getSession(ctx context.Context, q querier, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := q.QueryRowContext(ctx,
		`SELECT session_id, user_id, title, category, last_message, message_count, created_at, updated_at
		 FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.UserID, &session.Title, &session.Category,
		&session.LastMessage, &session.MessageCount, &session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
