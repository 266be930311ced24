package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Manideep236692/IARE-ChatBot/internal/adapter/llm"
	"github.com/Manideep236692/IARE-ChatBot/internal/config"
	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/policy"
	"github.com/Manideep236692/IARE-ChatBot/internal/prompts"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
	"github.com/Manideep236692/IARE-ChatBot/tests/helpers"
)

type responderCall struct {
	preamble string
	history  []llm.ChatMessage
	userText string
}

// fakeResponder records calls and answers with reply, or with "echo: <text>"
// when reply is empty.
type fakeResponder struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []responderCall
}

func (f *fakeResponder) Generate(ctx context.Context, preamble string, history []llm.ChatMessage, userText string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, responderCall{
		preamble: preamble,
		history:  append([]llm.ChatMessage(nil), history...),
		userText: userText,
	})
	if f.err != nil {
		return "", f.err
	}
	if f.reply != "" {
		return f.reply, nil
	}
	return "echo: " + userText, nil
}

func (f *fakeResponder) Ping(ctx context.Context) error {
	return f.err
}

func (f *fakeResponder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeResponder) lastCall() responderCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newTestService(t *testing.T, responder AIResponder) (*Service, store.Store) {
	t.Helper()

	db := helpers.NewTestSQLiteStore(t)
	return newTestServiceWithStore(t, db, responder), db
}

func newTestServiceWithStore(t *testing.T, db store.Store, responder AIResponder) *Service {
	t.Helper()

	policyEngine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	persona, err := prompts.LoadPersona("")
	if err != nil {
		t.Fatalf("LoadPersona failed: %v", err)
	}
	cfg := &config.Config{ContextWindow: config.DefaultContextWindow, AssistantLabel: "Assistant"}

	return New(db, responder, persona, policyEngine, cfg, zerolog.Nop(), nil)
}

// failingStore hands out transactions whose assistant message insert fails.
type failingStore struct {
	store.Store
}

func (s failingStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(failingTx{Tx: tx})
	})
}

type failingTx struct {
	store.Tx
}

func (tx failingTx) CreateMessage(ctx context.Context, message *domain.Message) error {
	if message.Role == domain.RoleAssistant {
		return errors.New("disk full")
	}
	return tx.Tx.CreateMessage(ctx, message)
}
