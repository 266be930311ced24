package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

// ResolveUser looks up the user behind an authenticated email.
func (s *Service) ResolveUser(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is empty: %w", domain.ErrNotFound)
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewStorageError("get user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return user, nil
}

// UpsertUser provisions or renames a user profile.
func (s *Service) UpsertUser(ctx context.Context, req domain.UpsertUserRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required: %w", domain.ErrInvalidInput)
	}

	user, err := s.store.UpsertUser(ctx, &domain.User{
		UserID:    domain.NewUserID(),
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, domain.NewStorageError("upsert user", err)
	}
	s.log.Info().Str("user_id", user.UserID).Msg("user profile provisioned")
	return user, nil
}
