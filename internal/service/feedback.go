package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/policy"
)

// SubmitFeedback overwrites the feedback of a message in one of the user's sessions.
func (s *Service) SubmitFeedback(ctx context.Context, user *domain.User, messageID, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("feedback is required: %w", domain.ErrInvalidInput)
	}

	msg, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return domain.NewStorageError("get message", err)
	}
	if msg == nil {
		return fmt.Errorf("message %s: %w", messageID, domain.ErrNotFound)
	}

	if _, err := s.getOwned(ctx, user, msg.SessionID, policy.ActionFeedback); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("message %s: %w", messageID, domain.ErrNotFound)
		}
		return err
	}

	ok, err := s.store.UpdateMessageFeedback(ctx, messageID, value)
	if err != nil {
		return domain.NewStorageError("update feedback", err)
	}
	if !ok {
		return fmt.Errorf("message %s: %w", messageID, domain.ErrNotFound)
	}

	s.metrics.RecordFeedback(value)
	return nil
}
