package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/tests/helpers"
)

func TestSubmitFeedback(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t, &fakeResponder{})
	owner := helpers.CreateTestUser(t, db, "owner@iare.ac.in")
	other := helpers.CreateTestUser(t, db, "other@iare.ac.in")

	result, err := svc.SendTurn(ctx, owner, domain.TurnRequest{Message: "hi"})
	require.NoError(t, err)

	require.NoError(t, svc.SubmitFeedback(ctx, owner, result.MessageID, domain.FeedbackPositive))
	msg, err := db.GetMessage(ctx, result.MessageID)
	require.NoError(t, err)
	assert.Equal(t, domain.FeedbackPositive, msg.Feedback)

	require.NoError(t, svc.SubmitFeedback(ctx, owner, result.MessageID, domain.FeedbackNegative))
	msg, err = db.GetMessage(ctx, result.MessageID)
	require.NoError(t, err)
	assert.Equal(t, domain.FeedbackNegative, msg.Feedback)

	err = svc.SubmitFeedback(ctx, other, result.MessageID, domain.FeedbackPositive)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	err = svc.SubmitFeedback(ctx, owner, "msg_missing", domain.FeedbackPositive)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = svc.SubmitFeedback(ctx, owner, result.MessageID, " ")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	msg, err = db.GetMessage(ctx, result.MessageID)
	require.NoError(t, err)
	assert.Equal(t, domain.FeedbackNegative, msg.Feedback)
}
