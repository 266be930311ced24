package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

func TestSuggestedQuestions(t *testing.T) {
	svc, _ := newTestService(t, &fakeResponder{})

	tests := []struct {
		category string
		first    string
		count    int
	}{
		{category: "", first: "What are the admission requirements?", count: 4},
		{category: "Fees", first: "What is the fee structure?", count: 4},
		{category: "PLACEMENTS", first: "What is the placement record?", count: 4},
		{category: "Campus Life", first: "Tell me more about Campus Life", count: 3},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := svc.SuggestedQuestions(tt.category)
			require.Len(t, got, tt.count)
			assert.Equal(t, tt.first, got[0])
		})
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	svc, _ := newTestService(t, &fakeResponder{})

	got := svc.Categories()
	require.Len(t, got, 8)
	assert.Equal(t, "Admissions", got[0])

	got[0] = "changed"
	assert.Equal(t, "Admissions", svc.Categories()[0])
}

func TestUserProvisioning(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeResponder{})

	_, err := svc.ResolveUser(ctx, "new@iare.ac.in")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	created, err := svc.UpsertUser(ctx, domain.UpsertUserRequest{Email: " New@IARE.ac.in ", Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "new@iare.ac.in", created.Email)

	resolved, err := svc.ResolveUser(ctx, "NEW@iare.ac.in")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, resolved.UserID)

	_, err = svc.UpsertUser(ctx, domain.UpsertUserRequest{Email: "not-an-email"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestHealthChecks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeResponder{})
	assert.NoError(t, svc.StoreHealthy(ctx))
	assert.NoError(t, svc.UpstreamHealthy(ctx))

	down, _ := newTestService(t, &fakeResponder{err: domain.ErrUpstreamDegraded})
	assert.True(t, errors.Is(down.UpstreamHealthy(ctx), domain.ErrUpstreamDegraded))
}
