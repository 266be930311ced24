package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input AccessInput
		want  string
	}{
		{name: "owner", input: AccessInput{Action: ActionRead, UserID: "u1", OwnerID: "u1"}, want: DecisionAllow},
		{name: "other user", input: AccessInput{Action: ActionDelete, UserID: "u2", OwnerID: "u1"}, want: DecisionDeny},
		{name: "anonymous", input: AccessInput{Action: ActionRead, UserID: "", OwnerID: ""}, want: DecisionDeny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Evaluate(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			allowed, err := engine.Allowed(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want == DecisionAllow, allowed)
		})
	}
}

func TestCustomPolicy(t *testing.T) {
	ctx := context.Background()
	custom := `
package session_access

default decision := "deny"

decision := "allow" if {
	input.user_id == input.owner_id
	input.action != "delete"
}
`
	engine, err := NewEngine(ctx, custom)
	require.NoError(t, err)

	allowed, err := engine.Allowed(ctx, AccessInput{Action: ActionDelete, UserID: "u1", OwnerID: "u1"})
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = engine.Allowed(ctx, AccessInput{Action: ActionExport, UserID: "u1", OwnerID: "u1"})
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestNewEngineRejectsInvalidPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package session_access\n\ndecision := {")
	assert.Error(t, err)
}
