// Package policy decides session access with OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Decisions returned by the session access policy.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// Actions evaluated by the policy.
const (
	ActionRead     = "read"
	ActionWrite    = "write"
	ActionDelete   = "delete"
	ActionExport   = "export"
	ActionFeedback = "feedback"
)

// AccessInput is the policy input for one session access.
type AccessInput struct {
	Action    string `json:"action"`
	UserID    string `json:"user_id"`
	OwnerID   string `json:"owner_id"`
	SessionID string `json:"session_id"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.session_access.decision"),
		rego.Module("session_access.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate returns the decision for input. An undefined decision is a deny.
func (e *Engine) Evaluate(ctx context.Context, input AccessInput) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionDeny, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return DecisionDeny, nil
}

// Allowed reports whether input is allowed.
func (e *Engine) Allowed(ctx context.Context, input AccessInput) (bool, error) {
	decision, err := e.Evaluate(ctx, input)
	if err != nil {
		return false, err
	}
	return decision == DecisionAllow, nil
}

// DefaultPolicy lets a user touch only the sessions they own.
const DefaultPolicy = `
package session_access

default decision := "deny"

decision := "allow" if {
	input.user_id != ""
	input.user_id == input.owner_id
}
`
