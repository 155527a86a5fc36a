package auth

import (
	"context"
	"testing"
	"time"
)

func newTestGate(t *testing.T) (*Gate, string) {
	t.Helper()

	user := newTestUser("user-1", "a@example.com", "pass")
	svc := NewTokenService(newMemorySessionRepo(), newMemoryUserRepo(user), time.Hour, newTestLogger())

	token, err := svc.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	return NewGate(svc), token
}

func TestGateMissingHeader(t *testing.T) {
	gate, _ := newTestGate(t)

	result := gate.Authenticate(context.Background(), "")
	if result.Outcome != OutcomeNone {
		t.Errorf("expected OutcomeNone for absent header, got %v", result.Outcome)
	}
	if result.User != nil {
		t.Errorf("no user expected without a credential")
	}
}

func TestGateEmptyBearerToken(t *testing.T) {
	gate, _ := newTestGate(t)

	for _, header := range []string{"Bearer ", "Bearer    "} {
		result := gate.Authenticate(context.Background(), header)
		if result.Outcome != OutcomeFailed {
			t.Errorf("header %q: expected OutcomeFailed, got %v", header, result.Outcome)
		}
		if result.Reason != ReasonTokenMissing {
			t.Errorf("header %q: expected %q, got %q", header, ReasonTokenMissing, result.Reason)
		}
	}
}

func TestGateInvalidToken(t *testing.T) {
	gate, _ := newTestGate(t)

	result := gate.Authenticate(context.Background(), "Bearer not-a-real-token")
	if result.Outcome != OutcomeFailed {
		t.Fatalf("expected OutcomeFailed, got %v", result.Outcome)
	}
	if result.Reason != ReasonTokenInvalid {
		t.Errorf("expected %q, got %q", ReasonTokenInvalid, result.Reason)
	}
}

func TestGateNonBearerSchemeFails(t *testing.T) {
	gate, _ := newTestGate(t)

	// A credential with the wrong scheme is treated as token material
	// and fails validation instead of passing as anonymous.
	result := gate.Authenticate(context.Background(), "Basic dXNlcjpwYXNz")
	if result.Outcome != OutcomeFailed {
		t.Fatalf("expected OutcomeFailed, got %v", result.Outcome)
	}
	if result.Reason != ReasonTokenInvalid {
		t.Errorf("expected %q, got %q", ReasonTokenInvalid, result.Reason)
	}
}

func TestGateValidToken(t *testing.T) {
	gate, token := newTestGate(t)

	result := gate.Authenticate(context.Background(), "Bearer "+token)
	if result.Outcome != OutcomeAuthenticated {
		t.Fatalf("expected OutcomeAuthenticated, got %v (reason %q)", result.Outcome, result.Reason)
	}
	if result.User == nil {
		t.Fatalf("authenticated result without a user")
	}
	if result.User.ID != "user-1" || result.User.Email != "a@example.com" {
		t.Errorf("unexpected identity claims: %s / %s", result.User.ID, result.User.Email)
	}
}

func TestGateRevokedTokenFailsGenerically(t *testing.T) {
	user := newTestUser("user-1", "a@example.com", "pass")
	sessions := newMemorySessionRepo()
	svc := NewTokenService(sessions, newMemoryUserRepo(user), time.Hour, newTestLogger())
	gate := NewGate(svc)

	token, err := svc.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if err := svc.RevokeAll(context.Background(), user.ID); err != nil {
		t.Fatalf("revoke error: %v", err)
	}

	result := gate.Authenticate(context.Background(), "Bearer "+token)
	if result.Outcome != OutcomeFailed || result.Reason != ReasonTokenInvalid {
		t.Errorf("revoked token must fail with the generic reason, got %v %q", result.Outcome, result.Reason)
	}
}
