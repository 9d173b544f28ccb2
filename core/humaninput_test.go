package orchestration

import (
	"context"
	"testing"
	"time"

	"github.com/lupine-games/werewolf-core/core/decisions"
)

func waitForPending(t *testing.T, in *humanInbox, playerID string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		in.mu.Lock()
		_, pending := in.pending[playerID]
		in.mu.Unlock()
		if pending {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("no await registered for %s", playerID)
}

func TestHumanInboxDelivery(t *testing.T) {
	in := newHumanInbox()

	type result struct {
		message string
		ok      bool
	}
	got := make(chan result, 1)
	go func() {
		message, ok := in.await(context.Background(), "human")
		got <- result{message, ok}
	}()
	waitForPending(t, in, "human")

	if !in.deliver("human", "I vote for Ava") {
		t.Fatal("expected the pending await to accept delivery")
	}

	r := <-got
	if !r.ok || r.message != "I vote for Ava" {
		t.Errorf("await returned (%q, %t)", r.message, r.ok)
	}

	if in.deliver("human", "too late") {
		t.Error("expected no pending await after delivery")
	}
}

func TestHumanInboxExpiry(t *testing.T) {
	in := newHumanInbox()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	message, ok := in.await(ctx, "human")
	if ok || message != "" {
		t.Errorf("expected expiry to abstain, got (%q, %t)", message, ok)
	}

	if in.deliver("human", "anything") {
		t.Error("expected the expired await to be unregistered")
	}
}

func TestUnsolicitedInputIsDropped(t *testing.T) {
	in := newHumanInbox()
	if in.deliver("stranger", "hello?") {
		t.Error("expected input with no pending await to be dropped")
	}
}

func TestResolveCandidate(t *testing.T) {
	candidates := []decisions.Candidate{
		{ID: "p1", Name: "Ava"},
		{ID: "p2", Name: "Bram"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{input: "Ava", want: "p1"},
		{input: "  bram  ", want: "p2"},
		{input: "p2", want: "p2"},
		{input: "P1", want: ""},
		{input: "Cleo", want: ""},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := resolveCandidate(tt.input, candidates); got != tt.want {
			t.Errorf("resolveCandidate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
