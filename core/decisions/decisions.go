// Package decisions defines the capability contract for sourcing game
// decisions from actors, whether AI-driven or human.
package decisions

import (
	"context"

	"github.com/lupine-games/werewolf-core/core/game"
)

// Candidate is one selectable target for a decision.
type Candidate struct {
	ID   string
	Name string
}

// Narration is a moderator- or player-attributed message appended to a
// provider's context buffer so later decisions can reference it.
type Narration struct {
	SpeakerID   string
	SpeakerName string
	Message     string
	IsPrivate   bool
}

// WitchOffer describes what the witch may do tonight. Each potion is
// independently consumable; an option is only offered while unused.
type WitchOffer struct {
	// PendingVictimID is tonight's werewolf victim, empty when nobody died.
	PendingVictimID   string
	PendingVictimName string
	AntidoteAvailable bool
	PoisonAvailable   bool
	Candidates        []Candidate
}

// WitchChoice is the witch's structured {save, kill} decision. The zero
// value declines both potions.
type WitchChoice struct {
	Save           bool
	PoisonTargetID string
}

// Provider sources decisions for a single actor. Target-returning methods
// abstain with an empty id; any error is recovered by the caller as an
// abstention, never propagated into the state machine. Implementations
// receive read-only snapshots and must not retain or mutate them.
type Provider interface {
	// Observe appends a narrated message to the actor's context buffer.
	Observe(narration Narration)

	// DecideNomination reports whether the actor runs for police chief.
	DecideNomination(ctx context.Context, snapshot game.Context) (bool, error)
	// DecideVote picks a target in an open voting round.
	DecideVote(ctx context.Context, snapshot game.Context, candidates []Candidate) (string, error)
	// DecideKill picks the werewolves' victim for the night.
	DecideKill(ctx context.Context, snapshot game.Context, candidates []Candidate) (string, error)
	// DecideInvestigate picks the seer's investigation target.
	DecideInvestigate(ctx context.Context, snapshot game.Context, candidates []Candidate) (string, error)
	// DecideWitch resolves the witch's potion offer.
	DecideWitch(ctx context.Context, snapshot game.Context, offer WitchOffer) (WitchChoice, error)
	// DecideHunterKill picks the dying hunter's retaliation target.
	DecideHunterKill(ctx context.Context, snapshot game.Context, candidates []Candidate) (string, error)
	// Speak produces the actor's statement for their day speaking turn.
	Speak(ctx context.Context, snapshot game.Context) (string, error)
}
