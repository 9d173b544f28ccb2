package orchestration

import (
	"context"
	"strings"
	"sync"

	"github.com/lupine-games/werewolf-core/core/decisions"
	"github.com/lupine-games/werewolf-core/core/game"
	"github.com/lupine-games/werewolf-core/core/transport"
)

// humanInbox routes inbound free-text messages to the decision awaiting
// them. At most one await is pending per player; input for players with no
// pending await is dropped by the caller.
type humanInbox struct {
	mu      sync.Mutex
	pending map[string]chan string
}

func newHumanInbox() *humanInbox {
	return &humanInbox{pending: map[string]chan string{}}
}

// await blocks until the player's next message arrives or the context
// expires. The second return is false on expiry.
func (in *humanInbox) await(ctx context.Context, playerID string) (string, bool) {
	ch := make(chan string, 1)

	in.mu.Lock()
	in.pending[playerID] = ch
	in.mu.Unlock()

	defer func() {
		in.mu.Lock()
		if in.pending[playerID] == ch {
			delete(in.pending, playerID)
		}
		in.mu.Unlock()
	}()

	select {
	case message := <-ch:
		return message, true
	case <-ctx.Done():
		return "", false
	}
}

// deliver hands a message to the player's pending await, reporting whether
// one existed.
func (in *humanInbox) deliver(playerID, message string) bool {
	in.mu.Lock()
	ch, ok := in.pending[playerID]
	if ok {
		delete(in.pending, playerID)
	}
	in.mu.Unlock()

	if !ok {
		return false
	}

	ch <- message
	return true
}

// humanProvider sources a human participant's decisions over the transport:
// it marks the player's turn, whispers the prompt, and waits for their next
// message. Expiry counts as abstention. Observe is a no-op because humans
// already receive every in-audience narration through the transport.
type humanProvider struct {
	orchestrator *Orchestrator
	playerID     string
}

var _ decisions.Provider = (*humanProvider)(nil)

func (p *humanProvider) Observe(decisions.Narration) {}

// prompt opens the player's input window, optionally whispering an
// instruction first, and waits for their reply.
func (p *humanProvider) prompt(ctx context.Context, instruction string) (string, bool) {
	o := p.orchestrator

	o.publish(ctx, []string{p.playerID}, transport.NewCurrentSpeaker(p.playerID, true))
	if instruction != "" {
		o.whisper(ctx, instruction, p.playerID)
	}

	message, ok := o.inbox.await(ctx, p.playerID)

	o.publish(ctx, []string{p.playerID}, transport.NewCurrentSpeaker(p.playerID, false))
	return strings.TrimSpace(message), ok
}

func (p *humanProvider) DecideNomination(ctx context.Context, _ game.Context) (bool, error) {
	reply, ok := p.prompt(ctx, "Reply \"run\" to run for police chief, anything else to pass.")
	if !ok {
		return false, nil
	}

	switch strings.ToLower(reply) {
	case "run", "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}

func (p *humanProvider) DecideVote(ctx context.Context, _ game.Context, candidates []decisions.Candidate) (string, error) {
	reply, ok := p.prompt(ctx, "Vote: name one of "+candidateList(candidates)+".")
	if !ok {
		return "", nil
	}
	return resolveCandidate(reply, candidates), nil
}

func (p *humanProvider) DecideKill(ctx context.Context, _ game.Context, candidates []decisions.Candidate) (string, error) {
	reply, ok := p.prompt(ctx, "Choose tonight's victim: "+candidateList(candidates)+".")
	if !ok {
		return "", nil
	}
	return resolveCandidate(reply, candidates), nil
}

func (p *humanProvider) DecideInvestigate(ctx context.Context, _ game.Context, candidates []decisions.Candidate) (string, error) {
	reply, ok := p.prompt(ctx, "Choose a player to investigate: "+candidateList(candidates)+".")
	if !ok {
		return "", nil
	}
	return resolveCandidate(reply, candidates), nil
}

func (p *humanProvider) DecideWitch(ctx context.Context, _ game.Context, offer decisions.WitchOffer) (decisions.WitchChoice, error) {
	var instruction strings.Builder
	if offer.PendingVictimID != "" && offer.AntidoteAvailable {
		instruction.WriteString("Reply \"save\" to use your antidote on " + offer.PendingVictimName + ". ")
	}
	if offer.PoisonAvailable {
		instruction.WriteString("Reply \"poison <name>\" to use your poison. ")
	}
	instruction.WriteString("Anything else keeps your potions.")

	reply, ok := p.prompt(ctx, instruction.String())
	if !ok {
		return decisions.WitchChoice{}, nil
	}

	choice := decisions.WitchChoice{}
	lowered := strings.ToLower(reply)
	if offer.AntidoteAvailable && offer.PendingVictimID != "" && strings.Contains(lowered, "save") {
		choice.Save = true
	}
	if offer.PoisonAvailable {
		if _, target, found := strings.Cut(lowered, "poison"); found {
			choice.PoisonTargetID = resolveCandidate(strings.TrimSpace(target), offer.Candidates)
		}
	}
	return choice, nil
}

func (p *humanProvider) DecideHunterKill(ctx context.Context, _ game.Context, candidates []decisions.Candidate) (string, error) {
	reply, ok := p.prompt(ctx, "Your last shot: name one of "+candidateList(candidates)+", or pass.")
	if !ok {
		return "", nil
	}
	return resolveCandidate(reply, candidates), nil
}

func (p *humanProvider) Speak(ctx context.Context, _ game.Context) (string, error) {
	reply, _ := p.prompt(ctx, "")
	return reply, nil
}

// resolveCandidate matches free text to a candidate by name or id,
// case-insensitively; anything unmatched abstains.
func resolveCandidate(input string, candidates []decisions.Candidate) string {
	input = strings.TrimSpace(input)
	for _, candidate := range candidates {
		if strings.EqualFold(candidate.Name, input) || candidate.ID == input {
			return candidate.ID
		}
	}
	return ""
}

func candidateList(candidates []decisions.Candidate) string {
	names := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		names = append(names, candidate.Name)
	}
	return strings.Join(names, ", ")
}
