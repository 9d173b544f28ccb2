package orchestration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lupine-games/werewolf-core/core/decisions"
	"github.com/lupine-games/werewolf-core/core/events"
	"github.com/lupine-games/werewolf-core/core/game"
	"github.com/lupine-games/werewolf-core/core/transport"
)

// scriptedProvider plays a maximally decisive strategy: it always targets the
// first offered candidate, never runs for office and never spends potions.
// Every decision resolves instantly, so a scripted table always drives the
// game to an end.
type scriptedProvider struct {
	line string
}

var _ decisions.Provider = (*scriptedProvider)(nil)

func (p *scriptedProvider) Observe(decisions.Narration) {}

func (p *scriptedProvider) DecideNomination(context.Context, game.Context) (bool, error) {
	return false, nil
}

func (p *scriptedProvider) DecideVote(_ context.Context, _ game.Context, candidates []decisions.Candidate) (string, error) {
	return firstCandidate(candidates), nil
}

func (p *scriptedProvider) DecideKill(_ context.Context, _ game.Context, candidates []decisions.Candidate) (string, error) {
	return firstCandidate(candidates), nil
}

func (p *scriptedProvider) DecideInvestigate(_ context.Context, _ game.Context, candidates []decisions.Candidate) (string, error) {
	return firstCandidate(candidates), nil
}

func (p *scriptedProvider) DecideWitch(context.Context, game.Context, decisions.WitchOffer) (decisions.WitchChoice, error) {
	return decisions.WitchChoice{}, nil
}

func (p *scriptedProvider) DecideHunterKill(context.Context, game.Context, []decisions.Candidate) (string, error) {
	return "", nil
}

func (p *scriptedProvider) Speak(context.Context, game.Context) (string, error) {
	return p.line, nil
}

func firstCandidate(candidates []decisions.Candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0].ID
}

type recordingPublisher struct {
	mu        sync.Mutex
	envelopes []transport.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, envelope transport.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.envelopes = append(p.envelopes, envelope)
	return nil
}

func (p *recordingPublisher) snapshot() []transport.Envelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]transport.Envelope(nil), p.envelopes...)
}

type recordingSpeaker struct {
	mu         sync.Mutex
	utterances []string
}

func (s *recordingSpeaker) Speak(_ context.Context, _ string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.utterances = append(s.utterances, text)
	return nil
}

func (s *recordingSpeaker) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.utterances...)
}

func testRoster(n int) []game.PlayerConfig {
	configs := make([]game.PlayerConfig, 0, n)
	for i := range n {
		configs = append(configs, game.PlayerConfig{
			ID:   fmt.Sprintf("p%d", i+1),
			Name: fmt.Sprintf("Player %d", i+1),
		})
	}
	return configs
}

func TestOrchestratorRunsFullGame(t *testing.T) {
	g, err := game.NewGame(testRoster(5), game.WithSeed(3))
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	publisher := &recordingPublisher{}
	speaker := &recordingSpeaker{}
	var kinds []events.Kind

	orchestrator := NewOrchestrator(g,
		WithProviderFactory(func(self game.Player) decisions.Provider {
			return &scriptedProvider{line: self.Name + " suspects everyone."}
		}),
		WithPublisher(publisher),
		WithSpeaker(speaker),
		WithEventCallback(func(event events.Event) {
			kinds = append(kinds, event.Kind())
		}),
	)

	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("failed to run orchestrator: %v", err)
	}
	defer orchestrator.Close()

	if err := orchestrator.StartGame(); err != nil {
		t.Fatalf("failed to start game: %v", err)
	}

	done := make(chan struct{})
	go func() {
		orchestrator.AwaitCompletion()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("game did not finish")
	}

	if g.Phase() != game.PhaseEnded {
		t.Fatalf("expected the game to end, phase is %s", g.Phase())
	}

	if len(kinds) == 0 || kinds[0] != events.KindGameStarted {
		t.Errorf("expected the stream to open with %s, got %v", events.KindGameStarted, kinds)
	}
	if kinds[len(kinds)-1] != events.KindGameEnded {
		t.Errorf("expected the stream to close with %s, got %s", events.KindGameEnded, kinds[len(kinds)-1])
	}
	seen := map[events.Kind]bool{}
	for _, kind := range kinds {
		seen[kind] = true
	}
	for _, kind := range []events.Kind{
		events.KindPoliceElected, events.KindNightFell, events.KindDayBroke,
		events.KindSpeakerChanged, events.KindVotingStarted,
	} {
		if !seen[kind] {
			t.Errorf("expected a full game to pass through %s", kind)
		}
	}

	var winner string
	for _, envelope := range publisher.snapshot() {
		if ended, ok := envelope.Payload.(transport.GameEnded); ok {
			winner = ended.Winner
		}
	}
	if winner != game.CampVillagers && winner != game.CampWerewolves {
		t.Errorf("expected a camp to win on the wire, got %q", winner)
	}

	if err := orchestrator.StartGame(); err == nil {
		t.Error("expected restarting a finished game to fail")
	}
}

func TestPrivateNarrationsAreNeverSynthesized(t *testing.T) {
	g, err := game.NewGame(testRoster(5), game.WithSeed(3))
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	publisher := &recordingPublisher{}
	speaker := &recordingSpeaker{}
	orchestrator := NewOrchestrator(g,
		WithProviderFactory(func(self game.Player) decisions.Provider {
			return &scriptedProvider{line: "I have nothing to hide."}
		}),
		WithPublisher(publisher),
		WithSpeaker(speaker),
	)

	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("failed to run orchestrator: %v", err)
	}
	defer orchestrator.Close()
	if err := orchestrator.StartGame(); err != nil {
		t.Fatalf("failed to start game: %v", err)
	}

	done := make(chan struct{})
	go func() {
		orchestrator.AwaitCompletion()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("game did not finish")
	}

	// Role reveals and night prompts go out as private game logs...
	sawPrivate := false
	for _, envelope := range publisher.snapshot() {
		logEntry, ok := envelope.Payload.(transport.GameLog)
		if !ok {
			continue
		}
		if logEntry.IsPrivate {
			sawPrivate = true
			if envelope.Audience == nil {
				t.Errorf("private log %q was broadcast", logEntry.Message)
			}
		} else if envelope.Audience != nil {
			t.Errorf("public log %q was audience-scoped", logEntry.Message)
		}
	}
	if !sawPrivate {
		t.Error("expected at least one private narration")
	}

	// ...and synthesized audio is broadcast, so none of them may be voiced.
	for _, utterance := range speaker.snapshot() {
		if strings.Contains(utterance, "You are the") {
			t.Errorf("a role reveal reached the synthesizer: %q", utterance)
		}
		if strings.Contains(utterance, "votes for") || strings.Contains(utterance, "abstains") {
			t.Errorf("vote bookkeeping reached the synthesizer: %q", utterance)
		}
	}
	if len(speaker.snapshot()) == 0 {
		t.Error("expected public narrations to be voiced")
	}
}

func TestOptionGuards(t *testing.T) {
	g, err := game.NewGame(testRoster(5))
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	orchestrator := NewOrchestrator(g,
		WithPublisher(nil),
		WithHumanTimeout(-time.Second),
		WithDecisionTimeout(0),
	)

	if orchestrator.publisher == nil {
		t.Error("a nil publisher must fall back to the no-op publisher")
	}
	if orchestrator.humanTimeout != defaultHumanTimeout {
		t.Errorf("non-positive human timeout must keep the default, got %v", orchestrator.humanTimeout)
	}
	if orchestrator.decisionTimeout != defaultDecisionTimeout {
		t.Errorf("non-positive decision timeout must keep the default, got %v", orchestrator.decisionTimeout)
	}
}
