// Package orchestration runs a single werewolf game end to end: it consumes
// the event stream emitted by the game state machine, sources every
// role-specific decision from its provider, narrates what happens to the
// table with correct audience scoping, and feeds the results back into the
// state machine until one camp wins.
package orchestration

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lupine-games/werewolf-core/core/decisions"
	"github.com/lupine-games/werewolf-core/core/events"
	"github.com/lupine-games/werewolf-core/core/game"
	"github.com/lupine-games/werewolf-core/core/texttospeech"
	"github.com/lupine-games/werewolf-core/core/transport"
)

const (
	defaultHumanTimeout    = 30 * time.Second
	defaultDecisionTimeout = 30 * time.Second
)

type Orchestrator struct {
	game *game.Game

	speaker         texttospeech.Speaker
	publisher       transport.Publisher
	providerFactory ProviderFactory

	humanTimeout    time.Duration
	decisionTimeout time.Duration

	loop  *eventLoop
	inbox *humanInbox

	onEvent func(events.Event)

	closeOnce   sync.Once
	baseContext context.Context

	mu        sync.Mutex
	providers map[string]decisions.Provider
	// afterVote distinguishes a hunter dying to the day vote (night follows
	// the revenge) from one dying overnight (speeches follow).
	afterVote bool
}

var _ transport.Handler = (*Orchestrator)(nil)

func NewOrchestrator(g *game.Game, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		game:            g,
		publisher:       noopPublisher{},
		humanTimeout:    defaultHumanTimeout,
		decisionTimeout: defaultDecisionTimeout,
		loop:            newEventLoop(),
		inbox:           newHumanInbox(),
		baseContext:     context.Background(),
		providers:       map[string]decisions.Provider{},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Run starts the event loop that drives the game. It returns immediately;
// the game itself begins on [Orchestrator.StartGame] (or an inbound
// start_game control message) and runs until one camp wins.
//
// ctx is the base context for every decision, narration and dispatch the
// game makes; cancelling it aborts in-flight work.
//
// Contract: call Run at most once per orchestrator instance.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.baseContext = ctx

	if !o.loop.StartLoop(ctx, o.handleEvent) {
		return fmt.Errorf("orchestrator already running or closed")
	}

	o.publish(ctx, nil, transport.NewGameStatus(string(o.game.Phase())))
	return nil
}

// AwaitCompletion blocks until the event loop has stopped, either because
// the game ended or because the orchestrator was closed.
func (o *Orchestrator) AwaitCompletion() {
	o.loop.AwaitDone()
}

func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.loop.Stop()
		o.loop.AwaitDone()
	})
}

// StartGame deals roles and opens the police election. It fails if the game
// has already started or the roster cannot support a legal role deal.
func (o *Orchestrator) StartGame() error {
	emitted, err := o.game.StartGame()
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	o.ingest(emitted...)
	return nil
}

// HandleStartGame handles the start_game control message. Repeated requests
// after the game started are ignored.
func (o *Orchestrator) HandleStartGame(playerID string) {
	if err := o.StartGame(); err != nil {
		log.Printf("Ignoring start_game from %s: %v", playerID, err)
	}
}

// HandleSpeechEvent handles speech boundary markers. The markers drive the
// audio collaborator, not the game; they are only recorded here.
func (o *Orchestrator) HandleSpeechEvent(playerID string, status transport.SpeechStatus) {
	logger.Debug("speech boundary", "player", playerID, "status", string(status))
}

// HandleHumanInput routes free-text input from a human participant to the
// decision awaiting it. Input from players the game is not currently waiting
// on is silently ignored.
func (o *Orchestrator) HandleHumanInput(playerID string, message string) {
	if !o.inbox.deliver(playerID, message) {
		logger.Debug("dropping unsolicited input", "player", playerID)
	}
}

func (o *Orchestrator) ingest(batch ...events.Event) {
	for _, event := range batch {
		if !o.loop.Ingest(event) {
			logger.Warn("dropped game event, orchestrator closed", "kind", event.Kind().String())
		}
	}
}

func (o *Orchestrator) providerFor(playerID string) decisions.Provider {
	o.mu.Lock()
	defer o.mu.Unlock()

	if provider, ok := o.providers[playerID]; ok {
		return provider
	}
	return abstainProvider{}
}

func (o *Orchestrator) setAfterVote(afterVote bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.afterVote = afterVote
}

func (o *Orchestrator) votedToday() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.afterVote
}

// decisionContext bounds one decision. Humans get the participant window;
// expiry means abstention, not failure.
func (o *Orchestrator) decisionContext(ctx context.Context, playerID string) (context.Context, context.CancelFunc) {
	timeout := o.decisionTimeout
	if player, ok := o.game.Player(playerID); ok && player.IsHuman {
		timeout = o.humanTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (o *Orchestrator) publish(ctx context.Context, audience []string, payload any) {
	if err := o.publisher.Publish(ctx, transport.Envelope{Payload: payload, Audience: audience}); err != nil {
		logger.Warn("failed to publish message", "error", err)
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, transport.Envelope) error { return nil }

// abstainProvider stands in for seats with no configured provider; it
// declines every decision and stays silent.
type abstainProvider struct{}

var _ decisions.Provider = abstainProvider{}

func (abstainProvider) Observe(decisions.Narration) {}

func (abstainProvider) DecideNomination(context.Context, game.Context) (bool, error) {
	return false, nil
}

func (abstainProvider) DecideVote(context.Context, game.Context, []decisions.Candidate) (string, error) {
	return "", nil
}

func (abstainProvider) DecideKill(context.Context, game.Context, []decisions.Candidate) (string, error) {
	return "", nil
}

func (abstainProvider) DecideInvestigate(context.Context, game.Context, []decisions.Candidate) (string, error) {
	return "", nil
}

func (abstainProvider) DecideWitch(context.Context, game.Context, decisions.WitchOffer) (decisions.WitchChoice, error) {
	return decisions.WitchChoice{}, nil
}

func (abstainProvider) DecideHunterKill(context.Context, game.Context, []decisions.Candidate) (string, error) {
	return "", nil
}

func (abstainProvider) Speak(context.Context, game.Context) (string, error) {
	return "", nil
}
