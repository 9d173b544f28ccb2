package orchestration

import (
	"time"

	"github.com/lupine-games/werewolf-core/core/decisions"
	"github.com/lupine-games/werewolf-core/core/events"
	"github.com/lupine-games/werewolf-core/core/game"
	"github.com/lupine-games/werewolf-core/core/texttospeech"
	"github.com/lupine-games/werewolf-core/core/transport"
)

type OrchestratorOption func(*Orchestrator)

// ProviderFactory builds the decision provider for one AI-controlled seat.
// The player carries the dealt role; the factory is called once per seat,
// right after roles are assigned.
type ProviderFactory func(self game.Player) decisions.Provider

func WithProviderFactory(factory ProviderFactory) OrchestratorOption {
	return func(o *Orchestrator) {
		if factory != nil {
			o.providerFactory = factory
		}
	}
}

func WithSpeaker(speaker texttospeech.Speaker) OrchestratorOption {
	return func(o *Orchestrator) {
		o.speaker = speaker
	}
}

func WithPublisher(publisher transport.Publisher) OrchestratorOption {
	return func(o *Orchestrator) {
		if publisher != nil {
			o.publisher = publisher
		}
	}
}

// WithHumanTimeout overrides the window a human participant has to answer a
// prompt before their action counts as an abstention.
func WithHumanTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.humanTimeout = timeout
		}
	}
}

// WithDecisionTimeout overrides the window an AI provider has to answer
// before its action counts as an abstention.
func WithDecisionTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.decisionTimeout = timeout
		}
	}
}

// WithEventCallback registers an observer invoked for every event, in
// processing order, before the event's own handler runs. The callback runs
// on the event loop goroutine and must not block.
func WithEventCallback(callback func(events.Event)) OrchestratorOption {
	return func(o *Orchestrator) {
		if callback != nil {
			o.onEvent = callback
		}
	}
}
