package orchestration

import (
	"context"

	"github.com/lupine-games/werewolf-core/core/decisions"
	"github.com/lupine-games/werewolf-core/core/transport"
	"go.opentelemetry.io/otel/attribute"
)

// The moderator is the game's own narrating identity; it holds no seat.
const (
	moderatorID   = "moderator"
	moderatorName = "Moderator"
	roleModerator = "moderator"
	rolePlayer    = "player"
)

type narration struct {
	speakerID   string
	speakerName string
	speakerRole string
	message     string
	// audience is nil for public narrations, an explicit id list otherwise.
	audience []string
	// silent skips speech synthesis for log-only chatter (vote bookkeeping,
	// prompts). Private narrations are always silent: synthesized audio is
	// broadcast and would leak them.
	silent bool
}

// narrate publishes a speaker_info/game_log pair to the narration's
// audience, appends it to the context buffer of every in-audience decision
// provider, and, for public narrations, dispatches speech synthesis and
// waits for the dispatch acknowledgement. Dispatch failures are recorded and
// the game moves on; the log remains authoritative.
func (o *Orchestrator) narrate(ctx context.Context, n narration) {
	ctx, span := tracer.Start(ctx, "narrate")
	defer span.End()
	span.SetAttributes(
		attribute.String("narration.speaker", n.speakerID),
		attribute.Bool("narration.private", n.audience != nil),
	)

	o.publish(ctx, n.audience, transport.NewSpeakerInfo(n.speakerID, n.speakerName, n.speakerRole))
	o.publish(ctx, n.audience, transport.NewGameLog(n.speakerID, n.message, n.audience != nil))

	observed := decisions.Narration{
		SpeakerID:   n.speakerID,
		SpeakerName: n.speakerName,
		Message:     n.message,
		IsPrivate:   n.audience != nil,
	}
	for _, provider := range o.observers(n.audience) {
		provider.Observe(observed)
	}

	if n.silent || n.audience != nil || o.speaker == nil {
		return
	}
	if err := o.speaker.Speak(ctx, n.speakerID, n.message); err != nil {
		span.RecordError(err)
		logger.Warn("failed to dispatch speech", "speaker", n.speakerID, "error", err)
	}
}

// observers returns the decision providers allowed to hear a narration with
// the given audience.
func (o *Orchestrator) observers(audience []string) []decisions.Provider {
	o.mu.Lock()
	defer o.mu.Unlock()

	if audience == nil {
		providers := make([]decisions.Provider, 0, len(o.providers))
		for _, provider := range o.providers {
			providers = append(providers, provider)
		}
		return providers
	}

	providers := make([]decisions.Provider, 0, len(audience))
	for _, id := range audience {
		if provider, ok := o.providers[id]; ok {
			providers = append(providers, provider)
		}
	}
	return providers
}

// announce narrates a public, voiced moderator message.
func (o *Orchestrator) announce(ctx context.Context, message string) {
	o.narrate(ctx, narration{
		speakerID:   moderatorID,
		speakerName: moderatorName,
		speakerRole: roleModerator,
		message:     message,
	})
}

// announceSilent narrates a public moderator message without synthesis.
func (o *Orchestrator) announceSilent(ctx context.Context, message string) {
	o.narrate(ctx, narration{
		speakerID:   moderatorID,
		speakerName: moderatorName,
		speakerRole: roleModerator,
		message:     message,
		silent:      true,
	})
}

// whisper narrates a private moderator message to an explicit audience.
func (o *Orchestrator) whisper(ctx context.Context, message string, audience ...string) {
	o.narrate(ctx, narration{
		speakerID:   moderatorID,
		speakerName: moderatorName,
		speakerRole: roleModerator,
		message:     message,
		audience:    audience,
	})
}

// speakAs narrates a public, voiced message attributed to a player. The
// wire role is always "player"; dealt roles are never attached to live
// speech.
func (o *Orchestrator) speakAs(ctx context.Context, speakerID, speakerName, message string) {
	o.narrate(ctx, narration{
		speakerID:   speakerID,
		speakerName: speakerName,
		speakerRole: rolePlayer,
		message:     message,
	})
}
