package groq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lupine-games/werewolf-core/core/decisions"
	"github.com/lupine-games/werewolf-core/core/game"
)

const defaultModel = "llama-3.3-70b-versatile"

// Provider plays one seat through Groq chat completions with strict
// JSON-schema response formats. Every narrated message the actor is allowed
// to hear is buffered and replayed as conversation context on each decision.
type Provider struct {
	apiKey string
	model  string

	selfID       string
	name         string
	instructions string

	mu           sync.Mutex
	observations []decisions.Narration
}

var _ decisions.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// NewProvider creates a provider playing the given seat. The seat's role is
// baked into the system instructions and never shared with other providers.
func NewProvider(apiKey string, self game.Player, opts ...Option) *Provider {
	p := &Provider{
		apiKey: apiKey,
		model:  defaultModel,
		selfID: self.ID,
		name:   self.Name,
		instructions: fmt.Sprintf(
			"You are %s, a player in a game of Werewolf. Your secret role is %s. "+
				"Messages from the Moderator describe the game; messages from other "+
				"players are table talk and may be lies. Stay in character, keep your "+
				"role hidden unless revealing it helps you win, and never mention that "+
				"you are an AI.",
			self.Name, self.Role,
		),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Observe appends a narration to the actor's context buffer.
func (p *Provider) Observe(narration decisions.Narration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observations = append(p.observations, narration)
}

func (p *Provider) transcript() []message {
	p.mu.Lock()
	observations := make([]decisions.Narration, len(p.observations))
	copy(observations, p.observations)
	p.mu.Unlock()

	return toMessages(p.instructions, p.selfID, observations)
}

type targetChoice struct {
	Target string `json:"target" jsonschema_description:"Exact name of the chosen player, or an empty string to abstain"`
	Reason string `json:"reason" jsonschema_description:"One short sentence of private reasoning"`
}

type nominationChoice struct {
	Run    bool   `json:"run" jsonschema_description:"Whether to run for police chief"`
	Reason string `json:"reason" jsonschema_description:"One short sentence of private reasoning"`
}

type witchChoice struct {
	SaveVictim   bool   `json:"saveVictim" jsonschema_description:"Whether to spend the antidote on tonight's victim"`
	PoisonTarget string `json:"poisonTarget" jsonschema_description:"Exact name of a player to poison, or an empty string to keep the poison"`
}

type speechChoice struct {
	Speech string `json:"speech" jsonschema_description:"What to say out loud to the table, a few sentences at most"`
}

// DecideNomination reports whether the actor runs for police chief.
func (p *Provider) DecideNomination(ctx context.Context, snapshot game.Context) (bool, error) {
	prompt := fmt.Sprintf(
		"Day %d. The police chief election is open. The chief moderates table talk "+
			"but gains no extra vote. Decide whether you, %s, run for the office.",
		snapshot.Day, p.name,
	)

	choice, err := promptJSONSchema[nominationChoice](ctx, p.apiKey, p.model, p.transcript(), prompt)
	if err != nil {
		return false, fmt.Errorf("failed to decide nomination: %w", err)
	}
	return choice.Run, nil
}

// DecideVote picks a target in an open voting round.
func (p *Provider) DecideVote(ctx context.Context, snapshot game.Context, candidates []decisions.Candidate) (string, error) {
	return p.decideTarget(ctx, candidates, fmt.Sprintf(
		"Day %d. A vote is open. Candidates: %s. Vote for exactly one of them.",
		snapshot.Day, candidateNames(candidates),
	))
}

// DecideKill picks the werewolves' victim for the night.
func (p *Provider) DecideKill(ctx context.Context, snapshot game.Context, candidates []decisions.Candidate) (string, error) {
	return p.decideTarget(ctx, candidates, fmt.Sprintf(
		"Night %d. You hunt with the other werewolves. Possible victims: %s. "+
			"Choose who the pack should kill tonight.",
		snapshot.Day, candidateNames(candidates),
	))
}

// DecideInvestigate picks the seer's investigation target.
func (p *Provider) DecideInvestigate(ctx context.Context, snapshot game.Context, candidates []decisions.Candidate) (string, error) {
	return p.decideTarget(ctx, candidates, fmt.Sprintf(
		"Night %d. As the seer you may learn one player's true role. "+
			"Possible targets: %s. Choose who to investigate.",
		snapshot.Day, candidateNames(candidates),
	))
}

// DecideWitch resolves the witch's potion offer.
func (p *Provider) DecideWitch(ctx context.Context, snapshot game.Context, offer decisions.WitchOffer) (decisions.WitchChoice, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Night %d. You are the witch.", snapshot.Day)
	if offer.PendingVictimID != "" && offer.AntidoteAvailable {
		fmt.Fprintf(&prompt, " %s was attacked tonight; your antidote could save them.", offer.PendingVictimName)
	} else {
		prompt.WriteString(" Nobody you can save died tonight.")
	}
	if offer.PoisonAvailable {
		fmt.Fprintf(&prompt, " Your poison is still unused; you could kill one of: %s.", candidateNames(offer.Candidates))
	} else {
		prompt.WriteString(" Your poison is spent.")
	}
	prompt.WriteString(" Decide what to do with your potions tonight.")

	choice, err := promptJSONSchema[witchChoice](ctx, p.apiKey, p.model, p.transcript(), prompt.String())
	if err != nil {
		return decisions.WitchChoice{}, fmt.Errorf("failed to decide witch action: %w", err)
	}

	result := decisions.WitchChoice{}
	if choice.SaveVictim && offer.AntidoteAvailable && offer.PendingVictimID != "" {
		result.Save = true
	}
	if choice.PoisonTarget != "" && offer.PoisonAvailable {
		result.PoisonTargetID = matchCandidate(choice.PoisonTarget, offer.Candidates)
	}
	return result, nil
}

// DecideHunterKill picks the dying hunter's retaliation target.
func (p *Provider) DecideHunterKill(ctx context.Context, snapshot game.Context, candidates []decisions.Candidate) (string, error) {
	return p.decideTarget(ctx, candidates, fmt.Sprintf(
		"You are dying, but as the hunter you may take one player with you. "+
			"Possible targets: %s. Choose, or abstain with an empty target.",
		candidateNames(candidates),
	))
}

// Speak produces the actor's statement for their day speaking turn.
func (p *Provider) Speak(ctx context.Context, snapshot game.Context) (string, error) {
	prompt := fmt.Sprintf(
		"Day %d. It is your turn to speak to the table. Share suspicions, defend "+
			"yourself, or mislead, according to your role.",
		snapshot.Day,
	)

	choice, err := promptJSONSchema[speechChoice](ctx, p.apiKey, p.model, p.transcript(), prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate speech: %w", err)
	}
	return choice.Speech, nil
}

func (p *Provider) decideTarget(ctx context.Context, candidates []decisions.Candidate, prompt string) (string, error) {
	choice, err := promptJSONSchema[targetChoice](ctx, p.apiKey, p.model, p.transcript(), prompt)
	if err != nil {
		return "", fmt.Errorf("failed to decide target: %w", err)
	}
	if choice.Target == "" {
		return "", nil
	}

	target := matchCandidate(choice.Target, candidates)
	if target == "" {
		logger.Warn("model chose an unknown target, treating as abstention",
			"target", choice.Target, "actor", p.name)
	}
	return target, nil
}

// matchCandidate resolves a model-chosen name to a candidate id,
// case-insensitively; an unknown name abstains.
func matchCandidate(name string, candidates []decisions.Candidate) string {
	name = strings.TrimSpace(name)
	for _, candidate := range candidates {
		if strings.EqualFold(candidate.Name, name) || candidate.ID == name {
			return candidate.ID
		}
	}
	return ""
}

func candidateNames(candidates []decisions.Candidate) string {
	names := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		names = append(names, candidate.Name)
	}
	return strings.Join(names, ", ")
}
