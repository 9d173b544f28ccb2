package orchestration

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lupine-games/werewolf-core/core/decisions"
	"github.com/lupine-games/werewolf-core/core/events"
	"github.com/lupine-games/werewolf-core/core/game"
	"github.com/lupine-games/werewolf-core/core/transport"
)

// handleEvent is the event loop's single handler. Handlers run strictly one
// at a time; any follow-up events they ingest queue behind the batch that is
// already pending, which keeps narration in emission order.
func (o *Orchestrator) handleEvent(ctx context.Context, event events.Event) error {
	if o.onEvent != nil {
		o.onEvent(event)
	}

	switch e := event.(type) {
	case events.GameStarted:
		return o.handleGameStarted(ctx, e)
	case events.RolesAssigned:
		return o.handleRolesAssigned(ctx, e)
	case events.PoliceElectionStarted:
		return o.handlePoliceElectionStarted(ctx, e)
	case events.PoliceElected:
		return o.handlePoliceElected(ctx, e)
	case events.NightFell:
		return o.handleNightFell(ctx, e)
	case events.WerewolvesWoke:
		return o.handleWerewolvesWoke(ctx, e)
	case events.SeerWoke:
		return o.handleSeerWoke(ctx, e)
	case events.WitchWoke:
		return o.handleWitchWoke(ctx, e)
	case events.DayBroke:
		return o.handleDayBroke(ctx, e)
	case events.PlayerKilled:
		return o.handlePlayerKilled(ctx, e)
	case events.PlayerEliminated:
		return o.handlePlayerEliminated(ctx, e)
	case events.HunterRevenge:
		return o.handleHunterRevenge(ctx, e)
	case events.SpeakerChanged:
		return o.handleSpeakerChanged(ctx, e)
	case events.SpeakerRotationFinished:
		return o.handleSpeakerRotationFinished(ctx, e)
	case events.VotingStarted:
		return o.handleVotingStarted(ctx, e)
	case events.GameEnded:
		return o.handleGameEnded(ctx, e)
	default:
		logger.Debug("unhandled game event", "kind", event.Kind().String())
		return nil
	}
}

func (o *Orchestrator) handleGameStarted(ctx context.Context, e events.GameStarted) error {
	o.publish(ctx, nil, transport.NewGameStarted())
	o.publish(ctx, nil, transport.NewGameStatus("started"))

	werewolves := 0
	for _, seat := range e.Seats {
		if seat.Role == game.RoleWerewolf.String() {
			werewolves++
		}
	}
	o.announce(ctx, fmt.Sprintf(
		"Welcome to the village. %d players are seated: %s. Among you hide %d werewolves. Survive them, or become them.",
		len(e.Seats), seatNames(e.Seats), werewolves,
	))
	return nil
}

func (o *Orchestrator) handleRolesAssigned(ctx context.Context, e events.RolesAssigned) error {
	o.mu.Lock()
	for _, seat := range e.Seats {
		player, ok := o.game.Player(seat.ID)
		if !ok {
			continue
		}
		if player.IsHuman {
			o.providers[seat.ID] = &humanProvider{orchestrator: o, playerID: seat.ID}
		} else if o.providerFactory != nil {
			o.providers[seat.ID] = o.providerFactory(player)
		} else {
			o.providers[seat.ID] = abstainProvider{}
		}
	}
	o.mu.Unlock()

	var packIDs []string
	var packNames []string
	for _, seat := range e.Seats {
		o.whisper(ctx, fmt.Sprintf("You are the %s.", seat.Role), seat.ID)
		if seat.Role == game.RoleWerewolf.String() {
			packIDs = append(packIDs, seat.ID)
			packNames = append(packNames, seat.Name)
		}
	}
	if len(packIDs) > 1 {
		o.whisper(ctx, "Your pack: "+strings.Join(packNames, ", ")+".", packIDs...)
	}
	return nil
}

func (o *Orchestrator) handlePoliceElectionStarted(ctx context.Context, e events.PoliceElectionStarted) error {
	if o.game.Phase() == game.PhaseEnded {
		return nil
	}

	o.announce(ctx, "Before the first night, the village elects a police chief. Anyone may step forward.")

	snapshot := o.game.Context()
	var nominees []events.Seat
	for _, seat := range e.Electorate {
		decisionCtx, cancel := o.decisionContext(ctx, seat.ID)
		run, err := o.providerFor(seat.ID).DecideNomination(decisionCtx, snapshot)
		cancel()
		if err != nil {
			logger.Warn("nomination decision failed", "player", seat.ID, "error", err)
			continue
		}
		if run {
			nominees = append(nominees, seat)
		}
	}

	var emitted []events.Event
	var err error
	switch len(nominees) {
	case 0:
		o.announce(ctx, "No one steps forward. The office is drawn by lot.")
		emitted, err = o.game.ElectPoliceByLot(nil)
	case 1:
		o.announce(ctx, nominees[0].Name+" steps forward, unopposed.")
		emitted, err = o.game.SetPoliceChief(nominees[0].ID)
	default:
		o.announce(ctx, "Stepping forward: "+seatNames(nominees)+".")
		emitted, err = o.game.OpenPoliceBallot(seatIDs(nominees))
	}
	if err != nil {
		return fmt.Errorf("failed to resolve police election: %w", err)
	}

	o.ingest(emitted...)
	return nil
}

func (o *Orchestrator) handlePoliceElected(ctx context.Context, e events.PoliceElected) error {
	if e.Unopposed {
		o.announce(ctx, e.Chief.Name+" takes office as police chief.")
	} else {
		o.announce(ctx, "The village has chosen "+e.Chief.Name+" as police chief.")
	}

	if o.game.Phase() != game.PhasePoliceElection {
		return nil
	}
	return o.startNight()
}

func (o *Orchestrator) handleNightFell(ctx context.Context, e events.NightFell) error {
	o.publish(ctx, nil, transport.NewGameStatus(fmt.Sprintf("night %d", e.Day)))
	o.announce(ctx, fmt.Sprintf("Night %d falls. The village closes its eyes.", e.Day))
	return nil
}

func (o *Orchestrator) handleWerewolvesWoke(ctx context.Context, e events.WerewolvesWoke) error {
	if o.game.Phase() == game.PhaseEnded {
		return nil
	}

	packIDs := seatIDs(e.Werewolves)
	candidates := toCandidates(e.Candidates)
	o.whisper(ctx, "Werewolves, wake. Choose tonight's victim: "+seatNames(e.Candidates)+".", packIDs...)

	// Each werewolf decides concurrently; the votes slice keeps roster order
	// so the plurality tie-break stays deterministic.
	snapshot := o.game.Context()
	votes := make([]game.Vote, len(e.Werewolves))
	var wg sync.WaitGroup
	for i, wolf := range e.Werewolves {
		wg.Add(1)
		go func(i int, wolf events.Seat) {
			defer wg.Done()

			decisionCtx, cancel := o.decisionContext(ctx, wolf.ID)
			defer cancel()

			target, err := o.providerFor(wolf.ID).DecideKill(decisionCtx, snapshot, candidates)
			if err != nil {
				logger.Warn("werewolf decision failed", "player", wolf.ID, "error", err)
				return
			}
			votes[i] = game.Vote{VoterID: wolf.ID, TargetID: target}
		}(i, wolf)
	}
	wg.Wait()

	victimID, chosen := game.PluralityWinner(votes)
	if chosen {
		if victim, ok := o.game.Player(victimID); ok {
			o.whisper(ctx, "The pack has chosen "+victim.Name+".", packIDs...)
		}
	} else {
		victimID = ""
		o.whisper(ctx, "The pack cannot agree. No one dies tonight.", packIDs...)
	}

	emitted, err := o.game.ConcludeWerewolves(victimID)
	if err != nil {
		logger.Warn("rejected werewolf victim", "target", victimID, "error", err)
		if emitted, err = o.game.ConcludeWerewolves(""); err != nil {
			return fmt.Errorf("failed to conclude werewolf sub-phase: %w", err)
		}
	}
	return o.advanceNight(emitted)
}

func (o *Orchestrator) handleSeerWoke(ctx context.Context, e events.SeerWoke) error {
	if o.game.Phase() == game.PhaseEnded {
		return nil
	}

	instruction := "Seer, wake. Choose someone to investigate: " + seatNames(e.Candidates) + "."
	if findings := o.game.Findings(e.Seer.ID); len(findings) > 0 {
		var known []string
		for _, finding := range findings {
			if target, ok := o.game.Player(finding.TargetID); ok {
				known = append(known, fmt.Sprintf("%s is a %s", target.Name, finding.Role))
			}
		}
		instruction += " You already know: " + strings.Join(known, "; ") + "."
	}
	o.whisper(ctx, instruction, e.Seer.ID)

	decisionCtx, cancel := o.decisionContext(ctx, e.Seer.ID)
	target, err := o.providerFor(e.Seer.ID).DecideInvestigate(decisionCtx, o.game.Context(), toCandidates(e.Candidates))
	cancel()
	if err != nil {
		logger.Warn("seer decision failed", "player", e.Seer.ID, "error", err)
		target = ""
	}

	if target != "" {
		role, err := o.game.Investigate(e.Seer.ID, target)
		if err != nil {
			logger.Warn("rejected investigation", "target", target, "error", err)
		} else if investigated, ok := o.game.Player(target); ok {
			o.whisper(ctx, fmt.Sprintf("%s is a %s.", investigated.Name, role), e.Seer.ID)
		}
	}

	emitted, err := o.game.ConcludeSeer()
	if err != nil {
		return fmt.Errorf("failed to conclude seer sub-phase: %w", err)
	}
	return o.advanceNight(emitted)
}

func (o *Orchestrator) handleWitchWoke(ctx context.Context, e events.WitchWoke) error {
	if o.game.Phase() == game.PhaseEnded {
		return nil
	}

	offer := decisions.WitchOffer{
		PendingVictimID:   e.PendingVictimID,
		AntidoteAvailable: !e.AntidoteUsed,
		PoisonAvailable:   !e.PoisonUsed,
		Candidates:        toCandidates(e.Candidates),
	}

	instruction := "Witch, wake."
	if e.PendingVictimID != "" {
		if victim, ok := o.game.Player(e.PendingVictimID); ok {
			offer.PendingVictimName = victim.Name
			instruction += " The werewolves attacked " + victim.Name + " tonight."
		}
	} else {
		instruction += " The werewolves claimed no one tonight."
	}
	o.whisper(ctx, instruction, e.Witch.ID)

	decisionCtx, cancel := o.decisionContext(ctx, e.Witch.ID)
	choice, err := o.providerFor(e.Witch.ID).DecideWitch(decisionCtx, o.game.Context(), offer)
	cancel()
	if err != nil {
		logger.Warn("witch decision failed", "player", e.Witch.ID, "error", err)
		choice = decisions.WitchChoice{}
	}

	if choice.Save {
		if err := o.game.UseAntidote(e.Witch.ID); err != nil {
			logger.Warn("rejected antidote", "witch", e.Witch.ID, "error", err)
		} else {
			o.whisper(ctx, "You spend your antidote. "+offer.PendingVictimName+" will live.", e.Witch.ID)
		}
	}
	if choice.PoisonTargetID != "" {
		if err := o.game.UsePoison(e.Witch.ID, choice.PoisonTargetID); err != nil {
			logger.Warn("rejected poison", "witch", e.Witch.ID, "target", choice.PoisonTargetID, "error", err)
		} else if poisoned, ok := o.game.Player(choice.PoisonTargetID); ok {
			o.whisper(ctx, "You spend your poison on "+poisoned.Name+".", e.Witch.ID)
		}
	}

	emitted, err := o.game.ConcludeWitch()
	if err != nil {
		return fmt.Errorf("failed to conclude witch sub-phase: %w", err)
	}
	return o.advanceNight(emitted)
}

func (o *Orchestrator) handleDayBroke(ctx context.Context, e events.DayBroke) error {
	o.setAfterVote(false)
	o.publish(ctx, nil, transport.NewGameStatus(fmt.Sprintf("day %d", e.Day)))

	if len(e.Deaths) == 0 {
		o.announce(ctx, fmt.Sprintf("Day %d breaks. The village wakes unharmed.", e.Day))
	} else {
		o.announce(ctx, fmt.Sprintf("Day %d breaks.", e.Day))
	}

	if o.game.Phase() != game.PhaseDay || o.game.PendingRevenge() != "" {
		return nil
	}
	return o.beginSpeeches()
}

func (o *Orchestrator) handlePlayerKilled(ctx context.Context, e events.PlayerKilled) error {
	o.announce(ctx, fmt.Sprintf("%s is dead. They were a %s.", e.Victim.Name, e.Victim.Role))
	return nil
}

func (o *Orchestrator) handlePlayerEliminated(ctx context.Context, e events.PlayerEliminated) error {
	o.setAfterVote(true)
	o.announce(ctx, fmt.Sprintf(
		"The village has spoken: %s is eliminated with %d votes. They were a %s.",
		e.Player.Name, e.VoteTally[e.Player.ID], e.Player.Role,
	))

	if o.game.Phase() != game.PhaseDay || o.game.PendingRevenge() != "" {
		return nil
	}
	return o.startNight()
}

func (o *Orchestrator) handleHunterRevenge(ctx context.Context, e events.HunterRevenge) error {
	o.announce(ctx, e.Hunter.Name+" was the hunter! With their dying breath, they may take one player down.")

	decisionCtx, cancel := o.decisionContext(ctx, e.Hunter.ID)
	target, err := o.providerFor(e.Hunter.ID).DecideHunterKill(decisionCtx, o.game.Context(), toCandidates(e.Candidates))
	cancel()
	if err != nil {
		logger.Warn("hunter decision failed", "player", e.Hunter.ID, "error", err)
		target = ""
	}

	// An invalid target forfeits the shot, same as declining.
	emitted, err := o.game.HunterShoot(e.Hunter.ID, target)
	if err != nil {
		logger.Warn("rejected hunter shot", "target", target, "error", err)
		emitted = nil
	}
	if len(emitted) == 0 {
		o.announce(ctx, "The hunter holds their fire.")
	}
	o.ingest(emitted...)

	if o.game.Phase() != game.PhaseDay {
		return nil
	}
	if o.votedToday() {
		return o.startNight()
	}
	return o.beginSpeeches()
}

func (o *Orchestrator) handleSpeakerChanged(ctx context.Context, e events.SpeakerChanged) error {
	if o.game.Phase() == game.PhaseEnded {
		return nil
	}

	o.publish(ctx, nil, transport.NewCurrentSpeaker(e.Speaker.ID, false))
	o.announce(ctx, e.Speaker.Name+", the floor is yours.")

	decisionCtx, cancel := o.decisionContext(ctx, e.Speaker.ID)
	speech, err := o.providerFor(e.Speaker.ID).Speak(decisionCtx, o.game.Context())
	cancel()
	if err != nil {
		logger.Warn("speech failed", "player", e.Speaker.ID, "error", err)
		speech = ""
	}

	if speech == "" {
		o.announce(ctx, e.Speaker.Name+" has nothing to add.")
	} else {
		o.speakAs(ctx, e.Speaker.ID, e.Speaker.Name, speech)
	}

	emitted, err := o.game.ProcessNextSpeaker()
	if err != nil {
		return fmt.Errorf("failed to advance speaker rotation: %w", err)
	}
	o.ingest(emitted...)
	return nil
}

func (o *Orchestrator) handleSpeakerRotationFinished(ctx context.Context, e events.SpeakerRotationFinished) error {
	o.announce(ctx, "Everyone has spoken.")
	return nil
}

func (o *Orchestrator) handleVotingStarted(ctx context.Context, e events.VotingStarted) error {
	if o.game.Phase() == game.PhaseEnded {
		return nil
	}

	candidates := toCandidates(e.Candidates)
	switch e.Purpose {
	case events.BallotPolice:
		o.announce(ctx, "Cast your votes for police chief: "+seatNames(e.Candidates)+".")
	default:
		o.announce(ctx, "Time to vote. Who should be eliminated?")
	}

	snapshot := o.game.Context()
	var resolution []events.Event
	resolved := false
	for _, voter := range e.Voters {
		if player, ok := o.game.Player(voter.ID); !ok || !player.IsAlive {
			continue
		}

		decisionCtx, cancel := o.decisionContext(ctx, voter.ID)
		target, err := o.providerFor(voter.ID).DecideVote(decisionCtx, snapshot, candidates)
		cancel()
		if err != nil {
			logger.Warn("vote decision failed", "player", voter.ID, "error", err)
			target = ""
		}
		if target == "" {
			o.announceSilent(ctx, voter.Name+" abstains.")
			continue
		}

		emitted, err := o.game.CastVote(voter.ID, target)
		if err != nil {
			logger.Warn("rejected vote", "player", voter.ID, "target", target, "error", err)
			continue
		}
		if chosen, ok := o.game.Player(target); ok {
			o.announceSilent(ctx, voter.Name+" votes for "+chosen.Name+".")
		}
		if len(emitted) > 0 {
			resolution = emitted
			resolved = true
		}
	}

	if !resolved {
		emitted, err := o.game.ProcessVotes()
		if err != nil {
			return fmt.Errorf("failed to process votes: %w", err)
		}
		resolution = emitted
	}

	if len(resolution) == 0 {
		// An empty elimination tally spares everyone.
		o.announce(ctx, "The village cannot agree. No one is eliminated.")
		return o.startNight()
	}

	o.ingest(resolution...)
	return nil
}

func (o *Orchestrator) handleGameEnded(ctx context.Context, e events.GameEnded) error {
	var reveals []string
	for _, seat := range e.Seats {
		reveals = append(reveals, seat.Name+" was a "+seat.Role)
	}
	o.announce(ctx, fmt.Sprintf("The game is over. The %s win. %s.", e.Winner, strings.Join(reveals, ", ")))

	o.publish(ctx, nil, transport.NewGameEnded(e.Winner))
	o.publish(ctx, nil, transport.NewGameStatus("ended"))

	o.loop.Stop()
	return nil
}

func (o *Orchestrator) advanceNight(emitted []events.Event) error {
	if len(emitted) > 0 {
		o.ingest(emitted...)
		return nil
	}

	dawn, err := o.game.StartDay()
	if err != nil {
		return fmt.Errorf("failed to start day: %w", err)
	}
	o.ingest(dawn...)
	return nil
}

func (o *Orchestrator) startNight() error {
	emitted, err := o.game.StartNight()
	if err != nil {
		return fmt.Errorf("failed to start night: %w", err)
	}
	o.ingest(emitted...)
	return nil
}

func (o *Orchestrator) beginSpeeches() error {
	emitted, err := o.game.BeginSpeeches()
	if err != nil {
		return fmt.Errorf("failed to open speeches: %w", err)
	}
	o.ingest(emitted...)
	return nil
}

func toCandidates(seats []events.Seat) []decisions.Candidate {
	candidates := make([]decisions.Candidate, 0, len(seats))
	for _, seat := range seats {
		candidates = append(candidates, decisions.Candidate{ID: seat.ID, Name: seat.Name})
	}
	return candidates
}

func seatIDs(seats []events.Seat) []string {
	ids := make([]string, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

func seatNames(seats []events.Seat) string {
	names := make([]string, 0, len(seats))
	for _, seat := range seats {
		names = append(names, seat.Name)
	}
	return strings.Join(names, ", ")
}
