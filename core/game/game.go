package game

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/lupine-games/werewolf-core/core/events"
)

// Phase is the top-level stage of the day/night cycle. Exactly one phase is
// active at a time; transitions are one-directional within a cycle.
type Phase string

const (
	PhaseWaiting        Phase = "waiting"
	PhasePoliceElection Phase = "policeElection"
	PhaseNight          Phase = "night"
	PhaseDay            Phase = "day"
	PhaseEnded          Phase = "ended"
)

// Winning camps as they appear in GameEnded events.
const (
	CampVillagers  = "villagers"
	CampWerewolves = "werewolves"
)

// MinPlayers is the practical minimum to start a game, AI fill-in included.
const MinPlayers = 5

type nightStage int

const (
	stageNone nightStage = iota
	stageWerewolves
	stageSeer
	stageWitch
)

// Finding is one seer investigation result, private to that seer.
type Finding struct {
	Day      int
	TargetID string
	Role     Role
}

// Game is the authoritative state of one game instance: roster, role map,
// phase, day counter, death set, vote tally and speaker queue. It performs
// no I/O; every transition returns the events it emits, atomically with the
// mutation. Transitions are driven externally by the orchestrator; the state
// machine never self-advances except to drain its own speaker queue.
type Game struct {
	mu  sync.Mutex
	id  string
	rng *rand.Rand

	phase Phase
	day   int

	players []*Player
	byID    map[string]*Player

	speakers SpeakerQueue
	ballot   *Ballot
	potions  map[string]*Potions
	findings map[string][]Finding

	policeChiefID string

	stage          nightStage
	pendingKill    string
	savedByWitch   bool
	pendingPoison  string
	pendingRevenge string
}

// Option configures a Game at construction.
type Option func(*Game)

// WithSeed makes role shuffles and lot draws deterministic.
func WithSeed(seed uint64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// NewGame creates a game in the waiting phase with the given roster. The
// roster is frozen once the game starts.
func NewGame(configs []PlayerConfig, opts ...Option) (*Game, error) {
	if len(configs) < 3 {
		return nil, &SetupError{Reason: fmt.Sprintf("at least 3 players are required, got %d", len(configs))}
	}

	g := &Game{
		id:       uuid.NewString(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		phase:    PhaseWaiting,
		byID:     make(map[string]*Player, len(configs)),
		potions:  make(map[string]*Potions),
		findings: make(map[string][]Finding),
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, config := range configs {
		id := config.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, exists := g.byID[id]; exists {
			return nil, &SetupError{Reason: fmt.Sprintf("duplicate player id %s", id)}
		}

		player := &Player{ID: id, Name: config.Name, IsHuman: config.IsHuman, IsAlive: true}
		g.players = append(g.players, player)
		g.byID[id] = player
	}

	return g, nil
}

// ID returns the game instance id.
func (g *Game) ID() string { return g.id }

// Phase returns the active phase.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Day returns the current day counter; 0 before the first night.
func (g *Game) Day() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.day
}

// Player returns a copy of the player with the given id.
func (g *Game) Player(id string) (Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, ok := g.byID[id]
	if !ok {
		return Player{}, false
	}
	return *player, true
}

// CurrentSpeaker returns the id of the player holding the floor, if any.
func (g *Game) CurrentSpeaker() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speakers.Current()
}

// PoliceChief returns the elected chief's id, or "" before the election.
func (g *Game) PoliceChief() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.policeChiefID
}

// PendingRevenge returns the id of a dying hunter whose retaliation shot is
// still unresolved, or "" when none is pending.
func (g *Game) PendingRevenge() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pendingRevenge
}

// Findings returns the investigation log private to the given seer.
func (g *Game) Findings(seerID string) []Finding {
	g.mu.Lock()
	defer g.mu.Unlock()

	findings := make([]Finding, len(g.findings[seerID]))
	copy(findings, g.findings[seerID])
	return findings
}

// StartGame deals roles and opens the police election. Fails with a
// SetupError before any state mutation when the roster is too small or the
// role math does not work out.
func (g *Game) StartGame() ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhaseWaiting {
		return nil, &PhaseError{Operation: "startGame", Phase: g.phase}
	}
	if len(g.players) < MinPlayers {
		return nil, &SetupError{Reason: fmt.Sprintf("at least %d players are required to start, got %d", MinPlayers, len(g.players))}
	}

	if err := g.dealRoles(); err != nil {
		return nil, err
	}

	g.phase = PhasePoliceElection
	seats := g.seatsLocked(func(*Player) bool { return true })
	return []events.Event{
		events.NewGameStarted(g.id, seats),
		events.NewRolesAssigned(seats),
		events.NewPoliceElectionStarted(g.aliveSeatsLocked()),
	}, nil
}

// ElectPoliceByLot picks the police chief uniformly at random among the
// given candidates, or among all living players when none are given. Used
// when nobody ran for office or a police vote produced no tally.
func (g *Game) ElectPoliceByLot(candidateIDs []string) ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhasePoliceElection {
		return nil, &PhaseError{Operation: "electPoliceByLot", Phase: g.phase}
	}

	if len(candidateIDs) == 0 {
		for _, player := range g.players {
			if player.IsAlive {
				candidateIDs = append(candidateIDs, player.ID)
			}
		}
	}

	chief := g.byID[candidateIDs[g.rng.IntN(len(candidateIDs))]]
	g.policeChiefID = chief.ID
	return []events.Event{events.NewPoliceElected(g.seatLocked(chief), true)}, nil
}

// SetPoliceChief installs an unopposed candidate without a vote round.
func (g *Game) SetPoliceChief(id string) ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhasePoliceElection {
		return nil, &PhaseError{Operation: "setPoliceChief", Phase: g.phase}
	}

	chief, ok := g.byID[id]
	if !ok || !chief.IsAlive {
		return nil, fmt.Errorf("police chief candidate %s is not a living player", id)
	}

	g.policeChiefID = chief.ID
	return []events.Event{events.NewPoliceElected(g.seatLocked(chief), true)}, nil
}

// OpenPoliceBallot opens a full vote round between multiple nominees. Every
// living player may vote.
func (g *Game) OpenPoliceBallot(candidateIDs []string) ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhasePoliceElection {
		return nil, &PhaseError{Operation: "openPoliceBallot", Phase: g.phase}
	}
	if g.ballot != nil {
		return nil, fmt.Errorf("a voting round is already open")
	}

	g.ballot = newBallot(events.BallotPolice, g.aliveIDsLocked(), candidateIDs)
	return []events.Event{events.NewVotingStarted(
		g.day,
		events.BallotPolice,
		g.aliveSeatsLocked(),
		g.seatsByIDLocked(candidateIDs),
	)}, nil
}

// CastVote records a vote in the open round, replacing any prior vote from
// the same voter. The round resolves automatically once every living player
// has a standing vote; resolution events are returned to the caller.
func (g *Game) CastVote(voterID, targetID string) ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.ballot == nil {
		return nil, fmt.Errorf("no voting round is open")
	}

	voter, ok := g.byID[voterID]
	if !ok || !voter.IsAlive || !g.ballot.voters[voterID] {
		return nil, &IneligibleVoterError{VoterID: voterID}
	}
	if len(g.ballot.candidates) > 0 && !g.ballot.candidates[targetID] {
		return nil, fmt.Errorf("player %s is not a candidate in this round", targetID)
	}

	g.ballot.cast(voterID, targetID)
	if !g.ballot.complete() {
		return nil, nil
	}

	return g.resolveBallotLocked()
}

// ProcessVotes force-closes the open round, used when the round timeout
// elapses before every living player voted. An empty tally causes no
// elimination and play proceeds.
func (g *Game) ProcessVotes() ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.ballot == nil {
		return nil, fmt.Errorf("no voting round is open")
	}

	return g.resolveBallotLocked()
}

func (g *Game) resolveBallotLocked() ([]events.Event, error) {
	ballot := g.ballot
	g.ballot = nil

	winnerID, ok := ballot.winner()
	switch ballot.purpose {
	case events.BallotPolice:
		if !ok {
			// Nobody voted; the office is drawn by lot among the nominees.
			candidateIDs := make([]string, 0, len(ballot.candidates))
			for _, player := range g.players {
				if ballot.candidates[player.ID] && player.IsAlive {
					candidateIDs = append(candidateIDs, player.ID)
				}
			}
			chief := g.byID[candidateIDs[g.rng.IntN(len(candidateIDs))]]
			g.policeChiefID = chief.ID
			return []events.Event{events.NewPoliceElected(g.seatLocked(chief), false)}, nil
		}

		chief := g.byID[winnerID]
		g.policeChiefID = chief.ID
		return []events.Event{events.NewPoliceElected(g.seatLocked(chief), false)}, nil

	case events.BallotElimination:
		if !ok {
			return nil, nil
		}
		return g.eliminateLocked(winnerID, ballot.tally()), nil

	default:
		return nil, fmt.Errorf("unknown ballot purpose %q", ballot.purpose)
	}
}

func (g *Game) eliminateLocked(id string, tally map[string]int) []events.Event {
	player := g.byID[id]
	player.IsAlive = false

	emitted := []events.Event{events.NewPlayerEliminated(g.day, g.seatLocked(player), tally)}
	if ended := g.checkWinLocked(); ended != nil {
		return append(emitted, *ended)
	}
	if player.Role == RoleHunter {
		g.pendingRevenge = player.ID
		emitted = append(emitted, events.NewHunterRevenge(g.day, g.seatLocked(player), g.aliveSeatsLocked()))
	}
	return emitted
}

// StartNight advances into the next night: the day counter increments,
// spoken flags reset and the werewolf sub-phase opens.
func (g *Game) StartNight() ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhasePoliceElection && g.phase != PhaseDay {
		return nil, &PhaseError{Operation: "startNight", Phase: g.phase}
	}
	if g.ballot != nil {
		return nil, fmt.Errorf("cannot start night with a voting round open")
	}

	g.phase = PhaseNight
	g.day++
	g.stage = stageWerewolves
	g.pendingKill = ""
	g.savedByWitch = false
	g.pendingPoison = ""
	for _, player := range g.players {
		player.HasSpoken = false
	}

	werewolves := g.seatsLocked(func(p *Player) bool { return p.IsAlive && p.Role.IsWerewolf() })
	candidates := g.seatsLocked(func(p *Player) bool { return p.IsAlive && !p.Role.IsWerewolf() })
	return []events.Event{
		events.NewNightFell(g.day),
		events.NewWerewolvesWoke(g.day, werewolves, candidates),
	}, nil
}

// ConcludeWerewolves records the werewolves' victim (possibly none) and
// opens the next night sub-phase that has a living actor. An empty event
// batch means every remaining sub-phase is absent and the caller should
// start the day.
func (g *Game) ConcludeWerewolves(victimID string) ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhaseNight || g.stage != stageWerewolves {
		return nil, &PhaseError{Operation: "concludeWerewolves", Phase: g.phase}
	}

	if victimID != "" {
		victim, ok := g.byID[victimID]
		if !ok || !victim.IsAlive {
			return nil, fmt.Errorf("werewolf victim %s is not a living player", victimID)
		}
		if victim.Role.IsWerewolf() {
			return nil, fmt.Errorf("werewolves cannot target one of their own")
		}
		g.pendingKill = victimID
	}

	return g.advanceNightStageLocked(), nil
}

// Investigate performs the seer's single investigation and returns the
// target's role. The result is recorded in the seer's private knowledge and
// never emitted as an event.
func (g *Game) Investigate(seerID, targetID string) (Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return "", ErrGameOver
	}
	if g.phase != PhaseNight || g.stage != stageSeer {
		return "", &PhaseError{Operation: "investigate", Phase: g.phase}
	}

	seer, ok := g.byID[seerID]
	if !ok || !seer.IsAlive || seer.Role != RoleSeer {
		return "", fmt.Errorf("player %s is not the living seer", seerID)
	}
	target, ok := g.byID[targetID]
	if !ok {
		return "", fmt.Errorf("unknown investigation target %s", targetID)
	}

	g.findings[seerID] = append(g.findings[seerID], Finding{Day: g.day, TargetID: targetID, Role: target.Role})
	return target.Role, nil
}

// ConcludeSeer closes the seer sub-phase; see ConcludeWerewolves for the
// meaning of the returned batch.
func (g *Game) ConcludeSeer() ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhaseNight || g.stage != stageSeer {
		return nil, &PhaseError{Operation: "concludeSeer", Phase: g.phase}
	}

	return g.advanceNightStageLocked(), nil
}

// UseAntidote consumes the witch's antidote to revive tonight's victim.
// Valid only while the witch sub-phase is open, a death occurred tonight and
// the antidote is unused.
func (g *Game) UseAntidote(witchID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return ErrGameOver
	}
	if g.phase != PhaseNight || g.stage != stageWitch {
		return &PhaseError{Operation: "useAntidote", Phase: g.phase}
	}

	potions, err := g.witchPotionsLocked(witchID)
	if err != nil {
		return err
	}
	if potions.AntidoteUsed {
		return fmt.Errorf("the antidote has already been used")
	}
	if g.pendingKill == "" {
		return fmt.Errorf("nobody died tonight, the antidote has no target")
	}

	potions.AntidoteUsed = true
	g.savedByWitch = true
	return nil
}

// UsePoison consumes the witch's poison on another living player. Both
// potions are independently consumable in the same night.
func (g *Game) UsePoison(witchID, targetID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return ErrGameOver
	}
	if g.phase != PhaseNight || g.stage != stageWitch {
		return &PhaseError{Operation: "usePoison", Phase: g.phase}
	}

	potions, err := g.witchPotionsLocked(witchID)
	if err != nil {
		return err
	}
	if potions.PoisonUsed {
		return fmt.Errorf("the poison has already been used")
	}
	if targetID == witchID {
		return fmt.Errorf("the witch cannot poison themself")
	}
	target, ok := g.byID[targetID]
	if !ok || !target.IsAlive {
		return fmt.Errorf("poison target %s is not a living player", targetID)
	}

	potions.PoisonUsed = true
	g.pendingPoison = targetID
	return nil
}

// Potions returns a copy of the given witch's potion flags.
func (g *Game) Potions(witchID string) (Potions, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	potions, ok := g.potions[witchID]
	if !ok {
		return Potions{}, false
	}
	return *potions, true
}

// ConcludeWitch closes the witch sub-phase.
func (g *Game) ConcludeWitch() ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhaseNight || g.stage != stageWitch {
		return nil, &PhaseError{Operation: "concludeWitch", Phase: g.phase}
	}

	g.stage = stageNone
	return nil, nil
}

func (g *Game) witchPotionsLocked(witchID string) (*Potions, error) {
	witch, ok := g.byID[witchID]
	if !ok || !witch.IsAlive || witch.Role != RoleWitch {
		return nil, fmt.Errorf("player %s is not the living witch", witchID)
	}
	return g.potions[witchID], nil
}

// advanceNightStageLocked opens the next sub-phase with a living actor.
// Absent roles are skipped, never stall the sequence.
func (g *Game) advanceNightStageLocked() []events.Event {
	for {
		switch g.stage {
		case stageWerewolves:
			g.stage = stageSeer
			if seer := g.firstAliveLocked(RoleSeer); seer != nil {
				candidates := g.seatsLocked(func(p *Player) bool { return p.IsAlive && p.ID != seer.ID })
				return []events.Event{events.NewSeerWoke(g.day, g.seatLocked(seer), candidates)}
			}

		case stageSeer:
			g.stage = stageWitch
			if witch := g.firstAliveLocked(RoleWitch); witch != nil {
				potions := g.potions[witch.ID]
				candidates := g.seatsLocked(func(p *Player) bool { return p.IsAlive && p.ID != witch.ID })
				return []events.Event{events.NewWitchWoke(
					g.day, g.seatLocked(witch), g.pendingKill,
					potions.AntidoteUsed, potions.PoisonUsed, candidates,
				)}
			}

		default:
			g.stage = stageNone
			return nil
		}
	}
}

// StartDay resolves the night's pending deaths and breaks the day. The
// returned batch carries the day boundary, one killed event per death, and
// any hunter revenge or game end that follows from them.
func (g *Game) StartDay() ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhaseNight || g.stage != stageNone {
		return nil, &PhaseError{Operation: "startDay", Phase: g.phase}
	}

	g.phase = PhaseDay

	var deaths []*Player
	if g.pendingKill != "" && !g.savedByWitch {
		deaths = append(deaths, g.byID[g.pendingKill])
	}
	if g.pendingPoison != "" {
		poisoned := g.byID[g.pendingPoison]
		if len(deaths) == 0 || deaths[0] != poisoned {
			deaths = append(deaths, poisoned)
		}
	}

	deathSeats := make([]events.Seat, 0, len(deaths))
	emitted := []events.Event{}
	for _, victim := range deaths {
		victim.IsAlive = false
		deathSeats = append(deathSeats, g.seatLocked(victim))
	}

	emitted = append(emitted, events.NewDayBroke(g.day, deathSeats))
	for _, victim := range deaths {
		emitted = append(emitted, events.NewPlayerKilled(g.day, g.seatLocked(victim)))
	}

	if ended := g.checkWinLocked(); ended != nil {
		return append(emitted, *ended), nil
	}

	for _, victim := range deaths {
		if victim.Role == RoleHunter {
			g.pendingRevenge = victim.ID
			emitted = append(emitted, events.NewHunterRevenge(g.day, g.seatLocked(victim), g.aliveSeatsLocked()))
		}
	}

	g.pendingKill = ""
	g.savedByWitch = false
	g.pendingPoison = ""
	return emitted, nil
}

// HunterShoot resolves a dying hunter's retaliation. An empty target id
// declines the shot.
func (g *Game) HunterShoot(hunterID, targetID string) ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.pendingRevenge != hunterID {
		return nil, fmt.Errorf("player %s has no pending revenge", hunterID)
	}

	g.pendingRevenge = ""
	if targetID == "" {
		return nil, nil
	}

	target, ok := g.byID[targetID]
	if !ok || !target.IsAlive {
		return nil, fmt.Errorf("revenge target %s is not a living player", targetID)
	}

	target.IsAlive = false
	emitted := []events.Event{events.NewPlayerKilled(g.day, g.seatLocked(target))}
	if ended := g.checkWinLocked(); ended != nil {
		emitted = append(emitted, *ended)
	}
	return emitted, nil
}

// BeginSpeeches enqueues every living player who has not yet spoken today
// and pops the first speaker.
func (g *Game) BeginSpeeches() ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhaseDay {
		return nil, &PhaseError{Operation: "beginSpeeches", Phase: g.phase}
	}

	var ids []string
	for _, player := range g.players {
		if player.IsAlive && !player.HasSpoken {
			ids = append(ids, player.ID)
		}
	}
	g.speakers.Enqueue(ids)

	return g.nextSpeakerLocked()
}

// ProcessNextSpeaker pops the next pending speaker, or closes the rotation
// and opens the day elimination ballot once the queue is drained.
func (g *Game) ProcessNextSpeaker() ([]events.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseEnded {
		return nil, ErrGameOver
	}
	if g.phase != PhaseDay {
		return nil, &PhaseError{Operation: "processNextSpeaker", Phase: g.phase}
	}

	return g.nextSpeakerLocked()
}

func (g *Game) nextSpeakerLocked() ([]events.Event, error) {
	id, ok := g.speakers.Next(func(id string) bool {
		player, exists := g.byID[id]
		return exists && player.IsAlive
	})
	if ok {
		speaker := g.byID[id]
		speaker.HasSpoken = true
		return []events.Event{events.NewSpeakerChanged(g.day, g.seatLocked(speaker))}, nil
	}

	// Voting always immediately follows the rotation draining.
	g.ballot = newBallot(events.BallotElimination, g.aliveIDsLocked(), g.aliveIDsLocked())
	return []events.Event{
		events.NewSpeakerRotationFinished(g.day),
		events.NewVotingStarted(g.day, events.BallotElimination, g.aliveSeatsLocked(), g.aliveSeatsLocked()),
	}, nil
}

func (g *Game) checkWinLocked() *events.GameEnded {
	livingWerewolves := 0
	livingOthers := 0
	for _, player := range g.players {
		if !player.IsAlive {
			continue
		}
		if player.Role.IsWerewolf() {
			livingWerewolves++
		} else {
			livingOthers++
		}
	}

	var winner string
	switch {
	case livingWerewolves == 0:
		winner = CampVillagers
	case livingOthers == 0:
		winner = CampWerewolves
	default:
		return nil
	}

	g.phase = PhaseEnded
	ended := events.NewGameEnded(winner, g.seatsLocked(func(*Player) bool { return true }))
	return &ended
}

func (g *Game) firstAliveLocked(role Role) *Player {
	for _, player := range g.players {
		if player.IsAlive && player.Role == role {
			return player
		}
	}
	return nil
}

func (g *Game) seatLocked(p *Player) events.Seat {
	return events.Seat{ID: p.ID, Name: p.Name, Role: p.Role.String(), IsHuman: p.IsHuman, IsAlive: p.IsAlive}
}

func (g *Game) seatsLocked(keep func(*Player) bool) []events.Seat {
	var seats []events.Seat
	for _, player := range g.players {
		if keep(player) {
			seats = append(seats, g.seatLocked(player))
		}
	}
	return seats
}

func (g *Game) aliveSeatsLocked() []events.Seat {
	return g.seatsLocked(func(p *Player) bool { return p.IsAlive })
}

func (g *Game) aliveIDsLocked() []string {
	var ids []string
	for _, player := range g.players {
		if player.IsAlive {
			ids = append(ids, player.ID)
		}
	}
	return ids
}

func (g *Game) seatsByIDLocked(ids []string) []events.Seat {
	var seats []events.Seat
	for _, id := range ids {
		if player, ok := g.byID[id]; ok {
			seats = append(seats, g.seatLocked(player))
		}
	}
	return seats
}
