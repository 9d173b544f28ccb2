package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lupine-games/werewolf-core/core/events"
)

func testConfigs(n int) []PlayerConfig {
	configs := make([]PlayerConfig, 0, n)
	for i := range n {
		configs = append(configs, PlayerConfig{
			ID:   fmt.Sprintf("p%d", i+1),
			Name: fmt.Sprintf("Player %d", i+1),
		})
	}
	return configs
}

func startedGame(t *testing.T, n int) (*Game, map[Role][]string) {
	t.Helper()

	g, err := NewGame(testConfigs(n), WithSeed(7))
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	emitted, err := g.StartGame()
	if err != nil {
		t.Fatalf("failed to start game: %v", err)
	}

	roles := map[Role][]string{}
	for _, event := range emitted {
		assigned, ok := event.(events.RolesAssigned)
		if !ok {
			continue
		}
		for _, seat := range assigned.Seats {
			roles[Role(seat.Role)] = append(roles[Role(seat.Role)], seat.ID)
		}
	}
	return g, roles
}

func electChiefByLot(t *testing.T, g *Game) {
	t.Helper()
	if _, err := g.ElectPoliceByLot(nil); err != nil {
		t.Fatalf("failed to elect police chief: %v", err)
	}
}

// runNight walks one full night: werewolf victim, then whatever sub-phases
// the roster has, then dawn. witchAction runs while the witch sub-phase is
// open.
func runNight(t *testing.T, g *Game, victimID string, witchAction func(*Game)) []events.Event {
	t.Helper()

	if _, err := g.StartNight(); err != nil {
		t.Fatalf("failed to start night: %v", err)
	}

	batch, err := g.ConcludeWerewolves(victimID)
	if err != nil {
		t.Fatalf("failed to conclude werewolves: %v", err)
	}
	for len(batch) > 0 {
		switch batch[0].(type) {
		case events.SeerWoke:
			batch, err = g.ConcludeSeer()
		case events.WitchWoke:
			if witchAction != nil {
				witchAction(g)
			}
			batch, err = g.ConcludeWitch()
		default:
			t.Fatalf("unexpected night event %T", batch[0])
		}
		if err != nil {
			t.Fatalf("failed to advance night: %v", err)
		}
	}

	dawn, err := g.StartDay()
	if err != nil {
		t.Fatalf("failed to start day: %v", err)
	}
	return dawn
}

// runDayVote drains the speaker rotation and has every living player vote
// for the same target, returning the resolution batch.
func runDayVote(t *testing.T, g *Game, targetID string) []events.Event {
	t.Helper()

	batch, err := g.BeginSpeeches()
	if err != nil {
		t.Fatalf("failed to begin speeches: %v", err)
	}
	for {
		if _, ok := batch[0].(events.SpeakerChanged); !ok {
			break
		}
		if batch, err = g.ProcessNextSpeaker(); err != nil {
			t.Fatalf("failed to advance speaker: %v", err)
		}
	}

	voting, ok := batch[len(batch)-1].(events.VotingStarted)
	if !ok {
		t.Fatalf("expected voting to open after the rotation, got %T", batch[len(batch)-1])
	}

	var resolution []events.Event
	for _, voter := range voting.Voters {
		emitted, err := g.CastVote(voter.ID, targetID)
		if err != nil {
			t.Fatalf("failed to cast vote for %s: %v", voter.ID, err)
		}
		if len(emitted) > 0 {
			resolution = emitted
		}
	}
	return resolution
}

func TestCountRoles(t *testing.T) {
	tests := []struct {
		players int
		want    RoleCounts
	}{
		{players: 3, want: RoleCounts{Werewolves: 1, Villagers: 2}},
		{players: 5, want: RoleCounts{Werewolves: 2, Villagers: 3}},
		{players: 6, want: RoleCounts{Werewolves: 2, Seers: 1, Witches: 1, Villagers: 2}},
		{players: 8, want: RoleCounts{Werewolves: 3, Seers: 1, Witches: 1, Villagers: 3}},
		{players: 9, want: RoleCounts{Werewolves: 3, Seers: 1, Witches: 1, Hunters: 1, Villagers: 3}},
		{players: 12, want: RoleCounts{Werewolves: 4, Seers: 1, Witches: 1, Hunters: 1, Villagers: 5}},
	}

	for _, tt := range tests {
		got, err := CountRoles(tt.players)
		if err != nil {
			t.Fatalf("CountRoles(%d) failed: %v", tt.players, err)
		}
		if got != tt.want {
			t.Errorf("CountRoles(%d) = %+v, want %+v", tt.players, got, tt.want)
		}
	}
}

func TestCountRolesCoversEveryRosterSize(t *testing.T) {
	for n := 3; n <= 20; n++ {
		counts, err := CountRoles(n)
		if err != nil {
			t.Fatalf("CountRoles(%d) failed: %v", n, err)
		}

		total := counts.Werewolves + counts.Seers + counts.Witches + counts.Hunters + counts.Villagers
		if total != n {
			t.Errorf("CountRoles(%d) deals %d roles", n, total)
		}
		if counts.Werewolves != (n+2)/3 {
			t.Errorf("CountRoles(%d) deals %d werewolves, want %d", n, counts.Werewolves, (n+2)/3)
		}
		if hasSpecials := n >= 6; (counts.Seers == 1 && counts.Witches == 1) != hasSpecials {
			t.Errorf("CountRoles(%d): seer/witch presence wrong: %+v", n, counts)
		}
		if hasHunter := n >= 9; (counts.Hunters == 1) != hasHunter {
			t.Errorf("CountRoles(%d): hunter presence wrong: %+v", n, counts)
		}
	}
}

func TestNewGameRejectsBadRosters(t *testing.T) {
	var setupErr *SetupError

	if _, err := NewGame(testConfigs(2)); !errors.As(err, &setupErr) {
		t.Errorf("expected SetupError for a 2-player roster, got %v", err)
	}

	configs := testConfigs(5)
	configs[1].ID = configs[0].ID
	if _, err := NewGame(configs); !errors.As(err, &setupErr) {
		t.Errorf("expected SetupError for duplicate ids, got %v", err)
	}
}

func TestStartGameRequiresMinPlayers(t *testing.T) {
	g, err := NewGame(testConfigs(4))
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	var setupErr *SetupError
	if _, err := g.StartGame(); !errors.As(err, &setupErr) {
		t.Errorf("expected SetupError starting with 4 players, got %v", err)
	}
	if g.Phase() != PhaseWaiting {
		t.Errorf("failed start must not advance the phase, got %s", g.Phase())
	}
}

func TestStartGameDealsRolesAndOpensElection(t *testing.T) {
	g, err := NewGame(testConfigs(7), WithSeed(7))
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	emitted, err := g.StartGame()
	if err != nil {
		t.Fatalf("failed to start game: %v", err)
	}

	wantKinds := []events.Kind{events.KindGameStarted, events.KindRolesAssigned, events.KindPoliceElectionStarted}
	if len(emitted) != len(wantKinds) {
		t.Fatalf("expected %d events, got %d", len(wantKinds), len(emitted))
	}
	for i, kind := range wantKinds {
		if emitted[i].Kind() != kind {
			t.Errorf("event %d: got kind %s, want %s", i, emitted[i].Kind(), kind)
		}
	}

	if g.Phase() != PhasePoliceElection {
		t.Errorf("expected phase %s, got %s", PhasePoliceElection, g.Phase())
	}

	counts := map[Role]int{}
	for _, seat := range emitted[1].(events.RolesAssigned).Seats {
		counts[Role(seat.Role)]++
	}
	want, _ := CountRoles(7)
	if counts[RoleWerewolf] != want.Werewolves || counts[RoleSeer] != want.Seers ||
		counts[RoleWitch] != want.Witches || counts[RoleVillager] != want.Villagers {
		t.Errorf("dealt roles %v do not match %+v", counts, want)
	}

	if _, err := g.StartGame(); err == nil {
		t.Error("expected starting an already started game to fail")
	}
}

func TestPoliceElectionUnopposed(t *testing.T) {
	g, roles := startedGame(t, 5)
	chief := roles[RoleVillager][0]

	emitted, err := g.SetPoliceChief(chief)
	if err != nil {
		t.Fatalf("failed to set police chief: %v", err)
	}

	elected, ok := emitted[0].(events.PoliceElected)
	if !ok || !elected.Unopposed || elected.Chief.ID != chief {
		t.Fatalf("expected unopposed election of %s, got %+v", chief, emitted[0])
	}
	if g.PoliceChief() != chief {
		t.Errorf("expected police chief %s, got %s", chief, g.PoliceChief())
	}
}

func TestPoliceBallotForcedCloseUsesFirstSeenTieBreak(t *testing.T) {
	g, roles := startedGame(t, 7)
	first := roles[RoleVillager][0]
	second := roles[RoleWerewolf][0]

	emitted, err := g.OpenPoliceBallot([]string{first, second})
	if err != nil {
		t.Fatalf("failed to open police ballot: %v", err)
	}
	voting := emitted[0].(events.VotingStarted)
	if voting.Purpose != events.BallotPolice || len(voting.Candidates) != 2 {
		t.Fatalf("unexpected voting event %+v", voting)
	}

	// Three votes each, the tie breaks to the first target seen.
	voters := voting.Voters
	targets := []string{first, second, first, second, first, second}
	for i, target := range targets {
		if _, err := g.CastVote(voters[i].ID, target); err != nil {
			t.Fatalf("failed to cast vote: %v", err)
		}
	}

	resolution, err := g.ProcessVotes()
	if err != nil {
		t.Fatalf("failed to process votes: %v", err)
	}
	elected, ok := resolution[0].(events.PoliceElected)
	if !ok || elected.Chief.ID != first || elected.Unopposed {
		t.Fatalf("expected %s to win the tie, got %+v", first, resolution[0])
	}
}

func TestCastVoteRejectsIneligibleVoter(t *testing.T) {
	g, roles := startedGame(t, 5)
	electChiefByLot(t, g)
	runNight(t, g, "", nil)

	batch, err := g.BeginSpeeches()
	if err != nil {
		t.Fatalf("failed to begin speeches: %v", err)
	}
	for {
		if _, ok := batch[0].(events.SpeakerChanged); !ok {
			break
		}
		if batch, err = g.ProcessNextSpeaker(); err != nil {
			t.Fatalf("failed to advance speaker: %v", err)
		}
	}

	var ineligible *IneligibleVoterError
	if _, err := g.CastVote("ghost", roles[RoleVillager][0]); !errors.As(err, &ineligible) {
		t.Errorf("expected IneligibleVoterError, got %v", err)
	}
}

func TestProcessVotesEmptyTallySparesEveryone(t *testing.T) {
	g, roles := startedGame(t, 5)
	electChiefByLot(t, g)
	runNight(t, g, "", nil)

	batch, err := g.BeginSpeeches()
	if err != nil {
		t.Fatalf("failed to begin speeches: %v", err)
	}
	for {
		if _, ok := batch[0].(events.SpeakerChanged); !ok {
			break
		}
		if batch, err = g.ProcessNextSpeaker(); err != nil {
			t.Fatalf("failed to advance speaker: %v", err)
		}
	}

	resolution, err := g.ProcessVotes()
	if err != nil {
		t.Fatalf("failed to process votes: %v", err)
	}
	if len(resolution) != 0 {
		t.Fatalf("expected no elimination from an empty tally, got %v", resolution)
	}

	for _, view := range g.Context().Alive {
		if player, _ := g.Player(view.ID); !player.IsAlive {
			t.Errorf("player %s should have survived the empty vote", view.ID)
		}
	}
	if _, err := g.CastVote(roles[RoleVillager][0], roles[RoleWerewolf][0]); err == nil {
		t.Error("expected the ballot to be cleared after processing")
	}

	if _, err := g.StartNight(); err != nil {
		t.Errorf("expected the game to continue into the night, got %v", err)
	}
}

func TestPluralityWinner(t *testing.T) {
	tests := []struct {
		name   string
		votes  []Vote
		want   string
		chosen bool
	}{
		{
			name:   "simple majority",
			votes:  []Vote{{"a", "x"}, {"b", "y"}, {"c", "x"}},
			want:   "x",
			chosen: true,
		},
		{
			name:   "tie breaks to first seen",
			votes:  []Vote{{"a", "y"}, {"b", "x"}, {"c", "x"}, {"d", "y"}},
			want:   "y",
			chosen: true,
		},
		{
			name:   "abstentions are skipped",
			votes:  []Vote{{"a", ""}, {"b", "x"}, {"c", ""}},
			want:   "x",
			chosen: true,
		},
		{
			name:  "all abstain",
			votes: []Vote{{"a", ""}, {"b", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, chosen := PluralityWinner(tt.votes)
			if got != tt.want || chosen != tt.chosen {
				t.Errorf("PluralityWinner() = (%q, %t), want (%q, %t)", got, chosen, tt.want, tt.chosen)
			}
		})
	}
}

func TestRevoteReplacesInPlace(t *testing.T) {
	ballot := newBallot(events.BallotElimination, []string{"a", "b", "c", "d"}, []string{"x", "y"})

	ballot.cast("a", "x")
	ballot.cast("b", "y")
	// a changes their mind; y keeps a's original discovery slot.
	ballot.cast("a", "y")
	ballot.cast("c", "x")
	ballot.cast("d", "x")

	winner, ok := ballot.winner()
	if !ok || winner != "x" {
		t.Errorf("expected x to win 3-2... got (%q, %t)", winner, ok)
	}

	ballot.cast("d", "y")
	winner, ok = ballot.winner()
	if !ok || winner != "y" {
		t.Errorf("expected the replaced vote to flip the round to y, got (%q, %t)", winner, ok)
	}
}

func TestNightSkipsAbsentRoles(t *testing.T) {
	g, roles := startedGame(t, 5)
	electChiefByLot(t, g)

	victim := roles[RoleVillager][0]
	dawn := runNight(t, g, victim, nil)

	broke, ok := dawn[0].(events.DayBroke)
	if !ok || len(broke.Deaths) != 1 || broke.Deaths[0].ID != victim {
		t.Fatalf("expected dawn with one death, got %+v", dawn[0])
	}
	if killed, _ := g.Player(victim); killed.IsAlive {
		t.Errorf("victim %s should be dead", victim)
	}
}

func TestWerewolvesCannotTargetTheirOwn(t *testing.T) {
	g, roles := startedGame(t, 5)
	electChiefByLot(t, g)

	if _, err := g.StartNight(); err != nil {
		t.Fatalf("failed to start night: %v", err)
	}
	if _, err := g.ConcludeWerewolves(roles[RoleWerewolf][0]); err == nil {
		t.Error("expected targeting a werewolf to fail")
	}
	// The sub-phase survives the rejection.
	if _, err := g.ConcludeWerewolves(roles[RoleVillager][0]); err != nil {
		t.Errorf("expected a valid victim to be accepted, got %v", err)
	}
}

func TestSeerInvestigationIsRecorded(t *testing.T) {
	g, roles := startedGame(t, 7)
	electChiefByLot(t, g)
	seer := roles[RoleSeer][0]
	wolf := roles[RoleWerewolf][0]

	if _, err := g.StartNight(); err != nil {
		t.Fatalf("failed to start night: %v", err)
	}
	batch, err := g.ConcludeWerewolves("")
	if err != nil {
		t.Fatalf("failed to conclude werewolves: %v", err)
	}
	if _, ok := batch[0].(events.SeerWoke); !ok {
		t.Fatalf("expected the seer to wake, got %T", batch[0])
	}

	role, err := g.Investigate(seer, wolf)
	if err != nil {
		t.Fatalf("failed to investigate: %v", err)
	}
	if role != RoleWerewolf {
		t.Errorf("expected investigation to reveal %s, got %s", RoleWerewolf, role)
	}

	findings := g.Findings(seer)
	if len(findings) != 1 || findings[0].TargetID != wolf || findings[0].Role != RoleWerewolf {
		t.Errorf("unexpected findings %+v", findings)
	}

	// Investigating outside the seer sub-phase is a phase error.
	if _, err := g.ConcludeSeer(); err != nil {
		t.Fatalf("failed to conclude seer: %v", err)
	}
	var phaseErr *PhaseError
	if _, err := g.Investigate(seer, wolf); !errors.As(err, &phaseErr) {
		t.Errorf("expected PhaseError, got %v", err)
	}
}

func TestWitchSavesAndPoisonsInTheSameNight(t *testing.T) {
	g, roles := startedGame(t, 7)
	electChiefByLot(t, g)
	witch := roles[RoleWitch][0]
	victim := roles[RoleVillager][0]
	poisoned := roles[RoleWerewolf][0]

	dawn := runNight(t, g, victim, func(g *Game) {
		if err := g.UseAntidote(witch); err != nil {
			t.Fatalf("failed to use antidote: %v", err)
		}
		if err := g.UsePoison(witch, poisoned); err != nil {
			t.Fatalf("failed to use poison: %v", err)
		}
	})

	broke := dawn[0].(events.DayBroke)
	if len(broke.Deaths) != 1 || broke.Deaths[0].ID != poisoned {
		t.Fatalf("expected only the poisoned player to die, got %+v", broke.Deaths)
	}
	if saved, _ := g.Player(victim); !saved.IsAlive {
		t.Error("the saved victim should be alive")
	}

	potions, ok := g.Potions(witch)
	if !ok || !potions.AntidoteUsed || !potions.PoisonUsed {
		t.Errorf("expected both potions spent, got %+v", potions)
	}

	// Both potions are single-use for the whole game.
	runDayVote(t, g, roles[RoleVillager][1])
	if _, err := g.StartNight(); err != nil {
		t.Fatalf("failed to start night: %v", err)
	}
	if _, err := g.ConcludeWerewolves(victim); err != nil {
		t.Fatalf("failed to conclude werewolves: %v", err)
	}
	if _, err := g.ConcludeSeer(); err != nil {
		t.Fatalf("failed to conclude seer: %v", err)
	}
	if err := g.UseAntidote(witch); err == nil {
		t.Error("expected the spent antidote to be rejected")
	}
	if err := g.UsePoison(witch, victim); err == nil {
		t.Error("expected the spent poison to be rejected")
	}
}

func TestHunterRevengeOnElimination(t *testing.T) {
	g, roles := startedGame(t, 9)
	electChiefByLot(t, g)
	hunter := roles[RoleHunter][0]
	wolf := roles[RoleWerewolf][0]

	runNight(t, g, "", nil)
	resolution := runDayVote(t, g, hunter)

	if len(resolution) != 2 {
		t.Fatalf("expected elimination plus revenge window, got %v", resolution)
	}
	eliminated := resolution[0].(events.PlayerEliminated)
	if eliminated.Player.ID != hunter || eliminated.VoteTally[hunter] != 9 {
		t.Fatalf("unexpected elimination %+v", eliminated)
	}
	if _, ok := resolution[1].(events.HunterRevenge); !ok {
		t.Fatalf("expected a revenge window, got %T", resolution[1])
	}
	if g.PendingRevenge() != hunter {
		t.Fatalf("expected pending revenge for %s, got %q", hunter, g.PendingRevenge())
	}

	emitted, err := g.HunterShoot(hunter, wolf)
	if err != nil {
		t.Fatalf("failed to shoot: %v", err)
	}
	killed, ok := emitted[0].(events.PlayerKilled)
	if !ok || killed.Victim.ID != wolf {
		t.Fatalf("expected the wolf to be shot, got %+v", emitted[0])
	}
	if shot, _ := g.Player(wolf); shot.IsAlive {
		t.Error("the shot player should be dead")
	}
	if g.PendingRevenge() != "" {
		t.Error("revenge should be resolved")
	}
}

func TestHunterMayDecline(t *testing.T) {
	g, roles := startedGame(t, 9)
	electChiefByLot(t, g)
	hunter := roles[RoleHunter][0]

	runNight(t, g, "", nil)
	runDayVote(t, g, hunter)

	emitted, err := g.HunterShoot(hunter, "")
	if err != nil {
		t.Fatalf("failed to decline: %v", err)
	}
	if len(emitted) != 0 {
		t.Fatalf("expected no events from a declined shot, got %v", emitted)
	}
}

func TestVillagersWinWhenAllWolvesAreGone(t *testing.T) {
	g, roles := startedGame(t, 5)
	electChiefByLot(t, g)
	wolves := roles[RoleWerewolf]

	runNight(t, g, "", nil)
	if resolution := runDayVote(t, g, wolves[0]); len(resolution) != 1 {
		t.Fatalf("expected the game to continue after the first wolf, got %v", resolution)
	}

	runNight(t, g, "", nil)
	resolution := runDayVote(t, g, wolves[1])
	ended, ok := resolution[len(resolution)-1].(events.GameEnded)
	if !ok || ended.Winner != CampVillagers {
		t.Fatalf("expected a villager win, got %v", resolution)
	}
	if g.Phase() != PhaseEnded {
		t.Errorf("expected phase %s, got %s", PhaseEnded, g.Phase())
	}

	if _, err := g.StartNight(); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver after the end, got %v", err)
	}
	if _, err := g.StartGame(); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver after the end, got %v", err)
	}
}

func TestWerewolvesWinWhenVillageIsGone(t *testing.T) {
	g, roles := startedGame(t, 5)
	electChiefByLot(t, g)
	villagers := roles[RoleVillager]

	runNight(t, g, "", nil)
	runDayVote(t, g, villagers[0])

	dawn := runNight(t, g, villagers[1], nil)
	if _, ok := dawn[len(dawn)-1].(events.GameEnded); ok {
		t.Fatalf("expected the game to continue with one villager left, got %v", dawn)
	}

	resolution := runDayVote(t, g, villagers[2])
	ended, ok := resolution[len(resolution)-1].(events.GameEnded)
	if !ok || ended.Winner != CampWerewolves {
		t.Fatalf("expected a werewolf win, got %v", resolution)
	}
}

func TestSpeakerQueue(t *testing.T) {
	var q SpeakerQueue
	q.Enqueue([]string{"a", "b", "a", "c"})
	if q.Pending() != 3 {
		t.Fatalf("expected duplicates dropped, pending = %d", q.Pending())
	}

	alive := map[string]bool{"a": true, "b": false, "c": true}
	var order []string
	for {
		id, ok := q.Next(func(id string) bool { return alive[id] })
		if !ok {
			break
		}
		order = append(order, id)
	}

	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("expected ineligible speakers skipped, got %v", order)
	}
	if q.Current() != "" {
		t.Errorf("expected no current speaker after draining, got %q", q.Current())
	}
}
