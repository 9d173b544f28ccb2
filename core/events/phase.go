package events

const (
	// KindPoliceElectionStarted identifies the one-time police election window.
	KindPoliceElectionStarted Kind = "phase.police_election_started"
	// KindNightFell identifies the start of a night.
	KindNightFell Kind = "phase.night_fell"
	// KindWerewolvesWoke identifies the werewolf kill sub-phase.
	KindWerewolvesWoke Kind = "phase.werewolves_woke"
	// KindSeerWoke identifies the seer investigation sub-phase.
	KindSeerWoke Kind = "phase.seer_woke"
	// KindWitchWoke identifies the witch potion sub-phase.
	KindWitchWoke Kind = "phase.witch_woke"
	// KindDayBroke identifies the night-to-day boundary.
	KindDayBroke Kind = "phase.day_broke"
)

// PoliceElectionStarted opens the police election right after game start.
type PoliceElectionStarted struct {
	Base
	Electorate []Seat
}

// NewPoliceElectionStarted creates a police election started event.
func NewPoliceElectionStarted(electorate []Seat) PoliceElectionStarted {
	return PoliceElectionStarted{Base: NewBase(KindPoliceElectionStarted), Electorate: electorate}
}

// NightFell marks the start of night for the given day counter.
type NightFell struct {
	Base
	Day int
}

// NewNightFell creates a night fell event.
func NewNightFell(day int) NightFell {
	return NightFell{Base: NewBase(KindNightFell), Day: day}
}

// WerewolvesWoke opens the werewolf kill sub-phase. Candidates never include
// living werewolves.
type WerewolvesWoke struct {
	Base
	Day        int
	Werewolves []Seat
	Candidates []Seat
}

// NewWerewolvesWoke creates a werewolves woke event.
func NewWerewolvesWoke(day int, werewolves, candidates []Seat) WerewolvesWoke {
	return WerewolvesWoke{Base: NewBase(KindWerewolvesWoke), Day: day, Werewolves: werewolves, Candidates: candidates}
}

// SeerWoke opens the seer investigation sub-phase. Seer is the zero Seat when
// no living seer remains, in which case the sub-phase is skipped.
type SeerWoke struct {
	Base
	Day        int
	Seer       Seat
	Candidates []Seat
}

// NewSeerWoke creates a seer woke event.
func NewSeerWoke(day int, seer Seat, candidates []Seat) SeerWoke {
	return SeerWoke{Base: NewBase(KindSeerWoke), Day: day, Seer: seer, Candidates: candidates}
}

// WitchWoke opens the witch potion sub-phase. PendingVictimID is empty when
// the werewolves claimed no victim tonight.
type WitchWoke struct {
	Base
	Day             int
	Witch           Seat
	PendingVictimID string
	AntidoteUsed    bool
	PoisonUsed      bool
	Candidates      []Seat
}

// NewWitchWoke creates a witch woke event.
func NewWitchWoke(day int, witch Seat, pendingVictimID string, antidoteUsed, poisonUsed bool, candidates []Seat) WitchWoke {
	return WitchWoke{
		Base:            NewBase(KindWitchWoke),
		Day:             day,
		Witch:           witch,
		PendingVictimID: pendingVictimID,
		AntidoteUsed:    antidoteUsed,
		PoisonUsed:      poisonUsed,
		Candidates:      candidates,
	}
}

// DayBroke marks the night-to-day boundary and carries overnight deaths in
// the order they were resolved.
type DayBroke struct {
	Base
	Day    int
	Deaths []Seat
}

// NewDayBroke creates a day broke event.
func NewDayBroke(day int, deaths []Seat) DayBroke {
	return DayBroke{Base: NewBase(KindDayBroke), Day: day, Deaths: deaths}
}
