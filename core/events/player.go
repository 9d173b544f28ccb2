package events

const (
	// KindPoliceElected identifies the police chief announcement.
	KindPoliceElected Kind = "player.police_elected"
	// KindPlayerKilled identifies a night death.
	KindPlayerKilled Kind = "player.killed"
	// KindPlayerEliminated identifies a day-vote elimination.
	KindPlayerEliminated Kind = "player.eliminated"
	// KindHunterRevenge identifies a dying hunter's retaliation window.
	KindHunterRevenge Kind = "player.hunter_revenge"
)

// PoliceElected marks the police chief selection. Unopposed is true when the
// office was decided without a vote round.
type PoliceElected struct {
	Base
	Chief     Seat
	Unopposed bool
}

// NewPoliceElected creates a police elected event.
func NewPoliceElected(chief Seat, unopposed bool) PoliceElected {
	return PoliceElected{Base: NewBase(KindPoliceElected), Chief: chief, Unopposed: unopposed}
}

// PlayerKilled marks a night death with the revealed role.
type PlayerKilled struct {
	Base
	Day    int
	Victim Seat
}

// NewPlayerKilled creates a player killed event.
func NewPlayerKilled(day int, victim Seat) PlayerKilled {
	return PlayerKilled{Base: NewBase(KindPlayerKilled), Day: day, Victim: victim}
}

// PlayerEliminated marks a day-vote elimination with the revealed role.
type PlayerEliminated struct {
	Base
	Day       int
	Player    Seat
	VoteTally map[string]int
}

// NewPlayerEliminated creates a player eliminated event.
func NewPlayerEliminated(day int, player Seat, voteTally map[string]int) PlayerEliminated {
	return PlayerEliminated{Base: NewBase(KindPlayerEliminated), Day: day, Player: player, VoteTally: voteTally}
}

// HunterRevenge opens a dying hunter's one-shot retaliation window before
// their death is final.
type HunterRevenge struct {
	Base
	Day        int
	Hunter     Seat
	Candidates []Seat
}

// NewHunterRevenge creates a hunter revenge event.
func NewHunterRevenge(day int, hunter Seat, candidates []Seat) HunterRevenge {
	return HunterRevenge{Base: NewBase(KindHunterRevenge), Day: day, Hunter: hunter, Candidates: candidates}
}
