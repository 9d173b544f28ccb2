package events

const (
	// KindGameStarted identifies the game start boundary.
	KindGameStarted Kind = "game.started"
	// KindRolesAssigned identifies the private role deal.
	KindRolesAssigned Kind = "game.roles_assigned"
	// KindGameEnded identifies the terminal game outcome.
	KindGameEnded Kind = "game.ended"
)

// Seat is the event-facing view of one player at the table.
type Seat struct {
	ID      string
	Name    string
	Role    string
	IsHuman bool
	IsAlive bool
}

// GameStarted marks the start of a game with a frozen roster.
type GameStarted struct {
	Base
	GameID string
	Seats  []Seat
}

// NewGameStarted creates a game started event.
func NewGameStarted(gameID string, seats []Seat) GameStarted {
	return GameStarted{Base: NewBase(KindGameStarted), GameID: gameID, Seats: seats}
}

// RolesAssigned carries the dealt role map for private reveals.
type RolesAssigned struct {
	Base
	Seats []Seat
}

// NewRolesAssigned creates a roles assigned event.
func NewRolesAssigned(seats []Seat) RolesAssigned {
	return RolesAssigned{Base: NewBase(KindRolesAssigned), Seats: seats}
}

// GameEnded marks the terminal outcome; Winner is a camp, not a player.
type GameEnded struct {
	Base
	Winner string
	Seats  []Seat
}

// NewGameEnded creates a game ended event.
func NewGameEnded(winner string, seats []Seat) GameEnded {
	return GameEnded{Base: NewBase(KindGameEnded), Winner: winner, Seats: seats}
}
