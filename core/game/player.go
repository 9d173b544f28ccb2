package game

// Role is one of the closed set of werewolf roles. A role is dealt once at
// game start and never changes afterwards.
type Role string

const (
	RoleWerewolf Role = "werewolf"
	RoleVillager Role = "villager"
	RoleSeer     Role = "seer"
	RoleWitch    Role = "witch"
	RoleHunter   Role = "hunter"
)

func (r Role) String() string { return string(r) }

// IsWerewolf reports whether the role belongs to the werewolf camp.
func (r Role) IsWerewolf() bool { return r == RoleWerewolf }

// Player is one seat at the table. Players are owned exclusively by the Game
// and are only ever mutated through Game methods; once the game has started
// a player is never removed, only marked dead.
type Player struct {
	ID      string
	Name    string
	IsHuman bool

	Role      Role
	IsAlive   bool
	HasSpoken bool
}

// PlayerConfig describes one seat before the game starts.
type PlayerConfig struct {
	// ID is optional; a fresh id is generated when empty.
	ID      string
	Name    string
	IsHuman bool
}
