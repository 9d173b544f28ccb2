package game

import "github.com/jinzhu/copier"

// PlayerView is the provider-facing view of one living player.
type PlayerView struct {
	ID      string
	Name    string
	IsHuman bool
}

// Context is a read-only snapshot handed to decision providers. Providers
// never receive references into game state; the snapshot is deep-copied and
// never mutated by the engine afterwards.
type Context struct {
	GameID  string
	Day     int
	IsNight bool
	Phase   Phase
	Alive   []PlayerView
}

// Context builds a snapshot of the current game for decision providers.
func (g *Game) Context() Context {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.contextLocked()
}

func (g *Game) contextLocked() Context {
	snapshot := Context{
		GameID:  g.id,
		Day:     g.day,
		IsNight: g.phase == PhaseNight,
		Phase:   g.phase,
	}

	for _, player := range g.players {
		if !player.IsAlive {
			continue
		}
		var view PlayerView
		copier.Copy(&view, player)
		snapshot.Alive = append(snapshot.Alive, view)
	}

	return snapshot
}
