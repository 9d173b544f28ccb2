package game

// RoleCounts is the deterministic role distribution for a player count.
type RoleCounts struct {
	Werewolves int
	Seers      int
	Witches    int
	Hunters    int
	Villagers  int
}

// CountRoles computes the role distribution for n players:
// one werewolf per started group of three, a seer and a witch from six
// players, a hunter from nine, villagers fill the rest. Returns a SetupError
// when the special roles alone would exceed the player count.
func CountRoles(n int) (RoleCounts, error) {
	counts := RoleCounts{Werewolves: (n + 2) / 3}
	if n >= 6 {
		counts.Seers = 1
		counts.Witches = 1
	}
	if n >= 9 {
		counts.Hunters = 1
	}

	counts.Villagers = n - counts.Werewolves - counts.Seers - counts.Witches - counts.Hunters
	if counts.Villagers < 0 {
		return RoleCounts{}, &SetupError{Reason: "special roles exceed player count"}
	}

	return counts, nil
}

// pool builds the flat role pool matching the counts, in a fixed order; the
// caller shuffles it before dealing.
func (c RoleCounts) pool() []Role {
	pool := make([]Role, 0, c.Werewolves+c.Seers+c.Witches+c.Hunters+c.Villagers)
	for range c.Werewolves {
		pool = append(pool, RoleWerewolf)
	}
	for range c.Seers {
		pool = append(pool, RoleSeer)
	}
	for range c.Witches {
		pool = append(pool, RoleWitch)
	}
	for range c.Hunters {
		pool = append(pool, RoleHunter)
	}
	for range c.Villagers {
		pool = append(pool, RoleVillager)
	}
	return pool
}

func (g *Game) dealRoles() error {
	counts, err := CountRoles(len(g.players))
	if err != nil {
		return err
	}

	pool := counts.pool()
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for i, player := range g.players {
		player.Role = pool[i]
		if player.Role == RoleWitch {
			g.potions[player.ID] = &Potions{}
		}
	}

	return nil
}
