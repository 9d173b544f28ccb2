package game

// Potions tracks a witch's single-use flags. Each potion can be consumed at
// most once for the whole game.
type Potions struct {
	AntidoteUsed bool
	PoisonUsed   bool
}
