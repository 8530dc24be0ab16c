package domain

// Redeal gathers the tableau left to right, bottom to top within each pile, and cuts
// the run back into the layout's piles without shuffling. Foundations are untouched.
// The returned state shares no tableau memory with g.
func Redeal(g GameState) GameState {
	if g.Layout.Piles <= 0 || g.Layout.PileSize <= 0 {
		return g.Clone()
	}
	var flat []Card
	for _, p := range g.Tableau {
		flat = append(flat, p...)
	}

	out := g.Clone()
	out.Tableau = dealBlocks(flat, g.Layout.Piles, g.Layout.PileSize)
	return out
}
