package engine

// FindMove returns the first swap that produces a match, scanning cells in
// row-major order and trying a rightward swap before a downward swap at each
// cell. The last row and column are not used as origins. Every candidate is
// evaluated on a clone, so the live grid is never touched.
//
// The search is greedy: it stops at the first viable swap and does not score
// alternatives or look further ahead.
func FindMove(g *Grid) (SwapIntent, bool) {
	for r := 0; r < g.height-1; r++ {
		for c := 0; c < g.width-1; c++ {
			for _, dir := range [...]Direction{DirRight, DirDown} {
				if swapMatches(g, C(r, c), dir) {
					return SwapIntent{From: C(r, c), Dir: dir}, true
				}
			}
		}
	}
	return SwapIntent{}, false
}

// swapMatches applies a hypothetical swap to a clone and checks both endpoints.
func swapMatches(g *Grid, from Coord, dir Direction) bool {
	hypo := g.Clone()
	rec, err := AttemptSwap(hypo, from, dir)
	if err != nil {
		return false
	}
	return IsMatchedAt(hypo, rec.Pos1.Row, rec.Pos1.Col) || IsMatchedAt(hypo, rec.Pos2.Row, rec.Pos2.Col)
}
