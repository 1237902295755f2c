package vision

// Bond ring reference colors, one per bond level. The palette entries are
// far apart in RGB space, so nearest-neighbor needs no rejection option.
// Kept as a slice so the iteration order is fixed: on an exact tie the
// lowest level wins because it is checked first.
var bondPalette = []struct {
	level   int
	r, g, b int
}{
	{1, 109, 108, 117},
	{2, 42, 192, 255},
	{3, 162, 230, 30},
	{4, 255, 173, 30},
	{5, 255, 235, 120},
}

// ClassifyBondLevel maps a sampled RGB pixel to a bond level in 1..5 by
// nearest reference color (squared Euclidean distance). It always
// produces a classification.
func ClassifyBondLevel(r, g, b int) int {
	bestLevel := 1
	bestDist := int(^uint(0) >> 1)
	for _, ref := range bondPalette {
		dr, dg, db := r-ref.r, g-ref.g, b-ref.b
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			bestLevel = ref.level
		}
	}
	return bestLevel
}
