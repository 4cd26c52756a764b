package pairviz

// Whether the two mates, each readlen long from its position in the direction
// of its strand, cover any of the same bases. Mates on different chromosomes
// or genotypes never overlap.
func PairOverlaps(p Pair, readlen int64) bool {
	if p.Bad() || !p.SameChrom() || !p.SameParent() {
		return false
	}

	dist := p.AbsPosDist()
	switch p.Face() {
	case Out:
		return dist == 0
	case Match:
		return dist < readlen
	case In:
		return dist < readlen * 2
	default:
		return false
	}
}
