/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "sort"

// isSubstituteUnrated reports whether the player's rating should be
// replaced by the lowest rated player in the score group (rule 29E5g
// and the 29E5 TD TIP).
func isSubstituteUnrated(p *Player) bool {
	return p.IsUnrated && p.UseRating != "none"
}

// effectiveRating is the rating used for transpose comparisons, with
// unrated players scored at the score group's lowest rated player.
func effectiveRating(p *Player, unratedRating int) int {
	if isSubstituteUnrated(p) {
		return unratedRating
	}
	return p.Rating
}

// medianRating finds the median rating of the given score group; for an
// even sized group it takes the lower of the two middle values. Boards
// where both players are active and share the score are preferred;
// otherwise all active non-bye-request players are used.
func medianRating(pl []*Player, pair []int, score float64, pBegin, pEnd int) int {
	var sg1, sg2 []int
	for x := pBegin; x < pEnd; x += 2 {
		px := pl[pair[x]]
		py := pl[pair[x+1]]
		if px.Score == score && py.Score == score && !px.isBye() && !py.isBye() {
			sg1 = append(sg1, px.Rating, py.Rating)
		}
		if !px.isBye() && !px.ByeRequest {
			sg2 = append(sg2, px.Rating)
		}
		if !py.isBye() && !py.ByeRequest {
			sg2 = append(sg2, py.Rating)
		}
	}
	for _, sg := range [][]int{sg1, sg2} {
		if len(sg) == 0 {
			continue
		}
		sort.Ints(sg)
		if len(sg)%2 == 1 {
			return sg[len(sg)/2]
		}
		lo, hi := sg[len(sg)/2-1], sg[len(sg)/2]
		if lo < hi {
			return lo
		}
		return hi
	}
	return 0
}

// unratedRating is the lowest rated player's rating within the score
// group, used to stand in for unrated players (29E5g).
func unratedRating(pl []*Player, pair []int, score float64, pBegin, pEnd int) int {
	rating := MaxRating
	for x := pBegin; x < pEnd; x++ {
		px := pl[pair[x]]
		if !px.isBye() && !px.ByeRequest && px.Score == score && px.Rating < rating &&
			(!px.IsUnrated || px.UseRating == "none") {
			rating = px.Rating
		}
	}
	if rating == MaxRating {
		return 0
	}
	return rating
}

// interchange charges upper-half/lower-half swaps against the score
// group median under rules 27A3, 29C, 29D, and 29E5. The value encodes
// players*MaxRating plus the rating delta so that the number of
// violations dominates their magnitude.
func interchange(wCode byte, x, y *Player, players, median, unrated, threshold int) int64 {
	dl := threshold
	r0 := x.Rating
	r1 := effectiveRating(x, unrated)
	rm := median
	var cv int64
	switch {
	case x.isBye():
		cv = 0
	case y.isBye():
		// bye player shouldn't be above the median (rule 28L2)
		if rm+dl < r1 {
			cv = int64(players)*MaxRating + int64(r1-rm)
		}
	case x.Score == y.Score && x.Rank > y.Rank && rm+dl < minInt(r0, y.Rating):
		// both players above median
		cv = int64(players)*MaxRating + int64(minInt(r0, y.Rating)-rm)
	case x.Score < y.Score && r0+dl < rm:
		// player pulled up is below median
		cv = int64(players)*MaxRating + int64(rm-r0)
	case x.Score > y.Score && rm+dl < r0:
		// player dropped down is above median
		cv = int64(players)*MaxRating + int64(r0-rm)
	}
	if cv != 0 {
		desc := "Interchange above 0 (27A5)"
		if threshold >= 200 {
			desc = "Interchange above 200 (27A3;29E5b,e,g)"
		} else if threshold >= 80 {
			desc = "Interchange above 80 (27A3;29E5b,e,g)"
		}
		describeCost(x, wCode, desc)
	}
	return cv
}

// transpose charges within-score-group rating transpositions under
// rules 27A5, 29C, 29D, and 29E. Only the lower-half player of each
// board looks downward; boards above will have compared down already.
func transpose(wCode byte, pl []*Player, pair []int, x, y, unrated, threshold, pBegin, pEnd int) int64 {
	players := len(pl)
	px := pl[pair[x]]
	py := pl[pair[y]]
	if px.isBye() || py.isBye() {
		return 0
	}
	if px.Rank < py.Rank {
		return 0
	}
	// px is in the lower half (or a pull up) of its board
	var cv int64
	sx, sy := px.Score, py.Score
	rx := effectiveRating(px, unrated)
	ry := effectiveRating(py, unrated)
	kx := px.Rank
	dl := threshold
	for z := x + 1; z+1 < pEnd; z += 2 {
		p1 := pl[pair[z]]
		p2 := pl[pair[z+1]]
		s1, s2 := p1.Score, p2.Score
		r1 := effectiveRating(p1, unrated)
		r2 := effectiveRating(p2, unrated)
		d2 := r2 - rx
		if sy == sx && s1 == s2 {
			// rule 29E5c: compare the cheaper of the two swaps
			d2 = minInt(r2-rx, ry-r1)
		}
		k2 := p2.Rank
		// same score group with a bigger transpose: sx is a pull up
		// (check both halves), s1 is a drop down (check upper half),
		// or the lower half is a bye (rule 28L2)
		if s1 == sx && dl < r1-rx &&
			(sx < sy || s1 > s2 || p2.isBye()) {
			cv += int64(players)*MaxRating + int64(r1-rx)
		}
		if s2 == sx && dl < d2 && !p2.isBye() &&
			(sx < sy || k2 < kx) {
			cv += int64(players)*MaxRating + int64(d2)
		}
	}
	if cv != 0 {
		desc := "Transpose above 0 (29C1)"
		if threshold >= 200 {
			desc = "Transpose above 200 (29C1,29E5b,g)"
		} else if threshold >= 80 {
			desc = "Transpose above 80 (29C1,29E5b,g)"
		}
		describeCost(px, wCode, desc)
	}
	return cv
}

// pairingCard measures how far the pairing strays from pairing-number
// order for players tied on score and rating (rules 28A, 28B, 29A); the
// per-violation charge is the board index distance.
func pairingCard(wCode byte, pl []*Player, pair []int, costPlayers map[int]bool) int64 {
	var num int64
	const costDesc = "Transposed/Interchanged pair number (28A,28B,29A)"
	tied := func(a, b *Player) bool {
		return a.Paired == b.Paired && a.Score == b.Score &&
			(a.Rating == b.Rating || a.Rating == 0) &&
			!a.isBye() && !b.isBye()
	}
	for x := 0; x < len(pair); x += 2 {
		for y := x + 2; y < len(pair); y += 2 {
			// transpose in the upper half
			if tied(pl[pair[x]], pl[pair[y]]) && pl[pair[x]].Rand > pl[pair[y]].Rand {
				num += absInt64(int64(pair[x]) - int64(pair[y]))
				describeCost(pl[pair[x]], wCode, costDesc)
				costPlayers[pair[x]] = true
				costPlayers[pair[y]] = true
			}
			// transpose in the lower half
			if tied(pl[pair[x+1]], pl[pair[y+1]]) && pl[pair[x+1]].Rand > pl[pair[y+1]].Rand {
				num += absInt64(int64(pair[x+1]) - int64(pair[y+1]))
				describeCost(pl[pair[x+1]], wCode, costDesc)
				costPlayers[pair[x+1]] = true
				costPlayers[pair[y+1]] = true
			}
		}
		isDropDown := pl[pair[x]].Score != pl[pair[x+1]].Score || pl[pair[x+1]].isBye()
		// interchange against the top board's lower half
		if !isDropDown && tied(pl[pair[x]], pl[pair[1]]) &&
			pl[pair[x]].Rating == pl[pair[1]].Rating &&
			pl[pair[x]].Rand > pl[pair[1]].Rand {
			num += absInt64(int64(pair[x]) - int64(pair[1]))
			describeCost(pl[pair[x]], wCode, costDesc)
			costPlayers[pair[x]] = true
			costPlayers[pair[1]] = true
		}
		// drop down out of pairing-number order
		if isDropDown && x > 0 && tied(pl[pair[x]], pl[pair[x-1]]) &&
			pl[pair[x]].Rating == pl[pair[x-1]].Rating &&
			pl[pair[x]].Rand < pl[pair[x-1]].Rand {
			num += absInt64(int64(pair[x]) - int64(pair[x-1]))
			describeCost(pl[pair[x]], wCode, costDesc)
			costPlayers[pair[x]] = true
			costPlayers[pair[x-1]] = true
		}
	}
	return num
}

func minInt(a, b int) int {
	if a <= b {
		return a
	}
	return b
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
