/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// minimizePairingCost searches for minimal-cost pairings in the global
// space of all possible pairings. The greedy search considers all
// d-tuples of position swaps for d = 1..depth, trying eight move
// variants per tuple (plain swap, rotations, score-group rotations,
// and color-aware rotations) when a swap spans more than two positions
// and only the plain swap otherwise, and accepts any strictly
// improving move.
// Candidate tuples are pruned to those touching at least one player
// already contributing cost. pBegin and pEnd are pairing positions,
// not player ranks.
func minimizePairingCost(cfg Config, pl []*Player, pair []int, remainingRounds, depth, pBegin, pEndConst int, usePairableCost bool) Cost {
	pEnd := pEndConst
	hasBye := pEnd%2 != 0
	if hasBye && pEnd < len(pair) && pl[pair[pEnd]].isBye() {
		pEnd++
	}
	bestPair := append([]int(nil), pair...)
	bestCostPlayers := make(map[int]bool)
	bestCost := costFunction(cfg, pl, bestPair, remainingRounds, pBegin, pEnd, false, usePairableCost, bestCostPlayers)
	noShift := make([]bool, pEnd+2)
	const isCostSearch = true // search only players that cause non-zero cost

	for d := 1; pBegin < pEnd && d <= depth; d++ {
		nextPair := append([]int(nil), bestPair...)
		nextCost := bestCost
		i := make([]int, 2*d)
		for j := range i {
			i[j] = pBegin
		}
		isFoundBetter := false

	search:
		for !bestCost.IsZero() {
			// advance the position odometer, skipping byes
			for j := 0; j < len(i); j++ {
				i[j]++
				if i[j] < pEnd && !pl[bestPair[i[j]]].isBye() {
					break
				}
				i[j] = pBegin
			}
			wrapped := true
			for _, v := range i {
				if v != pBegin {
					wrapped = false
					break
				}
			}
			if wrapped {
				break // full cycle, done at this depth
			}
			for j := 0; j < len(i); j += 2 {
				// don't consider the same tuple twice
				if j > 0 {
					if d <= 1 && i[j] <= i[j-2] {
						continue search
					}
					if d > 1 && i[j] < i[j-2] {
						continue search
					}
				}
				if d <= 1 && i[j+1] <= i[j] {
					continue search
				}
				if d > 1 && i[j+1] < i[j] {
					continue search
				}
				if isCostSearch && !bestCostPlayers[bestPair[i[j]]] &&
					!bestCostPlayers[bestPair[i[j+1]]] {
					continue search
				}
			}

			maxChange := 0
			for j := 0; j < len(i); j += 2 {
				if maxChange < i[j+1]-i[j] {
					maxChange = i[j+1] - i[j]
				}
			}
			variants := 1
			if maxChange > 2 {
				variants = 8
			}
			for s := 0; s < variants; s++ {
				testPair := append([]int(nil), bestPair...)
				if !applyMove(pl, testPair, s, i, d, pBegin, pEnd, hasBye, noShift) {
					continue
				}
				// don't put ranks out of order within a board
				for y := 0; y < len(testPair); y += 2 {
					if testPair[y] >= testPair[y+1] {
						testPair[y], testPair[y+1] = testPair[y+1], testPair[y]
					}
				}
				sortBoards(pl, testPair)
				testCostPlayers := make(map[int]bool)
				testCost := costFunction(cfg, pl, testPair, remainingRounds, pBegin, pEnd, false, usePairableCost, testCostPlayers)
				if cfg.Greedy {
					if testCost.Less(bestCost) {
						bestPair = testPair
						bestCost = testCost
						bestCostPlayers = testCostPlayers
						nextPair = bestPair
						nextCost = bestCost
						isFoundBetter = true
					}
				} else if testCost.Less(nextCost) {
					nextPair = testPair
					nextCost = testCost
					bestCostPlayers = testCostPlayers
				}
			}
		}
		if cfg.Greedy {
			if isFoundBetter {
				d-- // look for something even better
			}
		} else if nextCost.Less(bestCost) {
			// keep the level's best candidate and loop again at depth d
			bestPair = nextPair
			bestCost = nextCost
			d--
		}
	}
	copy(pair, bestPair)

	if cfg.UsePairableCost && !usePairableCost {
		c := costFunction(cfg, pl, pair, remainingRounds, pBegin, pEnd, false, true, make(map[int]bool))
		if !c.Equal(bestCost) {
			// the cheap search converged on a pairing the multi-round
			// lookahead rejects; redo the whole search with it enabled
			return minimizePairingCost(cfg, pl, pair, remainingRounds, depth, pBegin, pEnd, true)
		}
	}
	// should match bestCost, but the warn codes still need assigning
	return costFunction(cfg, pl, pair, remainingRounds, pBegin, pEnd, true, true, make(map[int]bool))
}

// applyMove applies move variant s for each swap pair of the tuple.
// Variants: 0 swaps positions; 1 and 2 rotate the span down or up; 3
// and 4 rotate within the spanning score group, honoring odd drop-down
// and pull-up parity; 5 is a color-preserving rotation; 6 and 7 rotate
// with a per-position shift derived from the top board's expected
// color. Returns false when the variant does not apply to this tuple.
func applyMove(pl []*Player, testPair []int, s int, i []int, d, pBegin, pEnd int, hasBye bool, noShift []bool) bool {
	for j := 0; j < len(i); j += 2 {
		if i[j] >= i[j+1] {
			continue // only for d >= 2 where tuple slots may collapse
		}
		hasBye2 := hasBye && (i[j] >= pEnd-2 || i[j+1] >= pEnd-2)
		pEnd2 := pEnd
		if hasBye && !hasBye2 {
			pEnd2 = pEnd - 2
		}
		switch s {
		case 0:
			testPair[i[j]], testPair[i[j+1]] = testPair[i[j+1]], testPair[i[j]]
		case 1:
			rotatePairDown(testPair, i[j], i[j+1], pBegin, pEnd2, hasBye2, false, noShift)
		case 2:
			rotatePairUp(testPair, i[j], i[j+1], pBegin, pEnd2, hasBye2, false, noShift)
		case 3, 4, 5:
			// rotate only within the score group (plus a few stragglers
			// for multiple drop downs and/or pull ups)
			score := pl[testPair[i[j]]].Score
			if pl[testPair[i[j+1]]].Score != score {
				return false
			}
			sBegin := i[j] / 2 * 2
			for sBegin > pBegin && pl[testPair[sBegin-2]].Score == score &&
				pl[testPair[sBegin-1]].Score == score {
				sBegin -= 2
			}
			oddPullUp := i[j] == sBegin+1 && pl[testPair[sBegin]].Score > score
			sEnd := i[j+1]/2*2 + 2
			for sEnd < pEnd2 && pl[testPair[sEnd]].Score == score &&
				pl[testPair[sEnd+1]].Score == score {
				sEnd += 2
			}
			oddDropDown := i[j+1] == sEnd-2 &&
				(pl[testPair[sEnd-1]].Score < score || pl[testPair[sEnd-1]].isBye())
			if s == 3 {
				rotatePairDown(testPair, i[j], i[j+1], sBegin, sEnd, oddDropDown, oddPullUp, noShift)
			} else if s == 4 {
				rotatePairUp(testPair, i[j], i[j+1], sBegin, sEnd, oddDropDown, oddPullUp, noShift)
			} else if !rotateColor(pl, testPair, i[j], i[j+1], sBegin, sEnd, oddDropDown, oddPullUp) {
				return false
			}
		case 6, 7:
			shift := make([]bool, pEnd2+2)
			oppPos := pBegin + 1
			if pBegin%2 != 0 {
				oppPos = pBegin - 1
			}
			startColor := AllocateColor(pl[testPair[pBegin]], pl[testPair[oppPos]], pBegin/2%2 == 0)
			for c := pBegin/2*2 + 2; c < pEnd2; c += 2 {
				shift[c] = startColor != AllocateColor(pl[testPair[c]], pl[testPair[c+1]], c/2%2 == 0)
			}
			if s == 6 {
				rotatePairDown(testPair, i[j], i[j+1], pBegin, pEnd2, hasBye2, false, shift)
			} else {
				rotatePairUp(testPair, i[j], i[j+1], pBegin, pEnd2, hasBye2, false, shift)
			}
		}
	}
	return true
}
