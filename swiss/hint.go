/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "sort"

// The pairing vector holds indices into the canonical player list,
// two entries per board: position 2k is the higher ranked player on
// board k, 2k+1 the lower ranked. A bye, if any, occupies the last
// slot.

// sortBoards insertion-sorts boards into wall chart order: active
// unpaired boards first, byes last, then descending scores and ratings
// with the player order as the final tiebreaker.
func sortBoards(pl []*Player, pair []int) {
	for x := 0; x < len(pair); x += 2 {
		for y := x; y > 0; y -= 2 {
			a2, a1 := pl[pair[y-2]], pl[pair[y-1]]
			b2, b1 := pl[pair[y]], pl[pair[y+1]]
			if a2.Paired != b2.Paired {
				if !a2.Paired {
					break
				}
			} else if a1.isBye() != b1.isBye() {
				if !a1.isBye() {
					break
				}
			} else if a2.ByeRequest != b2.ByeRequest {
				if !a2.ByeRequest {
					break
				}
			} else if a2.Score != b2.Score {
				if a2.Score > b2.Score {
					break
				}
			} else if a1.Score != b1.Score {
				// same top scores: compare the bottom players before
				// falling back to pairing numbers
				if a1.Score > b1.Score {
					break
				}
			} else if a2.Rating != b2.Rating {
				if a2.Rating > b2.Rating {
					break
				}
			} else if a1.Rating != b1.Rating {
				if a1.Rating > b1.Rating {
					break
				}
			} else if !lessPlayer(b2, a2) {
				break
			}
			pair[y], pair[y-2] = pair[y-2], pair[y]
			pair[y+1], pair[y-1] = pair[y-1], pair[y+1]
		}
	}
}

// hintPairings builds the optimizer's starting point from the callers'
// board number hints. Players sharing a board number stay together
// (manually paired boards are preserved as-is); orphans become
// singletons. With collapseByes the singletons are packed against each
// other and a sentinel bye covers an odd count; otherwise each orphan
// is paired with the bye.
func hintPairings(pl []*Player, collapseByes bool) []int {
	type hinted struct {
		board int
		idx   int
	}
	var m []hinted
	for x := 0; x < len(pl)-1; x++ {
		if pl[x].BoardNum != -1 {
			m = append(m, hinted{pl[x].BoardNum, x})
		}
	}
	sort.SliceStable(m, func(i, j int) bool { return m[i].board < m[j].board })

	var pair []int   // preserved pairings
	var single []int // orphans that need pairing
	var other []int  // non-paired players
	byeIndex := len(pl) - 1
	for i := 0; i < len(m); i++ {
		p1 := pl[m[i].idx]
		if i+1 >= len(m) {
			// last board originally scheduled for a bye
			if p1.Paired || p1.ByeRequest || !collapseByes {
				other = append(other, p1.Rank, byeIndex)
			} else {
				single = append(single, p1.Rank)
			}
			continue
		}
		p2 := pl[m[i+1].idx]
		if p2.BoardNum != p1.BoardNum || p2.Paired != p1.Paired ||
			(!p1.Paired && (p1.ByeRequest || p2.ByeRequest)) {
			// service only p1, leaving p2 for the next iteration
			if p1.Paired || p1.ByeRequest || !collapseByes {
				other = append(other, p1.Rank, byeIndex)
			} else {
				single = append(single, p1.Rank)
			}
		} else {
			// service p1 and p2 together
			if p1.Paired {
				other = append(other, p1.Rank, p2.Rank)
			} else {
				pair = append(pair, p1.Rank, p2.Rank)
			}
			i++
		}
	}

	pair = append(pair, single...)
	if len(pair)%2 != 0 {
		pair = append(pair, byeIndex)
	}
	pair = append(pair, other...)

	// put the rank-lower player in the first slot of each board
	for x := 0; x < len(pair); x += 2 {
		if pl[pair[x]].Rank > pl[pair[x+1]].Rank {
			pair[x], pair[x+1] = pair[x+1], pair[x]
		}
	}
	sortBoards(pl, pair)
	return pair
}

// firstPairings overwrites the hint with textbook pairings: within each
// score group the upper half plays the lower half in rank order (rule
// 27A2), an odd player drops to the top of the next score group, and
// the final odd player takes the bye. This is exact for round one
// without team blocks and close for large sections with few blocks.
func firstPairings(pl []*Player, pair []int, players int) {
	// byes already sit past the players window; sort the window by rank
	// (also the naive 1 vs 2 pairing)
	sort.Ints(pair[:players])

	for x := 0; x < players; {
		scoreGroup := pl[x].Score
		// find the end of the score group
		for y := x + 1; ; y++ {
			if y < players && pl[y].Score == scoreGroup {
				continue
			}
			n := y - x
			for z := 0; z+1 < n; z += 2 {
				// upper half of the score group against the lower half
				pair[x+z] = x + z/2
				pair[x+z+1] = x + n/2 + z/2
			}
			if n%2 == 0 {
				x = y // no odd player
			} else if y < players {
				// odd player drops to play the top of the next group
				pair[y-1] = y - 1
				pair[y] = y
				x = y + 1
			} else {
				// odd player takes the bye
				pair[y-1] = y - 1
				x = y
			}
			break
		}
	}
}
