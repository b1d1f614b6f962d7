/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"math"
	"sort"
)

// FindPairings computes pairings for one section and one round with the
// default configuration. Board numbers and colors are written back
// through the player pointers; the returned Cost quantifies how far the
// pairing strays from the USCF rules. depth controls the optimizer
// search (1 is fast, 2 is slow, 3+ is a debugging aid); skipOptimize
// evaluates the hint as-is. totalRounds is the number of rounds in the
// schedule, and firstBoardNum numbers the top board (zero guesses from
// the hints).
func FindPairings(players []*Player, totalRounds, firstBoardNum, depth int, useFirstPairings, skipOptimize bool, secName string) Cost {
	return DefaultConfig().FindPairings(players, totalRounds, firstBoardNum, depth, useFirstPairings, skipOptimize, secName)
}

// FindPairings computes pairings under an explicit compatibility
// configuration; see the package-level FindPairings.
func (cfg Config) FindPairings(players []*Player, totalRounds, firstBoardNum, depth int, useFirstPairings, skipOptimize bool, secName string) Cost {
	if len(players) <= 1 {
		diag.Warn().Str("section", secName).Msg("nobody active to pair")
	} else if players[0].Multiround != 1 {
		validateMultiround(players, secName)
	}

	// an odd number of active players grants the house player's bye
	housePlayer := -1
	active := 0
	for x, p := range players {
		if !p.ByeRequest && !p.Paired && !p.isBye() {
			active++
			if p.ByeHouse {
				housePlayer = x
			}
		}
	}
	if active%2 == 0 {
		housePlayer = -1
	}
	if housePlayer >= 0 {
		diag.Info().Str("section", secName).Str("player", players[housePlayer].Name).
			Msg("requesting bye for house player")
		hp := players[housePlayer]
		hp.ByeRequest = true
		// the request only lasts for this pairing; restore the caller's input
		defer func() { hp.ByeRequest = false }()
		active--
	}

	// canonical form: sorted with the sentinel bye at the end
	pl := canonicalPlayers(players)

	// short cut for round robin pairings
	if len(pl) > 0 && (pl[0].Kind == KindRoundRobin || pl[0].Kind == KindDoubleRoundRobin) {
		roundRobinPair(pl, totalRounds, firstBoardNum, secName)
		return Cost{Players: len(pl) - 1}
	}

	// lowest hinted board stands in for an absent firstBoardNum
	lowBoard := math.MaxInt32
	for _, p := range pl {
		if !p.isBye() && lowBoard > p.BoardNum {
			lowBoard = p.BoardNum
		}
	}
	if firstBoardNum == 0 {
		firstBoardNum = lowBoard
	}

	// starting point from the given board assignments
	pair := hintPairings(pl, true)
	if useFirstPairings {
		// clean upper-vs-lower pairing for active non-bye players,
		// ignoring the hint
		firstPairings(pl, pair, active)
	}

	var cost Cost
	if skipOptimize {
		cost = costFunction(cfg, pl, pair, totalRounds-pl[0].Round, 0, (active+1)/2*2, true, true, make(map[int]bool))
	} else {
		cost = minimizePairingCost(cfg, pl, pair, totalRounds-pl[0].Round, depth, 0, active, false)
	}

	finalizeBoards(pl, pair, firstBoardNum)
	return cost
}

// validateMultiround checks that multiround sections repeat each
// opponent exactly multiround times in a row.
func validateMultiround(players []*Player, secName string) {
	mr := players[0].Multiround
	for _, px := range players {
		if px.Multiround != mr {
			diag.Error().Str("section", secName).Str("player", px.Name).
				Msg("inconsistent multiround")
			continue
		}
		for y := 0; y < len(px.Opponents); y += mr {
			opponent := px.Opponents[y]
			for z := y; z < y+mr && z < len(px.Opponents); z++ {
				if px.Opponents[z] != opponent {
					diag.Error().Str("section", secName).Str("player", px.Name).
						Msg("not same opponents across multiround")
					break
				}
			}
		}
	}
}

// finalizeBoards sorts the boards into output order (byes last),
// assigns board numbers from firstBoardNum, and allocates colors.
func finalizeBoards(pl []*Player, pair []int, firstBoardNum int) {
	// sort boards by rank, putting byes last
	for x := 2; x < len(pair); x += 2 {
		for y := x; y > 0; y -= 2 {
			z1 := y - 2
			if !lessPlayer(pl[pair[y-2]], pl[pair[y-1]]) {
				z1 = y - 1
			}
			z2 := y
			if !lessPlayer(pl[pair[y]], pl[pair[y+1]]) {
				z2 = y + 1
			}
			b1 := pl[pair[y-2]].isBye() || pl[pair[y-1]].isBye()
			b2 := pl[pair[y]].isBye() || pl[pair[y+1]].isBye()
			if b1 != b2 {
				if !b1 {
					break
				}
			} else if lessPlayer(pl[pair[z1]], pl[pair[z2]]) {
				break
			}
			pair[y], pair[y-2] = pair[y-2], pair[y]
			pair[y+1], pair[y-1] = pair[y-1], pair[y+1]
		}
	}
	// set boards and colors (active players get the lower boards)
	for x := 0; x < len(pair); x += 2 {
		px := pl[pair[x]]
		py := pl[pair[x+1]]
		px.BoardNum = firstBoardNum + x/2
		py.BoardNum = px.BoardNum
		py.BoardColor = AllocateColor(py, px, x/2%2 == 0)
		px.BoardColor = flipColor(py.BoardColor)
	}
	pl[len(pl)-1].BoardNum = -1
}

// lessRobinSort orders round robin sections by the caller-supplied lots.
func lessRobinSort(x, y *Player) bool {
	if x.isBye() != y.isBye() {
		return y.isBye()
	}
	return x.Rand < y.Rand
}

// roundRobinPair assigns boards and colors for round robin sections
// from the Crenshaw-Berger tables, honoring a first-half withdrawal.
// An odd section plays against the sentinel bye, which takes the
// virtual last seat in the next larger table.
func roundRobinPair(pl []*Player, totalRounds, firstBoardNum int, secName string) {
	sort.SliceStable(pl, func(i, j int) bool { return lessRobinSort(pl[i], pl[j]) })
	totalRounds /= pl[0].Multiround
	n := len(pl) - 1 // active players; pl still carries the sentinel
	seats := n
	if n%2 == 1 {
		seats++ // sentinel fills the virtual seat and grants the byes
	}
	withdrawnPlayer := 0
	for x, px := range pl[:n] {
		if len(px.ByeRounds) > 0 && px.ByeRounds[0] <= (totalRounds+1)/2 {
			if withdrawnPlayer != 0 {
				diag.Warn().Str("section", secName).
					Msg("round robin supports only one first-half withdrawal")
			}
			withdrawnPlayer = x + 1
		}
	}
	for x := 0; x < seats && x < len(pl); x++ {
		px := pl[x]
		round := (pl[0].Round-1)/pl[0].Multiround + 1
		board, color := CrenshawBergerLookup(seats, round, x+1, withdrawnPlayer)
		px.BoardNum = board + firstBoardNum - 1
		px.BoardColor = color
	}
	bye := pl[len(pl)-1]
	if seats > n {
		// the player drawn against the virtual seat receives white
		for _, px := range pl[:n] {
			if px.BoardNum == bye.BoardNum {
				px.BoardColor = 'W'
				bye.BoardColor = 'B'
				break
			}
		}
	} else {
		bye.BoardNum = -1
	}
}
