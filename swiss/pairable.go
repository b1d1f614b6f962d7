/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "sort"

// pairGrid represents pairings between players by rank: the upper
// triangle holds next-round pairings (round number when taken), the
// lower triangle marks all past rounds and the current pairing.
type pairGrid [][]int

// byeGrid marks known byes: byes[x][y] is nonzero when player x has a
// bye in future round y counted from the end.
type byeGrid [][]int

// pairableMaxPlayers bounds the exhaustive completion search; larger
// sections clamp the lookahead horizon instead of recursing deeper.
const (
	pairableMaxPlayers = 20
	pairableMaxRounds  = 3
)

// pairableRange reports whether the remaining rounds can be completed
// without anyone meeting twice. It fills rows begin..end of the grid's
// upper triangle for the current round, recursing across rounds once a
// full round is placed.
func pairableRange(grid pairGrid, rounds int, bye byeGrid, begin, end int) bool {
	players := len(grid)
	if players <= 1 {
		return true
	}
	if players < end {
		diag.Warn().Int("players", players).Int("end", end).
			Msg("pairable: window parameters may not be calculated right")
	}
	for row := begin; row < end && row < players; row++ {
		if bye[row][rounds-1] != 0 {
			continue
		}
	nextCol:
		for col := row + 1; col < players; col++ {
			if bye[col][rounds-1] != 0 {
				continue
			}
			if grid[row][col] != 0 || grid[col][row] != 0 {
				continue
			}
			for z := 0; z < row; z++ {
				if grid[z][col] != 0 || grid[z][row] != 0 {
					continue nextCol
				}
			}
			grid[row][col] = rounds // try this pairing
			if end >= players {
				// round complete; check the next one
				if rounds <= 1 {
					return true
				}
				newGrid := make(pairGrid, players)
				for x := range grid {
					newGrid[x] = append([]int(nil), grid[x]...)
				}
				for x := 0; x < players-1; x++ {
					for y := x + 1; y < players; y++ {
						if grid[x][y] != 0 {
							newGrid[y][x] = rounds
						}
						newGrid[x][y] = 0
					}
				}
				if pairable(newGrid, rounds-1, bye) {
					copy(grid, newGrid)
					return true
				}
			} else {
				// need more pairings this round
				if pairableRange(grid, rounds, bye, row+1, end+1) {
					return true
				}
			}
			grid[row][col] = 0 // this pairing didn't work
		}
	}
	return false
}

func pairable(grid pairGrid, rounds int, bye byeGrid) bool {
	if rounds <= 0 {
		return true
	}
	players := len(grid)
	byes := 0
	for x := 0; x < players; x++ {
		byes += bye[x][rounds-1]
	}
	return pairableRange(grid, rounds, bye, 0, players-(players-byes)/2+1)
}

// isOneTeamMajority reports whether one team's members form an absolute
// majority of the section; the team lookahead treats such sections as
// infeasible outright since the exhaustive search degenerates there.
func isOneTeamMajority(pl []*Player) bool {
	team := make([]int, 0, len(pl)-1)
	for _, p := range pl[:len(pl)-1] {
		team = append(team, p.TeamID)
	}
	sort.Ints(team)
	mode, next := 0, 0
	modeCnt, nextCnt := 0, 0
	for _, t := range team {
		if t == next {
			nextCnt++
		} else {
			next = t
			nextCnt = 1
		}
		if nextCnt > modeCnt {
			mode = next
			modeCnt = nextCnt
		}
	}
	// >= rather than > because exactly half the section is already a
	// performance problem for the exhaustive search
	return mode != 0 && 2*modeCnt >= len(team)
}

// pairableCost returns 1 when the remaining rounds cannot be completed
// without a player meeting someone twice (rules 27A1, 29C2, 29K, 29L),
// or - with isTeam - without violating a team block (28N, 28N1, 28T).
// Rather than using published round robin tables it invents pairings as
// needed, which keeps Swiss flexibility as players withdraw, register
// late, or request byes.
func pairableCost(wCode byte, pl []*Player, pair []int, remainingRounds int, isTeam bool) int64 {
	if remainingRounds <= 0 {
		return 0
	}
	if isTeam && isOneTeamMajority(pl) {
		return 1
	}
	num := len(pl) - 1 // non-bye players
	if num > pairableMaxPlayers && remainingRounds > pairableMaxRounds {
		// bound the exhaustive search for big sections; a shortened
		// horizon still catches the round robin end game that matters
		remainingRounds = pairableMaxRounds
	}
	rounds := pl[0].Round + remainingRounds
	bye := make(byeGrid, num)
	grid := make(pairGrid, num)
	for y := 0; y < num; y++ {
		bye[y] = make([]int, remainingRounds)
		grid[y] = make([]int, num)
		grid[y][y] = -11
	}
	// opponents and teammates go in the lower triangle; byes are noted
	for y := 0; y < num; y++ {
		r1 := pl[y].Rank
		if r1 >= num {
			diag.Warn().Int("rank", r1).Msg("pairable: inputs problem")
			continue
		}
		for _, rnd := range pl[y].ByeRounds {
			if rnd > rounds {
				diag.Warn().Int("round", rnd).Int("rank", r1).
					Msg("pairable: invalid bye round")
			} else if rounds-rnd < remainingRounds {
				bye[r1][rounds-rnd] = 1
			}
		}
		for _, r2 := range pl[y].OpponentRanks {
			if r2 >= num {
				continue
			}
			if r1 < r2 {
				grid[r2][r1] = -1
			} else {
				grid[r1][r2] = -1
			}
		}
		if isTeam {
			for _, r2 := range pl[y].TeammateRanks {
				if r2 >= num {
					continue
				}
				if r1 < r2 {
					grid[r2][r1] = -1
				} else {
					grid[r1][r2] = -1
				}
			}
		}
	}
	// also record the current pairings, not just historical ones
	for y := 0; y+1 < len(pair); y += 2 {
		r1 := pair[y]
		r2 := pair[y+1]
		if !pl[r1].isBye() && !pl[r2].isBye() {
			if r1 < r2 {
				grid[r2][r1] = -1
			} else {
				grid[r1][r2] = -1
			}
		}
	}
	if pairable(grid, remainingRounds, bye) {
		return 0
	}
	desc := "Can't pair future rounds (27A1)"
	if isTeam {
		desc = "Can't pair future rounds with team block (28N,U)"
	}
	describeCost(pl[0], wCode, desc)
	return 1
}
