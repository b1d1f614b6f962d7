/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "math"

// Each term scores one direction of one board: x is the player being
// charged, y the opponent. The wCode letter is zero except on the final
// codes pass, where a non-zero charge also tags x's warning codes.

func byeChoice(wCode byte, x, y *Player) int64 {
	// rules 22C, 28M1, 29K
	var cv int64
	// rule 28M1 - the house player should receive the bye instead of others
	if !x.isBye() && !x.ByeHouse {
		if x.ByeRequest {
			if !y.isBye() { // rule 22C - forfeit loss would deprive opponent of a game
				cv = 1
			}
		} else if y.isBye() { // rules 29K,L - players prefer rematches over byes
			cv = 1
		}
	}
	if cv != 0 {
		describeCost(x, wCode, "Bye request mismatch (22C,28M1,29K)")
	}
	return cv
}

func byeAgain(wCode byte, x, y *Player, players int) int64 {
	// rule 28L3
	var cv int64
	if !x.isBye() && y.isBye() {
		var cnt int64
		for z := 0; z < len(x.ColorHistory); z++ {
			if x.ColorHistory[z] == 'f' {
				cnt++
			}
		}
		cv = multiple(cnt, players)
	}
	if cv != 0 {
		describeCost(x, wCode, "Bye ineligible (28L3)")
	}
	return cv
}

func identicalMatch(wCode byte, x, y *Player, players int, xColor byte) int64 {
	var rematchX, rematchY int64
	yKey, xKey := y.Key(), x.Key()
	for z, opp := range x.Opponents {
		if opp == yKey && x.PlayedColors[z] == xColor {
			rematchX++
		}
	}
	for z, opp := range y.Opponents {
		if opp == xKey && y.PlayedColors[z] == flipColor(xColor) {
			rematchY++
		}
	}
	cv := multiple(max64(rematchX, rematchY), players)
	if cv != 0 {
		describeCost(x, wCode, "IdenticalMatch")
	}
	return cv
}

func playersMeetTwice(wCode byte, x, y *Player, players int) int64 {
	// rules 27A1, 28S1, 28S2, 29C2
	var rematchX, rematchY int64
	for _, opp := range x.Opponents {
		if opponentID(opp) == y.PlayID {
			rematchX++
		}
	}
	for _, opp := range y.Opponents {
		if opponentID(opp) == x.PlayID {
			rematchY++
		}
	}
	cv := multiple(max64(rematchX, rematchY), players)
	if cv != 0 {
		describeCost(x, wCode, "Players meet twice (27A1,28S1,28S2,29C2)")
	}
	return cv
}

// plusScore is the margin over an even score at this round (rule 28N1).
func plusScore(p *Player) float64 {
	return p.Score - float64(p.Round)/2.0
}

func teamBlocks2(wCode byte, x, y *Player, players int) int64 {
	// rules 28N, 28N1, 28T
	// split in two halves around unequalScores to implement rule 28N1;
	// this half charges blocks where either side lacks a plus-two score
	var team int64
	if x.Rank < y.Rank && (plusScore(x) < 2 || plusScore(y) < 2) {
		for _, tm := range x.Teammates {
			if tm == y.PlayID {
				team++
			}
		}
	}
	cv := multiple(team, players)
	if cv != 0 {
		describeCost(x, wCode, "Team block violated, not plus-two (28N,U)")
	}
	return cv
}

func unequalScores(wCode byte, x, y *Player, players, remainingRounds int) int64 {
	// rules 27A2, 29A, 29B
	var cv int64
	if x.Score != y.Score && x.Rank < y.Rank {
		delta := int64(math.Round(2 * math.Abs(x.Score-y.Score)))
		cv = int64(math.Round(float64(multiple(delta, x.Round))*float64(x.Round) +
			2*math.Max(x.Score, y.Score)))
	}
	if cv != 0 {
		describeCost(x, wCode, "Unequal scores (27A2,29A,29B)")
	}
	return cv
}

func teamBlocks(wCode byte, x, y *Player, players int) int64 {
	// rules 28N, 28N1, 28T; this half charges all blocks
	var team int64
	if x.Rank < y.Rank {
		for _, tm := range x.Teammates {
			if tm == y.PlayID {
				team++
			}
		}
	}
	cv := multiple(team, players)
	if cv != 0 {
		describeCost(x, wCode, "Team block violated (28N,U)")
	}
	return cv
}

func byeAfterHalf(wCode byte, x, y *Player, players int) int64 {
	// rule 28L4
	var cv int64
	if !x.isBye() && y.isBye() && !x.ByeRequest {
		cv = multiple(int64(x.HalfByeCount), players)
	}
	if cv != 0 {
		describeCost(x, wCode, "Bye after half (28L4)")
	}
	return cv
}

func lowestScoreBye(wCode byte, x, y *Player, players int, lowestScore float64) int64 {
	// rule 28L2
	var cv int64
	if !x.isBye() && y.isBye() && !x.ByeRequest && x.Score-lowestScore > 0.25 {
		cv = multiple(int64(math.Round(2*(x.Score-lowestScore))), players)
	}
	if cv != 0 {
		describeCost(x, wCode, "Bye player is not from the lowest score group (28L2)")
	}
	return cv
}

func lowestRatedBye(wCode byte, x, y *Player, remainingRounds int) int64 {
	// rules 28L2, 28L5
	var cv int64
	if !x.isBye() && y.isBye() && !x.ByeRequest && x.IsUnrated && x.UseRating != "none" {
		if x.Provisional+(x.Round+remainingRounds-x.UnplayedCount-1) < 4 {
			cv = 2
		} else {
			cv = 1
		}
	}
	if cv != 0 {
		describeCost(x, wCode, "Bye player unrated and (if cost=2) may have too few games (28L2)")
	}
	return cv
}

func oddPlayerUnrated(cfg Config, wCode byte, x, y *Player) int64 {
	if cfg.MatchSwissSys {
		return 0
	}
	// rule 29D1
	var cv int64
	if !x.isBye() && !y.isBye() && x.Score != y.Score && x.IsUnrated && x.UseRating != "none" {
		cv = 1
	}
	if cv != 0 {
		describeCost(x, wCode, "Odd player unrated (29D1)")
	}
	return cv
}

func oddPlayerMultipleGroups(wCode byte, x, y *Player, players int) int64 {
	// rule 29D2; a half-point drop is expected, more than that is not
	var cv int64
	if !x.isBye() && !y.isBye() && x.Score-y.Score > 0.75 {
		cv = multiple(int64(math.Round(2*(x.Score-y.Score-0.5))), players)
	}
	if cv != 0 {
		describeCost(x, wCode, "Odd player across multiple groups (29D2)")
	}
	return cv
}

func colorImbalance(wCode byte, x, y *Player, xColor byte) int64 {
	// rules 27A4, 29E4
	var cv int64
	if x.DueColor[0] == upper(x.DueColor[0]) && xColor != x.DueColor[0] &&
		!x.isBye() && !y.isBye() {
		cv = 1
	}
	if cv != 0 {
		describeCost(x, wCode, "Color not balanced (27A4)")
	}
	return cv
}

func colorRepeat3(wCode byte, x, y *Player, xColor byte) int64 {
	// rule 29E5f
	if x.isBye() || y.isBye() {
		return 0
	}
	yColor := flipColor(xColor)
	count := 1
	for z := len(x.ColorHistory); z > 0; z-- {
		if x.ColorHistory[z-1] == xColor {
			count++
		} else if x.ColorHistory[z-1] == yColor {
			break
		}
	}
	var cv int64
	if count >= 3 {
		cv = 1
	}
	if cv != 0 {
		describeCost(x, wCode, "Color 3+ in a row (29E5f)")
	}
	return cv
}

func colorAlternate(wCode byte, x, y *Player, xColor byte) int64 {
	// rule 27A5
	if x.isBye() || y.isBye() {
		return 0
	}
	var cv int64
	if xColor != upper(x.DueColor[0]) {
		for z := len(x.ColorHistory); z > 0; z-- {
			if 'a' <= x.ColorHistory[z-1] && x.ColorHistory[z-1] <= 'z' {
				continue
			}
			if x.ColorHistory[z-1] == xColor {
				cv = 1
			}
			break
		}
	}
	if cv != 0 {
		describeCost(x, wCode, "Color not alternating (27A5)")
	}
	return cv
}

func reversedColors(wCode byte, x, y *Player, xColor byte) int64 {
	var cv int64
	if x.BoardColor != xColor && xColor == 'W' {
		cv = 1
	}
	if cv != 0 {
		describeCost(x, wCode, "Colors reversed for pair (28J;29E2,4)")
	}
	return cv
}

func boardOverlap(wCode byte, pl []*Player, pair []int, x, y *Player) int64 {
	var cv int64
	if x.Rank < y.Rank {
		for z := 0; z < len(pair); z += 2 {
			if pl[pair[z+1]].isBye() {
				continue
			}
			if (x.PlayID == pl[pair[z]].PlayID && x.Reentry == pl[pair[z]].Reentry) ||
				(x.PlayID == pl[pair[z+1]].PlayID && x.Reentry == pl[pair[z+1]].Reentry) {
				continue
			}
			if x.BoardNum == pl[pair[z]].BoardNum {
				cv++
			}
		}
	}
	if cv != 0 {
		describeCost(x, wCode, "Board number overlap (28J)")
	}
	return cv
}

func boardOrder(wCode byte, pl []*Player, pair []int, px, py *Player, x, y, pBegin, pEnd int) int64 {
	var cv int64
	w := x
	if y < w {
		w = y
	}
	if lessPlayer(px, py) && !px.isBye() && !py.isBye() && pBegin+2 <= w && w < pEnd {
		pz2 := pl[pair[w-2]]
		pz1 := pl[pair[w-1]]
		low := px.BoardNum
		if py.BoardNum < low {
			low = py.BoardNum
		}
		if pz2.BoardNum > low && pz1.BoardNum > low &&
			pz1.Paired == py.Paired && pz2.Paired == py.Paired &&
			!pz1.isBye() && !pz2.isBye() {
			cv++
		}
	}
	if cv != 0 {
		describeCost(py, wCode, "Board number order (28J)")
	}
	return cv
}

func max64(a, b int64) int64 {
	if a >= b {
		return a
	}
	return b
}
