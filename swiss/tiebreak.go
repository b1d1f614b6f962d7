/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"math"
	"sort"

	"lukechampine.com/frand"
)

// Result letters, one per round:
//
//	$ = double win, # = 1.5 points, % = 1.0 in a double game,
//	W/N = win (played/forfeit), B/X = full point bye / forfeit win,
//	D/R = draw, H/Z = half/zero point bye, L/S = loss,
//	U/F/* = unplayed.

// PlayerResult carries one player's results for the whole tournament
// and receives the computed tiebreak vectors. Opponent, Color, and
// Result all have one entry per round; withdrawn players should carry
// 'U' for missed games so the lengths match their section.
type PlayerResult struct {
	Player string // key by which this value is indexed
	Rating int

	Opponent []string // opponent key for each round in order
	Color    string   // color for each round in order
	Result   string   // result letter for each round in order

	// calculation fields, reset on every run
	rawScore, adjScore, cumScore, byeScore, head2head float64
	cumScoreByes                                      float64
	byeCnt, blackCnt, kashdan, winCnt                 int
	firstLossRound                                    int
	performanceRating                                 float64
	coinFlip                                          float64

	TiebreakCode  []byte    // tiebreak letter, in emission order
	TiebreakValue []float64 // tiebreak value, same order as the codes
}

// PlayerResultMap indexes results by player key, typically
// "playid_reentry"; the sentinel bye key must be present.
type PlayerResultMap map[string]*PlayerResult

// tiebreakPlayer accumulates the per-player counters from the result
// letters.
func tiebreakPlayer(p *PlayerResult, byeKey string) {
	rounds := len(p.Color)
	p.rawScore = 0
	p.adjScore = 0
	p.cumScore = 0
	p.byeScore = 0
	p.kashdan = 0
	p.byeCnt = 0
	p.blackCnt = 0
	p.winCnt = 0
	p.firstLossRound = 0
	p.coinFlip = -1
	if p.Player == byeKey {
		return
	}
	for x := 0; x < rounds; x++ {
		if p.firstLossRound == x {
			p.firstLossRound++
		}
		switch p.Result[x] {
		case '$':
			p.rawScore += 2.0
			p.adjScore += 2.0
			p.kashdan += 4 + 4
			p.blackCnt++
			p.winCnt += 2
		case '#':
			p.rawScore += 1.5
			p.adjScore += 1.5
			p.kashdan += 4 + 2
			p.blackCnt++
			p.winCnt++
		case '%':
			p.rawScore += 1.0
			p.adjScore += 1.0
			p.kashdan += 2 + 2
			p.blackCnt++
		case 'W', 'N':
			p.rawScore += 1.0
			p.adjScore += 1.0
			p.kashdan += 4
			if p.Color[x] == 'B' {
				p.blackCnt++
			}
			p.winCnt++
		case 'B', 'X':
			p.rawScore += 1.0
			p.adjScore += 0.5
			p.byeScore += 1.0
			p.byeCnt++
		case 'D', 'R':
			p.rawScore += 0.5
			p.adjScore += 0.5
			p.kashdan += 2
			if p.Color[x] == 'B' {
				p.blackCnt++
			}
		case 'H', 'Z':
			p.rawScore += 0.5
			p.adjScore += 0.5
			p.byeScore += 0.5
			p.byeCnt++
		case 'L', 'S':
			p.kashdan++
			if p.Color[x] == 'B' {
				p.blackCnt++
			}
			if p.firstLossRound == x+1 {
				p.firstLossRound--
			}
		case 'U', 'F', '*':
			p.adjScore += 0.5
			p.byeCnt++
		default:
			diag.Error().Str("player", p.Player).Str("result", string(p.Result[x])).
				Msg("unknown result letter")
		}
		p.cumScore += p.rawScore
	}
	p.cumScoreByes = p.cumScore
	p.cumScore -= p.byeScore
	p.firstLossRound++ // between 1 and N+1 instead of 0 and N
}

// tiebreakCoinFlip draws the last-resort random tiebreak (rule 34E13),
// re-rolling on the vanishingly unlikely collision.
func tiebreakCoinFlip(prm PlayerResultMap, p *PlayerResult, byeKey string) {
	if p.Player == byeKey {
		return
	}
nextFlip:
	for {
		p.coinFlip = frand.Float64()
		for _, other := range prm {
			if other.Player != p.Player && other.coinFlip == p.coinFlip {
				continue nextFlip
			}
		}
		return
	}
}

// tiebreakPlayed reports whether the result letter represents a played
// game.
func tiebreakPlayed(result byte) bool {
	switch result {
	case 'B', 'X', 'H', 'Z', 'U', 'F', '*':
		return false
	}
	return true
}

// tiebreakPerformance computes head-to-head results between tied
// players (rule 34E5) and the opposition performance rating (34E10):
// opponent rating plus or minus 400 per win or loss.
func tiebreakPerformance(prm PlayerResultMap, p *PlayerResult, byeKey string) {
	rounds := len(p.Color)
	playerCnt := 0
	ratingSum := 0.0
	p.head2head = 0
	for x := 0; p.Player != byeKey && x < rounds; x++ {
		opponent, ok := prm[p.Opponent[x]]
		if !ok {
			diag.Error().Str("player", p.Player).Str("opponent", p.Opponent[x]).
				Msg("tiebreak opponent missing")
			continue
		}
		if opponent.rawScore == p.rawScore {
			// result between tied players, rule 34E5
			switch p.Result[x] {
			case '$':
				p.head2head += 2.0
			case '#':
				p.head2head += 1.0
			case 'W', 'N':
				p.head2head += 1.0
			case 'L', 'S':
				p.head2head -= 1.0
			}
			continue
		}
		// opposition's performance, rule 34E10
		switch p.Result[x] {
		case '$', 'W', 'N':
			ratingSum += 400
		case '#':
			ratingSum += 200
		case '%', 'D', 'R':
			ratingSum += 0
		case 'L', 'S':
			ratingSum -= 400
		default:
			continue
		}
		ratingSum += float64(opponent.Rating)
		playerCnt++
	}
	if playerCnt <= 0 {
		p.performanceRating = float64(p.Rating)
	} else {
		p.performanceRating = ratingSum / float64(playerCnt)
	}
}

// tiebreakOpponent aggregates opponents' scores and emits the ordered
// tiebreak vector; see https://en.wikipedia.org/wiki/Tie-breaking_in_Swiss-system_tournaments
func (cfg Config) tiebreakOpponent(prm PlayerResultMap, p *PlayerResult, byeKey string) {
	rounds := len(p.Color)
	adj := make([]float64, 0, rounds)
	adjSum, cumSum := 0.0, 0.0
	ratSum, perfSum := 0.0, 0.0
	partialScore := 0.0
	playCnt := 0
	for x := 0; p.Player != byeKey && x < rounds; x++ {
		opponent, ok := prm[p.Opponent[x]]
		if !ok {
			continue
		}
		isPlayed := tiebreakPlayed(p.Result[x])
		opAdj := 0.0
		if isPlayed {
			opAdj = opponent.adjScore
		}
		adjSum += opAdj
		if cfg.MatchSwissSys {
			cumSum += opponent.cumScoreByes
		} else {
			cumSum += opponent.cumScore
		}
		adj = append(adj, opAdj)
		if isPlayed {
			playCnt++
			ratSum += float64(opponent.Rating)
			perfSum += opponent.performanceRating
		}
		switch p.Result[x] {
		case '$':
			partialScore += opponent.rawScore + opponent.rawScore
		case '#':
			partialScore += opponent.rawScore + opponent.rawScore/2
		case '%':
			partialScore += opponent.rawScore/2 + opponent.rawScore/2
		case 'W', 'N':
			partialScore += opponent.rawScore
		case 'D', 'R':
			partialScore += opponent.rawScore / 2
		}
	}
	sort.Float64s(adj)
	front := func(n int) float64 {
		sum := 0.0
		for x := 0; x < n && x < len(adj); x++ {
			sum += adj[x]
		}
		return sum
	}
	back := func(n int) float64 {
		sum := 0.0
		for x := 0; x < n && x < len(adj); x++ {
			sum += adj[len(adj)-1-x]
		}
		return sum
	}
	ratAvg := float64(p.Rating)
	perfAvg := p.performanceRating
	if playCnt > 0 {
		ratAvg = ratSum / float64(playCnt)
		perfAvg = perfSum / float64(playCnt)
	}

	score2 := math.Round(p.rawScore * 2)
	emit := func(code byte, value float64) {
		p.TiebreakCode = append(p.TiebreakCode, code)
		p.TiebreakValue = append(p.TiebreakValue, value)
	}
	p.TiebreakCode = p.TiebreakCode[:0]
	p.TiebreakValue = p.TiebreakValue[:0]

	// Modified median Harkness, rule 34E1: trim the low end for plus
	// scores, the high end for minus scores, two each for long events
	mm := 0.0
	switch {
	case rounds < 2:
	case rounds < 9:
		mm = adjSum
		if score2 >= float64(rounds) {
			mm -= front(1)
		}
		if score2 <= float64(rounds) {
			mm -= back(1)
		}
	default:
		mm = adjSum
		if score2 >= float64(rounds) {
			mm -= front(2)
		}
		if score2 <= float64(rounds) {
			mm -= back(2)
		}
	}
	emit('M', mm)
	emit('S', adjSum)      // Solkoff, rule 34E2
	emit('C', p.cumScore)  // cumulative score, rule 34E3
	med := 0.0             // basic median, not modified, rule 34E4
	if rounds > 2 && rounds < 9 {
		med = adjSum - front(1) - back(1)
	} else if rounds >= 9 {
		med = adjSum - front(2) - back(2)
	}
	emit('B', med)
	emit('H', p.head2head)          // head-to-head among tied players, rule 34E5
	emit('T', float64(p.blackCnt))  // total blacks, rule 34E6
	emit('K', float64(p.kashdan))   // Kashdan aggressive, rule 34E7
	emit('R', partialScore)         // round robin Sonneborn-Berger, rule 34E8
	emit('O', cumSum)               // opposition cumulative score, rule 34E9
	emit('P', perfAvg)              // performance of opposition, rule 34E10
	emit('A', ratAvg)               // average rating of opposition, rule 34E11
	emit('W', float64(p.winCnt))    // win count
	emit('L', float64(p.firstLossRound))
	emit('Z', p.coinFlip) // coin flip, rule 34E13
}

// TiebreakCalculation fills every PlayerResult's tiebreak vectors with
// the default configuration. byeKey names the sentinel bye entry, which
// must be present in the map.
func TiebreakCalculation(prm PlayerResultMap, byeKey string) {
	DefaultConfig().TiebreakCalculation(prm, byeKey)
}

// TiebreakCalculation fills every PlayerResult's tiebreak vectors.
func (cfg Config) TiebreakCalculation(prm PlayerResultMap, byeKey string) {
	if _, ok := prm[byeKey]; !ok {
		diag.Error().Str("byeKey", byeKey).Msg("tiebreak bye entry missing")
	}
	// deterministic iteration keeps the coin flip re-roll reproducible
	// under a seeded generator
	keys := make([]string, 0, len(prm))
	for k := range prm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p := prm[k]
		tiebreakPlayer(p, byeKey)
		tiebreakCoinFlip(prm, p, byeKey)
	}
	for _, k := range keys {
		tiebreakPerformance(prm, prm[k], byeKey)
	}
	for _, k := range keys {
		cfg.tiebreakOpponent(prm, prm[k], byeKey)
	}
}
