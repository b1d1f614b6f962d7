/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "sort"

// costFunction evaluates the full cost of a pairing over boards
// pBegin..pEnd. Warning codes are only assigned when doCodes is set;
// the letters follow the per-board evaluation order so downstream
// renderers can rely on their meaning. costPlayers collects the ranks
// of players contributing non-zero cost for the optimizer's pruning.
func costFunction(cfg Config, pl []*Player, pair []int, remainingRounds, pBegin, pEnd int, doCodes, usePairableCost bool, costPlayers map[int]bool) Cost {
	// don't evaluate the granted bye requests at the tail
	for pBegin < pEnd && pl[pair[pEnd-1]].isBye() &&
		(pl[pair[pEnd-2]].ByeRequest || pl[pair[pEnd-2]].ByeHouse) {
		pEnd -= 2
	}
	var c Cost
	c.Players = len(pl) - 1
	players := len(pl)

	if doCodes {
		for x := pBegin; x < pEnd; x++ {
			pl[pair[x]].WarnCodes = ""
		}
	}

	// warning letters advance with each cost term in evaluation order
	var wCode byte
	nextCode := func() byte {
		if wCode == 'Z' {
			wCode = 'a'
		} else {
			wCode++
		}
		return wCode
	}
	var w byte
	code := func() byte {
		l := nextCode()
		if !doCodes {
			return 0
		}
		return l
	}

	wCodePlayers := byte('A')
	wCodeTeams := byte('B')
	wCodePairCard := byte('C')

	isHousePlayer := false
	lowestScore := 0.0
	if len(pl) > 0 && len(pair) > 0 {
		lowestScore = pl[pair[0]].Score
	}
	for x := pBegin; x < pEnd; x += 2 {
		if s := pl[pair[x]].Score; lowestScore > s {
			lowestScore = s
		}
		if s := pl[pair[x+1]].Score; lowestScore > s {
			lowestScore = s
		}
	}

	lastScore := -1.0
	lastMedian, lastUnrated := 0, 0
	for x := pBegin; x < pEnd; x += 2 {
		lastC := c
		wCode = 'A' - 1
		px := pl[pair[x]]
		py := pl[pair[x+1]]
		if px.ByeHouse || py.ByeHouse {
			isHousePlayer = true
		}
		xColor := AllocateColor(px, py, x/2%2 == 0)

		// medians and substitute ratings are cached per score group
		mx := lastMedian
		if px.Score != lastScore {
			mx = medianRating(pl, pair, px.Score, pBegin, pEnd)
		}
		my := mx
		if py.Score != px.Score {
			if py.Score == lastScore {
				my = lastMedian
			} else {
				my = medianRating(pl, pair, py.Score, pBegin, pEnd)
			}
		}
		ux := lastUnrated
		if px.Score != lastScore {
			ux = unratedRating(pl, pair, px.Score, pBegin, pEnd)
		}
		uy := ux
		if py.Score != px.Score {
			if py.Score == lastScore {
				uy = lastUnrated
			} else {
				uy = unratedRating(pl, pair, py.Score, pBegin, pEnd)
			}
		}
		if lastScore != px.Score {
			lastScore = px.Score
			lastMedian = mx
			lastUnrated = ux
		}

		w = code()
		c.ByeChoice += byeChoice(w, px, py) + byeChoice(w, py, px)
		w = code()
		c.ByeAgain += byeAgain(w, px, py, players) + byeAgain(w, py, px, players)
		w = code()
		c.PlayersMeetTwice += identicalMatch(w, px, py, players, xColor) +
			identicalMatch(w, py, px, players, flipColor(xColor))
		w = code()
		c.PlayersMeetTwice += playersMeetTwice(w, px, py, players) +
			playersMeetTwice(w, py, px, players)
		wCodePlayers = nextCode()
		if !cfg.TeamBlockThresholdZero {
			w = code()
			c.TeamBlocks2 += teamBlocks2(w, px, py, players) + teamBlocks2(w, py, px, players)
		}
		w = code()
		c.UnequalScores += unequalScores(w, px, py, players, remainingRounds) +
			unequalScores(w, py, px, players, remainingRounds)
		w = code()
		c.TeamBlocks += teamBlocks(w, px, py, players) + teamBlocks(w, py, px, players)
		if !cfg.TeamBlockThresholdZero {
			wCodeTeams = nextCode()
		}
		w = code()
		c.ByeAfterHalf += byeAfterHalf(w, px, py, players) + byeAfterHalf(w, py, px, players)
		w = code()
		c.LowestScoreBye += lowestScoreBye(w, px, py, players, lowestScore) +
			lowestScoreBye(w, py, px, players, lowestScore)
		w = code()
		c.LowestRatedBye += lowestRatedBye(w, px, py, remainingRounds) +
			lowestRatedBye(w, py, px, remainingRounds)
		w = code()
		c.OddPlayerUnrated += oddPlayerUnrated(cfg, w, px, py) + oddPlayerUnrated(cfg, w, py, px)
		w = code()
		c.OddPlayerMultipleGroups += oddPlayerMultipleGroups(w, px, py, players) +
			oddPlayerMultipleGroups(w, py, px, players)
		w = code()
		c.Interchange200 += interchange(w, px, py, players, mx, ux, 200) +
			interchange(w, py, px, players, my, uy, 200)
		w = code()
		c.Transpose200 += transpose(w, pl, pair, x, x+1, ux, 200, pBegin, pEnd) +
			transpose(w, pl, pair, x+1, x, uy, 200, pBegin, pEnd)
		if px.Multiround%2 == 1 {
			w = code()
			c.ColorImbalance += colorImbalance(w, px, py, xColor) +
				colorImbalance(w, py, px, flipColor(xColor))
			w = code()
			c.ColorRepeat3 += colorRepeat3(w, px, py, xColor) +
				colorRepeat3(w, py, px, flipColor(xColor))
		}
		w = code()
		c.Interchange80 += interchange(w, px, py, players, mx, ux, 80) +
			interchange(w, py, px, players, my, uy, 80)
		w = code()
		c.Transpose80 += transpose(w, pl, pair, x, x+1, ux, 80, pBegin, pEnd) +
			transpose(w, pl, pair, x+1, x, uy, 80, pBegin, pEnd)
		if px.Multiround%2 == 1 {
			w = code()
			c.ColorAlternate += colorAlternate(w, px, py, xColor) +
				colorAlternate(w, py, px, flipColor(xColor))
		}
		w = code()
		c.Interchange0 += interchange(w, px, py, players, mx, ux, 0) +
			interchange(w, py, px, players, my, uy, 0)
		w = code()
		c.Transpose0 += transpose(w, pl, pair, x, x+1, ux, 0, pBegin, pEnd) +
			transpose(w, pl, pair, x+1, x, uy, 0, pBegin, pEnd)
		wCodePairCard = nextCode()
		if doCodes {
			w = code()
			c.ReversedColors += reversedColors(w, px, py, xColor) +
				reversedColors(w, py, px, flipColor(xColor))
			w = code()
			c.BoardOverlap += boardOverlap(w, pl, pair, px, py) +
				boardOverlap(w, pl, pair, py, px)
			w = code()
			c.BoardOrder += boardOrder(w, pl, pair, px, py, x, x+1, pBegin, pEnd) +
				boardOrder(w, pl, pair, py, px, x+1, x, pBegin, pEnd)
		}
		if !c.Equal(lastC) {
			costPlayers[pair[x]] = true
			if x+1 < pEnd {
				costPlayers[pair[x+1]] = true
			}
		}
	}

	// an odd number of players with no house player forces one bye;
	// removing that cost allows zero cost to end the search
	if !isHousePlayer && pEnd > 0 && pl[pair[pEnd-1]].isBye() && !pl[pair[pEnd-2]].ByeRequest {
		c.ByeChoice--
	}

	if usePairableCost {
		wp := wCodePlayers
		if !doCodes {
			wp = 0
		}
		c.CantPairPlayers = pairableCost(wp, pl, pair, remainingRounds, false)
		if !cfg.TeamBlockThresholdZero && c.CantPairPlayers == 0 {
			wt := wCodeTeams
			if !doCodes {
				wt = 0
			}
			c.CantPairTeams = pairableCost(wt, pl, pair, remainingRounds, true)
		}
	}
	wc := wCodePairCard
	if !doCodes {
		wc = 0
	}
	c.PairingCard = pairingCard(wc, pl, pair, costPlayers)

	if doCodes {
		for _, p := range pl {
			b := []byte(p.WarnCodes)
			sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
			p.WarnCodes = string(b)
		}
	}
	return c
}
