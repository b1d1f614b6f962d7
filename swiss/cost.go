/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"math"
	"strings"
)

// MaxRating is one more than the maximum possible USCF rating; it scales
// the transpose/interchange encoding so that the violation count
// dominates the rating delta.
const MaxRating = 30000 + 1

const maxCostValue = math.MaxInt64

// Cost tallies potential problems with a pairing in order of
// significance (most to least). Lower values are better; zero is best.
// Comments give the relevant USCF pairing rules. Costs compare
// lexicographically, so any improvement in a higher field dominates any
// regression below it.
type Cost struct {
	ByeChoice               int64 // 22C, 29K
	ByeAgain                int64 // 28L3
	PlayersMeetTwice        int64 // 27A1, 28S1, 28S2, 29C2
	CantPairPlayers         int64 // 27A1, 29C2, 29K, 29L
	TeamBlocks2             int64 // 28N, 28N1, 28T, 29C2
	UnequalScores           int64 // 27A2, 29A, 29B
	TeamBlocks              int64 // 28N, 28N1, 28T, 29C2
	CantPairTeams           int64 // 28N, 28N1, 28T, 29C2, 29K, 29L
	ByeAfterHalf            int64 // 28L4
	LowestScoreBye          int64 // 28L2, 28L5
	LowestRatedBye          int64 // 28L2, 28L5
	OddPlayerUnrated        int64 // 29D1
	OddPlayerMultipleGroups int64 // 29D2
	Interchange200          int64 // 27A3, 29C, 29D, 29E5
	Transpose200            int64 // 27A5, 29C, 29D, 29E
	ColorImbalance          int64 // 27A4, 29E4
	ColorRepeat3            int64 // 29E5f
	Interchange80           int64 // 27A3, 29D, 29E5
	Transpose80             int64 // 27A5, 29C, 29D, 29E
	ColorAlternate          int64 // 27A5
	Interchange0            int64 // 27A3, 29D, 29E5
	Transpose0              int64 // 27A5, 29C, 29D, 29E
	PairingCard             int64 // 28A, 28B, 29A
	ReversedColors          int64 // 28J, 29E
	BoardOverlap            int64 // 28J
	BoardOrder              int64 // 28J

	Players int // for diagnostics/printing only; excluded from comparison
}

// vector returns the counters in priority order for lexicographic
// comparison.
func (c *Cost) vector() [26]int64 {
	return [26]int64{
		c.ByeChoice, c.ByeAgain, c.PlayersMeetTwice, c.CantPairPlayers,
		c.TeamBlocks2, c.UnequalScores, c.TeamBlocks, c.CantPairTeams,
		c.ByeAfterHalf, c.LowestScoreBye, c.LowestRatedBye,
		c.OddPlayerUnrated, c.OddPlayerMultipleGroups,
		c.Interchange200, c.Transpose200, c.ColorImbalance,
		c.ColorRepeat3, c.Interchange80, c.Transpose80, c.ColorAlternate,
		c.Interchange0, c.Transpose0, c.PairingCard, c.ReversedColors,
		c.BoardOverlap, c.BoardOrder,
	}
}

// Less reports whether c orders strictly before o lexicographically.
func (c Cost) Less(o Cost) bool {
	cv, ov := c.vector(), o.vector()
	for x := range cv {
		if cv[x] != ov[x] {
			return cv[x] < ov[x]
		}
	}
	return false
}

// Equal reports whether both costs have identical counters.
func (c Cost) Equal(o Cost) bool {
	return c.vector() == o.vector()
}

// IsZero reports whether every counter is zero.
func (c Cost) IsZero() bool {
	return c.vector() == [26]int64{}
}

var costNames = [26]string{
	"byeChoice", "byeAgain", "playersMeetTwice", "cantPairPlayers",
	"teamBlocks2", "unequalScores", "teamBlocks", "cantPairTeams",
	"byeAfterHalf", "lowestScoreBye", "lowestRatedBye",
	"oddPlayerUnrated", "oddPlayerMultipleGroups",
	"interchange200", "transpose200", "colorImbalance", "colorRepeat3",
	"interchange80", "transpose80", "colorAlternate",
	"interchange0", "transpose0", "pairingCard", "reversedColors",
	"boardOverlap", "boardOrder",
}

// scaled marks the counters encoded as count*MaxRating*players + delta.
var costScaled = [26]bool{
	13: true, 14: true, 17: true, 18: true, 20: true, 21: true,
}

// String renders only the non-zero counters, splitting the scaled
// transpose/interchange encodings into count and delta.
func (c Cost) String() string {
	var sb strings.Builder
	found := false
	cv := c.vector()
	for x, v := range cv {
		if v == 0 {
			continue
		}
		if found {
			sb.WriteByte(' ')
		}
		if costScaled[x] && c.Players > 0 {
			scale := int64(MaxRating) * int64(c.Players+1) // encoders count the sentinel bye
			fmt.Fprintf(&sb, "%d)%s=%d,%d", x+1, costNames[x], v/scale, v%scale)
		} else {
			fmt.Fprintf(&sb, "%d)%s=%d", x+1, costNames[x], v)
		}
		found = true
	}
	if !found {
		sb.WriteString("zero;")
	} else {
		sb.WriteByte(';')
	}
	if c.Players != 0 {
		fmt.Fprintf(&sb, " players=%d", c.Players)
	}
	return sb.String()
}

// multiple scales a per-board violation count so that c violations on
// one board always outweigh c-1 violations on every board: the sum of
// players^k for k in [0,c), saturating at maxCostValue.
func multiple(cv int64, players int) int64 {
	var result int64
	var pw int64 = 1
	for x := int64(0); x < cv; x++ {
		prev := result
		result += pw
		if result < prev {
			return maxCostValue
		}
		if x+1 < cv {
			next := pw * int64(players)
			if players != 0 && next/int64(players) != pw {
				pw = maxCostValue
			} else {
				pw = next
			}
		}
	}
	return result
}

// costDescription maps warning code letters (A-Z then a-z) to their
// human readable descriptions. Each slot is populated the first time
// its letter is emitted and is read-only thereafter.
var (
	costDescription [52]string
	costDescInit    [52]bool
)

// CostDescriptions returns the description table indexed by warning
// letter ordinal; empty strings mark letters never emitted.
func CostDescriptions() []string {
	out := make([]string, len(costDescription))
	copy(out, costDescription[:])
	return out
}

// describeCost records desc for wCode and appends the letter to the
// player's warning codes. A zero wCode disables recording.
func describeCost(p *Player, wCode byte, desc string) {
	if wCode == 0 {
		return
	}
	var n int
	if wCode <= 'Z' {
		n = int(wCode - 'A')
	} else {
		n = 26 + int(wCode-'a')
	}
	if n < 0 || n >= len(costDescription) {
		return
	}
	if !costDescInit[n] {
		costDescription[n] = desc
		costDescInit[n] = true
	}
	if !strings.ContainsRune(p.WarnCodes, rune(wCode)) {
		p.WarnCodes += string(wCode)
	}
}
