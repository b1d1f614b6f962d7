/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"
)

// newTestPlayer builds a rated swiss player for round rnd with no
// history; board hint 0 marks a clean (unassigned) board.
func newTestPlayer(id, rating int, score float64, rnd int, rand float64) *Player {
	return &Player{
		Kind:       KindSwiss,
		Round:      rnd,
		BoardNum:   0,
		PlayID:     id,
		Rating:     rating,
		UseRating:  "uscf",
		Score:      score,
		Rand:       rand,
		FirstColor: 'W',
		Multiround: 1,
	}
}

// qualityFields extracts the pairing-quality counters, dropping the
// board annotation codes that depend on the input hints.
func qualityFields(c Cost) [23]int64 {
	var out [23]int64
	v := c.vector()
	copy(out[:], v[:23])
	return out
}

func boardOf(t *testing.T, players []*Player, id int) (int, byte) {
	t.Helper()
	for _, p := range players {
		if p.PlayID == id {
			return p.BoardNum, p.BoardColor
		}
	}
	t.Fatalf("player %d not found", id)
	return 0, 0
}

// TestFindPairingsRound1 pairs four fresh players: the upper half plays
// the lower half and colors alternate down the chart from the top
// board's first color.
func TestFindPairingsRound1(t *testing.T) {
	players := []*Player{
		newTestPlayer(1, 2000, 0, 1, 0.11),
		newTestPlayer(2, 1800, 0, 1, 0.22),
		newTestPlayer(3, 1700, 0, 1, 0.33),
		newTestPlayer(4, 1500, 0, 1, 0.44),
	}
	cost := FindPairings(players, 3, 1, 1, false, false, "Open")
	if qualityFields(cost) != [23]int64{} {
		t.Errorf("round 1 cost = %v; want zero", cost)
	}
	b1, c1 := boardOf(t, players, 1)
	b3, c3 := boardOf(t, players, 3)
	if b1 != 1 || b3 != 1 {
		t.Fatalf("players 1 and 3 on boards %d and %d; want board 1", b1, b3)
	}
	if c1 != 'W' || c3 != 'B' {
		t.Errorf("board 1 colors %c vs %c; want W vs B", c1, c3)
	}
	b2, c2 := boardOf(t, players, 2)
	b4, c4 := boardOf(t, players, 4)
	if b2 != 2 || b4 != 2 {
		t.Fatalf("players 2 and 4 on boards %d and %d; want board 2", b2, b4)
	}
	// colors alternate down the wall chart (29E2)
	if c2 != 'B' || c4 != 'W' {
		t.Errorf("board 2 colors %c vs %c; want B vs W", c2, c4)
	}
}

// TestFindPairingsRound2 pairs the round 1 winners: both are due the
// same color, so one repeats and colorAlternate is charged.
func TestFindPairingsRound2(t *testing.T) {
	p1 := newTestPlayer(1, 2000, 1, 2, 0.11)
	p1.Opponents = []string{"3_0"}
	p1.PlayedColors = "W"
	p1.ColorHistory = "W"
	p2 := newTestPlayer(2, 1800, 1, 2, 0.22)
	p2.Opponents = []string{"4_0"}
	p2.PlayedColors = "W"
	p2.ColorHistory = "W"
	p3 := newTestPlayer(3, 1700, 0, 2, 0.33)
	p3.Opponents = []string{"1_0"}
	p3.PlayedColors = "B"
	p3.ColorHistory = "B"
	p4 := newTestPlayer(4, 1500, 0, 2, 0.44)
	p4.Opponents = []string{"2_0"}
	p4.PlayedColors = "B"
	p4.ColorHistory = "B"
	players := []*Player{p1, p2, p3, p4}

	cost := FindPairings(players, 4, 1, 1, false, false, "Open")
	b1, _ := boardOf(t, players, 1)
	b2, _ := boardOf(t, players, 2)
	b3, _ := boardOf(t, players, 3)
	b4, _ := boardOf(t, players, 4)
	if b1 != 1 || b2 != 1 {
		t.Errorf("score group leaders on boards %d and %d; want both on 1", b1, b2)
	}
	if b3 != 2 || b4 != 2 {
		t.Errorf("trailing group on boards %d and %d; want both on 2", b3, b4)
	}
	// each board holds two players due the same color, so one player
	// per board fails to alternate
	if cost.ColorAlternate != 2 {
		t.Errorf("colorAlternate = %d; want 2 (cost %v)", cost.ColorAlternate, cost)
	}
	if cost.PlayersMeetTwice != 0 || cost.UnequalScores != 0 {
		t.Errorf("unexpected higher-priority cost: %v", cost)
	}
}

// TestFindPairingsOddBye gives the fifth, lowest rated player the bye
// at no cost: the mandatory-bye adjustment cancels the charge.
func TestFindPairingsOddBye(t *testing.T) {
	players := []*Player{
		newTestPlayer(1, 2100, 0, 1, 0.1),
		newTestPlayer(2, 1900, 0, 1, 0.2),
		newTestPlayer(3, 1800, 0, 1, 0.3),
		newTestPlayer(4, 1600, 0, 1, 0.4),
		newTestPlayer(5, 1200, 0, 1, 0.5),
	}
	cost := FindPairings(players, 4, 1, 1, true, false, "Open")
	if cost.ByeChoice != 0 {
		t.Errorf("byeChoice = %d; want 0 after mandatory-bye adjustment", cost.ByeChoice)
	}
	if cost.LowestRatedBye != 0 {
		t.Errorf("lowestRatedBye = %d; want 0 for a rated player", cost.LowestRatedBye)
	}
	b5, c5 := boardOf(t, players, 5)
	if b5 != 3 || c5 != 'W' {
		t.Errorf("bye player on board %d color %c; want board 3 with W", b5, c5)
	}
	// everyone else is paired upper half against lower half
	b1, _ := boardOf(t, players, 1)
	b3, _ := boardOf(t, players, 3)
	if b1 != 1 || b3 != 1 {
		t.Errorf("players 1 and 3 on boards %d and %d; want board 1", b1, b3)
	}
}

// TestFindPairingsUnratedBye charges lowestRatedBye when the bye lands
// on an unrated player in a rated section.
func TestFindPairingsUnratedBye(t *testing.T) {
	players := []*Player{
		newTestPlayer(1, 2100, 0, 1, 0.1),
		newTestPlayer(2, 1900, 0, 1, 0.2),
		newTestPlayer(3, 1800, 0, 1, 0.3),
		newTestPlayer(4, 1600, 0, 1, 0.4),
		newTestPlayer(5, 0, 0, 1, 0.5),
	}
	players[4].IsUnrated = true
	// evaluate the bye-to-unrated hint as-is; the optimizer itself
	// steers the bye away from unrated players
	cost := FindPairings(players, 4, 1, 1, false, true, "Open")
	if cost.LowestRatedBye != 2 {
		t.Errorf("lowestRatedBye = %d; want 2 for an unrated bye short of games (cost %v)",
			cost.LowestRatedBye, cost)
	}
}

// TestFindPairingsTeamBlock verifies that the optimizer refuses to pair
// teammates even when ratings would prefer it.
func TestFindPairingsTeamBlock(t *testing.T) {
	players := make([]*Player, 0, 8)
	ratings := []int{2200, 2150, 2000, 1950, 1800, 1750, 1600, 1550}
	for i, r := range ratings {
		p := newTestPlayer(i+1, r, 2, 4, float64(i+1)/10)
		players = append(players, p)
	}
	// players 1 and 5 share a team: the natural upper-vs-lower pairing
	// would put them on the same board (rule 28N forbids it)
	players[0].TeamID = 55
	players[4].TeamID = 55
	players[0].Teammates = []int{5}
	players[4].Teammates = []int{1}
	cost := FindPairings(players, 4, 1, 2, true, false, "Open")
	if cost.TeamBlocks != 0 {
		t.Errorf("teamBlocks = %d; want 0 (cost %v)", cost.TeamBlocks, cost)
	}
	b1, _ := boardOf(t, players, 1)
	b5, _ := boardOf(t, players, 5)
	if b1 == b5 {
		t.Errorf("teammates paired together on board %d", b1)
	}
}

// TestFindPairingsPermutation checks that every active player lands on
// exactly one board with a W/B color.
func TestFindPairingsPermutation(t *testing.T) {
	players := make([]*Player, 0, 9)
	for i := 0; i < 9; i++ {
		players = append(players, newTestPlayer(i+1, 2200-63*i, float64(i%3)*0.5, 3, float64(i+1)/100))
	}
	FindPairings(players, 5, 1, 1, false, false, "Open")
	seen := make(map[int][]int)
	for _, p := range players {
		if p.BoardNum <= 0 {
			t.Errorf("player %d missing board assignment: %d", p.PlayID, p.BoardNum)
			continue
		}
		seen[p.BoardNum] = append(seen[p.BoardNum], p.PlayID)
		if p.BoardColor != 'W' && p.BoardColor != 'B' {
			t.Errorf("player %d has color %c", p.PlayID, p.BoardColor)
		}
	}
	single := 0
	for b, ids := range seen {
		switch len(ids) {
		case 1:
			single++ // the bye board
		case 2:
			if ids[0] == ids[1] {
				t.Errorf("board %d pairs player %d against itself", b, ids[0])
			}
		default:
			t.Errorf("board %d has %d players", b, len(ids))
		}
	}
	if single != 1 {
		t.Errorf("%d single-player boards; want exactly 1 bye board", single)
	}
}

// TestFindPairingsIdempotent reruns the engine with its own output as
// the hint and expects the identical pairing.
func TestFindPairingsIdempotent(t *testing.T) {
	build := func() []*Player {
		players := make([]*Player, 0, 8)
		for i := 0; i < 8; i++ {
			p := newTestPlayer(i+1, 2200-77*i, float64((i*7)%3)*0.5, 3, float64(i+1)/100)
			players = append(players, p)
		}
		return players
	}
	players := build()
	cost1 := FindPairings(players, 5, 1, 1, false, false, "Open")
	boards := make(map[int]int)
	colors := make(map[int]byte)
	for _, p := range players {
		boards[p.PlayID] = p.BoardNum
		colors[p.PlayID] = p.BoardColor
	}
	again := build()
	for _, p := range again {
		p.BoardNum = boards[p.PlayID]
		p.BoardColor = colors[p.PlayID]
	}
	cost2 := FindPairings(again, 5, 1, 1, false, false, "Open")
	for _, p := range again {
		if boards[p.PlayID] != p.BoardNum {
			t.Errorf("player %d moved from board %d to %d on rerun",
				p.PlayID, boards[p.PlayID], p.BoardNum)
		}
		if colors[p.PlayID] != p.BoardColor {
			t.Errorf("player %d color changed from %c to %c on rerun",
				p.PlayID, colors[p.PlayID], p.BoardColor)
		}
	}
	v1, v2 := cost1.vector(), cost2.vector()
	// board annotation codes may differ between hint sources; the
	// pairing-quality counters must not
	for x := 0; x < 23; x++ {
		if v1[x] != v2[x] {
			t.Errorf("cost field %s changed on rerun: %d vs %d",
				costNames[x], v1[x], v2[x])
		}
	}
}

// TestFindPairingsSkipOptimize evaluates the hint as-is.
func TestFindPairingsSkipOptimize(t *testing.T) {
	players := []*Player{
		newTestPlayer(1, 2000, 0, 1, 0.11),
		newTestPlayer(2, 1800, 0, 1, 0.22),
		newTestPlayer(3, 1700, 0, 1, 0.33),
		newTestPlayer(4, 1500, 0, 1, 0.44),
	}
	// the clean hint pairs adjacent ranks, so 1v2 / 3v4 stands
	cost := FindPairings(players, 4, 1, 1, false, true, "Open")
	b1, _ := boardOf(t, players, 1)
	b2, _ := boardOf(t, players, 2)
	if b1 != b2 {
		t.Errorf("skipOptimize moved the hinted pairing: boards %d and %d", b1, b2)
	}
	if cost.Interchange0 == 0 {
		t.Errorf("expected interchange0 cost for adjacent-rank pairing, got %v", cost)
	}
}
