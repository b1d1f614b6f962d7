/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"
)

// TestCanonicalPlayers verifies the sort order and dense ranking.
func TestCanonicalPlayers(t *testing.T) {
	a := newTestPlayer(1, 1500, 1.0, 2, 0.3)
	b := newTestPlayer(2, 1900, 0.5, 2, 0.2)
	c := newTestPlayer(3, 1900, 1.0, 2, 0.1)
	d := newTestPlayer(4, 2200, 0.0, 2, 0.4)
	d.ByeRequest = true
	pl := canonicalPlayers([]*Player{a, b, c, d})
	if len(pl) != 5 || !pl[4].isBye() {
		t.Fatalf("expected 4 players plus sentinel bye, got %d", len(pl))
	}
	// score beats rating; bye requests sink below active players
	wantOrder := []int{3, 1, 2, 4}
	for x, want := range wantOrder {
		if pl[x].PlayID != want {
			t.Errorf("position %d holds player %d; want %d", x, pl[x].PlayID, want)
		}
		if pl[x].Rank != x {
			t.Errorf("player %d has rank %d; want %d", pl[x].PlayID, pl[x].Rank, x)
		}
	}
}

// TestSetRanksResolvesOpponents verifies rank lists drop opponents not
// present in the section.
func TestSetRanksResolvesOpponents(t *testing.T) {
	a := newTestPlayer(1, 1900, 0, 1, 0.1)
	b := newTestPlayer(2, 1800, 0, 1, 0.2)
	a.Opponents = []string{"2_0", "99_0"}
	a.PlayedColors = "WB"
	a.ColorHistory = "WB"
	b.Teammates = []int{1, 42}
	pl := canonicalPlayers([]*Player{a, b})
	if len(a.OpponentRanks) != 1 || a.OpponentRanks[0] != b.Rank {
		t.Errorf("opponent ranks = %v; want [%d]", a.OpponentRanks, b.Rank)
	}
	if len(b.TeammateRanks) != 1 || b.TeammateRanks[0] != a.Rank {
		t.Errorf("teammate ranks = %v; want [%d]", b.TeammateRanks, a.Rank)
	}
	if pl[len(pl)-1].DueColor != "x" {
		t.Errorf("bye due color = %q; want x", pl[len(pl)-1].DueColor)
	}
}

// TestHintPairingsPreservesBoards verifies shared board hints stay
// together and orphans collapse onto each other.
func TestHintPairingsPreservesBoards(t *testing.T) {
	players := make([]*Player, 0, 6)
	for i := 0; i < 6; i++ {
		players = append(players, newTestPlayer(i+1, 2000-i*50, 0, 2, float64(i+1)/10))
	}
	players[0].BoardNum = 4
	players[3].BoardNum = 4
	players[1].BoardNum = 7
	players[4].BoardNum = 7
	players[2].BoardNum = 9 // orphans
	players[5].BoardNum = 12
	pl := canonicalPlayers(players)
	pair := hintPairings(pl, true)
	if len(pair) != 6 {
		t.Fatalf("pair length %d; want 6", len(pair))
	}
	sameBoard := func(a, b int) bool {
		for x := 0; x < len(pair); x += 2 {
			if (pl[pair[x]].PlayID == a && pl[pair[x+1]].PlayID == b) ||
				(pl[pair[x]].PlayID == b && pl[pair[x+1]].PlayID == a) {
				return true
			}
		}
		return false
	}
	if !sameBoard(1, 4) {
		t.Errorf("hinted board 4 split up: %v", pair)
	}
	if !sameBoard(2, 5) {
		t.Errorf("hinted board 7 split up: %v", pair)
	}
	if !sameBoard(3, 6) {
		t.Errorf("orphans not collapsed together: %v", pair)
	}
}

// TestHintPairingsManualPair verifies a manually paired board is kept
// intact and sorted behind the boards still to be paired.
func TestHintPairingsManualPair(t *testing.T) {
	players := make([]*Player, 0, 4)
	for i := 0; i < 4; i++ {
		players = append(players, newTestPlayer(i+1, 1900-i*50, 0, 2, float64(i+1)/10))
	}
	players[2].BoardNum = 3
	players[3].BoardNum = 3
	players[2].Paired = true
	players[3].Paired = true
	players[0].BoardNum = 1
	players[1].BoardNum = 2
	pl := canonicalPlayers(players)
	pair := hintPairings(pl, true)
	// paired boards sort behind the active ones but stay intact
	n := len(pair)
	last, prev := pl[pair[n-1]], pl[pair[n-2]]
	if !prev.Paired || !last.Paired {
		t.Fatalf("manually paired board not at the tail: %v", pair)
	}
	if (prev.PlayID != 3 || last.PlayID != 4) && (prev.PlayID != 4 || last.PlayID != 3) {
		t.Errorf("manual pairing split: %d vs %d", prev.PlayID, last.PlayID)
	}
}

// TestFirstPairings verifies the textbook pairing for two score groups
// with an odd drop down.
func TestFirstPairings(t *testing.T) {
	players := make([]*Player, 0, 7)
	scores := []float64{1, 1, 1, 0, 0, 0, 0}
	for i := 0; i < 7; i++ {
		players = append(players, newTestPlayer(i+1, 2100-i*50, scores[i], 2, float64(i+1)/10))
	}
	pl := canonicalPlayers(players)
	pair := hintPairings(pl, true)
	firstPairings(pl, pair, 7)
	// group of three: 1v2 with 3 dropping to meet 4, the top of the
	// group of four, which then pairs 5v6 leaving 7 for the bye
	type board [2]int
	got := make([]board, 0, 4)
	for x := 0; x < len(pair); x += 2 {
		got = append(got, board{pl[pair[x]].PlayID, pl[pair[x+1]].PlayID})
	}
	if got[0] != (board{1, 2}) {
		t.Errorf("top board %v; want 1v2", got[0])
	}
	if got[1] != (board{3, 4}) {
		t.Errorf("drop-down board %v; want 3v4", got[1])
	}
	if got[2] != (board{5, 6}) {
		t.Errorf("third board %v; want 5v6", got[2])
	}
	if got[3] != (board{7, ByeID}) {
		t.Errorf("bye board %v; want 7 against the bye", got[3])
	}
}

// TestSortBoards verifies wall chart ordering with a bye present.
func TestSortBoards(t *testing.T) {
	players := make([]*Player, 0, 5)
	scores := []float64{0, 1, 0, 1, 0}
	for i := 0; i < 5; i++ {
		players = append(players, newTestPlayer(i+1, 1900-i*10, scores[i], 2, float64(i+1)/10))
	}
	pl := canonicalPlayers(players)
	// ranks: p2 and p4 lead on score, then p1, p3, p5
	pair := []int{pl[len(pl)-2].Rank, len(pl) - 1, 2, 3, 0, 1}
	sortBoards(pl, pair)
	if !pl[pair[len(pair)-1]].isBye() {
		t.Errorf("bye board not sorted last: %v", pair)
	}
	if pl[pair[0]].Score < pl[pair[2]].Score {
		t.Errorf("boards not sorted by score: %v", pair)
	}
}
