/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"testing"

	"github.com/mikeb26/swisspair/swiss"
)

func testCrossTable() *CrossTable {
	return &CrossTable{
		SectionName: "Open",
		NumRounds:   2,
		NumPlayers:  4,
		PlayerEntries: []CrossTableEntry{
			{
				PairNum: 1, PlayerName: "Alice Adams", PlayerId: 11111111,
				PlayerRatingPre: "1950", TotalPoints: 2.0,
				Results: []RoundResult{
					{OpponentPairNum: 3, Outcome: ResultWin, Color: "white"},
					{OpponentPairNum: 2, Outcome: ResultWin, Color: "black"},
				},
			},
			{
				PairNum: 2, PlayerName: "Bob Baker", PlayerId: 22222222,
				PlayerRatingPre: "1820", TotalPoints: 1.0,
				Results: []RoundResult{
					{OpponentPairNum: 4, Outcome: ResultWin, Color: "black"},
					{OpponentPairNum: 1, Outcome: ResultLoss, Color: "white"},
				},
			},
			{
				PairNum: 3, PlayerName: "Carol Cruz", PlayerId: 33333333,
				PlayerRatingPre: "1700", TotalPoints: 0.5,
				Results: []RoundResult{
					{OpponentPairNum: 1, Outcome: ResultLoss, Color: "black"},
					{Outcome: ResultHalfBye},
				},
			},
			{
				PairNum: 4, PlayerName: "Dan Drake",
				TotalPoints: 0.0,
				Results: []RoundResult{
					{OpponentPairNum: 2, Outcome: ResultLoss, Color: "white"},
					{Outcome: ResultUnplayedGame},
				},
			},
		},
	}
}

// TestBuildSection verifies the cross table to pairing input mapping.
func TestBuildSection(t *testing.T) {
	players := BuildSection(testCrossTable())
	if len(players) != 4 {
		t.Fatalf("player count %d; want 4", len(players))
	}
	byID := make(map[int]*swiss.Player)
	for _, p := range players {
		byID[p.PlayID] = p
	}
	alice := byID[11111111]
	if alice == nil {
		t.Fatalf("alice missing")
	}
	if alice.Round != 3 {
		t.Errorf("round = %d; want 3", alice.Round)
	}
	if alice.Rating != 1950 || alice.IsUnrated {
		t.Errorf("alice rating %d unrated=%v; want 1950 rated", alice.Rating, alice.IsUnrated)
	}
	if len(alice.Opponents) != 2 || alice.Opponents[0] != "33333333_0" ||
		alice.Opponents[1] != "22222222_0" {
		t.Errorf("alice opponents = %v", alice.Opponents)
	}
	if alice.PlayedColors != "WB" || alice.ColorHistory != "WB" {
		t.Errorf("alice colors %q / %q; want WB / WB", alice.PlayedColors, alice.ColorHistory)
	}
	carol := byID[33333333]
	if carol.ColorHistory != "Bh" || carol.HalfByeCount != 1 || carol.UnplayedCount != 1 {
		t.Errorf("carol history %q halfByes=%d unplayed=%d; want Bh 1 1",
			carol.ColorHistory, carol.HalfByeCount, carol.UnplayedCount)
	}
	if len(carol.ByeRounds) != 1 || carol.ByeRounds[0] != 2 {
		t.Errorf("carol bye rounds = %v; want [2]", carol.ByeRounds)
	}
	// Dan has no member id or rating: pair number id, unrated
	dan := byID[4]
	if dan == nil || !dan.IsUnrated {
		t.Fatalf("dan not mapped as unrated fallback: %+v", dan)
	}
	if dan.ColorHistory != "Wz" {
		t.Errorf("dan history %q; want Wz", dan.ColorHistory)
	}
	// rand values must be unique and stable
	seen := make(map[float64]bool)
	for _, p := range players {
		if seen[p.Rand] {
			t.Errorf("duplicate rand value %v", p.Rand)
		}
		seen[p.Rand] = true
		if p.Rand != stableRand(p.PlayID) {
			t.Errorf("rand not stable for %d", p.PlayID)
		}
	}
}

// TestBuildSectionPairs runs the imported section through the engine.
func TestBuildSectionPairs(t *testing.T) {
	players := BuildSection(testCrossTable())
	cost := swiss.FindPairings(players, 3, 1, 1, false, false, "Open")
	if cost.PlayersMeetTwice != 0 {
		t.Errorf("rematch scheduled: %v", cost)
	}
	boards := make(map[int]int)
	for _, p := range players {
		if p.BoardNum <= 0 {
			t.Errorf("player %d unassigned", p.PlayID)
		}
		boards[p.BoardNum]++
	}
	if len(boards) != 2 {
		t.Errorf("board count %d; want 2", len(boards))
	}
}

// TestBuildResultMap verifies the tiebreak input mapping and padding.
func TestBuildResultMap(t *testing.T) {
	prm := BuildResultMap(testCrossTable())
	if _, ok := prm[ByeKey]; !ok {
		t.Fatalf("bye entry missing")
	}
	alice := prm["11111111_0"]
	if alice == nil {
		t.Fatalf("alice missing")
	}
	if alice.Result != "WW" || alice.Color != "WB" {
		t.Errorf("alice result %q color %q; want WW / WB", alice.Result, alice.Color)
	}
	carol := prm["33333333_0"]
	if carol.Result != "LH" {
		t.Errorf("carol result %q; want LH", carol.Result)
	}
	if carol.Opponent[1] != ByeKey {
		t.Errorf("carol round 2 opponent %q; want bye key", carol.Opponent[1])
	}
	swiss.TiebreakCalculation(prm, ByeKey)
	if len(alice.TiebreakCode) == 0 {
		t.Errorf("tiebreaks not computed")
	}
}
