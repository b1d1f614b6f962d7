/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"
)

const testByeKey = "0_0"

func tiebreakValue(t *testing.T, p *PlayerResult, code byte) float64 {
	t.Helper()
	for x, c := range p.TiebreakCode {
		if c == code {
			return p.TiebreakValue[x]
		}
	}
	t.Fatalf("tiebreak code %c missing for %s", code, p.Player)
	return 0
}

// TestTiebreakThreeWayTie runs a three player round robin over two
// rounds where everyone finishes on 1.0.
func TestTiebreakThreeWayTie(t *testing.T) {
	prm := PlayerResultMap{
		// A beats B, loses to C
		"1_0": {Player: "1_0", Rating: 1900,
			Opponent: []string{"2_0", "3_0"}, Color: "WB", Result: "WL"},
		// B beats C, loses to A
		"2_0": {Player: "2_0", Rating: 1800,
			Opponent: []string{"1_0", "3_0"}, Color: "BW", Result: "LW"},
		// C beats A, loses to B
		"3_0": {Player: "3_0", Rating: 1700,
			Opponent: []string{"2_0", "1_0"}, Color: "BW", Result: "LW"},
		testByeKey: {Player: testByeKey},
	}
	TiebreakCalculation(prm, testByeKey)

	for _, key := range []string{"1_0", "2_0", "3_0"} {
		p := prm[key]
		if got := tiebreakValue(t, p, 'S'); got != 2.0 {
			t.Errorf("%s Solkoff = %v; want 2.0", key, got)
		}
		// everyone sits exactly on an even score, so both tails trim
		if got := tiebreakValue(t, p, 'M'); got != 0 {
			t.Errorf("%s modified median = %v; want 0 (trimmed)", key, got)
		}
		if got := tiebreakValue(t, p, 'W'); got != 1 {
			t.Errorf("%s wins = %v; want 1", key, got)
		}
	}
	// cumulative: a first round win scores higher than a second round win
	if got := tiebreakValue(t, prm["1_0"], 'C'); got != 2.0 {
		t.Errorf("A cumulative = %v; want 2.0 (1 then 1)", got)
	}
	if got := tiebreakValue(t, prm["2_0"], 'C'); got != 1.0 {
		t.Errorf("B cumulative = %v; want 1.0 (0 then 1)", got)
	}
	// head-to-head nets to zero in a cycle of tied players
	for _, key := range []string{"1_0", "2_0", "3_0"} {
		if got := tiebreakValue(t, prm[key], 'H'); got != 0 {
			t.Errorf("%s head-to-head = %v; want 0", key, got)
		}
	}
}

// TestTiebreakByeEntry verifies the sentinel bye reports zeros with the
// coin flip parked at -1.
func TestTiebreakByeEntry(t *testing.T) {
	prm := PlayerResultMap{
		"5_0": {Player: "5_0", Rating: 1500,
			Opponent: []string{testByeKey}, Color: "W", Result: "B"},
		testByeKey: {Player: testByeKey,
			Opponent: []string{"5_0"}, Color: "B", Result: "U"},
	}
	TiebreakCalculation(prm, testByeKey)
	bye := prm[testByeKey]
	for x, v := range bye.TiebreakValue {
		if bye.TiebreakCode[x] == 'Z' {
			if v != -1 {
				t.Errorf("bye coin flip = %v; want -1", v)
			}
			continue
		}
		if v != 0 {
			t.Errorf("bye tiebreak %c = %v; want 0", bye.TiebreakCode[x], v)
		}
	}
}

// TestTiebreakCoinFlipsDistinct runs a larger field and checks every
// coin flip is unique.
func TestTiebreakCoinFlipsDistinct(t *testing.T) {
	prm := PlayerResultMap{testByeKey: {Player: testByeKey}}
	for i := 1; i <= 40; i++ {
		key := playerKey(i)
		prm[key] = &PlayerResult{Player: key, Rating: 1000 + i,
			Opponent: []string{testByeKey}, Color: "W", Result: "H"}
	}
	TiebreakCalculation(prm, testByeKey)
	seen := make(map[float64]string)
	for key, p := range prm {
		if key == testByeKey {
			continue
		}
		z := tiebreakValue(t, p, 'Z')
		if other, dup := seen[z]; dup {
			t.Errorf("coin flip collision between %s and %s", key, other)
		}
		seen[z] = key
	}
}

func playerKey(id int) string {
	return (&Player{PlayID: id}).Key()
}

// TestTiebreakResultLetters verifies the scoring state machine for the
// less common letters.
func TestTiebreakResultLetters(t *testing.T) {
	cases := []struct {
		name     string
		result   string
		color    string
		wantRaw  float64
		wantAdj  float64
		wantKash int
	}{
		{name: "double win", result: "$", color: "W", wantRaw: 2, wantAdj: 2, wantKash: 8},
		{name: "win and a half", result: "#", color: "W", wantRaw: 1.5, wantAdj: 1.5, wantKash: 6},
		{name: "split double game", result: "%", color: "W", wantRaw: 1, wantAdj: 1, wantKash: 4},
		{name: "full bye", result: "B", color: "W", wantRaw: 1, wantAdj: 0.5, wantKash: 0},
		{name: "forfeit win", result: "X", color: "W", wantRaw: 1, wantAdj: 0.5, wantKash: 0},
		{name: "half bye", result: "H", color: "W", wantRaw: 0.5, wantAdj: 0.5, wantKash: 0},
		{name: "zero bye", result: "Z", color: "W", wantRaw: 0.5, wantAdj: 0.5, wantKash: 0},
		{name: "unplayed", result: "U", color: "W", wantRaw: 0, wantAdj: 0.5, wantKash: 0},
		{name: "forfeit loss", result: "F", color: "W", wantRaw: 0, wantAdj: 0.5, wantKash: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &PlayerResult{Player: "9_0", Rating: 1200,
				Opponent: []string{testByeKey}, Color: c.color, Result: c.result}
			tiebreakPlayer(p, testByeKey)
			if p.rawScore != c.wantRaw {
				t.Errorf("raw = %v; want %v", p.rawScore, c.wantRaw)
			}
			if p.adjScore != c.wantAdj {
				t.Errorf("adj = %v; want %v", p.adjScore, c.wantAdj)
			}
			if p.kashdan != c.wantKash {
				t.Errorf("kashdan = %v; want %v", p.kashdan, c.wantKash)
			}
		})
	}
}

// TestTiebreakFirstLossRound tracks the round of the first loss.
func TestTiebreakFirstLossRound(t *testing.T) {
	p := &PlayerResult{Player: "9_0", Rating: 1200,
		Opponent: []string{"a", "b", "c"}, Color: "WBW", Result: "WLW"}
	tiebreakPlayer(p, testByeKey)
	if p.firstLossRound != 2 {
		t.Errorf("firstLossRound = %d; want 2", p.firstLossRound)
	}
	p2 := &PlayerResult{Player: "9_0", Rating: 1200,
		Opponent: []string{"a", "b"}, Color: "WB", Result: "WW"}
	tiebreakPlayer(p2, testByeKey)
	if p2.firstLossRound != 3 {
		t.Errorf("undefeated firstLossRound = %d; want rounds+1 = 3", p2.firstLossRound)
	}
}
