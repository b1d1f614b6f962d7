/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikeb26/swisspair/swiss"
)

const sampleSection = `{
  "sectionName": "Open",
  "kind": "swiss",
  "round": 2,
  "totalRounds": 4,
  "players": [
    {"playId": 1, "name": "Alice Adams", "rating": 1950, "score": 1.0,
     "rand": 0.11, "opponents": ["3_0"], "colorHistory": "W", "playedColors": "W"},
    {"playId": 2, "name": "Bob Baker", "rating": 1820, "score": 1.0,
     "rand": 0.22, "opponents": ["4_0"], "colorHistory": "B", "playedColors": "B"},
    {"playId": 3, "name": "Carol Cruz", "rating": 1700, "score": 0.0,
     "rand": 0.33, "opponents": ["1_0"], "colorHistory": "B", "playedColors": "B"},
    {"playId": 4, "name": "Dan Drake", "rating": 1650, "score": 0.0,
     "rand": 0.44, "opponents": ["2_0"], "colorHistory": "W", "playedColors": "W"}
  ]
}`

// TestLoadSectionFile verifies JSON parsing and player conversion.
func TestLoadSectionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "section.json")
	if err := os.WriteFile(path, []byte(sampleSection), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sec, err := loadSectionFile(path)
	if err != nil {
		t.Fatalf("loadSectionFile: %v", err)
	}
	if sec.Name != "Open" || sec.TotalRounds != 4 {
		t.Errorf("section parsed as %q rounds=%d", sec.Name, sec.TotalRounds)
	}
	players := sec.toPlayers()
	if len(players) != 4 {
		t.Fatalf("player count %d; want 4", len(players))
	}
	if players[0].Kind != swiss.KindSwiss || players[0].FirstColor != 'W' {
		t.Errorf("defaults not applied: %+v", players[0])
	}
	if players[1].ColorHistory != "B" || players[1].Round != 2 {
		t.Errorf("player fields not mapped: %+v", players[1])
	}
}

// TestPairFromSectionFile runs the full pair flow and checks output
// formatting.
func TestPairFromSectionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "section.json")
	if err := os.WriteFile(path, []byte(sampleSection), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sec, err := loadSectionFile(path)
	if err != nil {
		t.Fatalf("loadSectionFile: %v", err)
	}
	players := sec.toPlayers()
	swiss.FindPairings(players, sec.TotalRounds, 1, 1, false, false, sec.Name)
	out := buildPairingsOutput(sec.Name, players)
	if !strings.Contains(out, "Open Section") {
		t.Errorf("missing section header in output:\n%s", out)
	}
	if !strings.Contains(out, "Board") || !strings.Contains(out, "Alice Adams") {
		t.Errorf("missing table content in output:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Errorf("output has %d lines; want header + titles + 2 boards:\n%s",
			len(lines), out)
	}
}

// TestSectionLess verifies section ordering.
func TestSectionLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{a: "Open", b: "U1800", want: true},
		{a: "U1800", b: "Open", want: false},
		{a: "U1800", b: "U1200", want: true},
		{a: "U1200", b: "Novice", want: true},
		{a: "Novice", b: "Reserve", want: true},
	}
	for _, c := range cases {
		if got := sectionLess(c.a, c.b); got != c.want {
			t.Errorf("sectionLess(%q,%q) = %v; want %v", c.a, c.b, got, c.want)
		}
	}
}
