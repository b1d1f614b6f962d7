/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"
)

// TestCrenshawBergerLookup spot-checks the embedded tables.
func TestCrenshawBergerLookup(t *testing.T) {
	cases := []struct {
		name        string
		competitors int
		round       int
		player      int
		withdrawn   int
		wantBoard   int
		wantColor   byte
	}{
		{name: "size4 r1 p1", competitors: 4, round: 1, player: 1, wantBoard: 1, wantColor: 'W'},
		{name: "size4 r1 p4", competitors: 4, round: 1, player: 4, wantBoard: 1, wantColor: 'B'},
		{name: "size4 r3 p1", competitors: 4, round: 3, player: 1, wantBoard: 1, wantColor: 'W'},
		{name: "size4 r3 p2", competitors: 4, round: 3, player: 2, wantBoard: 1, wantColor: 'B'},
		// withdrawn=2 reverses board two in round three ("4-3")
		{name: "size4 r3 withdrawn2 p4", competitors: 4, round: 3, player: 4, withdrawn: 2, wantBoard: 2, wantColor: 'W'},
		{name: "size4 r3 withdrawn2 p3", competitors: 4, round: 3, player: 3, withdrawn: 2, wantBoard: 2, wantColor: 'B'},
		// withdrawn=3 reverses the top board ("2-1")
		{name: "size4 r3 withdrawn3 p2", competitors: 4, round: 3, player: 2, withdrawn: 3, wantBoard: 1, wantColor: 'W'},
		{name: "size4 r3 withdrawn3 p1", competitors: 4, round: 3, player: 1, withdrawn: 3, wantBoard: 1, wantColor: 'B'},
		// odd field: player 5 joins a virtual six player table
		{name: "size5 r1 p5", competitors: 5, round: 1, player: 5, wantBoard: 2, wantColor: 'W'},
		{name: "size6 r5 p3", competitors: 6, round: 5, player: 3, wantBoard: 3, wantColor: 'W'},
		{name: "size10 r9 p10", competitors: 10, round: 9, player: 10, wantBoard: 1, wantColor: 'B'},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			board, color := CrenshawBergerLookup(c.competitors, c.round, c.player, c.withdrawn)
			if board != c.wantBoard || color != c.wantColor {
				t.Errorf("lookup(%d,%d,%d,%d) = board %d color %c; want board %d color %c",
					c.competitors, c.round, c.player, c.withdrawn,
					board, color, c.wantBoard, c.wantColor)
			}
		})
	}
}

// TestFindPairingsRoundRobin runs the round robin short circuit for a
// four player section in round three with player two withdrawn.
func TestFindPairingsRoundRobin(t *testing.T) {
	players := make([]*Player, 0, 4)
	for i := 0; i < 4; i++ {
		p := newTestPlayer(i+1, 1800-i, 1, 3, float64(i+1)/10)
		p.Kind = KindRoundRobin
		players = append(players, p)
	}
	// player 2 withdrew before the second half
	players[1].ByeRounds = []int{2, 3}
	cost := FindPairings(players, 3, 1, 1, false, false, "Quads")
	if !cost.IsZero() {
		t.Errorf("round robin cost = %v; want zero", cost)
	}
	// the lots order follows rand, so seat numbers match player ids;
	// round 3 of the size four table is 1-2 3-4 with 4-3 reversed
	b1, c1 := boardOf(t, players, 1)
	b2, c2 := boardOf(t, players, 2)
	if b1 != 1 || b2 != 1 || c1 != 'W' || c2 != 'B' {
		t.Errorf("board one: p1 board %d %c, p2 board %d %c; want 1 W, 1 B",
			b1, c1, b2, c2)
	}
	b3, c3 := boardOf(t, players, 3)
	b4, c4 := boardOf(t, players, 4)
	if b3 != 2 || b4 != 2 || c4 != 'W' || c3 != 'B' {
		t.Errorf("board two: p3 board %d %c, p4 board %d %c; want reversal with p4 W",
			b3, c3, b4, c4)
	}
}

// TestFindPairingsRoundRobinOdd gives the odd player the round's bye
// via the virtual seat.
func TestFindPairingsRoundRobinOdd(t *testing.T) {
	players := make([]*Player, 0, 5)
	for i := 0; i < 5; i++ {
		p := newTestPlayer(i+1, 1700, 0, 1, float64(i+1)/10)
		p.Kind = KindRoundRobin
		players = append(players, p)
	}
	FindPairings(players, 5, 1, 1, false, false, "Quints")
	// size six table round one: 3-6 5-4 1-2; seat six is the bye, so
	// player three plays the bye and takes white
	b3, c3 := boardOf(t, players, 3)
	if b3 != 1 || c3 != 'W' {
		t.Errorf("player 3 board %d color %c; want board 1 W against the bye", b3, c3)
	}
	b1, c1 := boardOf(t, players, 1)
	b2, c2 := boardOf(t, players, 2)
	if b1 != 3 || b2 != 3 || c1 != 'W' || c2 != 'B' {
		t.Errorf("players 1 and 2: boards %d/%d colors %c/%c; want board 3 W/B",
			b1, b2, c1, c2)
	}
}
