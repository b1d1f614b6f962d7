/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"strconv"
	"strings"
)

// Crenshaw-Berger tables for round robin sections.
var roundRobinPairings = []string{
	//	size	round	pairings
	"	4	1	1-4 2-3",
	"	4	2	3-1 4-2",
	"	4	3	1-2 3-4",
	"	6	1	3-6 5-4 1-2",
	"	6	2	2-6 4-1 3-5",
	"	6	3	6-5 1-3 4-2",
	"	6	4	6-4 5-1 2-3",
	"	6	5	1-6 2-5 3-4",
	"	8	1	4-8 5-3 6-2 7-1",
	"	8	2	8-7 1-6 2-5 3-4",
	"	8	3	3-8 4-2 5-1 6-7",
	"	8	4	8-6 7-5 1-4 2-3",
	"	8	5	2-8 3-1 4-7 5-6",
	"	8	6	8-5 6-4 7-3 1-2",
	"	8	7	1-8 2-7 3-6 4-5",
	"	10	1	5-10 6-4 7-3 8-2 9-1",
	"	10	2	10-9 1-8 2-7 3-6 4-5",
	"	10	3	4-10 5-3 6-2 7-1 8-9",
	"	10	4	10-8 9-7 1-6 2-5 3-4",
	"	10	5	3-10 4-2 5-1 6-9 7-8",
	"	10	6	10-7 8-6 9-5 1-4 2-3",
	"	10	7	2-10 3-1 4-9 5-8 6-7",
	"	10	8	10-6 7-5 8-4 9-3 1-2",
	"	10	9	1-10 2-9 3-8 4-7 5-6",
}

// Color reversals when a player withdraws during the first half; the
// windraw column is the pre-tournament number of the withdrawn player.
var roundRobinReversals = []string{
	//	size	round	windraw	reversals
	"	4	3	1	",
	"	4	3	2	4-3",
	"	4	3	3	2-1",
	"	4	3	4	",
	"	6	5	1	5-2 4-3",
	"	6	5	2	4-3",
	"	6	5	3	",
	"	6	5	4	6-1 5-2",
	"	6	5	5	6-1",
	"	6	5	6	",
	"	8	5	1	7-2 5-4",
	"	8	5	2	6-3",
	"	8	5	3	5-4 7-2 2-1",
	"	8	5	4	6-3 3-7 7-2",
	"	8	5	5	8-1 7-4 4-6 6-3",
	"	8	5	6	8-2 5-4",
	"	8	5	7	8-1 6-3",
	"	8	5	8	",
	"	10	7	1	9-2 7-4",
	"	10	7	2	8-3 6-5",
	"	10	7	3	7-4 9-2 2-1",
	"	10	7	4	6-5 8-3 3-9 9-2",
	"	10	7	5	9-2 7-4 2-1 4-8 8-3",
	"	10	7	6	10-2 8-5 5-7 7-4",
	"	10	7	7	10-1 6-5 9-4 4-8 8-3",
	"	10	7	8	10-2 7-4",
	"	10	7	9	10-1 8-3 6-5",
	"	10	7	10	",
}

func parsePair(s string) (int, int) {
	dash := strings.IndexByte(s, '-')
	if dash == -1 {
		return 0, 0
	}
	p1, _ := strconv.Atoi(s[:dash])
	p2, _ := strconv.Atoi(s[dash+1:])
	return p1, p2
}

// CrenshawBergerLookup finds a player's board and color for one round
// of a round robin among the given number of competitors. Player
// numbers run 1 to N; withdrawnPlayer is the pre-tournament number of
// a first-half withdrawal (zero for none). A bye in an odd field is
// modeled by one virtual player N+1 who receives everyone's bye.
func CrenshawBergerLookup(competitors, round, player, withdrawnPlayer int) (board int, color byte) {
	if competitors%2 == 1 {
		competitors++
	}
	if withdrawnPlayer == 0 {
		withdrawnPlayer = competitors
	}
	opponent := 0
	color = '*'
	for _, row := range roundRobinPairings {
		fields := strings.Fields(row)
		if len(fields) < 3 {
			continue
		}
		size, _ := strconv.Atoi(fields[0])
		if size != competitors {
			continue
		}
		rnd, _ := strconv.Atoi(fields[1])
		if rnd != round {
			continue
		}
		for y, pairing := range fields[2:] {
			p1, p2 := parsePair(pairing)
			if p1 == player {
				opponent = p2
				board = y + 1
				color = 'W'
			}
			if p2 == player {
				opponent = p1
				board = y + 1
				color = 'B'
			}
		}
	}
	if opponent == 0 || color == '*' {
		diag.Error().Int("competitors", competitors).Int("round", round).
			Int("player", player).Msg("no Crenshaw-Berger entry")
		return 0, '*'
	}
	for _, row := range roundRobinReversals {
		fields := strings.Fields(row)
		if len(fields) < 3 {
			continue
		}
		size, _ := strconv.Atoi(fields[0])
		if size != competitors {
			continue
		}
		withdraw, _ := strconv.Atoi(fields[2])
		if withdraw != withdrawnPlayer {
			continue
		}
		for _, rev := range fields[3:] {
			p1, p2 := parsePair(rev)
			if p1 == player && p2 == opponent {
				color = 'W'
			}
			if p2 == player && p1 == opponent {
				color = 'B'
			}
		}
	}
	return board, color
}
