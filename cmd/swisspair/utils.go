/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/uschess"
)

// buildPairingsOutput formats a paired section into an aligned table.
func buildPairingsOutput(secName string, players []*swiss.Player) string {
	type boardPair struct {
		num   int
		white *swiss.Player
		black *swiss.Player
	}
	boards := make(map[int]*boardPair)
	for _, p := range players {
		if p.BoardNum < 0 {
			continue
		}
		bp := boards[p.BoardNum]
		if bp == nil {
			bp = &boardPair{num: p.BoardNum}
			boards[p.BoardNum] = bp
		}
		if p.BoardColor == 'B' {
			bp.black = p
		} else {
			bp.white = p
		}
	}
	nums := make([]int, 0, len(boards))
	for n := range boards {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	type row struct{ board, white, black string }
	var rows []row
	describe := func(p *swiss.Player) string {
		if p == nil {
			return "BYE"
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", p.PlayID)
		}
		return fmt.Sprintf("%s(%d %v)", name, p.Rating,
			internal.ScoreToString(p.Score))
	}
	for _, n := range nums {
		bp := boards[n]
		rows = append(rows, row{
			board: fmt.Sprintf("%d.", bp.num),
			white: describe(bp.white),
			black: describe(bp.black),
		})
	}

	// Compute column widths
	maxB, maxW, maxBl := len("Board"), len("White"), len("Black")
	for _, r := range rows {
		if l := len(r.board); l > maxB {
			maxB = l
		}
		if l := len(r.white); l > maxW {
			maxW = l
		}
		if l := len(r.black); l > maxBl {
			maxBl = l
		}
	}

	var sb strings.Builder
	if secName != "" {
		sb.WriteString(fmt.Sprintf("%s Section\n", secName))
	}
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, "Board", maxW,
		"White", maxBl, "Black"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, r.board,
			maxW, r.white, maxBl, r.black))
	}
	sb.WriteString("\n")

	return sb.String()
}

// buildTiebreakOutput formats a section's tiebreak vectors, ranked by
// score then tiebreak order.
func buildTiebreakOutput(xt *uschess.CrossTable, prm swiss.PlayerResultMap) string {
	type standing struct {
		name   string
		key    string
		points float64
	}
	var standings []standing
	for _, e := range xt.PlayerEntries {
		key := fmt.Sprintf("%d_0", e.PairNum)
		if e.PlayerId != 0 {
			key = fmt.Sprintf("%d_0", e.PlayerId)
		}
		standings = append(standings, standing{
			name:   e.PlayerName,
			key:    key,
			points: e.TotalPoints,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.points != b.points {
			return a.points > b.points
		}
		pa, pb := prm[a.key], prm[b.key]
		if pa == nil || pb == nil {
			return a.key < b.key
		}
		for x := range pa.TiebreakValue {
			if x >= len(pb.TiebreakValue) {
				break
			}
			if pa.TiebreakValue[x] != pb.TiebreakValue[x] {
				return pa.TiebreakValue[x] > pb.TiebreakValue[x]
			}
		}
		return a.key < b.key
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s Section\n", xt.SectionName))
	headers := []string{"Place", "Name", "Pts", "MMed", "Solk", "Cum", "Med"}
	rows := make([][]string, 0, len(standings))
	for idx, s := range standings {
		pr := prm[s.key]
		if pr == nil {
			continue
		}
		row := []string{
			fmt.Sprintf("%d.", idx+1),
			s.name,
			internal.ScoreToString(s.points),
		}
		for _, code := range []byte{'M', 'S', 'C', 'B'} {
			row = append(row, formatTiebreak(pr, code))
		}
		rows = append(rows, row)
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i, h := range headers {
		sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], cell))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func formatTiebreak(pr *swiss.PlayerResult, code byte) string {
	for x, c := range pr.TiebreakCode {
		if c == code {
			return strconv.FormatFloat(pr.TiebreakValue[x], 'f', 1, 64)
		}
	}
	return "-"
}

// sortedCrossTables orders sections for output: Open/Championship
// first, then U<number> sections descending, then lexicographically.
func sortedCrossTables(t *uschess.Tournament) []*uschess.CrossTable {
	xts := append([]*uschess.CrossTable(nil), t.CrossTables...)
	sort.SliceStable(xts, func(i, j int) bool {
		return sectionLess(xts[i].SectionName, xts[j].SectionName)
	})
	return xts
}

func sectionLess(a, b string) bool {
	for _, top := range []string{"Open", "Championship"} {
		if a == top && b != top {
			return true
		}
		if b == top && a != top {
			return false
		}
	}
	ua, ub := strings.HasPrefix(a, "U"), strings.HasPrefix(b, "U")
	// Both U-sections: compare numeric suffix descending
	if ua && ub {
		ai, errA := strconv.Atoi(strings.TrimPrefix(a, "U"))
		bi, errB := strconv.Atoi(strings.TrimPrefix(b, "U"))
		if errA == nil && errB == nil {
			return ai > bi
		}
	}
	// U-sections before non-U (after Championship)
	if ua != ub {
		return ua
	}
	return a < b
}
