/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/swisspair/internal"
)

// The classic MSA pages render cross tables as preformatted text. This
// fallback parser covers events the ratings API has not picked up yet.

var (
	msaSectionRe = regexp.MustCompile(`(?i)^\s*Section\s+(\d+)\s*-\s*(.+?)\s*$`)
	msaPlayerRe  = regexp.MustCompile(`^\s*(\d+)\s*\|\s*(.+?)\s*\|\s*([\d.]+)\s*\|(.*)$`)
	msaDetailRe  = regexp.MustCompile(`^\s*[A-Z]{0,2}\s*\|\s*(\d{6,8})\s*/\s*[A-Z]+:\s*(\d+)`)
	msaResultRe  = regexp.MustCompile(`^([WLDBHXUFZ])\s*(\d*)$`)
)

// fetchCrossTablesViaMSA scrapes the classic MSA cross table page for
// the given event.
func (client *Client) fetchCrossTablesViaMSA(ctx context.Context,
	id EventID) (*Tournament, error) {

	url := fmt.Sprintf("https://www.uschess.org/msa/XtblMain.php?%v", id)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create msa request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient30day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch msa crosstable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to parse msa page: %w", err)
	}

	tourney := &Tournament{Event: Event{ID: id}}
	if title := strings.TrimSpace(doc.Find("title").Text()); title != "" {
		tourney.Event.Name = title
	}
	doc.Find("pre").Each(func(_ int, s *goquery.Selection) {
		for _, xt := range parseMSASections(s.Text()) {
			tourney.CrossTables = append(tourney.CrossTables, xt)
		}
	})
	tourney.NumSections = len(tourney.CrossTables)
	if tourney.NumSections == 0 {
		return nil, fmt.Errorf("no cross table sections found for %v", id)
	}

	return tourney, nil
}

// parseMSASections splits a preformatted MSA block into per-section
// cross tables.
func parseMSASections(text string) []*CrossTable {
	var xts []*CrossTable
	var cur *CrossTable
	var lastEntry *CrossTableEntry
	for _, line := range strings.Split(text, "\n") {
		if m := msaSectionRe.FindStringSubmatch(line); m != nil {
			cur = &CrossTable{SectionName: strings.TrimSpace(m[2])}
			xts = append(xts, cur)
			lastEntry = nil
			continue
		}
		if cur == nil {
			continue
		}
		if m := msaPlayerRe.FindStringSubmatch(line); m != nil {
			pairNum, _ := strconv.Atoi(m[1])
			points, _ := strconv.ParseFloat(m[3], 64)
			entry := CrossTableEntry{
				PairNum:     pairNum,
				PlayerName:  internal.NormalizeName(m[2]),
				TotalPoints: points,
				Results:     parseMSAResults(m[4]),
			}
			cur.PlayerEntries = append(cur.PlayerEntries, entry)
			lastEntry = &cur.PlayerEntries[len(cur.PlayerEntries)-1]
			if len(entry.Results) > cur.NumRounds {
				cur.NumRounds = len(entry.Results)
			}
			cur.NumPlayers = len(cur.PlayerEntries)
			continue
		}
		if m := msaDetailRe.FindStringSubmatch(line); m != nil && lastEntry != nil {
			id, _ := strconv.Atoi(m[1])
			lastEntry.PlayerId = MemID(id)
			lastEntry.PlayerRatingPre = m[2]
		}
	}
	return xts
}

// parseMSAResults converts the cell tail of a player row ("W   8|L
// 3|...") into round results. The classic pages do not publish colors.
func parseMSAResults(cells string) []RoundResult {
	var results []RoundResult
	for _, cell := range strings.Split(cells, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		m := msaResultRe.FindStringSubmatch(cell)
		if m == nil {
			continue
		}
		opp := 0
		if m[2] != "" {
			opp, _ = strconv.Atoi(m[2])
		}
		res := RoundResult{OpponentPairNum: opp}
		switch m[1] {
		case "W":
			res.Outcome = ResultWin
		case "L":
			res.Outcome = ResultLoss
		case "D":
			res.Outcome = ResultDraw
		case "B":
			res.Outcome = ResultFullBye
		case "H":
			res.Outcome = ResultHalfBye
		case "X":
			res.Outcome = ResultWinByForfeit
		case "F":
			res.Outcome = ResultLossByForfeit
		case "U", "Z":
			res.Outcome = ResultUnplayedGame
		default:
			res.Outcome = ResultUnknown
		}
		results = append(results, res)
	}
	return results
}
