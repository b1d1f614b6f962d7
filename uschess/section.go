/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/swiss"
)

// BuildSection converts one cross table into pairing engine input for
// the round after the last recorded one. Scores are the cross table
// totals; opponents, colors, and bye history come from the round
// outcomes; board hints start clean.
func BuildSection(xt *CrossTable) []*swiss.Player {
	players := make([]*swiss.Player, 0, len(xt.PlayerEntries))
	byPairNum := make(map[int]*CrossTableEntry, len(xt.PlayerEntries))
	for i := range xt.PlayerEntries {
		e := &xt.PlayerEntries[i]
		byPairNum[e.PairNum] = e
	}
	for i := range xt.PlayerEntries {
		e := &xt.PlayerEntries[i]
		p := &swiss.Player{
			Kind:       swiss.KindSwiss,
			Round:      xt.NumRounds + 1,
			BoardNum:   0,
			PlayID:     playID(e),
			Name:       e.PlayerName,
			UseRating:  "uscf",
			Score:      e.TotalPoints,
			Rand:       stableRand(playID(e)),
			FirstColor: 'W',
			Multiround: 1,
		}
		if r, err := strconv.Atoi(e.PlayerRatingPre); err == nil && r > 0 {
			p.Rating = r
		} else {
			p.IsUnrated = true
		}
		colorFlip := byte('W')
		for rnd, res := range e.Results {
			switch res.Outcome {
			case ResultWin, ResultLoss, ResultDraw:
				opp := byPairNum[res.OpponentPairNum]
				if opp == nil {
					p.ColorHistory += "z"
					p.UnplayedCount++
					continue
				}
				color := byte('W')
				switch res.Color {
				case "white":
					color = 'W'
				case "black":
					color = 'B'
				default:
					// classic MSA pages omit colors; alternate as an
					// approximation so due colors stay plausible
					color = colorFlip
				}
				if color == 'W' {
					colorFlip = 'B'
				} else {
					colorFlip = 'W'
				}
				p.Opponents = append(p.Opponents,
					fmt.Sprintf("%d_0", playID(opp)))
				p.PlayedColors += string(color)
				p.ColorHistory += string(color)
			case ResultFullBye:
				p.ColorHistory += "f"
				p.UnplayedCount++
			case ResultHalfBye:
				p.ColorHistory += "h"
				p.UnplayedCount++
				p.HalfByeCount++
				p.ByeRounds = append(p.ByeRounds, rnd+1)
			case ResultWinByForfeit:
				p.ColorHistory += "h"
				p.UnplayedCount++
				p.HalfByeCount++
			default:
				p.ColorHistory += "z"
				p.UnplayedCount++
			}
		}
		players = append(players, p)
	}
	return players
}

// playID prefers the USCF member id and falls back to the pair number
// for unparsed entries.
func playID(e *CrossTableEntry) int {
	if e.PlayerId != 0 {
		return int(e.PlayerId)
	}
	return e.PairNum
}

// stableRand derives the deterministic ranking tiebreaker from the
// player id so that reruns across rounds reproduce the same pairings.
func stableRand(id int) float64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	h.Write(buf[:])
	return float64(h.Sum64()>>11) / float64(1<<53)
}

// ByeKey is the sentinel result map entry for unplayed rounds.
const ByeKey = "0_0"

// BuildResultMap converts a completed cross table into tiebreak input;
// every player's round vectors are padded to the section's round count.
func BuildResultMap(xt *CrossTable) swiss.PlayerResultMap {
	prm := swiss.PlayerResultMap{ByeKey: &swiss.PlayerResult{Player: ByeKey}}
	byPairNum := make(map[int]*CrossTableEntry, len(xt.PlayerEntries))
	for i := range xt.PlayerEntries {
		e := &xt.PlayerEntries[i]
		byPairNum[e.PairNum] = e
	}
	for i := range xt.PlayerEntries {
		e := &xt.PlayerEntries[i]
		key := fmt.Sprintf("%d_0", playID(e))
		pr := &swiss.PlayerResult{Player: key}
		if r, err := strconv.Atoi(e.PlayerRatingPre); err == nil {
			pr.Rating = r
		}
		for _, res := range e.Results {
			oppKey := ByeKey
			if opp := byPairNum[res.OpponentPairNum]; opp != nil &&
				(res.Outcome == ResultWin || res.Outcome == ResultLoss ||
					res.Outcome == ResultDraw) {
				oppKey = fmt.Sprintf("%d_0", playID(opp))
			}
			pr.Opponent = append(pr.Opponent, oppKey)
			switch res.Color {
			case "white":
				pr.Color += "W"
			case "black":
				pr.Color += "B"
			default:
				pr.Color += "-"
			}
			pr.Result += string(resultLetter(res.Outcome))
		}
		for len(pr.Result) < xt.NumRounds {
			pr.Opponent = append(pr.Opponent, ByeKey)
			pr.Color += "-"
			pr.Result += "U"
		}
		prm[key] = pr
	}
	return prm
}

// resultLetter maps a round outcome onto the tiebreak letter alphabet.
func resultLetter(r Result) byte {
	switch r {
	case ResultWin:
		return 'W'
	case ResultLoss:
		return 'L'
	case ResultDraw:
		return 'D'
	case ResultFullBye:
		return 'B'
	case ResultHalfBye:
		return 'H'
	case ResultWinByForfeit:
		return 'X'
	case ResultLossByForfeit:
		return 'S'
	default:
		return 'U'
	}
}

// apiMemberResponse represents the JSON response from the member API.
type apiMemberResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Ratings   []struct {
		Rating       int    `json:"rating"`
		RatingSystem string `json:"ratingSystem"`
		GameCount    int    `json:"gameCount"`
	} `json:"ratings"`
}

// FetchProvisionalCount returns the number of rated games behind a
// member's regular rating, used to decide whether an unrated player can
// afford a bye (rules 28L2 and 28L5).
func (client *Client) FetchProvisionalCount(ctx context.Context,
	memberID MemID) (int, error) {

	endpoint := fmt.Sprintf("https://ratings-api.uschess.org/api/v1/members/%v",
		memberID)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("creating profile request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient1day.Do(req)
	if err != nil {
		return 0, fmt.Errorf("performing profile HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("unexpected profile status %d: %s",
			resp.StatusCode, string(body))
	}

	var memberData apiMemberResponse
	if err := json.NewDecoder(resp.Body).Decode(&memberData); err != nil {
		return 0, fmt.Errorf("decoding profile JSON: %w", err)
	}
	for _, rating := range memberData.Ratings {
		if rating.RatingSystem == "R" {
			return rating.GameCount, nil
		}
	}
	return 0, nil
}

// FillProvisionalCounts fetches provisional game counts for the
// section's unrated players concurrently; fetch failures leave the
// count at zero (the engine then simply avoids their byes harder).
func (client *Client) FillProvisionalCounts(ctx context.Context,
	players []*swiss.Player) error {

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range players {
		if !p.IsUnrated || p.PlayID == 0 {
			continue
		}
		p := p
		g.Go(func() error {
			cnt, err := client.FetchProvisionalCount(ctx, MemID(p.PlayID))
			if err != nil {
				return nil // best effort
			}
			mu.Lock()
			p.Provisional = cnt
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}
