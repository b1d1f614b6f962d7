/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mikeb26/swisspair/swiss"
)

// sectionFile is the JSON input format for the pair command: a section
// snapshot after some number of completed rounds.
type sectionFile struct {
	Name        string       `json:"sectionName"`
	Kind        string       `json:"kind"` // swiss, doubleswiss, match, roundrobin, doubleroundrobin
	Round       int          `json:"round"`
	TotalRounds int          `json:"totalRounds"`
	Players     []playerSpec `json:"players"`
}

type playerSpec struct {
	PlayID       int      `json:"playId"`
	Reentry      int      `json:"reentry"`
	Name         string   `json:"name"`
	Rating       int      `json:"rating"`
	IsUnrated    bool     `json:"isUnrated"`
	Provisional  int      `json:"provisional"`
	Score        float64  `json:"score"`
	Rand         float64  `json:"rand"`
	TeamID       int      `json:"teamId"`
	Teammates    []int    `json:"teammates"`
	Opponents    []string `json:"opponents"`
	ColorHistory string   `json:"colorHistory"`
	PlayedColors string   `json:"playedColors"`
	FirstColor   string   `json:"firstColor"`
	ByeRequest   bool     `json:"byeRequest"`
	ByeHouse     bool     `json:"byeHouse"`
	ByeRounds    []int    `json:"byeRounds"`
	HalfByeCount int      `json:"halfByeCount"`
	Unplayed     int      `json:"unplayedCount"`
	Paired       bool     `json:"paired"`
	BoardNum     *int     `json:"boardNum"`
	BoardColor   string   `json:"boardColor"`
	Multiround   int      `json:"multiround"`
}

func loadSectionFile(path string) (*sectionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read section file: %w", err)
	}
	var sec sectionFile
	if err := json.Unmarshal(data, &sec); err != nil {
		return nil, fmt.Errorf("unable to parse section file: %w", err)
	}
	if len(sec.Players) == 0 {
		return nil, fmt.Errorf("section file lists no players")
	}
	if sec.TotalRounds <= 0 {
		return nil, fmt.Errorf("section file must set totalRounds")
	}
	return &sec, nil
}

func (sec *sectionFile) kind() swiss.TournamentKind {
	switch sec.Kind {
	case "match":
		return swiss.KindMatch
	case "roundrobin":
		return swiss.KindRoundRobin
	case "doubleroundrobin":
		return swiss.KindDoubleRoundRobin
	case "doubleswiss":
		return swiss.KindDoubleSwiss
	default:
		return swiss.KindSwiss
	}
}

func (sec *sectionFile) toPlayers() []*swiss.Player {
	players := make([]*swiss.Player, 0, len(sec.Players))
	for _, ps := range sec.Players {
		p := &swiss.Player{
			Kind:          sec.kind(),
			Round:         sec.Round,
			BoardNum:      0,
			PlayID:        ps.PlayID,
			Reentry:       ps.Reentry,
			Name:          ps.Name,
			TeamID:        ps.TeamID,
			Teammates:     ps.Teammates,
			Opponents:     ps.Opponents,
			Score:         ps.Score,
			Rating:        ps.Rating,
			IsUnrated:     ps.IsUnrated,
			UseRating:     "uscf",
			Provisional:   ps.Provisional,
			Rand:          ps.Rand,
			ByeHouse:      ps.ByeHouse,
			ByeRequest:    ps.ByeRequest,
			UnplayedCount: ps.Unplayed,
			HalfByeCount:  ps.HalfByeCount,
			ByeRounds:     ps.ByeRounds,
			ColorHistory:  ps.ColorHistory,
			PlayedColors:  ps.PlayedColors,
			FirstColor:    'W',
			Multiround:    1,
			Paired:        ps.Paired,
		}
		if ps.FirstColor == "B" {
			p.FirstColor = 'B'
		}
		if ps.Multiround > 1 {
			p.Multiround = ps.Multiround
		}
		if ps.BoardNum != nil {
			p.BoardNum = *ps.BoardNum
		}
		if len(ps.BoardColor) == 1 {
			p.BoardColor = ps.BoardColor[0]
		}
		players = append(players, p)
	}
	return players
}
