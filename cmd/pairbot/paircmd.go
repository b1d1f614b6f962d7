/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/uschess"
)

type PairSubCommand string

const (
	PairPredictCmd  PairSubCommand = "predict"
	PairTiebreakCmd PairSubCommand = "tiebreak"
	PairAboutCmd    PairSubCommand = "about"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var pairSubCmdHdlrs = map[PairSubCommand]CmdHandler{
	PairPredictCmd:  predictCmdHandler,
	PairTiebreakCmd: tiebreakCmdHandler,
	PairAboutCmd:    aboutCmdHandler,
}

func pairCmdHandler(inter *discordgo.Interaction) *discordgo.InteractionResponse {
	ctx := context.Background()
	data := inter.ApplicationCommandData()
	hdlr := aboutCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			if h, ok := pairSubCmdHdlrs[PairSubCommand(subName)]; ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

//go:embed about.txt
var aboutText string

func aboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return ephemeralResponse(aboutText)
}

func predictCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	eventID := eventOption(inter)
	if eventID == "" {
		return ephemeralResponse("event id is required")
	}
	client := uschess.NewClient(ctx)
	tourney, err := client.FetchCrossTables(ctx, uschess.EventID(eventID))
	if err != nil {
		log.Printf("pairbot.predict: fetch %v failed: %v", eventID, err)
		return ephemeralResponse(fmt.Sprintf("unable to fetch event %v", eventID))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Predicted pairings for %v:\n", tourney.Event.Name))
	firstBoard := 1
	for _, xt := range tourney.CrossTables {
		players := uschess.BuildSection(xt)
		if len(players) < 2 {
			continue
		}
		swiss.FindPairings(players, xt.NumRounds+1, firstBoard, 1, true, false,
			xt.SectionName)
		sb.WriteString(buildSectionLines(xt.SectionName, players))
		firstBoard += (len(players) + 1) / 2
	}

	return ephemeralResponse(sb.String())
}

func tiebreakCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	eventID := eventOption(inter)
	if eventID == "" {
		return ephemeralResponse("event id is required")
	}
	client := uschess.NewClient(ctx)
	tourney, err := client.FetchCrossTables(ctx, uschess.EventID(eventID))
	if err != nil {
		log.Printf("pairbot.tiebreak: fetch %v failed: %v", eventID, err)
		return ephemeralResponse(fmt.Sprintf("unable to fetch event %v", eventID))
	}

	var sb strings.Builder
	for _, xt := range tourney.CrossTables {
		prm := uschess.BuildResultMap(xt)
		swiss.TiebreakCalculation(prm, uschess.ByeKey)
		sb.WriteString(fmt.Sprintf("%s:\n", xt.SectionName))
		type line struct {
			name  string
			score float64
			solk  float64
		}
		var lines []line
		for _, e := range xt.PlayerEntries {
			key := fmt.Sprintf("%d_0", e.PlayerId)
			if e.PlayerId == 0 {
				key = fmt.Sprintf("%d_0", e.PairNum)
			}
			pr := prm[key]
			if pr == nil {
				continue
			}
			solk := 0.0
			for x, c := range pr.TiebreakCode {
				if c == 'S' {
					solk = pr.TiebreakValue[x]
					break
				}
			}
			lines = append(lines, line{name: e.PlayerName,
				score: e.TotalPoints, solk: solk})
		}
		sort.SliceStable(lines, func(i, j int) bool {
			if lines[i].score != lines[j].score {
				return lines[i].score > lines[j].score
			}
			return lines[i].solk > lines[j].solk
		})
		for idx, l := range lines {
			sb.WriteString(fmt.Sprintf("%d. %s (%v, Solkoff %.1f)\n", idx+1,
				l.name, internal.ScoreToString(l.score), l.solk))
		}
		sb.WriteString("\n")
	}

	return ephemeralResponse(sb.String())
}

func buildSectionLines(secName string, players []*swiss.Player) string {
	type board struct {
		white, black *swiss.Player
	}
	boards := make(map[int]*board)
	for _, p := range players {
		if p.BoardNum < 0 {
			continue
		}
		b := boards[p.BoardNum]
		if b == nil {
			b = &board{}
			boards[p.BoardNum] = b
		}
		if p.BoardColor == 'B' {
			b.black = p
		} else {
			b.white = p
		}
	}
	nums := make([]int, 0, len(boards))
	for n := range boards {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	var sb strings.Builder
	if secName != "" {
		sb.WriteString(fmt.Sprintf("%s Section\n", secName))
	}
	name := func(p *swiss.Player) string {
		if p == nil {
			return "BYE"
		}
		return fmt.Sprintf("%s(%d)", p.Name, p.Rating)
	}
	for _, n := range nums {
		b := boards[n]
		sb.WriteString(fmt.Sprintf("Board %d: %s vs. %s\n", n,
			name(b.white), name(b.black)))
	}
	return sb.String()
}

func eventOption(inter *discordgo.Interaction) string {
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return ""
	}
	for _, opt := range data.Options[0].Options {
		if opt.Name == "event" {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}

func ephemeralResponse(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: truncateContent(content),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// discord limits message content to 2000 characters
func truncateContent(content string) string {
	const maxLen = 2000
	if len(content) <= maxLen {
		return content
	}
	const marker = "\n...<truncated>"
	return content[:maxLen-len(marker)] + marker
}
