/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/mikeb26/swisspair/internal"
)

// MemID is a USCF member id.
type MemID int

// EventID identifies a rated event, e.g. "202501123452".
type EventID string

// Result represents the outcome of a round.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
	ResultFullBye
	ResultHalfBye
	ResultLossByForfeit
	ResultWinByForfeit
	ResultUnplayedGame
	ResultUnknown
)

// RoundResult holds the result of a single round for a player.
type RoundResult struct {
	OpponentPairNum int
	Outcome         Result
	Color           string // "white", "black", or empty for unplayed
}

// CrossTableEntry holds the data for one player in the cross table.
type CrossTableEntry struct {
	PairNum          int
	PlayerName       string
	PlayerId         MemID
	PlayerRatingPre  string
	PlayerRatingPost string
	TotalPoints      float64
	Results          []RoundResult
}

type RatingType int

const (
	RatingTypeRegular RatingType = iota
	RatingTypeQuick
	RatingTypeBlitz
)

// CrossTable holds the full cross table data, one per section.
type CrossTable struct {
	SectionName   string
	NumRounds     int
	NumPlayers    int
	RType         RatingType
	PlayerEntries []CrossTableEntry
}

// Event describes a rated event.
type Event struct {
	ID      EventID
	Name    string
	EndDate time.Time
}

// Tournament encapsulates the overall event and its cross tables.
type Tournament struct {
	Event       Event
	NumSections int

	CrossTables []*CrossTable
}

// API response structures for the rated events JSON API
type apiRatedEventResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	SectionCount int    `json:"sectionCount"`
	Sections     []struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"sections"`
}

type apiStandingsResponse struct {
	Items []apiStandingItem `json:"items"`
}

type apiStandingItem struct {
	Ordinal       int               `json:"ordinal"`
	PairingNumber int               `json:"pairingNumber"`
	MemberID      string            `json:"memberId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Score         float64           `json:"score"`
	RoundOutcomes []apiRoundOutcome `json:"roundOutcomes"`
	Ratings       []apiRatingChange `json:"ratings"`
}

type apiRoundOutcome struct {
	RoundNumber           int    `json:"roundNumber"`
	Outcome               string `json:"outcome"`
	Color                 string `json:"color"`
	OpponentOrdinal       int    `json:"opponentOrdinal"`
	OpponentPairingNumber int    `json:"opponentPairingNumber"`
}

type apiRatingChange struct {
	PreRating    int    `json:"preRating"`
	PostRating   int    `json:"postRating"`
	RatingSystem string `json:"ratingSystem"`
}

// FetchCrossTables retrieves a Tournament with all sections' cross
// tables for the given event id, falling back to the classic MSA pages
// when the ratings API is unavailable.
func (client *Client) FetchCrossTables(ctx context.Context,
	id EventID) (*Tournament, error) {

	eventData, err := client.fetchRatedEvent(ctx, id)
	if err != nil {
		tourney, msaErr := client.fetchCrossTablesViaMSA(ctx, id)
		if msaErr != nil {
			return nil, fmt.Errorf("unable to fetch event %v: %w (msa fallback: %v)",
				id, err, msaErr)
		}
		return tourney, nil
	}

	// Fetch standings for each section
	standingsData := make(map[string]*apiStandingsResponse)
	for _, section := range eventData.Sections {
		oneStandingsData, err := client.fetchSectionStandings(ctx, id,
			section.Number)
		if err != nil {
			log.Printf("warning: failed to fetch section %d: %v",
				section.Number, err)
			continue
		}
		standingsData[section.Name] = oneStandingsData
	}

	crossTables := convertStandingsToCrossTables(standingsData)

	endDate, err := internal.ParseDateOrZero(eventData.EndDate)
	if err != nil {
		log.Printf("warning: unable to parse event end date %v: %v",
			eventData.EndDate, err)
	}

	return &Tournament{
		Event: Event{
			EndDate: endDate,
			Name:    eventData.Name,
			ID:      id,
		},
		NumSections: len(crossTables),
		CrossTables: crossTables,
	}, nil
}

func (client *Client) fetchRatedEvent(ctx context.Context,
	id EventID) (*apiRatedEventResponse, error) {

	eventURL :=
		fmt.Sprintf("https://ratings-api.uschess.org/api/v1/rated-events/%v",
			id)
	req, err := http.NewRequestWithContext(ctx, "GET", eventURL, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create event request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	// these are rarely (if ever) updated so 1 month cache is fine
	resp, err := client.httpClient30day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected event status %d: %s",
			resp.StatusCode, string(body))
	}

	var eventData apiRatedEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&eventData); err != nil {
		return nil, fmt.Errorf("failed to parse event JSON: %w", err)
	}

	return &eventData, nil
}

func (client *Client) fetchSectionStandings(ctx context.Context,
	eventID EventID, sectionNum int) (*apiStandingsResponse, error) {

	url := fmt.Sprintf("https://ratings-api.uschess.org/api/v1/rated-events/%v/sections/%d/standings",
		eventID, sectionNum)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create standings request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient30day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch standings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected standings status %d: %s",
			resp.StatusCode, string(body))
	}

	var standingsData apiStandingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&standingsData); err != nil {
		return nil, fmt.Errorf("failed to parse standings JSON: %w", err)
	}

	return &standingsData, nil
}

func convertStandingsToCrossTables(standings map[string]*apiStandingsResponse) []*CrossTable {
	xts := make([]*CrossTable, 0)

	for secName := range standings {
		xt := convertStandingsToCrossTable(standings[secName], secName)
		xts = append(xts, xt)
	}

	return xts
}

func convertStandingsToCrossTable(standings *apiStandingsResponse,
	sectionName string) *CrossTable {

	var entries []CrossTableEntry
	var numRounds int
	ratingType := RatingTypeRegular

	for _, item := range standings.Items {
		// Determine rating type from first player's rating systems;
		// dual-rated sections prefer Regular
		if len(entries) == 0 && len(item.Ratings) > 0 {
			foundRating := false
			for _, rating := range item.Ratings {
				if rating.RatingSystem == "R" || rating.RatingSystem == "D" {
					ratingType = RatingTypeRegular
					foundRating = true
					break
				}
			}
			if !foundRating {
				switch item.Ratings[0].RatingSystem {
				case "B":
					ratingType = RatingTypeBlitz
				case "Q":
					ratingType = RatingTypeQuick
				default:
					ratingType = RatingTypeRegular
				}
			}
		}

		var results []RoundResult
		for _, outcome := range item.RoundOutcomes {
			results = append(results, RoundResult{
				OpponentPairNum: outcome.OpponentOrdinal,
				Outcome:         convertOutcome(outcome.Outcome),
				Color:           convertColor(outcome.Color),
			})
		}
		if len(results) > numRounds {
			numRounds = len(results)
		}

		// prefer the pre/post ratings matching the section's type
		var preRating, postRating string
		for _, rating := range item.Ratings {
			shouldUse := false
			switch ratingType {
			case RatingTypeRegular:
				shouldUse = rating.RatingSystem == "R" || rating.RatingSystem == "D"
			case RatingTypeBlitz:
				shouldUse = rating.RatingSystem == "B"
			case RatingTypeQuick:
				shouldUse = rating.RatingSystem == "Q"
			}
			if shouldUse {
				if rating.PreRating > 0 {
					preRating = strconv.Itoa(rating.PreRating)
				}
				if rating.PostRating > 0 {
					postRating = strconv.Itoa(rating.PostRating)
				}
				break
			}
		}

		memberID, err := strconv.Atoi(item.MemberID)
		if err != nil {
			log.Printf("warning: failed to convert member ID %v to int: %v",
				item.MemberID, err)
		}

		entries = append(entries, CrossTableEntry{
			PairNum:          item.Ordinal,
			PlayerName:       internal.NormalizeName(item.FirstName + " " + item.LastName),
			PlayerId:         MemID(memberID),
			PlayerRatingPre:  preRating,
			PlayerRatingPost: postRating,
			TotalPoints:      item.Score,
			Results:          results,
		})
	}

	return &CrossTable{
		SectionName:   sectionName,
		NumRounds:     numRounds,
		NumPlayers:    len(entries),
		RType:         ratingType,
		PlayerEntries: entries,
	}
}

func convertOutcome(outcome string) Result {
	switch outcome {
	case "Win":
		return ResultWin
	case "Loss":
		return ResultLoss
	case "Draw":
		return ResultDraw
	case "ByeFull":
		return ResultFullBye
	case "ByeHalf":
		return ResultHalfBye
	case "LossByForfeit", "LossForfeit":
		return ResultLossByForfeit
	case "WinForfeit", "WinByForfeit":
		return ResultWinByForfeit
	case "Unplayed", "Unpaired":
		return ResultUnplayedGame
	default:
		return ResultUnknown
	}
}

func convertColor(color string) string {
	switch color {
	case "White", "white":
		return "white"
	case "Black", "black":
		return "black"
	default:
		return ""
	}
}
