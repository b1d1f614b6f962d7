/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package swiss computes pairings for one section and one round of a
// chess tournament according to USCF rules. The optimizer is a greedy
// local search over a cost function whose terms mirror the USCF Swiss
// System rules in priority order; round robin sections short-circuit to
// the Crenshaw-Berger tables.
package swiss

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ByeID is the sentinel player id reserved for the bye slot.
const ByeID = 0

// TournamentKind selects the pairing style for a section.
type TournamentKind byte

const (
	KindSwiss            TournamentKind = 'S'
	KindMatch            TournamentKind = 'M'
	KindRoundRobin       TournamentKind = 'R'
	KindDoubleRoundRobin TournamentKind = 'D'
	KindDoubleSwiss      TournamentKind = '2'
)

// Player is one entry in a section. Input fields are treated as
// read-only; BoardNum, BoardColor, DueColor, WarnCodes, Rank,
// OpponentRanks, and TeammateRanks are (over)written as outputs.
type Player struct {
	Kind  TournamentKind // tournament type for the section
	Round int            // current round, 1 to N (same for all players)

	BoardNum   int  // input board hint; output final board placement
	BoardColor byte // input color hint (W or B); output final color

	PlayID  int    // unique non-zero identifier (ByeID marks the bye slot)
	Reentry int    // distinguishes player reentries (zero if none)
	Name    string // used for diagnostics only

	TeamID    int   // primary team identifier (rule 28N performance hint)
	Teammates []int // play ids this player may not be paired against (28N/28T)

	// Opponents already played, in round order; each entry combines
	// play id and reentry as "id_reentry". Byes and unplayed games are
	// not included.
	Opponents []string

	Score       float64 // total points from prior rounds
	Rating      int     // USCF (or assigned) rating; zero for unrated
	IsUnrated   bool    // always false in an unrated section
	UseRating   string  // "uscf" for rated sections, "none" otherwise
	Provisional int     // rated games played before this tournament (28L2/28L5)

	// Rand breaks ties between players with the same score and rating.
	// It must be unique per player and stable across rounds; the caller
	// supplies it so that reruns reproduce the same pairing.
	Rand float64

	ByeHouse      bool  // house player who should receive the odd bye (28M1)
	ByeRequest    bool  // requested a half or zero point bye this round
	UnplayedCount int   // total unplayed games across all rounds (28L2/28L5)
	HalfByeCount  int   // half byes and forfeit wins, taken or committed (28L4)
	ByeRounds     []int // rounds with requested byes: past, current, and future

	// ColorHistory holds one letter per prior round: W, B, or a
	// lowercase tag for games not played (f=full bye, h=half bye,
	// z=zero bye). PlayedColors parallels Opponents and contains only
	// W and B.
	ColorHistory string
	PlayedColors string

	FirstColor byte // color of the top player on board one in round one (28J/29E2)
	Multiround int  // consecutive rounds against the same opponent (1 for normal play)

	Paired bool // manually paired already; will not be repaired, but may change board

	DueColor      string // output: W/B to equalize, w/b to alternate, x neither
	WarnCodes     string // output warning codes (safe to ignore)
	Rank          int    // output: dense rank after canonicalisation
	OpponentRanks []int  // output: prior opponents resolved to current ranks
	TeammateRanks []int  // output: teammates resolved to current ranks
}

// Key renders the id_reentry form used in Opponents lists.
func (p *Player) Key() string {
	return strconv.Itoa(p.PlayID) + "_" + strconv.Itoa(p.Reentry)
}

func (p *Player) isBye() bool {
	return p.PlayID == ByeID
}

// opponentID strips the reentry suffix from an Opponents entry.
func opponentID(opp string) int {
	if idx := strings.IndexByte(opp, '_'); idx != -1 {
		opp = opp[:idx]
	}
	id, _ := strconv.Atoi(opp)
	return id
}

// lessPlayer is the total order used for ranking players and boards:
// byes last; players wanting a pairing first; then score, rating, and
// the caller-supplied random tiebreaker (rules 28A/28B).
func lessPlayer(x, y *Player) bool {
	if x.isBye() != y.isBye() {
		return y.isBye()
	}
	if x.ByeRequest != y.ByeRequest {
		return y.ByeRequest
	}
	if x.Paired != y.Paired {
		return y.Paired
	}
	if x.Score != y.Score {
		return x.Score > y.Score
	}
	if x.Rating != y.Rating {
		return x.Rating > y.Rating
	}
	if x.Rand != y.Rand {
		return x.Rand < y.Rand
	}
	// handle the rare case when random values collide
	if x.PlayID != y.PlayID {
		return x.PlayID < y.PlayID
	}
	return x.Reentry < y.Reentry
}

// canonicalPlayers appends the sentinel bye if missing, sorts the list
// under lessPlayer, and assigns ranks, rank lists, and due colors.
func canonicalPlayers(pl []*Player) []*Player {
	if len(pl) == 0 || !pl[len(pl)-1].isBye() {
		bye := &Player{
			PlayID:   ByeID,
			BoardNum: -1,
		}
		if len(pl) > 0 {
			bye.Round = pl[0].Round
			bye.Multiround = pl[0].Multiround
		}
		pl = append(pl, bye)
	}
	sort.SliceStable(pl, func(i, j int) bool { return lessPlayer(pl[i], pl[j]) })
	setRanks(pl)
	return pl
}

// setRanks assigns dense ranks in list order and resolves each player's
// opponents and teammates to ranks, dropping ones absent from this
// section.
func setRanks(pl []*Player) {
	rankMap := make(map[int]int, len(pl))
	for x, p := range pl {
		p.Rank = x
		rankMap[p.PlayID] = x
		p.DueColor = DueColor(p.ColorHistory, p.Multiround) // assigns "x" for the bye
	}
	for _, p := range pl {
		p.OpponentRanks = p.OpponentRanks[:0]
		for _, opp := range p.Opponents {
			if r, ok := rankMap[opponentID(opp)]; ok {
				p.OpponentRanks = append(p.OpponentRanks, r)
			}
		}
		p.TeammateRanks = p.TeammateRanks[:0]
		for _, tm := range p.Teammates {
			if r, ok := rankMap[tm]; ok {
				p.TeammateRanks = append(p.TeammateRanks, r)
			}
		}
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("%v_%v(%s r%d %.1f rating=%d due=%s hist=%s)",
		p.PlayID, p.Reentry, p.Name, p.Rank, p.Score, p.Rating,
		p.DueColor, p.ColorHistory)
}
