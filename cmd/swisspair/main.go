/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/uschess"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"pair":     handlePair,
	"predict":  handlePredict,
	"tiebreak": handleTiebreak,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// handlePair pairs the next round for a section described by a local
// JSON file.
func handlePair(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pair", flag.ExitOnError)
	depth := fs.Int("depth", 1, "Optimizer search depth (1=fast, 2=slow)")
	firstBoard := fs.Int("firstboard", 1, "Number of the top board")
	firstPairings := fs.Bool("clean", false, "Ignore board hints and build textbook pairings")
	skipOptimize := fs.Bool("skipoptimize", false, "Evaluate the hint without optimizing")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: swisspair pair [flags] <section.json>\n")
		os.Exit(1)
	}

	sec, err := loadSectionFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("%v: failed to load %v: %v", os.Args[0], fs.Arg(0), err)
	}
	players := sec.toPlayers()
	cost := swiss.FindPairings(players, sec.TotalRounds, *firstBoard, *depth,
		*firstPairings, *skipOptimize, sec.Name)

	fmt.Print(buildPairingsOutput(sec.Name, players))
	fmt.Printf("Pairing cost: %v\n", cost)
}

// handlePredict predicts the next round's pairings for a rated event
// from its published cross tables.
func handlePredict(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	depth := fs.Int("depth", 1, "Optimizer search depth (1=fast, 2=slow)")
	totalRounds := fs.Int("rounds", 0, "Total rounds in the schedule (0 = played + 1)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: swisspair predict [flags] <eventId>\n")
		os.Exit(1)
	}

	client := uschess.NewClient(ctx)
	tourney, err := client.FetchCrossTables(ctx, uschess.EventID(fs.Arg(0)))
	if err != nil {
		log.Fatalf("%v: failed to retrieve event %v: %v", os.Args[0], fs.Arg(0), err)
	}

	fmt.Printf("Predicted pairings for %v:\n\n", tourney.Event.Name)
	firstBoard := 1
	for _, xt := range sortedCrossTables(tourney) {
		players := uschess.BuildSection(xt)
		if len(players) < 2 {
			continue
		}
		if err := client.FillProvisionalCounts(ctx, players); err != nil {
			log.Printf("warning: provisional lookup incomplete: %v", err)
		}
		rounds := *totalRounds
		if rounds <= 0 {
			rounds = xt.NumRounds + 1
		}
		swiss.FindPairings(players, rounds, firstBoard, *depth, true, false,
			xt.SectionName)
		fmt.Print(buildPairingsOutput(xt.SectionName, players))
		firstBoard += (len(players) + 1) / 2
	}
}

// handleTiebreak computes tiebreaks for a completed rated event.
func handleTiebreak(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("tiebreak", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: swisspair tiebreak <eventId>\n")
		os.Exit(1)
	}

	client := uschess.NewClient(ctx)
	tourney, err := client.FetchCrossTables(ctx, uschess.EventID(fs.Arg(0)))
	if err != nil {
		log.Fatalf("%v: failed to retrieve event %v: %v", os.Args[0], fs.Arg(0), err)
	}

	for _, xt := range sortedCrossTables(tourney) {
		prm := uschess.BuildResultMap(xt)
		swiss.TiebreakCalculation(prm, uschess.ByeKey)
		fmt.Print(buildTiebreakOutput(xt, prm))
	}
}
