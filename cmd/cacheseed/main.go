/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mikeb26/swisspair/uschess"
)

// this program exists just to seed the http cache for upcoming events

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: cacheseed <eventId> [<eventId> ...]\n")
		os.Exit(1)
	}

	ctx := context.Background()
	client := uschess.NewClient(ctx)
	for _, arg := range os.Args[1:] {
		tourney, err := client.FetchCrossTables(ctx, uschess.EventID(arg))
		time.Sleep(2 * time.Second) // avoid pegging uschess.org
		if err != nil {
			// best effort
			continue
		}

		for _, xt := range tourney.CrossTables {
			players := uschess.BuildSection(xt)
			if err := client.FillProvisionalCounts(ctx, players); err != nil {
				// best effort
				continue
			}
		}
		fmt.Printf("seeded ev:%v\n", tourney.Event.Name)
	}
}
