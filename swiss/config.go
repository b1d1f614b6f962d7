/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects compatibility behaviors that were compile-time
// switches in older pairing programs.
type Config struct {
	// MatchSwissSys makes pairings and tiebreaks match the SwisSys
	// program for cross-checking: the odd-player-unrated cost is
	// disabled and the opposition cumulative tiebreak includes bye
	// points.
	MatchSwissSys bool

	// TeamBlockThresholdZero applies rule variation 28N3 with the
	// lowest possible threshold so that team blocks in small sections
	// do not impact top players. When false the engine additionally
	// charges blocks below a plus-two score at a higher priority and
	// runs the team lookahead.
	TeamBlockThresholdZero bool

	// Greedy accepts the first improving move and restarts the search;
	// when false the best candidate across a whole depth level is
	// retained instead.
	Greedy bool

	// UsePairableCost enables the multi-round lookahead that rejects
	// pairings making future rounds infeasible. The optimizer runs
	// without it first and redoes the search with it only when the
	// verification pass disagrees.
	UsePairableCost bool
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		TeamBlockThresholdZero: true,
		Greedy:                 true,
		UsePairableCost:        true,
	}
}

// diag is the sink for non-fatal pairing anomalies; callers may replace
// it to route diagnostics elsewhere.
var diag zerolog.Logger = log.Logger

// SetDiagnostics redirects the engine's anomaly reporting.
func SetDiagnostics(l zerolog.Logger) {
	diag = l
}
