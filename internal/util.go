/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// ScoreToString renders a chess score using the half fraction, e.g.
// "2½" for 2.5.
func ScoreToString(score float64) string {
	whole := int(score)
	if score == float64(whole) {
		return fmt.Sprintf("%d", whole)
	}
	if whole == 0 {
		return "½"
	}
	return fmt.Sprintf("%d½", whole)
}

// NormalizeName collapses whitespace and flips "Last, First" ordering
// into "First Last".
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, ","); idx != -1 {
		last := strings.TrimSpace(name[:idx])
		first := strings.TrimSpace(name[idx+1:])
		name = first + " " + last
	}
	return strings.Join(strings.Fields(name), " ")
}
