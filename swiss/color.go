/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// sameColor normalizes a color letter to upper-case W or B, or 'x' when
// it is neither.
func sameColor(c byte) byte {
	switch upper(c) {
	case 'W':
		return 'W'
	case 'B':
		return 'B'
	}
	return 'x'
}

// flipColor returns the opposite color, or 'x' when the input is neither.
func flipColor(c byte) byte {
	switch upper(c) {
	case 'W':
		return 'B'
	case 'B':
		return 'W'
	}
	return 'x'
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

// DueColor determines the color a player is owed next under rule 29E.
// Upper case means equalization, lower case alternation, and "x"
// neither; the string length encodes how overdue the color is. With
// multiround play only the first game of each series counts.
func DueColor(history string, multiround int) string {
	if multiround > 1 && len(history) > 0 && len(history)%multiround == 0 {
		var b []byte
		for x := 0; x < len(history); x += multiround {
			b = append(b, history[x])
		}
		history = string(b)
	}
	unplayed := 0
	whites := 0
	blacks := 0
	for x := 0; x < len(history); x++ {
		switch {
		case 'a' <= history[x] && history[x] <= 'z':
			unplayed++
		case history[x] == 'W':
			whites++
		case history[x] == 'B':
			blacks++
		}
	}
	if unplayed == len(history) {
		return "x"
	}
	if whites > blacks {
		return repeatColor('B', whites-blacks)
	} else if blacks > whites {
		return repeatColor('W', blacks-whites)
	}
	for x := len(history); x > 0; x-- {
		if history[x-1] == 'W' || history[x-1] == 'B' {
			return string([]byte{lower(flipColor(history[x-1]))})
		}
	}
	return "x"
}

func repeatColor(c byte, n int) string {
	b := make([]byte, n)
	for x := range b {
		b[x] = c
	}
	return string(b)
}

// AllocateColor decides x's color on a board against y under rules 28J,
// 29E2, 29E4, and 30F. isOddBoard is true for boards 1, 3, 5, ... so
// that first-round colors alternate down the wall chart.
func AllocateColor(x, y *Player, isOddBoard bool) byte {
	// the player paired with the bye gets white; the bye gets black
	if y.isBye() {
		return 'W'
	} else if x.isBye() {
		return 'B'
	}

	// neither side due any color; rules 28J & 29E2: first round color
	xIsUpper := lessPlayer(x, y)
	if x.DueColor == "x" && y.DueColor == "x" {
		if xIsUpper == isOddBoard {
			return sameColor(x.FirstColor)
		}
		return flipColor(x.FirstColor)
	}

	// with prior games against this opponent, equalize color against
	// this particular opponent (rule 30F)
	matchWhite, matchBlack := 0, 0
	yKey := y.Key()
	for z, opp := range x.Opponents {
		if opp == yKey {
			switch upper(x.PlayedColors[z]) {
			case 'W':
				matchWhite++
			case 'B':
				matchBlack++
			}
		}
	}
	if matchWhite < matchBlack {
		return 'W'
	} else if matchBlack < matchWhite {
		return 'B'
	}

	// one side not due any color, or opposite due colors
	if y.DueColor == "x" {
		return sameColor(x.DueColor[0])
	} else if x.DueColor == "x" {
		return flipColor(y.DueColor[0])
	} else if sameColor(y.DueColor[0]) != sameColor(x.DueColor[0]) {
		return sameColor(x.DueColor[0])
	}

	// equalization of colors takes priority over alternation
	if isUpper(x.DueColor[0]) && (!isUpper(y.DueColor[0]) || len(x.DueColor) > len(y.DueColor)) {
		return sameColor(x.DueColor[0])
	} else if isUpper(y.DueColor[0]) && (!isUpper(x.DueColor[0]) || len(y.DueColor) > len(x.DueColor)) {
		return flipColor(y.DueColor[0])
	}

	// most recent round with unequal color history breaks ties (29E4.4)
	if len(x.ColorHistory) == len(y.ColorHistory) {
		for z := len(x.ColorHistory); z > 0; z-- {
			cx := sameColor(x.ColorHistory[z-1])
			cy := sameColor(y.ColorHistory[z-1])
			if cx != cy {
				if cx == 'x' {
					return cy
				}
				return flipColor(x.ColorHistory[z-1])
			}
		}
	}

	// finally use rank to break ties (29E4.5)
	if x.Rank < y.Rank {
		return sameColor(x.DueColor[0])
	}
	return flipColor(y.DueColor[0])
}
