/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// rotatePairDown rotates the players at positions x..y one slot down
// the pairing vector, preserving the parity of the chosen endpoints.
// The shift vector nudges individual positions by one to keep an
// expected color pattern intact; oddDropDown and oddPullUp adjust the
// window when the score group borrows a player from a neighbor.
func rotatePairDown(pair []int, x, y, pBegin, pEnd int, oddDropDown, oddPullUp bool, shift []bool) {
	if oddDropDown {
		y--
		pEnd -= 2
	}
	if oddPullUp {
		x++
		pBegin += 2
		pair[x-1], pair[x] = pair[x], pair[x-1]
	}
	sh := func(z int) int {
		if shift[z] {
			return z + 1
		}
		return z
	}
	if x%2 == 0 {
		if y%2 == 0 {
			for z := x; z+2 <= y; z += 2 {
				pair[sh(z)], pair[sh(z+2)] = pair[sh(z+2)], pair[sh(z)]
			}
		} else {
			for z := x; z+2 < pEnd; z += 2 {
				pair[sh(z)], pair[sh(z+2)] = pair[sh(z+2)], pair[sh(z)]
			}
			pair[pEnd-2], pair[pBegin+1] = pair[pBegin+1], pair[pEnd-2]
			for z := pBegin + 1; z+2 <= y; z += 2 {
				pair[sh(z)], pair[sh(z+2)] = pair[sh(z+2)], pair[sh(z)]
			}
		}
	} else {
		if y%2 == 0 {
			for z := y; z+2 < pEnd; z += 2 {
				pair[sh(z)], pair[sh(z+2)] = pair[sh(z+2)], pair[sh(z)]
			}
			pair[pEnd-2], pair[pBegin+1] = pair[pBegin+1], pair[pEnd-2]
			for z := pBegin + 1; z+2 <= x; z += 2 {
				pair[sh(z)], pair[sh(z+2)] = pair[sh(z+2)], pair[sh(z)]
			}
		} else {
			for z := x; z+2 <= y; z += 2 {
				pair[sh(z)], pair[sh(z+2)] = pair[sh(z+2)], pair[sh(z)]
			}
		}
	}
	if oddDropDown {
		pair[y], pair[y+1] = pair[y+1], pair[y]
	}
}

// rotatePairUp is the inverse rotation of rotatePairDown.
func rotatePairUp(pair []int, x, y, pBegin, pEnd int, oddDropDown, oddPullUp bool, shift []bool) {
	if oddDropDown {
		y--
		pEnd -= 2
		pair[y+1], pair[y] = pair[y], pair[y+1]
	}
	if oddPullUp {
		x++
		pBegin += 2
	}
	sh := func(z int) int {
		if shift[z] {
			return z + 1
		}
		return z
	}
	if x%2 == 0 {
		if y%2 == 0 {
			for z := y; z >= x+2; z -= 2 {
				pair[sh(z)], pair[sh(z-2)] = pair[sh(z-2)], pair[sh(z)]
			}
		} else {
			for z := y; z >= pBegin+2; z -= 2 {
				pair[sh(z)], pair[sh(z-2)] = pair[sh(z-2)], pair[sh(z)]
			}
			pair[pBegin+1], pair[pEnd-2] = pair[pEnd-2], pair[pBegin+1]
			for z := pEnd - 2; z >= x+2; z -= 2 {
				pair[sh(z)], pair[sh(z-2)] = pair[sh(z-2)], pair[sh(z)]
			}
		}
	} else {
		if y%2 == 0 {
			for z := x; z >= pBegin+2; z -= 2 {
				pair[sh(z)], pair[sh(z-2)] = pair[sh(z-2)], pair[sh(z)]
			}
			pair[pBegin+1], pair[pEnd-2] = pair[pEnd-2], pair[pBegin+1]
			for z := pEnd - 2; z >= y+2; z -= 2 {
				pair[sh(z)], pair[sh(z-2)] = pair[sh(z-2)], pair[sh(z)]
			}
		} else {
			for z := y; z >= x+2; z -= 2 {
				pair[sh(z)], pair[sh(z-2)] = pair[sh(z-2)], pair[sh(z)]
			}
		}
	}
	if oddPullUp {
		pair[x], pair[x-1] = pair[x-1], pair[x]
	}
}

// rotateColor swaps same-score players with opposite due colors across
// positions, leaving the color histograms of the boards in between
// consistent. Returns false when the rotation does not apply.
func rotateColor(pl []*Player, pair []int, x, y, pBegin, pEnd int, oddDropDown, oddPullUp bool) bool {
	if x/2+1 >= y/2 {
		return false // adjacent boards: a simple swap already covers it
	}
	px, py := pl[pair[x]], pl[pair[y]]
	if px.Score != py.Score {
		return false
	}
	xColor := px.DueColor[0]
	if xColor == 'x' {
		xColor = flipColor(py.DueColor[0])
	}
	xColor = upper(xColor)
	yColor := py.DueColor[0]
	if yColor == 'x' {
		yColor = flipColor(px.DueColor[0])
	}
	yColor = upper(yColor)
	if xColor == yColor {
		return false
	}
	isFlipX := xColor == upper(px.DueColor[0]) && yColor == upper(py.DueColor[0])
	opp := func(v int) *Player {
		if v%2 == 0 {
			return pl[pair[v+1]]
		}
		return pl[pair[v-1]]
	}
	// expected color of position v: its own due color, else derived
	// from the opponent's
	color := func(v int) byte {
		p := pl[pair[v]]
		if p.DueColor[0] != 'x' {
			return upper(p.DueColor[0])
		}
		o := opp(v)
		if o.DueColor[0] == 'x' {
			if v%2 == 0 {
				return 'W'
			}
			return 'B'
		}
		if isFlipX {
			return upper(o.DueColor[0])
		}
		return upper(flipColor(o.DueColor[0]))
	}

	top := x
	if oddPullUp || x%2 == 0 {
		for top = x/2*2 + 2; top < y/2*2 && color(top) == xColor; top += 2 {
		}
		if top >= y/2*2 {
			return false // not enough color changes (need one more)
		}
		for z := top; ; z -= 2 {
			if z == x || z+1 == x {
				pair[x], pair[z+2] = pair[z+2], pair[x]
				top++
				break
			}
			pair[z], pair[z+2] = pair[z+2], pair[z]
		}
	}

	if oddDropDown || y%2 == 0 {
		w := top
		for z := w + 2; z < y; z += 2 {
			if color(z) == yColor {
				pair[w], pair[z] = pair[z], pair[w]
				w = z
			}
		}
		pair[w], pair[y] = pair[y], pair[w]
		w = y
		for z := w + 1; z > top+2; z -= 2 {
			if color(z-2) == xColor {
				pair[w], pair[z-2] = pair[z-2], pair[w]
				w = z - 2
			}
		}
	} else {
		for z := top; z >= x+4; z -= 2 {
			pair[z], pair[z-2] = pair[z-2], pair[z]
		}
		pair[top], pair[y] = pair[y], pair[top]
	}
	return true
}
