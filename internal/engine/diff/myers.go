package diff

import "math"

// DiffLines hashes a and b through a fresh HashTable and diffs them.
func DiffLines(a, b Lines, opts ...HashOption) []Edit {
	table := NewHashTable(opts...)
	return Diff(NewLineSequence(a, table), NewLineSequence(b, table))
}

// Diff computes a minimal edit script transforming a into b.
func Diff(a, b Sequence) []Edit {
	n, m := a.Len(), b.Len()

	// Strip common prefix.
	smin, tmin := 0, 0
	for smin < n && tmin < m && a.Hash(smin) == b.Hash(tmin) {
		smin++
		tmin++
	}

	// Strip common suffix.
	smax, tmax := n, m
	for smax > smin && tmax > tmin && a.Hash(smax-1) == b.Hash(tmax-1) {
		smax--
		tmax--
	}

	switch {
	case smin == smax && tmin == tmax:
		return nil
	case smin == smax:
		return []Edit{newEdit(smin, smin, tmin, tmax)}
	case tmin == tmax:
		return []Edit{newEdit(smin, smax, tmin, tmin)}
	}

	x := make([]int, smax-smin)
	for i := range x {
		x[i] = a.Hash(smin + i)
	}
	y := make([]int, tmax-tmin)
	for i := range y {
		y[i] = b.Hash(tmin + i)
	}

	rx, ry := myers(x, y)
	return collectEdits(rx, ry, smin, tmin)
}

// myers flags every deleted element of x in rx and every inserted element of
// y in ry along a minimal edit path. Elements present on one side only can
// never match, so they are flagged up front and the search runs on the rest.
func myers(x, y []int) (rx, ry []bool) {
	rx = make([]bool, len(x))
	ry = make([]bool, len(y))

	// Bit 1: occurs in x, bit 2: occurs in y.
	seen := make(map[int]uint8, len(x)+len(y))
	for _, h := range x {
		seen[h] |= 1
	}
	for _, h := range y {
		seen[h] |= 2
	}

	var st search
	for s, h := range x {
		if seen[h] == 3 {
			st.x = append(st.x, h)
			st.xidx = append(st.xidx, s)
		} else {
			rx[s] = true
		}
	}
	for t, h := range y {
		if seen[h] == 3 {
			st.y = append(st.y, h)
			st.yidx = append(st.yidx, t)
		} else {
			ry[t] = true
		}
	}

	n, m := len(st.x), len(st.y)
	diagonals := n + m
	vlen := 2*diagonals + 3
	buf := make([]int, 2*vlen)
	st.vf, st.vb = buf[:vlen], buf[vlen:]
	st.v0 = diagonals + 1
	st.rx, st.ry = rx, ry

	st.compare(0, n, 0, m)
	return rx, ry
}

// search holds the state of the linear space divide and conquer search.
// Memory is O(len(x)+len(y)) regardless of the number of differences.
type search struct {
	x, y []int

	// Positions of x and y in the caller's sequences.
	xidx, yidx []int

	// Furthest reaching endpoints of the forward and backward searches:
	// v[v0+k] is the s coordinate on diagonal k = s - t.
	vf, vb []int
	v0     int

	rx, ry []bool
}

// compare flags a minimal edit path from (smin, tmin) to (smax, tmax).
func (st *search) compare(smin, smax, tmin, tmax int) {
	x, y := st.x, st.y
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	switch {
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			st.ry[st.yidx[t]] = true
		}
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			st.rx[st.xidx[s]] = true
		}
	default:
		s0, s1, t0, t1 := st.split(smin, smax, tmin, tmax)
		st.compare(smin, s0, tmin, t0)
		st.compare(s1, smax, t1, tmax)
	}
}

// split returns the middle run of matches (s0, t0)-(s1, t1), possibly empty,
// of a minimal path from (smin, tmin) to (smax, tmax). The ranges must be
// non-empty and share no prefix or suffix.
//
// Both searches visit diagonals from high k to low k and the forward search
// steps right (deletion) when both neighbours reach equally far, so on ties
// deletions come before insertions.
func (st *search) split(smin, smax, tmin, tmax int) (s0, s1, t0, t1 int) {
	x, y := st.x, st.y
	vf, vb, v0 := st.vf, st.vb, st.v0

	kmin, kmax := smin-tmax, smax-tmin
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// The path length has the parity of the length difference, which tells
	// which direction can detect the overlap.
	odd := (smax-smin-(tmax-tmin))%2 != 0

	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	// A path of length ceil((N+M)/2) always overlaps, so d is not bounded.
	for d := 1; ; d++ {
		// Forward. Diagonals outside the grid are skipped; the borders are
		// primed so the neighbour comparison needs no special cases.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmax; k >= fmin; k -= 2 {
			k0 := v0 + k
			var s int
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1] // down: insertion
			} else {
				s = vf[k0-1] + 1 // right: deletion
			}
			t := s - k
			ss, tt := s, t
			for s < smax && t < tmax && x[s] == y[t] {
				s++
				t++
			}
			vf[k0] = s
			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return ss, s, tt, t
			}
		}

		// Backward, mirrored.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmax; k >= bmin; k -= 2 {
			k0 := v0 + k
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1] // up: insertion
			} else {
				s = vb[k0+1] - 1 // left: deletion
			}
			t := s - k
			ss, tt := s, t
			for s > smin && t > tmin && x[s-1] == y[t-1] {
				s--
				t--
			}
			vb[k0] = s
			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, ss, t, tt
			}
		}
	}
}

// collectEdits turns the per-element flags into coalesced edits, shifting
// positions by the stripped prefix.
func collectEdits(rx, ry []bool, soff, toff int) []Edit {
	var edits []Edit
	n, m := len(rx), len(ry)
	s, t := 0, 0
	for s < n || t < m {
		if s < n && t < m && !rx[s] && !ry[t] {
			s++
			t++
			continue
		}
		s0, t0 := s, t
		for (s < n && rx[s]) || (t < m && ry[t]) {
			for s < n && rx[s] {
				s++
			}
			for t < m && ry[t] {
				t++
			}
		}
		edits = append(edits, newEdit(s0+soff, s+soff, t0+toff, t+toff))
	}
	return edits
}
