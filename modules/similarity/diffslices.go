// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library.
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/
package similarity

// Operation tags one span of a diffSlices result.
type operation int8

const (
	opDelete operation = -1
	opEqual  operation = 0
	opInsert operation = 1
)

// span is one diff operation: a run of elements tagged Equal, Delete or
// Insert.
type span[E comparable] struct {
	op operation
	e  []E
}

func diffSlices[E comparable](s1, s2 []E) []span[E] {
	commonlength := commonPrefixLength(s1, s2)
	commonprefix := s1[:commonlength]
	s1 = s1[commonlength:]
	s2 = s2[commonlength:]

	commonlength = commonSuffixLength(s1, s2)
	commonsuffix := s1[len(s1)-commonlength:]
	s1 = s1[:len(s1)-commonlength]
	s2 = s2[:len(s2)-commonlength]

	diffs := diffCompute(s1, s2)

	if len(commonprefix) != 0 {
		diffs = append([]span[E]{{op: opEqual, e: commonprefix}}, diffs...)
	}
	if len(commonsuffix) != 0 {
		diffs = append(diffs, span[E]{op: opEqual, e: commonsuffix})
	}
	return diffCleanupMerge(diffs)
}

func diffHalfMatchI[E comparable](l, s []E, i int) [][]E {
	var bestCommon []E
	var bestCommonLen int
	var bestLongtextA []E
	var bestLongtextB []E
	var bestShorttextA []E
	var bestShorttextB []E

	seed := l[i : i+len(l)/4]

	for j := slicesIndexOf(s, seed, 0); j != -1; j = slicesIndexOf(s, seed, j+1) {
		prefixLength := commonPrefixLength(l[i:], s[j:])
		suffixLength := commonSuffixLength(l[:i], s[:j])

		if bestCommonLen < suffixLength+prefixLength {
			bestCommon = s[j-suffixLength : j+prefixLength]
			bestCommonLen = len(bestCommon)
			bestLongtextA = l[:i-suffixLength]
			bestLongtextB = l[i+prefixLength:]
			bestShorttextA = s[:j-suffixLength]
			bestShorttextB = s[j+prefixLength:]
		}
	}

	if bestCommonLen*2 < len(l) {
		return nil
	}

	return [][]E{
		bestLongtextA,
		bestLongtextB,
		bestShorttextA,
		bestShorttextB,
		bestCommon,
	}
}

func diffHalfMatch[E comparable](s1, s2 []E) [][]E {
	var longtext, shorttext []E
	if len(s1) > len(s2) {
		longtext = s1
		shorttext = s2
	} else {
		longtext = s2
		shorttext = s1
	}

	if len(longtext) < 4 || len(shorttext)*2 < len(longtext) {
		return nil // Pointless.
	}

	hm1 := diffHalfMatchI(longtext, shorttext, int(float64(len(longtext)+3)/4))
	hm2 := diffHalfMatchI(longtext, shorttext, int(float64(len(longtext)+1)/2))

	var hm [][]E
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	default:
		if len(hm1[4]) > len(hm2[4]) {
			hm = hm1
		} else {
			hm = hm2
		}
	}

	if len(s1) > len(s2) {
		return hm
	}
	return [][]E{hm[2], hm[3], hm[0], hm[1], hm[4]}
}

func diffBisectSplit[E comparable](s1, s2 []E, x, y int) []span[E] {
	s1a := s1[:x]
	s2a := s2[:y]
	s1b := s1[x:]
	s2b := s2[y:]

	diffs := diffSlices(s1a, s2a)
	diffsb := diffSlices(s1b, s2b)
	return append(diffs, diffsb...)
}

// diffBisect finds the 'middle snake' of a diff, splits the problem in two
// and returns the recursively constructed diff. See Myers's 1986 paper:
// An O(ND) Difference Algorithm and Its Variations.
func diffBisect[E comparable](s1, s2 []E) []span[E] {
	s1Len, s2Len := len(s1), len(s2)

	maxD := (s1Len + s2Len + 1) / 2
	vOffset := maxD
	vLength := 2 * maxD

	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := s1Len - s2Len
	front := delta%2 != 0
	k1start, k1end := 0, 0
	k2start, k2end := 0, 0
	for d := 0; d < maxD; d++ {
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int

			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}

			y1 := x1 - k1
			for x1 < s1Len && y1 < s2Len {
				if s1[x1] != s2[y1] {
					break
				}
				x1++
				y1++
			}
			v1[k1Offset] = x1
			if x1 > s1Len {
				k1end += 2
			} else if y1 > s2Len {
				k1start += 2
			} else if front {
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					x2 := s1Len - v2[k2Offset]
					if x1 >= x2 {
						return diffBisectSplit(s1, s2, x1, y1)
					}
				}
			}
		}
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < s1Len && y2 < s2Len {
				if s1[s1Len-x2-1] != s2[s2Len-y2-1] {
					break
				}
				x2++
				y2++
			}
			v2[k2Offset] = x2
			if x2 > s1Len {
				k2end += 2
			} else if y2 > s2Len {
				k2start += 2
			} else if !front {
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					x2 = s1Len - x2
					if x1 >= x2 {
						return diffBisectSplit(s1, s2, x1, y1)
					}
				}
			}
		}
	}
	// No commonality at all.
	return []span[E]{
		{op: opDelete, e: s1},
		{op: opInsert, e: s2},
	}
}

func diffCompute[E comparable](s1, s2 []E) []span[E] {
	if len(s1) == 0 {
		return []span[E]{{op: opInsert, e: s2}}
	}
	if len(s2) == 0 {
		return []span[E]{{op: opDelete, e: s1}}
	}

	var longSlices, shortSlices []E
	if len(s1) > len(s2) {
		longSlices = s1
		shortSlices = s2
	} else {
		longSlices = s2
		shortSlices = s1
	}

	if i := slicesIndex(longSlices, shortSlices); i != -1 {
		op := opInsert
		if len(s1) > len(s2) {
			op = opDelete
		}
		return []span[E]{
			{op: op, e: longSlices[:i]},
			{op: opEqual, e: shortSlices},
			{op: op, e: longSlices[i+len(shortSlices):]},
		}
	}
	if len(shortSlices) == 1 {
		return []span[E]{
			{op: opDelete, e: s1},
			{op: opInsert, e: s2},
		}
	}
	if hm := diffHalfMatch(s1, s2); hm != nil {
		s1A, s1B, s2A, s2B, midCommon := hm[0], hm[1], hm[2], hm[3], hm[4]
		diffs := diffSlices(s1A, s2A)
		diffs = append(diffs, span[E]{op: opEqual, e: midCommon})
		diffs = append(diffs, diffSlices(s1B, s2B)...)
		return diffs
	}
	return diffBisect(s1, s2)
}

func splice[E comparable](slice []span[E], index int, amount int, elements ...span[E]) []span[E] {
	if len(elements) == amount {
		copy(slice[index:], elements)
		return slice
	}
	if len(elements) < amount {
		copy(slice[index:], elements)
		copy(slice[index+len(elements):], slice[index+amount:])
		end := len(slice) - amount + len(elements)
		tail := slice[end:]
		for i := range tail {
			tail[i] = span[E]{}
		}
		return slice[:end]
	}
	need := len(slice) - amount + len(elements)
	for len(slice) < need {
		slice = append(slice, span[E]{})
	}
	copy(slice[index+len(elements):], slice[index+amount:])
	copy(slice[index:], elements)
	return slice
}

// diffCleanupMerge reorders and merges like edit sections. Any edit
// section can move as long as it doesn't cross an equality.
func diffCleanupMerge[E comparable](diffs []span[E]) []span[E] {
	diffs = append(diffs, span[E]{op: opEqual, e: []E{}})
	pointer := 0
	countDelete := 0
	countInsert := 0
	commonlength := 0
	var textDelete []E
	var textInsert []E

	for pointer < len(diffs) {
		switch diffs[pointer].op {
		case opInsert:
			countInsert++
			textInsert = append(textInsert, diffs[pointer].e...)
			pointer++
		case opDelete:
			countDelete++
			textDelete = append(textDelete, diffs[pointer].e...)
			pointer++
		case opEqual:
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					commonlength = commonPrefixLength(textInsert, textDelete)
					if commonlength != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].op == opEqual {
							diffs[x-1].e = append(append([]E(nil), diffs[x-1].e...), textInsert[:commonlength]...)
						} else {
							diffs = append([]span[E]{{op: opEqual, e: textInsert[:commonlength]}}, diffs...)
							pointer++
						}
						textInsert = textInsert[commonlength:]
						textDelete = textDelete[commonlength:]
					}
					commonlength = commonSuffixLength(textInsert, textDelete)
					if commonlength != 0 {
						insertIndex := len(textInsert) - commonlength
						deleteIndex := len(textDelete) - commonlength
						e := diffs[pointer].e
						diffs[pointer].e = append(append([]E(nil), textInsert[insertIndex:]...), e...)
						textInsert = textInsert[:insertIndex]
						textDelete = textDelete[:deleteIndex]
					}
				}
				if countDelete == 0 {
					diffs = splice(diffs, pointer-countInsert,
						countDelete+countInsert,
						span[E]{op: opInsert, e: textInsert})
				} else if countInsert == 0 {
					diffs = splice(diffs, pointer-countDelete,
						countDelete+countInsert,
						span[E]{op: opDelete, e: textDelete})
				} else {
					diffs = splice(diffs, pointer-countDelete-countInsert,
						countDelete+countInsert,
						span[E]{op: opDelete, e: textDelete},
						span[E]{op: opInsert, e: textInsert})
				}

				pointer = pointer - countDelete - countInsert + 1
				if countDelete != 0 {
					pointer++
				}
				if countInsert != 0 {
					pointer++
				}
			} else if pointer != 0 && diffs[pointer-1].op == opEqual {
				diffs[pointer-1].e = append(append([]E(nil), diffs[pointer-1].e...), diffs[pointer].e...)
				diffs = append(diffs[:pointer], diffs[pointer+1:]...)
			} else {
				pointer++
			}
			countInsert = 0
			countDelete = 0
			textDelete = nil
			textInsert = nil
		}
	}

	if len(diffs[len(diffs)-1].e) == 0 {
		diffs = diffs[0 : len(diffs)-1]
	}

	changes := false
	pointer = 1
	for pointer < (len(diffs) - 1) {
		if diffs[pointer-1].op == opEqual && diffs[pointer+1].op == opEqual {
			if slicesHasSuffix(diffs[pointer].e, diffs[pointer-1].e) {
				e := diffs[pointer].e
				diffs[pointer].e = append(append([]E(nil), diffs[pointer-1].e...), e[:len(e)-len(diffs[pointer-1].e)]...)
				pe := diffs[pointer+1].e
				diffs[pointer+1].e = append(append([]E(nil), diffs[pointer-1].e...), pe...)

				diffs = splice(diffs, pointer-1, 1)
				changes = true
			} else if slicesHasPrefix(diffs[pointer].e, diffs[pointer+1].e) {
				diffs[pointer-1].e = append(append([]E(nil), diffs[pointer-1].e...), diffs[pointer+1].e...)
				diffs[pointer].e = append(append([]E(nil), diffs[pointer].e[len(diffs[pointer+1].e):]...), diffs[pointer+1].e...)

				diffs = splice(diffs, pointer+1, 1)
				changes = true
			}
		}
		pointer++
	}

	if changes {
		diffs = diffCleanupMerge(diffs)
	}

	return diffs
}
