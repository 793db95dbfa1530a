/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Microsoft Corporation. All rights reserved.
 *  Licensed under the MIT License. See License.txt in the project root for license information.
 *--------------------------------------------------------------------------------------------*/
// https://github.com/microsoft/vscode/blob/main/src/vs/editor/common/diff/defaultLinesDiffComputer/algorithms/myersDiffAlgorithm.ts

package editscript

import "slices"

// change is one contiguous span of a Myers diff: Del elements starting at
// P1 in seq1 were replaced by Ins elements starting at P2 in seq2.
type change struct {
	P1, P2   int
	Del, Ins int
}

// myersDiff computes the minimal edit script turning seq1 into seq2.
func myersDiff[E comparable](seq1, seq2 []E) []change {
	if len(seq1) == 0 && len(seq2) == 0 {
		return []change{}
	}
	if len(seq1) == 0 {
		return []change{{Ins: len(seq2)}}
	}
	if len(seq2) == 0 {
		return []change{{Del: len(seq1)}}
	}
	seqX := seq1
	seqY := seq2
	getXAfterSnake := func(x, y int) int {
		for x < len(seqX) && y < len(seqY) && seqX[x] == seqY[y] {
			y++
			x++
		}
		return x
	}
	d := 0
	v := newFastIntArray()
	v.set(0, getXAfterSnake(0, 0))
	paths := &fastArrayNegativeIndices{
		positiveArr: make(map[int]*snakePath),
		negativeArr: make(map[int]*snakePath),
	}
	if v.get(0) == 0 {
		paths.set(0, nil)
	} else {
		paths.set(0, newSnakePath(nil, 0, 0, v.get(0)))
	}
	k := 0
outer:
	for {
		d++
		lowerBound := -min(d, len(seqY)+(d%2))
		upperBound := min(d, len(seqX)+(d%2))
		for k = lowerBound; k <= upperBound; k += 2 {
			maxXofDLineTop, maxXofDLineLeft := -1, -1
			if k != upperBound {
				maxXofDLineTop = v.get(k + 1)
			}
			if k != lowerBound {
				maxXofDLineLeft = v.get(k-1) + 1
			}
			x := min(max(maxXofDLineTop, maxXofDLineLeft), len(seqX))
			y := x - k
			if x > len(seqX) || y > len(seqY) {
				continue
			}
			newMaxX := getXAfterSnake(x, y)
			v.set(k, newMaxX)
			var lastPath *snakePath
			if x == maxXofDLineTop {
				lastPath = paths.get(k + 1)
			} else {
				lastPath = paths.get(k - 1)
			}
			if newMaxX != x {
				paths.set(k, newSnakePath(lastPath, x, y, newMaxX-x))
			} else {
				paths.set(k, lastPath)
			}
			if v.get(k) == len(seqX) && v.get(k)-k == len(seqY) {
				break outer
			}
		}
	}
	path := paths.get(k)
	lastAligningPosS1 := len(seqX)
	lastAligningPosS2 := len(seqY)
	changes := make([]change, 0, 10)
	for {
		var endX, endY int
		if path != nil {
			endX = path.x + path.length
			endY = path.y + path.length
		}
		if endX != lastAligningPosS1 || endY != lastAligningPosS2 {
			changes = append(changes, change{P1: endX, P2: endY, Del: lastAligningPosS1 - endX, Ins: lastAligningPosS2 - endY})
		}
		if path == nil {
			break
		}
		lastAligningPosS1 = path.x
		lastAligningPosS2 = path.y
		path = path.pre
	}
	slices.Reverse(changes)
	return changes
}

type snakePath struct {
	pre          *snakePath
	x, y, length int
}

func newSnakePath(pre *snakePath, x, y, length int) *snakePath {
	return &snakePath{pre: pre, x: x, y: y, length: length}
}

type fastIntArray struct {
	positiveArr []int
	negativeArr []int
}

func newFastIntArray() *fastIntArray {
	return &fastIntArray{
		positiveArr: make([]int, 10),
		negativeArr: make([]int, 10),
	}
}

func (t *fastIntArray) get(i int) int {
	if i < 0 {
		return t.negativeArr[-i-1]
	}
	return t.positiveArr[i]
}

func (t *fastIntArray) set(i int, v int) {
	if i < 0 {
		i = -i - 1
		if i >= len(t.negativeArr) {
			newArr := make([]int, len(t.negativeArr)*2)
			copy(newArr, t.negativeArr)
			t.negativeArr = newArr
		}
		t.negativeArr[i] = v
		return
	}
	if i >= len(t.positiveArr) {
		newArr := make([]int, len(t.positiveArr)*2)
		copy(newArr, t.positiveArr)
		t.positiveArr = newArr
	}
	t.positiveArr[i] = v
}

// fastArrayNegativeIndices is a map-backed array that supports negative
// indices.
type fastArrayNegativeIndices struct {
	positiveArr map[int]*snakePath
	negativeArr map[int]*snakePath
}

func (t *fastArrayNegativeIndices) get(i int) *snakePath {
	if i < 0 {
		return t.negativeArr[-i-1]
	}
	return t.positiveArr[i]
}

func (t *fastArrayNegativeIndices) set(i int, v *snakePath) {
	if i < 0 {
		t.negativeArr[-i-1] = v
		return
	}
	t.positiveArr[i] = v
}
