//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package search

import (
	"github.com/kestrelchess/kestrel/internal/position"
	. "github.com/kestrelchess/kestrel/internal/types"
)

// aspirationSearch re-searches the root with a window centered on the
// previous iteration's score, widening along aspirationSteps on a fail
// low/high until the result lands strictly inside the window or the window
// has grown to +-infinity.
// https://www.chessprogramming.org/Aspiration_Windows
func (s *Search) aspirationSearch(p *position.Position, depth int, previousValue Value) Value {
	if previousValue == ValueNA || !previousValue.IsValid() {
		return s.rootSearch(p, depth, ValueMin, ValueMax)
	}

	for _, step := range aspirationSteps {
		alpha := previousValue - step
		beta := previousValue + step
		if step == ValueMax {
			alpha = ValueMin
			beta = ValueMax
		}

		value := s.rootSearch(p, depth, alpha, beta)
		if s.stopConditions() {
			return value
		}

		switch {
		case value <= alpha:
			s.statistics.AspirationResearches++
			s.sendAspirationResearchInfo("upperbound")
		case value >= beta:
			s.statistics.AspirationResearches++
			s.sendAspirationResearchInfo("lowerbound")
		default:
			return value
		}
	}

	// table exhausted - the last step above already used +-infinity bounds
	return s.rootSearch(p, depth, ValueMin, ValueMax)
}

// mtdf repeatedly probes the root with a minimal (zero) window around a
// current best guess, tightening a [lowerBound, upperBound] bracket on each
// probe until it converges on the true minimax value.
// https://www.chessprogramming.org/MTD(f)
func (s *Search) mtdf(p *position.Position, depth int, firstGuess Value) Value {
	g := firstGuess
	if g == ValueNA || !g.IsValid() {
		g = 0
	}
	lowerBound := ValueMin
	upperBound := ValueMax

	for lowerBound < upperBound {
		beta := g
		if g == lowerBound {
			beta = g + 1
		}
		g = s.rootSearch(p, depth, beta-1, beta)
		if s.stopConditions() {
			return g
		}
		if g < beta {
			upperBound = g
		} else {
			lowerBound = g
		}
	}
	return g
}
