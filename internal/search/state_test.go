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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchStateBeginFinish(t *testing.T) {
	var s searchState
	assert.False(t, s.isActive())

	gen, ok := s.begin(false)
	assert.True(t, ok)
	assert.EqualValues(t, 1, gen)
	assert.True(t, s.isActive())

	// a second begin() while already active must fail
	_, ok = s.begin(false)
	assert.False(t, ok)

	s.finish()
	assert.False(t, s.isActive())

	// generation keeps increasing across runs
	gen2, ok := s.begin(false)
	assert.True(t, ok)
	assert.EqualValues(t, 2, gen2)
}

func TestSearchStatePonderHit(t *testing.T) {
	var s searchState
	gen, ok := s.begin(true)
	assert.True(t, ok)
	assert.True(t, s.isPondering())

	assert.True(t, s.ponderHit())
	assert.False(t, s.isPondering())
	assert.EqualValues(t, gen, s.generation())

	// ponderHit on a non-pondering state is a no-op
	assert.False(t, s.ponderHit())
}

func TestSearchStateStop(t *testing.T) {
	var s searchState
	_, _ = s.begin(false)
	s.stop()
	assert.True(t, s.isStopping())
	// stopping a stopped/waiting state is a no-op, not a panic
	s.stop()
	assert.True(t, s.isStopping())
	s.finish()
	s.stop()
	assert.False(t, s.isStopping())
}

func TestSearchStateWatchdogIgnoresStaleGeneration(t *testing.T) {
	var s searchState
	gen1, _ := s.begin(false)
	s.finish()
	gen2, _ := s.begin(false)
	assert.NotEqual(t, gen1, gen2)

	// a watchdog armed for the earlier generation must not affect the new run
	s.stopGeneration(gen1)
	assert.False(t, s.isStopping())
	assert.True(t, s.sameGenerationActive(gen2))

	s.stopGeneration(gen2)
	assert.True(t, s.isStopping())
}
