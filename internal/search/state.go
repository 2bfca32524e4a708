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

import "sync/atomic"

// runState is the lifecycle of a single search task as observed from
// outside the goroutine that runs it.
type runState uint32

const (
	waiting runState = iota
	searching
	pondering
	stopping
)

// searchState packs {state, generation} into one 64 bit word so the UCI
// reader goroutine and a generation-keyed watchdog can mutate and observe
// search status with plain atomic ops instead of a lock. The generation
// half is bumped on every StartSearch so a watchdog timer left over from an
// already finished search can never stop a later one (see stopGeneration).
type searchState struct {
	word uint64
}

func packState(s runState, generation uint32) uint64 {
	return uint64(generation)<<32 | uint64(s)
}

func unpackState(word uint64) (runState, uint32) {
	return runState(uint32(word)), uint32(word >> 32)
}

func (ss *searchState) load() (runState, uint32) {
	return unpackState(atomic.LoadUint64(&ss.word))
}

func (ss *searchState) store(s runState, generation uint32) {
	atomic.StoreUint64(&ss.word, packState(s, generation))
}

// begin transitions to Searching (or Pondering) under a fresh generation
// and returns it. Fails (returns false) if a search is already running -
// the atomic word is the sole arbiter of "is a search active", replacing
// a separate isRunning semaphore.
func (ss *searchState) begin(ponder bool) (generation uint32, ok bool) {
	start := searching
	if ponder {
		start = pondering
	}
	for {
		old := atomic.LoadUint64(&ss.word)
		curState, curGen := unpackState(old)
		if curState != waiting {
			return 0, false
		}
		newGen := curGen + 1
		if atomic.CompareAndSwapUint64(&ss.word, old, packState(start, newGen)) {
			return newGen, true
		}
	}
}

// finish returns the state to Waiting, keeping the current generation.
func (ss *searchState) finish() {
	for {
		old := atomic.LoadUint64(&ss.word)
		_, curGen := unpackState(old)
		if atomic.CompareAndSwapUint64(&ss.word, old, packState(waiting, curGen)) {
			return
		}
	}
}

// ponderHit moves Pondering to Searching in place, keeping the generation.
// No-op if the state is not currently Pondering.
func (ss *searchState) ponderHit() bool {
	for {
		old := atomic.LoadUint64(&ss.word)
		curState, curGen := unpackState(old)
		if curState != pondering {
			return false
		}
		if atomic.CompareAndSwapUint64(&ss.word, old, packState(searching, curGen)) {
			return true
		}
	}
}

// stop flips the current generation to Stopping regardless of what it is,
// mirroring the UCI reader goroutine mutating the shared state directly on
// "stop"/"quit" instead of going through the command channel.
func (ss *searchState) stop() {
	for {
		old := atomic.LoadUint64(&ss.word)
		curState, curGen := unpackState(old)
		if curState == waiting || curState == stopping {
			return
		}
		if atomic.CompareAndSwapUint64(&ss.word, old, packState(stopping, curGen)) {
			return
		}
	}
}

// stopGeneration is the watchdog's exit: it only flips to Stopping if the
// generation it was armed for is still the one running. A watchdog whose
// search has already ended (generation advanced, or gone back to Waiting)
// is a no-op - this is the "late-firing watchdogs are ignored" rule.
func (ss *searchState) stopGeneration(generation uint32) {
	for {
		old := atomic.LoadUint64(&ss.word)
		curState, curGen := unpackState(old)
		if curGen != generation || curState == waiting || curState == stopping {
			return
		}
		if atomic.CompareAndSwapUint64(&ss.word, old, packState(stopping, curGen)) {
			return
		}
	}
}

func (ss *searchState) isStopping() bool {
	s, _ := ss.load()
	return s == stopping
}

func (ss *searchState) isPondering() bool {
	s, _ := ss.load()
	return s == pondering
}

func (ss *searchState) isActive() bool {
	s, _ := ss.load()
	return s != waiting
}

func (ss *searchState) generation() uint32 {
	_, gen := ss.load()
	return gen
}

// sameGenerationActive reports whether the given generation is still the
// one actively searching or pondering - used by a watchdog to tell whether
// it is still relevant to the search it was armed for.
func (ss *searchState) sameGenerationActive(generation uint32) bool {
	s, gen := ss.load()
	return gen == generation && (s == searching || s == pondering)
}
