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

// Package transpositiontable implements a transposition table (cache)
// data structure and functionality for a chess engine search.
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
package transpositiontable

import (
	"math"
	"time"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/kestrelchess/kestrel/internal/enginelog"
	. "github.com/kestrelchess/kestrel/internal/types"
	"github.com/kestrelchess/kestrel/internal/engineutil"
)

var out = message.NewPrinter(language.German)

const (
	// MaxSizeInMB maximal memory usage of tt
	MaxSizeInMB = 65_536
)

// TtTable is the actual transposition table
// object holding data and state.
// Create with NewTtTable()
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	generation         uint8
	Stats              TtStats
}

// TtStats holds statistical data on tt usage
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTtTable creates a new TtTable with the given number of megabytes
// as a maximum of memory usage. actual size will be determined
// by the number of elements fitting into this size which need
// to be a power of 2 for efficient hashing/addressing via bit
// masks.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := TtTable{
		log:                myLogging.GetLog(),
		data:               nil,
		sizeInByte:         0,
		hashKeyMask:        0,
		maxNumberOfEntries: 0,
		numberOfEntries:    0,
	}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize resizes the tt table. All entries will be cleared.
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	// calculate the maximum power of 2 of entries fitting into the given size in MB
	tt.sizeInByte = uint64(sizeInMByte) * MB
	tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/TtEntrySize))))
	tt.hashKeyMask = tt.maxNumberOfEntries - 1 // --> 0x0001111....111

	// if TT is resized to 0 we cant have any entries.
	if tt.sizeInByte == 0 {
		tt.maxNumberOfEntries = 0
	}

	// calculate the real memory usage
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize

	// Create new slice/array - garbage collections takes care of cleanup
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)

	tt.log.Info(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%dByte) (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), sizeInMByte))
	tt.log.Debug(engineutil.MemStat())
}

// GetEntry returns a pointer to the corresponding tt entry.
// Given key is checked against the entry's stored high 32 bits. When
// equal pointer to entry will be returned. Otherwise
// nil will be returned.
// Does not change statistics.
func (tt *TtTable) GetEntry(key Key) *TtEntry {
	e := &tt.data[tt.hash(key)]
	if !e.isEmpty() && e.key == keyHigh(key) {
		return e
	}
	return nil
}

// Probe returns a pointer to the corresponding tt entry
// or nil if it was not found.
func (tt *TtTable) Probe(key Key) *TtEntry {
	tt.Stats.numberOfProbes++
	e := &tt.data[tt.hash(key)]
	if !e.isEmpty() && e.key == keyHigh(key) {
		tt.Stats.numberOfHits++
		return e
	}
	tt.Stats.numberOfMisses++
	return nil
}

// Put an TtEntry into the tt.
//
// Replacement follows the generation-weighted policy: a same-key entry is
// always refreshed, an empty slot is always taken, and otherwise the
// incumbent is kept unless the new entry's depth is at least as good as
// the incumbent's depth discounted by how many generations old it is
// (entry.Depth() - (currentGeneration - entry.Generation())). This lets a
// shallow but current entry survive a single collision against a deep but
// stale one, and guarantees a stale entry of any depth eventually yields.
func (tt *TtTable) Put(key Key, move Move, depth int8, value Value, valueType ValueType, eval Value) {

	// if the size of the TT = 0 we
	// do not store anything
	if tt.maxNumberOfEntries == 0 {
		return
	}

	// read the entries for this hash
	entryDataPtr := &tt.data[tt.hash(key)]
	newKey := keyHigh(key)

	tt.Stats.numberOfPuts++

	// empty slot
	if entryDataPtr.isEmpty() {
		tt.numberOfEntries++
		entryDataPtr.store(newKey, move, depth, valueType, value, eval, tt.generation)
		return
	}

	// same position -> always update, preserving fields on a partial store
	if entryDataPtr.key == newKey {
		tt.Stats.numberOfUpdates++
		if move == NoMove { // preserve an existing move if we store with NoMove
			move = entryDataPtr.move
		}
		if eval == ValueNA { // preserve
			eval = entryDataPtr.Eval()
		}
		if value == ValueNA { // preserve
			value = entryDataPtr.Value()
			depth = entryDataPtr.Depth()
			valueType = entryDataPtr.Vtype()
		}
		entryDataPtr.store(newKey, move, depth, valueType, value, eval, tt.generation)
		return
	}

	// same slot, different position
	tt.Stats.numberOfCollisions++
	age := tt.generation - entryDataPtr.generation
	incumbentWorth := int(entryDataPtr.Depth()) - int(age)
	if int(depth) >= incumbentWorth {
		tt.Stats.numberOfOverwrites++
		entryDataPtr.store(newKey, move, depth, valueType, value, eval, tt.generation)
	}
}

// Clear clears all entries of the tt
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
func (tt *TtTable) Clear() {
	// Create new slice/array - garbage collections takes care of cleanup
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.generation = 0
	tt.Stats = TtStats{}
}

// Hashfull returns how full the transposition table is in permill as per UCI
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

// String returns a string representation of this TtTable instance
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d%%) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of non empty entries in the tt
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

// NewGeneration starts a new generation.
// Called once per "go" command so Put's replacement policy can tell a
// stale entry from the previous search from a fresh one in this search.
// Wraps at 256 generations - an entry exactly 256 generations old is
// indistinguishable from a brand new one and is weighted by its full depth
// again.
func (tt *TtTable) NewGeneration() {
	startTime := time.Now()
	tt.generation++
	elapsed := time.Since(startTime)
	tt.log.Debug(out.Sprintf("TT generation advanced to %d in %d ms\n", tt.generation, elapsed.Milliseconds()))
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

// hash generates the internal hash key for the data array
func (tt *TtTable) hash(key Key) uint64 {
	return uint64(key) & tt.hashKeyMask
}

// keyHigh extracts the high 32 bits of the Zobrist key stored in an entry.
// The low bits are implied by the table slot (see hash), so only the high
// bits need to be kept to disambiguate a collision.
func keyHigh(key Key) uint32 {
	return uint32(uint64(key) >> 32)
}


