/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package transpositiontable

import (
	"math/rand"
	"os"
	"path"
	"runtime"
	"testing"
	"time"
	"unsafe"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/kestrelchess/kestrel/internal/config"
	"github.com/kestrelchess/kestrel/internal/enginelog"
	"github.com/kestrelchess/kestrel/internal/position"
	. "github.com/kestrelchess/kestrel/internal/types"
)

var logTest *logging2.Logger

// make tests run in the projects root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	logTest = enginelog.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

func TestEntrySize(t *testing.T) {
	e := TtEntry{}
	assert.EqualValues(t, TtEntrySize, unsafe.Sizeof(e))
	logTest.Debugf("Size of Entry %d bytes", unsafe.Sizeof(e))
}

func TestNew(t *testing.T) {

	tt := NewTtTable(2)
	assert.Equal(t, uint64(131_072), tt.maxNumberOfEntries)
	assert.Equal(t, 131_072, cap(tt.data))
	logTest.Debug(tt.String())

	tt = NewTtTable(64)
	assert.Equal(t, uint64(4_194_304), tt.maxNumberOfEntries)
	assert.Equal(t, 4_194_304, cap(tt.data))

	tt = NewTtTable(100)
	assert.Equal(t, uint64(4_194_304), tt.maxNumberOfEntries)
	assert.Equal(t, 4_194_304, cap(tt.data))
}

func TestGetAndProbe(t *testing.T) {
	tt := NewTtTable(64)

	pos := position.NewPosition()
	move := NewMove(SqE2, SqE4, MakePiece(White, Pawn))
	tt.Put(pos.ZobristKey(), move, 5, Value(0), Vnone, ValueNA)

	// test to get unaltered entry
	e := tt.GetEntry(pos.ZobristKey())
	assert.Equal(t, Key(keyHigh(pos.ZobristKey())), e.Key())
	assert.Equal(t, move, e.Move())
	assert.EqualValues(t, 5, e.Depth())

	e = tt.Probe(pos.ZobristKey())
	assert.Equal(t, move, e.Move())

	// not in tt
	pos.DoMove(move)
	e = tt.Probe(pos.ZobristKey())
	assert.Nil(t, e)
}

func TestClear(t *testing.T) {
	tt := NewTtTable(1)

	pos := position.NewPosition()
	move := NewMove(SqE2, SqE4, MakePiece(White, Pawn))
	tt.Put(pos.ZobristKey(), move, 5, Value(0), Vnone, ValueNA)

	e := tt.Probe(pos.ZobristKey())
	assert.Equal(t, move, e.Move())
	assert.EqualValues(t, 1, tt.numberOfEntries)

	tt.Clear()

	// entry is gone
	e = tt.Probe(pos.ZobristKey())
	assert.Nil(t, e)
	assert.EqualValues(t, 0, tt.numberOfEntries)
}

func TestGeneration(t *testing.T) {
	tt := NewTtTable(4)
	move := NewMove(SqE2, SqE4, MakePiece(White, Pawn))

	assert.EqualValues(t, 0, tt.generation)
	tt.NewGeneration()
	assert.EqualValues(t, 1, tt.generation)

	// a deep entry from an older generation still loses to a shallower one
	// once it has aged past its depth advantage
	slotKey := Key(111)
	collisionKey := slotKey | Key(1)<<40

	tt.Put(slotKey, move, 10, Value(1), EXACT, ValueNA)
	e := tt.Probe(slotKey)
	assert.EqualValues(t, 1, e.Generation())

	tt.NewGeneration() // generation 2
	tt.NewGeneration() // generation 3
	tt.NewGeneration() // generation 4 - slotKey's entry is now 3 generations stale

	// depth 10 incumbent discounted by age 3 has worth 7: a depth-8 newcomer
	// still clears the bar and replaces it
	tt.Put(collisionKey, move, 8, Value(2), BETA, ValueNA)
	e = tt.Probe(collisionKey)
	if assert.NotNil(t, e) {
		assert.EqualValues(t, 8, e.Depth())
		assert.EqualValues(t, 4, e.Generation())
	}
}

func TestPut(t *testing.T) {
	tt := NewTtTable(4)
	move := NewMove(SqE2, SqE4, MakePiece(White, Pawn))

	// three keys sharing the same low bits (and thus the same table slot)
	// but distinct high 32 bits, so the stored key fragment actually tells
	// them apart - unlike the low bits the hash is computed from, real
	// Zobrist keys never share high bits by construction.
	const slot = Key(111)
	key1 := slot | Key(1)<<40
	key2 := slot | Key(2)<<40
	key3 := slot | Key(3)<<40

	// test of put and probe
	tt.Put(key1, move, 4, Value(111), ALPHA, ValueNA)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.numberOfPuts)
	e := tt.Probe(key1)
	assert.EqualValues(t, keyHigh(key1), e.Key())
	assert.EqualValues(t, move, e.Move())
	assert.EqualValues(t, 111, e.Value())
	assert.EqualValues(t, 4, e.Depth())
	assert.EqualValues(t, ALPHA, e.Vtype())

	// test of put update and probe
	tt.Put(key1, move, 5, Value(112), BETA, Value(7))
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 2, tt.Stats.numberOfPuts)
	assert.EqualValues(t, 1, tt.Stats.numberOfUpdates)
	assert.EqualValues(t, 0, tt.Stats.numberOfCollisions)
	e = tt.Probe(key1)
	assert.EqualValues(t, keyHigh(key1), e.Key())
	assert.EqualValues(t, move, e.Move())
	assert.EqualValues(t, 112, e.Value())
	assert.EqualValues(t, 5, e.Depth())
	assert.EqualValues(t, BETA, e.Vtype())

	// test of collision - same generation, deeper newcomer: the new entry's
	// depth (6) clears the incumbent's worth (5 - 0), so it replaces it
	tt.Put(key2, move, 6, Value(113), EXACT, ValueNA)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 3, tt.Stats.numberOfPuts)
	assert.EqualValues(t, 1, tt.Stats.numberOfUpdates)
	assert.EqualValues(t, 1, tt.Stats.numberOfCollisions)
	assert.EqualValues(t, 1, tt.Stats.numberOfOverwrites)
	e = tt.Probe(key2)
	assert.EqualValues(t, keyHigh(key2), e.Key())
	assert.EqualValues(t, move, e.Move())
	assert.EqualValues(t, 113, e.Value())
	assert.EqualValues(t, 6, e.Depth())
	assert.EqualValues(t, EXACT, e.Vtype())

	// test of collision lower depth - incumbent worth (6 - 0) beats the
	// new entry's depth (4), so the incumbent is kept
	tt.Put(key3, move, 4, Value(114), BETA, ValueNA)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 4, tt.Stats.numberOfPuts)
	assert.EqualValues(t, 1, tt.Stats.numberOfUpdates)
	assert.EqualValues(t, 2, tt.Stats.numberOfCollisions)
	assert.EqualValues(t, 1, tt.Stats.numberOfOverwrites)
	e = tt.Probe(key3)
	assert.Nil(t, e)
	e = tt.Probe(key2)
	assert.EqualValues(t, keyHigh(key2), e.Key())
	assert.EqualValues(t, move, e.Move())
	assert.EqualValues(t, 113, e.Value())
	assert.EqualValues(t, 6, e.Depth())
	assert.EqualValues(t, EXACT, e.Vtype())
}

func TestTimingTTe(t *testing.T) {

	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	tt := NewTtTable(1_024)
	move := NewMove(SqE2, SqE4, MakePiece(White, Pawn))

	const rounds = 5
	const iterations uint64 = 50_000_000

	for r := 1; r <= rounds; r++ {
		out.Printf("Round %d\n", r)
		key := Key(rand.Uint64())
		depth := int8(rand.Int31n(128))
		value := Value(rand.Int31n(int32(ValueMax)))
		valueType := ValueType(rand.Int31n(4))
		start := time.Now()
		for i := uint64(0); i < iterations; i++ {
			tt.Put(key+Key(i), move, depth, value, valueType, ValueNA)
		}
		for i := uint64(0); i < iterations; i++ {
			k := Key(key + Key(2*i))
			_ = tt.Probe(k)
		}
		elapsed := time.Since(start)
		out.Println(tt.String())
		out.Printf("TimingTT took %d ns for %d iterations (1 put 1 probe)\n", elapsed.Nanoseconds(), iterations)
		out.Printf("1 put/probes in %d ns: %d tts\n",
			elapsed.Nanoseconds()/int64(iterations),
			(iterations*uint64(time.Second.Nanoseconds()))/uint64(elapsed.Nanoseconds()))

	}
}
