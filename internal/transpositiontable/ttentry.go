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

package transpositiontable

import (
	. "github.com/kestrelchess/kestrel/internal/types"
	"github.com/kestrelchess/kestrel/internal/zobrist"
)

// Key identifies a position by its full Zobrist hash, the lookup key for a
// transposition table entry.
type Key = zobrist.Key

// TtEntry struct is the data structure for each entry in the transposition
// table. Only the high 32 bits of the Zobrist key are kept - the low bits
// are implied by the table slot the entry lives in - and a generation byte
// replaces the incoming key's low bits as the tiebreaker for replacement.
type TtEntry struct {
	// struct is partially bit encoded to keep it compact
	key        uint32 // high 32 bits of the 64-bit Zobrist key
	move       Move   // full 32-bit move (piece/capturedPiece included, needed to replay it without the board)
	eval       int16  // 16-bit evaluation value by static evaluator
	value      int16  // 16-bit value during search
	vmeta      uint16 // 16-bit depth 7-bit, vtype 2-bit, unused rest
	generation uint8  // generation this entry was last written in
	// depth 7-bit 0-127
	// vtype 2-bit None, Exact, Alpha (upper), Beta (lower)
}

const (
	// TtEntrySize is the size in bytes for each TtEntry
	TtEntrySize = 16

	vtypeMask  = uint16(0b0000_0000_0000_0011)
	vtypeShift = uint16(0)
	depthMask  = uint16(0b0000_0001_1111_1100)
	depthShift = uint16(2)
)

// Key returns the stored high 32 bits of the Zobrist key, zero extended.
// It identifies the position only together with the table slot the entry
// was read from - it is not the full 64-bit key.
func (e *TtEntry) Key() Key {
	return Key(e.key)
}

// Generation returns the generation this entry was last written in.
func (e *TtEntry) Generation() uint8 {
	return e.generation
}

func (e *TtEntry) Move() Move {
	return e.move
}

func (e *TtEntry) Value() Value {
	return Value(e.value)
}

func (e *TtEntry) Eval() Value {
	return Value(e.eval)
}

func (e *TtEntry) Depth() int8 {
	return int8((e.vmeta & depthMask) >> depthShift)
}

func (e *TtEntry) Vtype() ValueType {
	return ValueType((e.vmeta & vtypeMask) >> vtypeShift)
}

// isEmpty reports whether this slot has never been written to.
func (e *TtEntry) isEmpty() bool {
	return e.key == 0 && e.vmeta == 0 && e.generation == 0
}

// store overwrites the entry completely, stamping it with the given
// generation (see the replacement policy in tt.go's Put).
func (e *TtEntry) store(keyHigh uint32, move Move, depth int8, valueType ValueType, value Value, eval Value, generation uint8) {
	e.key = keyHigh
	e.move = move
	e.eval = int16(eval)
	e.value = int16(value)
	e.vmeta = uint16(depth)<<depthShift | uint16(valueType)<<vtypeShift
	e.generation = generation
}
