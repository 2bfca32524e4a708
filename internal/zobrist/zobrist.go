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

// Package zobrist holds the random tables used to incrementally hash a
// position and, separately, its pawn structure. Both position.Position and
// the pawn hash cache build their keys by XOR-ing into these tables as
// pieces move, rather than rehashing the whole board on every ply.
package zobrist

import (
	. "github.com/kestrelchess/kestrel/internal/types"
)

// Key is the 64-bit Zobrist hash type shared by the transposition table,
// the position and the pawn cache.
type Key uint64

var (
	Pieces        [PieceLength][SqLength]Key
	CastlingKeys  [CastlingRightsLength]Key
	EnPassantFile [FileLength + 1]Key // +1 slot for "no en passant file"
	SideToMove    Key
)

// random is the xorshift64star PRNG used by Stockfish to build its Zobrist
// tables deterministically across runs.
type random struct {
	s uint64
}

func newRandom(seed uint64) random {
	if seed == 0 {
		panic("zobrist: seed must not be 0")
	}
	return random{seed}
}

func (r *random) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * uint64(2685821657736338717)
}

func init() {
	rnd := newRandom(1070372)
	for pc := WhitePawn; pc <= BlackKing; pc++ {
		for sq := SqA1; sq < SqNone; sq++ {
			Pieces[pc][sq] = Key(rnd.rand64())
		}
	}
	for cr := CastlingRights(0); cr < CastlingRightsLength; cr++ {
		CastlingKeys[cr] = Key(rnd.rand64())
	}
	for f := FileA; f < FileLength; f++ {
		EnPassantFile[f] = Key(rnd.rand64())
	}
	SideToMove = Key(rnd.rand64())
}
