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

package types

// PieceType enumerates the six piece types plus two sentinels: PtNone for
// an empty square and AllPieces for queries that want every occupied square
// regardless of type (used by Position.PiecesBb(color, AllPieces)).
type PieceType uint8

const (
	PtNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	AllPieces
	PtLength = AllPieces
)

// IsValid reports whether pt is one of the six real piece types.
func (pt PieceType) IsValid() bool {
	return pt >= Pawn && pt <= King
}

// IsSliding reports whether pt attacks along rays (bishop, rook, queen).
func (pt PieceType) IsSliding() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

var gamePhaseValue = [PtLength + 1]int{0, 0, 1, 1, 2, 4, 0, 0}

// GamePhaseValue returns the weight of one piece of this type when
// estimating how far the game has progressed from opening to endgame.
func (pt PieceType) GamePhaseValue() int {
	return gamePhaseValue[pt]
}

var pieceTypeValue = [PtLength + 1]Value{0, 100, 320, 330, 500, 900, 2000, 0}

// ValueOf returns the static material value of the piece type.
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

var pieceTypeToString = [PtLength + 1]string{"NoPiece", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "AllPieces"}

// String returns a human readable label for the piece type.
func (pt PieceType) String() string {
	return pieceTypeToString[pt]
}

const pieceTypeToChar = "-PNBRQK-"

// Char returns a single uppercase letter for the piece type, "-" for none.
func (pt PieceType) Char() string {
	return string(pieceTypeToChar[pt])
}
