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

import "fmt"

// Piece packs a Color (bit 3) and a PieceType (bits 0-2) into one byte.
type Piece uint8

//noinspection GoUnusedConst
const (
	PieceNone Piece = 0

	WhitePawn Piece = Piece(Pawn) + iota - 1 // 1, then one up per line
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing

	BlackPawn Piece = (Piece(Pawn) | 0b1000) + iota - 7 // 9, then one up per line
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing

	PieceLength = 16
)

// MakePiece combines a color and piece type into a Piece.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == PtNone {
		return PieceNone
	}
	return Piece(uint8(pt) | uint8(c)<<3)
}

// TypeOf returns the piece type, discarding color.
func (p Piece) TypeOf() PieceType {
	return PieceType(p & 0b0111)
}

// ColorOf returns the color of the piece. Only valid for non-empty pieces.
func (p Piece) ColorOf() Color {
	return Color(p >> 3)
}

// IsValid reports whether p is a legal, non-empty piece.
func (p Piece) IsValid() bool {
	return p.TypeOf().IsValid()
}

// ValueOf returns the static material value of the piece.
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

// PieceFromChar parses a FEN piece letter ("P","n",...) into a Piece.
func PieceFromChar(s string) Piece {
	if len(s) != 1 {
		return PieceNone
	}
	for pc := WhitePawn; pc < PieceLength; pc++ {
		if pc.Char() == s {
			return pc
		}
	}
	return PieceNone
}

var pieceToChar = map[Piece]string{
	PieceNone:   "-",
	WhitePawn:   "P", WhiteKnight: "N", WhiteBishop: "B", WhiteRook: "R", WhiteQueen: "Q", WhiteKing: "K",
	BlackPawn: "p", BlackKnight: "n", BlackBishop: "b", BlackRook: "r", BlackQueen: "q", BlackKing: "k",
}

// Char returns the FEN letter for the piece (uppercase for White).
func (p Piece) Char() string {
	if c, ok := pieceToChar[p]; ok {
		return c
	}
	return "-"
}

var pieceToUniChar = map[Piece]string{
	WhitePawn: "♙", WhiteKnight: "♘", WhiteBishop: "♗", WhiteRook: "♖", WhiteQueen: "♕", WhiteKing: "♔",
	BlackPawn: "♟", BlackKnight: "♞", BlackBishop: "♝", BlackRook: "♜", BlackQueen: "♛", BlackKing: "♚",
}

// UniChar returns a unicode chess glyph for the piece, used by Position.String().
func (p Piece) UniChar() string {
	if c, ok := pieceToUniChar[p]; ok {
		return c
	}
	return "."
}

// String returns "<Color> <PieceType>" or "Empty".
func (p Piece) String() string {
	if p == PieceNone {
		return "Empty"
	}
	if !p.IsValid() {
		panic(fmt.Sprintf("invalid piece %d", p))
	}
	return p.ColorOf().String() + " " + p.TypeOf().String()
}
