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

import (
	"fmt"
	"strings"
)

// MoveType distinguishes the four kinds of moves the engine needs to
// special-case on do/undo: a plain move, a promotion, an en passant
// capture and a castle.
type MoveType uint8

const (
	Normal MoveType = iota
	Promotion
	EnPassant
	Castling
	MoveTypeLength
)

// IsValid reports whether t is one of the four defined move types.
func (t MoveType) IsValid() bool {
	return t < MoveTypeLength
}

func (t MoveType) String() string {
	switch t {
	case Normal:
		return "n"
	case Promotion:
		return "p"
	case EnPassant:
		return "e"
	case Castling:
		return "c"
	default:
		return "?"
	}
}

// Move packs everything the search and move generator need to know about a
// move into a single 32-bit value, so ordering and do/undo never have to
// re-probe the board for the piece or the captured piece:
//
//	bits  0- 5  to square
//	bits  6-11  from square
//	bits 12-13  move type (Normal, Promotion, EnPassant, Castling)
//	bits 14-16  promotion piece type (meaningful only if type == Promotion)
//	bits 17-20  moved piece (color + piece type)
//	bits 21-24  captured piece (color + piece type), PieceNone if quiet
//	bits 25-31  unused
type Move uint32

const (
	NoMove   Move = 0
	NullMove Move = 1 << 31 // distinguished from NoMove, never a valid board move

	toShift       uint = 0
	fromShift     uint = 6
	typeShift     uint = 12
	promTypeShift uint = 14
	pieceShift    uint = 17
	capturedShift uint = 21

	squareBits Move = 0x3F
	typeBits   Move = 0x3
	pt3Bits    Move = 0x7
	piece4Bits Move = 0xF
)

// NewMove builds a quiet, non-promotion Move.
func NewMove(from, to Square, piece Piece) Move {
	return Move(to)<<toShift | Move(from)<<fromShift | Move(piece)<<pieceShift
}

// NewCaptureMove builds a capturing Move.
func NewCaptureMove(from, to Square, piece, captured Piece) Move {
	return NewMove(from, to, piece) | Move(captured)<<capturedShift
}

// NewPromotionMove builds a promotion Move, capturing optionally.
func NewPromotionMove(from, to Square, piece, captured Piece, promType PieceType) Move {
	return NewMove(from, to, piece) |
		Move(captured)<<capturedShift |
		Move(Promotion)<<typeShift |
		Move(promType)<<promTypeShift
}

// NewEnPassantMove builds an en passant capture.
func NewEnPassantMove(from, to Square, piece, captured Piece) Move {
	return NewMove(from, to, piece) | Move(captured)<<capturedShift | Move(EnPassant)<<typeShift
}

// NewCastlingMove builds a castle move; to is the king's destination square.
func NewCastlingMove(from, to Square, piece Piece) Move {
	return NewMove(from, to, piece) | Move(Castling)<<typeShift
}

// To returns the destination square.
func (m Move) To() Square { return Square((m >> toShift) & squareBits) }

// From returns the origin square.
func (m Move) From() Square { return Square((m >> fromShift) & squareBits) }

// MoveType returns the move's special-case category.
func (m Move) MoveType() MoveType { return MoveType((m >> typeShift) & typeBits) }

// PromotionType returns the piece type promoted to; only meaningful if
// MoveType() == Promotion.
func (m Move) PromotionType() PieceType { return PieceType((m >> promTypeShift) & pt3Bits) }

// Piece returns the piece making the move.
func (m Move) Piece() Piece { return Piece((m >> pieceShift) & piece4Bits) }

// CapturedPiece returns the captured piece, or PieceNone for a quiet move.
func (m Move) CapturedPiece() Piece { return Piece((m >> capturedShift) & piece4Bits) }

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m.CapturedPiece() != PieceNone }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.MoveType() == Promotion }

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.MoveType() == EnPassant }

// IsCastle reports whether the move is a castle.
func (m Move) IsCastle() bool { return m.MoveType() == Castling }

// IsValid reports whether m has well-formed squares, type and promotion.
func (m Move) IsValid() bool {
	return m != NoMove && m != NullMove &&
		m.From().IsValid() && m.To().IsValid() && m.From() != m.To() &&
		m.MoveType().IsValid() &&
		(m.MoveType() != Promotion || (m.PromotionType() >= Knight && m.PromotionType() <= Queen))
}

// StringUci returns the UCI long algebraic notation for the move (e.g. e2e4, e7e8q).
func (m Move) StringUci() string {
	if m == NoMove || m == NullMove {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if m.MoveType() == Promotion {
		sb.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return sb.String()
}

func (m Move) String() string {
	if m == NoMove {
		return "Move{NoMove}"
	}
	if m == NullMove {
		return "Move{NullMove}"
	}
	return fmt.Sprintf("Move{%s type:%s piece:%s captured:%s}",
		m.StringUci(), m.MoveType(), m.Piece(), m.CapturedPiece())
}
