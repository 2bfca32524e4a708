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

// Package position represents a chess position: an 8x8 piece board kept in
// sync with per-color/per-piece-type bitboards, incremental material and
// piece-square totals, and an incrementally maintained Zobrist key built from
// the shared tables in internal/zobrist. DoMove/UndoMove mutate a single
// instance in place using a fixed-size history array rather than allocating
// per ply.
package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/kestrelchess/kestrel/internal/assert"
	myLogging "github.com/kestrelchess/kestrel/internal/enginelog"
	. "github.com/kestrelchess/kestrel/internal/types"
	"github.com/kestrelchess/kestrel/internal/zobrist"
)

var log *logging.Logger

// StartFen is the FEN of the standard chess starting position.
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Key is the Zobrist hash type used by Position; an alias of zobrist.Key so
// callers never need to import internal/zobrist themselves.
type Key = zobrist.Key

// Position represents a chess position: board, castling/en-passant/half-move
// state, material and piece-square totals, and a history stack for undo and
// repetition detection. Create one with NewPosition or NewPositionFen.
type Position struct {
	zobristKey Key
	pawnKey    Key

	board           [SqLength]Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	nextPlayer      Color

	kingSquare         [ColorLength]Square
	nextHalfMoveNumber int
	piecesBb           [ColorLength][PtLength + 1]Bitboard
	occupiedBb         [ColorLength]Bitboard

	historyCounter int
	history        [maxHistory]historyState

	material        [ColorLength]Value
	materialNonPawn [ColorLength]Value
	psqMidValue     [ColorLength]Value
	psqEndValue     [ColorLength]Value
	gamePhase       int

	// hasCheckFlag caches HasCheck() for the current position; reset to
	// flagTBD on every DoMove/UndoMove.
	hasCheckFlag int
}

type historyState struct {
	zobristKey      Key
	pawnKey         Key
	move            Move
	fromPiece       Piece
	capturedPiece   Piece
	castlingRights  CastlingRights
	enpassantSquare Square
	halfMoveClock   int
	hasCheckFlag    int
}

const maxHistory int = MaxMoves

const (
	flagTBD   int = 0
	flagFalse int = 1
	flagTrue  int = 2
)

// //////////////////////////////////////////////////////
// Public
// //////////////////////////////////////////////////////

// NewPosition creates the standard starting position, or the position for
// the given FEN if one is supplied (additional args are ignored).
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := NewPositionFen(StartFen)
		return p
	}
	p, _ := NewPositionFen(fen[0])
	return p
}

// NewPositionFen creates a position from the given FEN string, or returns an
// error (and a nil position) if the FEN is malformed.
func NewPositionFen(fen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog()
	}
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		log.Errorf("fen for position setup not valid and position can't be created: %s", e)
		return nil, e
	}
	return p, nil
}

// DoMove commits a move to the position. The move is assumed to be at least
// pseudo-legal (generated by a move generator or otherwise pre-validated);
// DoMove does not check legality.
func (p *Position) DoMove(m Move) {
	fromSq := m.From()
	fromPc := p.board[fromSq]
	myColor := fromPc.ColorOf()
	toSq := m.To()
	targetPc := p.board[toSq]

	if assert.DEBUG {
		assert.Assert(m.IsValid(), "Position DoMove: invalid move %s", m.String())
		assert.Assert(fromPc != PieceNone, "Position DoMove: no piece on %s for move %s", fromSq.String(), m.StringUci())
		assert.Assert(myColor == p.nextPlayer, "Position DoMove: piece to move does not belong to next player %s", fromPc.String())
		assert.Assert(targetPc.TypeOf() != King, "Position DoMove: king cannot be captured yet target is %s", targetPc.String())
	}

	tmpHistoryCounter := p.historyCounter
	p.history[tmpHistoryCounter].zobristKey = p.zobristKey
	p.history[tmpHistoryCounter].pawnKey = p.pawnKey
	p.history[tmpHistoryCounter].move = m
	p.history[tmpHistoryCounter].fromPiece = fromPc
	p.history[tmpHistoryCounter].capturedPiece = targetPc
	p.history[tmpHistoryCounter].castlingRights = p.castlingRights
	p.history[tmpHistoryCounter].enpassantSquare = p.enPassantSquare
	p.history[tmpHistoryCounter].halfMoveClock = p.halfMoveClock
	p.history[tmpHistoryCounter].hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	switch m.MoveType() {
	case Normal:
		p.doNormalMove(fromSq, toSq, targetPc, fromPc, myColor)
	case Promotion:
		p.doPromotionMove(m, fromPc, myColor, toSq, targetPc, fromSq)
	case EnPassant:
		p.doEnPassantMove(toSq, myColor, fromPc, fromSq)
	case Castling:
		p.doCastlingMove(fromPc, myColor, toSq, fromSq)
	}

	p.hasCheckFlag = flagTBD
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobrist.SideToMove
}

// UndoMove reverts the last move made on the position via DoMove.
func (p *Position) UndoMove() {
	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()

	tmpHistoryCounter := p.historyCounter
	move := p.history[tmpHistoryCounter].move

	switch move.MoveType() {
	case Normal:
		p.movePiece(move.To(), move.From())
		if p.history[tmpHistoryCounter].capturedPiece != PieceNone {
			p.putPiece(p.history[tmpHistoryCounter].capturedPiece, move.To())
		}
	case Promotion:
		p.removePiece(move.To())
		p.putPiece(MakePiece(p.nextPlayer, Pawn), move.From())
		if p.history[tmpHistoryCounter].capturedPiece != PieceNone {
			p.putPiece(p.history[tmpHistoryCounter].capturedPiece, move.To())
		}
	case EnPassant:
		// Zobrist key is restored from history below, not recomputed here.
		p.movePiece(move.To(), move.From())
		p.putPiece(MakePiece(p.nextPlayer.Flip(), Pawn), move.To().To(p.nextPlayer.Flip().MoveDirection()))
	case Castling:
		p.movePiece(move.To(), move.From()) // King
		switch move.To() {
		case SqG1:
			p.movePiece(SqF1, SqH1)
		case SqC1:
			p.movePiece(SqD1, SqA1)
		case SqG8:
			p.movePiece(SqF8, SqH8)
		case SqC8:
			p.movePiece(SqD8, SqA8)
		default:
			panic("position: invalid castle move")
		}
	}

	p.castlingRights = p.history[tmpHistoryCounter].castlingRights
	p.enPassantSquare = p.history[tmpHistoryCounter].enpassantSquare
	p.halfMoveClock = p.history[tmpHistoryCounter].halfMoveClock
	p.hasCheckFlag = p.history[tmpHistoryCounter].hasCheckFlag
	p.zobristKey = p.history[tmpHistoryCounter].zobristKey
	p.pawnKey = p.history[tmpHistoryCounter].pawnKey
}

// DoNullMove switches the side to move without making a move, for null-move
// pruning in search. The position before the null move is pushed to history
// exactly like DoMove so UndoNullMove can restore it.
func (p *Position) DoNullMove() {
	tmpHistoryCounter := p.historyCounter
	p.history[tmpHistoryCounter].zobristKey = p.zobristKey
	p.history[tmpHistoryCounter].move = NoMove
	p.history[tmpHistoryCounter].fromPiece = PieceNone
	p.history[tmpHistoryCounter].capturedPiece = PieceNone
	p.history[tmpHistoryCounter].castlingRights = p.castlingRights
	p.history[tmpHistoryCounter].enpassantSquare = p.enPassantSquare
	p.history[tmpHistoryCounter].halfMoveClock = p.halfMoveClock
	p.history[tmpHistoryCounter].hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	p.hasCheckFlag = flagTBD
	p.clearEnPassant()
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobrist.SideToMove
}

// UndoNullMove reverts a DoNullMove.
func (p *Position) UndoNullMove() {
	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()

	tmpHistoryCounter := p.historyCounter
	p.castlingRights = p.history[tmpHistoryCounter].castlingRights
	p.enPassantSquare = p.history[tmpHistoryCounter].enpassantSquare
	p.halfMoveClock = p.history[tmpHistoryCounter].halfMoveClock
	p.hasCheckFlag = p.history[tmpHistoryCounter].hasCheckFlag
	p.zobristKey = p.history[tmpHistoryCounter].zobristKey
}

// IsAttacked reports whether sq is attacked by a piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	if (GetPawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0) ||
		(GetPseudoAttacks(Knight, sq)&p.piecesBb[by][Knight] != 0) ||
		(GetPseudoAttacks(King, sq)&p.piecesBb[by][King] != 0) {
		return true
	}

	occ := p.OccupiedAll()
	if GetAttacksBb(Bishop, sq, occ)&p.piecesBb[by][Bishop] > 0 ||
		GetAttacksBb(Rook, sq, occ)&p.piecesBb[by][Rook] > 0 ||
		GetAttacksBb(Queen, sq, occ)&p.piecesBb[by][Queen] > 0 {
		return true
	}

	if p.enPassantSquare != SqNone {
		switch by {
		case White:
			if p.board[p.enPassantSquare.To(South)] == BlackPawn && p.enPassantSquare.To(South) == sq {
				if p.board[sq.To(West)] == WhitePawn {
					return true
				}
				return p.board[sq.To(East)] == WhitePawn
			}
		case Black:
			if p.board[p.enPassantSquare.To(North)] == WhitePawn && p.enPassantSquare.To(North) == sq {
				if p.board[sq.To(West)] == BlackPawn {
					return true
				}
				return p.board[sq.To(East)] == BlackPawn
			}
		}
	}
	return false
}

// IsLegalMove reports whether move is legal on the current position: the
// king must not be left in check, and a castling move must not cross or
// start on an attacked square.
func (p *Position) IsLegalMove(move Move) bool {
	if move.MoveType() == Castling {
		if p.IsAttacked(move.From(), p.nextPlayer.Flip()) {
			return false
		}
		switch move.To() {
		case SqG1:
			if p.IsAttacked(SqF1, p.nextPlayer.Flip()) {
				return false
			}
		case SqC1:
			if p.IsAttacked(SqD1, p.nextPlayer.Flip()) {
				return false
			}
		case SqG8:
			if p.IsAttacked(SqF8, p.nextPlayer.Flip()) {
				return false
			}
		case SqC8:
			if p.IsAttacked(SqD8, p.nextPlayer.Flip()) {
				return false
			}
		}
	}
	p.DoMove(move)
	legal := !p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer)
	p.UndoMove()
	return legal
}

// WasLegalMove reports whether the last move made was legal, i.e. it did not
// leave the mover's own king in check (and, for castling, did not cross or
// start on an attacked square). Useful after DoMove when the caller wants to
// defer the legality check.
func (p *Position) WasLegalMove() bool {
	if p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer) {
		return false
	}
	if p.historyCounter > 0 {
		move := p.history[p.historyCounter-1].move
		if move.MoveType() == Castling {
			if p.IsAttacked(move.From(), p.nextPlayer) {
				return false
			}
			switch move.To() {
			case SqG1:
				if p.IsAttacked(SqF1, p.nextPlayer) {
					return false
				}
			case SqC1:
				if p.IsAttacked(SqD1, p.nextPlayer) {
					return false
				}
			case SqG8:
				if p.IsAttacked(SqF8, p.nextPlayer) {
					return false
				}
			case SqC8:
				if p.IsAttacked(SqD8, p.nextPlayer) {
					return false
				}
			}
		}
	}
	return true
}

// HasCheck reports whether the next player is in check. The result is
// cached on the position and invalidated on every DoMove/UndoMove, so
// repeated calls for the same position are cheap.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag != flagTBD {
		return p.hasCheckFlag == flagTrue
	}
	check := p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
	if check {
		p.hasCheckFlag = flagTrue
	} else {
		p.hasCheckFlag = flagFalse
	}
	return check
}

// IsCapturingMove reports whether move captures a piece (including en
// passant) on the current position.
func (p *Position) IsCapturingMove(move Move) bool {
	return p.occupiedBb[p.nextPlayer.Flip()].Has(move.To()) || move.MoveType() == EnPassant
}

// CheckRepetitions reports whether the current position has occurred at
// least reps times earlier in the game (passing 2 checks for a threefold
// repetition draw claim).
func (p *Position) CheckRepetitions(reps int) bool {
	counter := 0
	i := p.historyCounter - 2
	lastHalfMove := p.halfMoveClock
	for i >= 0 {
		if p.history[i].halfMoveClock >= lastHalfMove {
			break
		}
		lastHalfMove = p.history[i].halfMoveClock
		if p.zobristKey == p.history[i].zobristKey {
			counter++
		}
		if counter >= reps {
			return true
		}
		i -= 2
	}
	return false
}

// HasInsufficientMaterial reports whether neither side has enough material
// to force a mate (does not exclude a helpmate where the opponent assists).
func (p *Position) HasInsufficientMaterial() bool {
	if p.material[White]+p.material[Black] == 0 {
		return true
	}
	if p.piecesBb[White][Pawn].PopCount() == 0 && p.piecesBb[Black][Pawn].PopCount() == 0 {
		if p.materialNonPawn[White] < 400 && p.materialNonPawn[Black] < 400 {
			return true
		}
		if (p.materialNonPawn[White] == 2*Knight.ValueOf() && p.materialNonPawn[Black] <= Bishop.ValueOf()) ||
			(p.materialNonPawn[Black] == 2*Knight.ValueOf() && p.materialNonPawn[White] <= Bishop.ValueOf()) {
			return true
		}
		if (p.materialNonPawn[White] == 2*Bishop.ValueOf() && p.materialNonPawn[Black] == Bishop.ValueOf()) ||
			(p.materialNonPawn[Black] == 2*Bishop.ValueOf() && p.materialNonPawn[White] == Bishop.ValueOf()) {
			return true
		}
		if p.materialNonPawn[White] == 2*Bishop.ValueOf() || p.materialNonPawn[Black] == 2*Bishop.ValueOf() {
			return false
		}
		if (p.materialNonPawn[White] < 2*Bishop.ValueOf() && p.materialNonPawn[Black] <= Bishop.ValueOf()) ||
			(p.materialNonPawn[White] <= Bishop.ValueOf() && p.materialNonPawn[Black] < 2*Bishop.ValueOf()) {
			return true
		}
	}
	return false
}

// IsDraw reports whether the position is a draw by the 50-move rule,
// threefold repetition, or insufficient material.
func (p *Position) IsDraw() bool {
	return p.halfMoveClock >= 100 || p.CheckRepetitions(2) || p.HasInsufficientMaterial()
}

// GivesCheck reports whether playing move on the current position would
// give check to the opponent.
func (p *Position) GivesCheck(move Move) bool {
	us := p.nextPlayer
	them := us.Flip()
	kingSq := p.kingSquare[them]

	fromSq := move.From()
	toSq := move.To()
	fromPt := p.board[fromSq].TypeOf()
	epTargetSq := SqNone
	moveType := move.MoveType()

	switch moveType {
	case Promotion:
		fromPt = move.PromotionType()
	case Castling:
		fromPt = Rook
		switch toSq {
		case SqG1:
			toSq = SqF1
		case SqC1:
			toSq = SqD1
		case SqG8:
			toSq = SqF8
		case SqC8:
			toSq = SqD8
		}
	case EnPassant:
		epTargetSq = toSq.To(them.MoveDirection())
	}

	boardAfterMove := p.OccupiedAll()
	boardAfterMove.PopSquare(fromSq)
	boardAfterMove.PushSquare(toSq)
	if moveType == EnPassant {
		boardAfterMove.PopSquare(epTargetSq)
	}

	switch fromPt {
	case Pawn:
		if GetPawnAttacks(us, toSq).Has(kingSq) {
			return true
		}
	case King:
		// a king can never give check directly
	default:
		if GetAttacksBb(fromPt, toSq, boardAfterMove).Has(kingSq) {
			return true
		}
	}

	switch {
	case GetAttacksBb(Bishop, kingSq, boardAfterMove)&p.piecesBb[us][Bishop] > 0:
		return true
	case GetAttacksBb(Rook, kingSq, boardAfterMove)&p.piecesBb[us][Rook] > 0:
		return true
	case GetAttacksBb(Queen, kingSq, boardAfterMove)&p.piecesBb[us][Queen] > 0:
		return true
	}
	return false
}

// Attackers returns a bitboard of all pieces of color by attacking sq on the
// current occupation of the board.
func (p *Position) Attackers(sq Square, by Color) Bitboard {
	occ := p.OccupiedAll()
	var attackers Bitboard
	attackers |= GetPawnAttacks(by.Flip(), sq) & p.piecesBb[by][Pawn]
	attackers |= GetPseudoAttacks(Knight, sq) & p.piecesBb[by][Knight]
	attackers |= GetPseudoAttacks(King, sq) & p.piecesBb[by][King]
	attackers |= GetAttacksBb(Bishop, sq, occ) & (p.piecesBb[by][Bishop] | p.piecesBb[by][Queen])
	attackers |= GetAttacksBb(Rook, sq, occ) & (p.piecesBb[by][Rook] | p.piecesBb[by][Queen])
	return attackers
}

// String renders the FEN, a board matrix and the incremental counters
// (game phase, material, piece-square totals) for debugging and logging.
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringFen())
	os.WriteString("\n")
	os.WriteString(p.StringBoard())
	os.WriteString("\n")
	os.WriteString(fmt.Sprintf("Next Player    : %s\n", p.nextPlayer.String()))
	os.WriteString(fmt.Sprintf("Game Phase     : %d\n", p.gamePhase))
	os.WriteString(fmt.Sprintf("Material White : %d\n", p.material[White]))
	os.WriteString(fmt.Sprintf("Material Black : %d\n", p.material[Black]))
	os.WriteString(fmt.Sprintf("Pos value White: %d/%d\n", p.psqMidValue[White], p.psqEndValue[White]))
	os.WriteString(fmt.Sprintf("Pos value Black: %d/%d\n", p.psqMidValue[Black], p.psqEndValue[Black]))
	return os.String()
}

// StringFen returns the FEN of the current position.
func (p *Position) StringFen() string {
	return p.fen()
}

// StringBoard returns an ASCII board matrix of the current position.
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(p.board[SquareOf(f, Rank8-r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// //////////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////////

func (p *Position) doNormalMove(fromSq Square, toSq Square, targetPc Piece, fromPc Piece, myColor Color) {
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
		}
	}
	p.clearEnPassant()
	if targetPc != PieceNone {
		p.removePiece(toSq)
		p.halfMoveClock = 0
	} else if fromPc.TypeOf() == Pawn {
		p.halfMoveClock = 0
		if SquareDistance(fromSq, toSq) == 2 {
			p.enPassantSquare = toSq.To(myColor.Flip().MoveDirection())
			p.zobristKey ^= zobrist.EnPassantFile[p.enPassantSquare.FileOf()]
		}
	} else {
		p.halfMoveClock++
	}
	p.movePiece(fromSq, toSq)
}

func (p *Position) doCastlingMove(fromPc Piece, myColor Color, toSq Square, fromSq Square) {
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, King), "Position DoMove: castling move but from piece not king")
	}
	switch toSq {
	case SqG1:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqH1, SqF1)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
		p.castlingRights.Remove(CastlingWhite)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
	case SqC1:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqA1, SqD1)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
		p.castlingRights.Remove(CastlingWhite)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
	case SqG8:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqH8, SqF8)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
		p.castlingRights.Remove(CastlingBlack)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
	case SqC8:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqA8, SqD8)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
		p.castlingRights.Remove(CastlingBlack)
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
	default:
		panic("position: invalid castle move")
	}
	p.clearEnPassant()
	p.halfMoveClock++
}

func (p *Position) doEnPassantMove(toSq Square, myColor Color, fromPc Piece, fromSq Square) {
	capSq := toSq.To(myColor.Flip().MoveDirection())
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, Pawn), "Position DoMove: en passant move but from piece not pawn")
		assert.Assert(p.enPassantSquare != SqNone, "Position DoMove: en passant move type without en passant square")
		assert.Assert(p.board[capSq] == MakePiece(myColor.Flip(), Pawn), "Position DoMove: captured en passant piece invalid")
	}
	p.removePiece(capSq)
	p.movePiece(fromSq, toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) doPromotionMove(m Move, fromPc Piece, myColor Color, toSq Square, targetPc Piece, fromSq Square) {
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, Pawn), "Position DoMove: promotion move but from piece not pawn")
		assert.Assert(myColor.PromotionRankBb().Has(toSq), "Position DoMove: promotion move but wrong rank")
	}
	if targetPc != PieceNone {
		p.removePiece(toSq)
	}
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
		}
	}
	p.removePiece(fromSq)
	p.putPiece(MakePiece(myColor, m.PromotionType()), toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) movePiece(fromSq Square, toSq Square) {
	p.putPiece(p.removePiece(fromSq), toSq)
}

func (p *Position) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] == PieceNone, "position: square %s already occupied", square.String())
		assert.Assert(!p.piecesBb[color][pieceType].Has(square), "position: piecesBb bit already set on %s", square.String())
		assert.Assert(!p.occupiedBb[color].Has(square), "position: occupiedBb bit already set on %s", square.String())
	}

	p.board[square] = piece
	if pieceType == King {
		p.kingSquare[color] = square
	}
	p.piecesBb[color][pieceType].PushSquare(square)
	p.occupiedBb[color].PushSquare(square)
	p.zobristKey ^= zobrist.Pieces[piece][square]
	if pieceType == Pawn {
		p.pawnKey ^= zobrist.Pieces[piece][square]
	}

	p.gamePhase += pieceType.GamePhaseValue()
	if p.gamePhase > GamePhaseMax {
		p.gamePhase = GamePhaseMax
	}
	p.material[color] += pieceType.ValueOf()
	if pieceType > Pawn {
		p.materialNonPawn[color] += pieceType.ValueOf()
	}
	p.psqMidValue[color] += PosMidValue(piece, square)
	p.psqEndValue[color] += PosEndValue(piece, square)
}

func (p *Position) removePiece(square Square) Piece {
	removed := p.board[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] != PieceNone, "position: square %s already empty", square.String())
		assert.Assert(p.piecesBb[color][pieceType].Has(square), "position: piecesBb bit already clear on %s", square.String())
		assert.Assert(p.occupiedBb[color].Has(square), "position: occupiedBb bit already clear on %s", square.String())
	}

	p.board[square] = PieceNone
	p.piecesBb[color][pieceType].PopSquare(square)
	p.occupiedBb[color].PopSquare(square)
	p.zobristKey ^= zobrist.Pieces[removed][square]
	if pieceType == Pawn {
		p.pawnKey ^= zobrist.Pieces[removed][square]
	}

	p.gamePhase -= pieceType.GamePhaseValue()
	if p.gamePhase < 0 {
		p.gamePhase = 0
	}
	p.material[color] -= pieceType.ValueOf()
	if pieceType > Pawn {
		p.materialNonPawn[color] -= pieceType.ValueOf()
	}
	p.psqMidValue[color] -= PosMidValue(removed, square)
	p.psqEndValue[color] -= PosEndValue(removed, square)
	return removed
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobrist.EnPassantFile[p.enPassantSquare.FileOf()]
		p.enPassantSquare = SqNone
	}
}

func (p *Position) fen() string {
	var fen strings.Builder
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, Rank8-r)]
			if pc == PieceNone {
				emptySquares++
			} else {
				if emptySquares > 0 {
					fen.WriteString(strconv.Itoa(emptySquares))
					emptySquares = 0
				}
				fen.WriteString(pc.String())
			}
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa((p.nextHalfMoveNumber + 1) / 2))
	return fen.String()
}

var (
	regexFenPos         = regexp.MustCompile("[0-8pPnNbBrRqQkK/]+")
	regexWorB           = regexp.MustCompile("^[w|b]$")
	regexCastlingRights = regexp.MustCompile("^(K?Q?k?q?|-)$")
	regexEnPassant      = regexp.MustCompile("^([a-h][1-8]|-)$")
)

// setupBoard parses fen and initializes every field of p from it. This is
// the only path that produces a valid *Position.
func (p *Position) setupBoard(fen string) error {
	fen = strings.TrimSpace(fen)
	fenParts := strings.Split(fen, " ")

	if len(fenParts) == 0 {
		return errors.New("fen must not be empty")
	}
	if !regexFenPos.MatchString(fenParts[0]) {
		return errors.New("fen position contains invalid characters")
	}

	currentSquare := SqA8
	for _, c := range fenParts[0] {
		if number, e := strconv.Atoi(string(c)); e == nil {
			currentSquare = Square(int(currentSquare) + number*int(East))
		} else if string(c) == "/" {
			currentSquare = currentSquare.To(South).To(South)
		} else {
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return fmt.Errorf("invalid piece character: %s", string(c))
			}
			p.putPiece(piece, currentSquare)
			currentSquare++
		}
	}
	if currentSquare != SqA2 {
		return errors.New("fen did not end on a2 after parsing piece placement")
	}

	p.nextHalfMoveNumber = 1
	p.enPassantSquare = SqNone

	if len(fenParts) >= 2 {
		if !regexWorB.MatchString(fenParts[1]) {
			return errors.New("fen next player contains invalid characters")
		}
		switch fenParts[1] {
		case "w":
			p.nextPlayer = White
		case "b":
			p.nextPlayer = Black
			p.zobristKey ^= zobrist.SideToMove
			p.nextHalfMoveNumber++
		}
	}

	if len(fenParts) >= 3 {
		if !regexCastlingRights.MatchString(fenParts[2]) {
			return errors.New("fen castling rights contains invalid characters")
		}
		if fenParts[2] != "-" {
			for _, c := range fenParts[2] {
				switch string(c) {
				case "K":
					p.castlingRights.Add(CastlingWhiteOO)
				case "Q":
					p.castlingRights.Add(CastlingWhiteOOO)
				case "k":
					p.castlingRights.Add(CastlingBlackOO)
				case "q":
					p.castlingRights.Add(CastlingBlackOOO)
				}
			}
		}
		p.zobristKey ^= zobrist.CastlingKeys[p.castlingRights]
	}

	if len(fenParts) >= 4 {
		if !regexEnPassant.MatchString(fenParts[3]) {
			return errors.New("fen en passant square contains invalid characters")
		}
		if fenParts[3] != "-" {
			p.enPassantSquare = MakeSquare(fenParts[3])
		}
	}

	if len(fenParts) >= 5 {
		number, e := strconv.Atoi(fenParts[4])
		if e != nil {
			return e
		}
		p.halfMoveClock = number
	}

	if len(fenParts) >= 6 {
		moveNumber, e := strconv.Atoi(fenParts[5])
		if e != nil {
			return e
		}
		if moveNumber == 0 {
			moveNumber = 1
		}
		p.nextHalfMoveNumber = 2*moveNumber - (1 - int(p.nextPlayer))
	}

	return nil
}

// //////////////////////////////////////////////////////
// Getters
// //////////////////////////////////////////////////////

// ZobristKey returns the current Zobrist key of the position.
func (p *Position) ZobristKey() Key { return p.zobristKey }

// PawnKey returns the Zobrist key of the pawn structure only (pawn placement,
// independent of piece placement or side to move), for use as a pawn-hash
// cache key.
func (p *Position) PawnKey() Key { return p.pawnKey }

// NextPlayer returns the color to move.
func (p *Position) NextPlayer() Color { return p.nextPlayer }

// GetPiece returns the piece on sq, or PieceNone if empty.
func (p *Position) GetPiece(sq Square) Piece { return p.board[sq] }

// PiecesBb returns the bitboard of pieces of type pt and color c.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	if pt == AllPieces {
		return p.occupiedBb[c]
	}
	return p.piecesBb[c][pt]
}

// OccupiedAll returns a bitboard of every occupied square.
func (p *Position) OccupiedAll() Bitboard { return p.occupiedBb[White] | p.occupiedBb[Black] }

// OccupiedBb returns a bitboard of the squares occupied by color c.
func (p *Position) OccupiedBb(c Color) Bitboard { return p.occupiedBb[c] }

// GamePhase returns the material-weighted game phase, GamePhaseMax at the
// start of the game and 0 with no officers left.
func (p *Position) GamePhase() int { return p.gamePhase }

// GamePhaseFactor returns GamePhase()/GamePhaseMax as a float in [0, 1].
func (p *Position) GamePhaseFactor() float64 { return float64(p.gamePhase) / GamePhaseMax }

// GetEnPassantSquare returns the en passant target square, or SqNone.
func (p *Position) GetEnPassantSquare() Square { return p.enPassantSquare }

// CastlingRights returns the position's current castling rights.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// KingSquare returns the square of the king of color c.
func (p *Position) KingSquare(c Color) Square { return p.kingSquare[c] }

// HalfMoveClock returns the half-move clock used for the 50-move rule.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// Material returns the material value of color c.
func (p *Position) Material(c Color) Value { return p.material[c] }

// MaterialNonPawn returns the non-pawn material value of color c.
func (p *Position) MaterialNonPawn(c Color) Value { return p.materialNonPawn[c] }

// PsqMidValue returns the middlegame piece-square total for color c.
func (p *Position) PsqMidValue(c Color) Value { return p.psqMidValue[c] }

// PsqEndValue returns the endgame piece-square total for color c.
func (p *Position) PsqEndValue(c Color) Value { return p.psqEndValue[c] }

// LastMove returns the most recently played move, or NoMove if the position
// has no history.
func (p *Position) LastMove() Move {
	if p.historyCounter <= 0 {
		return NoMove
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the piece captured by the last move, or
// PieceNone if the last move was not a capture or there is no history.
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter <= 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove reports whether the last move made was a capture.
func (p *Position) WasCapturingMove() bool { return p.LastCapturedPiece() != PieceNone }
