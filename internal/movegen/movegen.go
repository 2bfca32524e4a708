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

// Package movegen generates moves on a chess position: bulk pseudo-legal and
// legal move lists, and a staged on-demand generator that hands out moves one
// at a time, most promising first, for use in alpha-beta search.
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/op/go-logging"

	"github.com/kestrelchess/kestrel/internal/config"
	myLogging "github.com/kestrelchess/kestrel/internal/enginelog"
	"github.com/kestrelchess/kestrel/internal/moveslice"
	"github.com/kestrelchess/kestrel/internal/position"
	. "github.com/kestrelchess/kestrel/internal/types"
)

var log *logging.Logger

// GenMode selects which classes of moves a generation call should produce.
type GenMode int

const (
	GenZero   GenMode = 0b000
	GenCap    GenMode = 0b001
	GenNonCap GenMode = 0b010
	GenAll    GenMode = 0b011
	// GenProm additionally asks for non-capturing queen promotions without
	// the rest of the quiet moves - used together with GenCap as GenNonQuiet.
	GenProm GenMode = 0b100
	// GenNonQuiet generates captures and non-capturing queen promotions,
	// the move classes considered in quiescence search. Under-promotions
	// and plain quiet moves are left out.
	GenNonQuiet = GenCap | GenProm
)

// Movegen holds the reusable move buffers and on-demand generation state for
// one search thread. Create with NewMoveGen(); the zero value is not usable.
type Movegen struct {
	pseudoLegalMoves   *moveslice.MoveSlice
	legalMoves         *moveslice.MoveSlice
	onDemandMoves      *moveslice.MoveSlice
	killerMoves        [2]Move
	currentIteratorKey position.Key
	takeIndex          int
	pvMove             Move
	currentODStage     int8
	pvMovePushed       bool
}

// NewMoveGen creates a ready-to-use move generator.
func NewMoveGen() *Movegen {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Movegen{
		pseudoLegalMoves:   moveslice.NewMoveSlice(MaxMoves),
		legalMoves:         moveslice.NewMoveSlice(MaxMoves),
		onDemandMoves:      moveslice.NewMoveSlice(MaxMoves),
		killerMoves:        [2]Move{NoMove, NoMove},
		pvMove:             NoMove,
		currentODStage:     odNew,
		currentIteratorKey: 0,
		pvMovePushed:       false,
		takeIndex:          0,
	}
}

// //////////////////////////////////////////////////////
// Public
// //////////////////////////////////////////////////////

// GeneratePseudoLegalMoves returns every pseudo-legal move for the side to
// move, ordered most promising first. Pseudo-legal means castling and
// self-check are not ruled out - use GenerateLegalMoves or filter with
// Position.IsLegalMove for that.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	if mode&GenCap != 0 {
		mg.generatePawnMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateOfficerMoves(p, GenCap, mg.pseudoLegalMoves)
	}
	if mode&GenNonCap != 0 {
		mg.generatePawnMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateCastling(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateOfficerMoves(p, GenNonCap, mg.pseudoLegalMoves)
	} else if mode&GenProm != 0 {
		mg.generatePawnMoves(p, GenProm, mg.pseudoLegalMoves)
	}
	mg.pseudoLegalMoves.SortByValue(mg.moveValue(p))
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves returns every legal move for the side to move: the
// pseudo-legal list filtered by Position.IsLegalMove.
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GeneratePseudoLegalMoves(p, mode)
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return p.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return mg.legalMoves
}

// GetNextMove returns the next move for p in most-promising-first order,
// generating lazily in stages (PV move, captures, quiet moves) so a caller
// that beta-cutoffs early never pays for moves it never looks at. Call
// ResetOnDemand to restart iteration on the same position (a different
// position resets automatically).
func (mg *Movegen) GetNextMove(p *position.Position, mode GenMode) Move {
	if p.ZobristKey() != mg.currentIteratorKey {
		mg.onDemandMoves.Clear()
		mg.currentODStage = odNew
		mg.pvMovePushed = false
		mg.takeIndex = 0
		mg.currentIteratorKey = p.ZobristKey()
	}

	if mg.onDemandMoves.Len() == 0 {
		mg.fillOnDemandMoveList(p, mode)
	}

	if mg.onDemandMoves.Len() != 0 {
		if mg.currentODStage != od1 && mg.pvMovePushed && (*mg.onDemandMoves)[mg.takeIndex] == mg.pvMove {
			mg.takeIndex++
			mg.pvMovePushed = false
			if mg.takeIndex >= mg.onDemandMoves.Len() {
				mg.takeIndex = 0
				mg.onDemandMoves.Clear()
				mg.fillOnDemandMoveList(p, mode)
				if mg.onDemandMoves.Len() == 0 {
					return NoMove
				}
			}
		}

		move := (*mg.onDemandMoves)[mg.takeIndex]
		mg.takeIndex++
		if mg.takeIndex >= mg.onDemandMoves.Len() {
			mg.takeIndex = 0
			mg.onDemandMoves.Clear()
		}
		return move
	}

	mg.takeIndex = 0
	mg.pvMovePushed = false
	return NoMove
}

// ResetOnDemand restarts the on-demand generator from scratch, forgetting
// the PV move too. Killer moves are kept.
func (mg *Movegen) ResetOnDemand() {
	mg.onDemandMoves.Clear()
	mg.currentODStage = odNew
	mg.currentIteratorKey = 0
	mg.pvMove = NoMove
	mg.pvMovePushed = false
	mg.takeIndex = 0
}

// SetPvMove tells the on-demand generator to return move first.
func (mg *Movegen) SetPvMove(move Move) {
	mg.pvMove = move
}

// StoreKiller records move as a killer move for the current ply: a quiet
// move that caused a beta cutoff elsewhere in the tree at this depth, and
// so is worth trying early in sibling nodes.
func (mg *Movegen) StoreKiller(move Move) {
	if mg.killerMoves[0] == move {
		return
	}
	mg.killerMoves[1] = mg.killerMoves[0]
	mg.killerMoves[0] = move
}

// KillerMoves returns the two current killer moves for this generator.
func (mg *Movegen) KillerMoves() *[2]Move {
	return &mg.killerMoves
}

// PvMove returns the move currently set as PV move.
func (mg *Movegen) PvMove() Move {
	return mg.pvMove
}

// HasLegalMove reports whether p has at least one legal move, without
// generating (and discarding) the full move list. Checked roughly in order
// of which piece type is most likely to have one.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	us := p.NextPlayer()
	usBb := p.OccupiedBb(us)

	kingSquare := p.KingSquare(us)
	kingMoves := GetPseudoAttacks(King, kingSquare) &^ usBb
	for kingMoves != 0 {
		to := kingMoves.PopLsb()
		if p.IsLegalMove(NewMove(kingSquare, to, MakePiece(us, King))) {
			return true
		}
	}

	myPawns := p.PiecesBb(us, Pawn)
	oppBb := p.OccupiedBb(us.Flip())
	pawnPiece := MakePiece(us, Pawn)

	for _, dir := range [2]Direction{West, East} {
		caps := ShiftBitboard(myPawns, us.MoveDirection()+dir) & oppBb
		for caps != 0 {
			to := caps.PopLsb()
			from := to.To(us.Flip().MoveDirection() - dir)
			if p.IsLegalMove(NewCaptureMove(from, to, pawnPiece, p.GetPiece(to))) {
				return true
			}
		}
	}

	occ := p.OccupiedAll()
	pushes := ShiftBitboard(myPawns, us.MoveDirection()) &^ occ
	for pushes != 0 {
		to := pushes.PopLsb()
		from := to.To(us.Flip().MoveDirection())
		if p.IsLegalMove(NewMove(from, to, pawnPiece)) {
			return true
		}
	}

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(us, pt)
		piece := MakePiece(us, pt)
		for pieces != 0 {
			from := pieces.PopLsb()
			moves := GetAttacksBb(pt, from, occ) &^ usBb
			for moves != 0 {
				to := moves.PopLsb()
				if target := p.GetPiece(to); target != PieceNone {
					if p.IsLegalMove(NewCaptureMove(from, to, piece, target)) {
						return true
					}
				} else if p.IsLegalMove(NewMove(from, to, piece)) {
					return true
				}
			}
		}
	}

	if ep := p.GetEnPassantSquare(); ep != SqNone {
		for _, dir := range [2]Direction{West, East} {
			attackers := ShiftBitboard(ep.Bb(), us.Flip().MoveDirection()-dir) & myPawns
			if attackers != 0 {
				from := attackers.PopLsb()
				captured := MakePiece(us.Flip(), Pawn)
				if p.IsLegalMove(NewEnPassantMove(from, ep, pawnPiece, captured)) {
					return true
				}
			}
		}
	}

	return false
}

var regexUciMove = regexp.MustCompile("([a-h][1-8][a-h][1-8])([NBRQnbrq])?")

// GetMoveFromUci matches uciMove against the legal moves of p and returns
// the matching move, or NoMove if it names no legal move.
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return NoMove
	}
	movePart := matches[1]
	promotionPart := ""
	if len(matches) == 3 {
		promotionPart = strings.ToUpper(matches[2])
	}

	mg.GenerateLegalMoves(p, GenAll)
	for _, m := range *mg.legalMoves {
		if m.StringUci() == movePart+promotionPart {
			return m
		}
	}
	return NoMove
}

var regexSanMove = regexp.MustCompile("([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?")

// GetMoveFromSan matches sanMove against the legal moves of p and returns
// the matching move, or NoMove if it names no legal (or ambiguous) move.
func (mg *Movegen) GetMoveFromSan(p *position.Position, sanMove string) Move {
	matches := regexSanMove.FindStringSubmatch(sanMove)
	if matches == nil {
		return NoMove
	}

	pieceTypeChar := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	toSquareStr := matches[4]
	promotion := matches[6]

	movesFound := 0
	found := NoMove

	mg.GenerateLegalMoves(p, GenAll)
	for _, m := range *mg.legalMoves {
		if m.MoveType() == Castling {
			var castlingString string
			switch m.To() {
			case SqG1, SqG8:
				castlingString = "O-O"
			case SqC1, SqC8:
				castlingString = "O-O-O"
			default:
				log.Errorf("move type castling but wrong to square: %s", m.To().String())
				continue
			}
			if castlingString == toSquareStr {
				found = m
				movesFound++
			}
			continue
		}

		if m.To().String() != toSquareStr {
			continue
		}

		legalPt := p.GetPiece(m.From()).TypeOf()
		legalPtChar := legalPt.Char()
		if (len(pieceTypeChar) == 0 || legalPtChar != pieceTypeChar) &&
			(len(pieceTypeChar) != 0 || legalPt != Pawn) {
			continue
		}
		if len(disambFile) != 0 && m.From().FileOf().String() != disambFile {
			continue
		}
		if len(disambRank) != 0 && m.From().RankOf().String() != disambRank {
			continue
		}
		if (len(promotion) != 0 && m.PromotionType().Char() != promotion) ||
			(len(promotion) == 0 && m.MoveType() == Promotion) {
			continue
		}
		found = m
		movesFound++
	}

	switch {
	case movesFound > 1:
		log.Warningf("SAN move %s is ambiguous (%d matches) on %s", sanMove, movesFound, p.StringFen())
		return NoMove
	case movesFound == 0 || !found.IsValid():
		log.Warningf("SAN move not valid: %s not found on %s", sanMove, p.StringFen())
		return NoMove
	default:
		return found
	}
}

// ValidateMove reports whether move is legal on p.
func (mg *Movegen) ValidateMove(p *position.Position, move Move) bool {
	if move == NoMove {
		return false
	}
	ml := mg.GenerateLegalMoves(p, GenAll)
	for _, m := range *ml {
		if move == m {
			return true
		}
	}
	return false
}

// String returns a short diagnostic summary of the generator's state.
func (mg *Movegen) String() string {
	return fmt.Sprintf("Movegen{stage=%d pv=%s killer1=%s killer2=%s}",
		mg.currentODStage, mg.pvMove.String(), mg.killerMoves[0].String(), mg.killerMoves[1].String())
}

// //////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////

const (
	odNew = iota
	odPv
	od1
	od2
	od3
	od4
	od5
	od6
	od7
	odProm
	odEnd
)

func (mg *Movegen) fillOnDemandMoveList(p *position.Position, mode GenMode) {
	for mg.onDemandMoves.Len() == 0 && mg.currentODStage < odEnd {
		switch mg.currentODStage {
		case odNew:
			mg.currentODStage = odPv
			fallthrough
		case odPv:
			if mg.pvMove != NoMove {
				switch {
				case mode == GenAll,
					mode == GenCap && p.IsCapturingMove(mg.pvMove),
					mode == GenNonCap && !p.IsCapturingMove(mg.pvMove):
					mg.pvMovePushed = true
					mg.onDemandMoves.PushBack(mg.pvMove)
				}
			}
			switch {
			case mode&GenCap != 0:
				mg.currentODStage = od1
			case mode&GenNonCap != 0:
				mg.currentODStage = od4
			case mode&GenProm != 0:
				mg.currentODStage = odProm
			default:
				mg.currentODStage = odEnd
			}
		case od1: // captures
			mg.generatePawnMoves(p, GenCap, mg.onDemandMoves)
			mg.currentODStage = od2
		case od2:
			mg.generateOfficerMoves(p, GenCap, mg.onDemandMoves)
			mg.currentODStage = od3
		case od3:
			mg.generateKingMoves(p, GenCap, mg.onDemandMoves)
			switch {
			case mode&GenNonCap != 0:
				mg.currentODStage = od4
			case mode&GenProm != 0:
				mg.currentODStage = odProm
			default:
				mg.currentODStage = odEnd
			}
		case odProm: // non-capturing queen promotions only (quiescence)
			mg.generatePawnMoves(p, GenProm, mg.onDemandMoves)
			mg.currentODStage = odEnd
		case od4: // quiet moves
			mg.generatePawnMoves(p, GenNonCap, mg.onDemandMoves)
			mg.currentODStage = od5
		case od5:
			mg.generateCastling(p, GenNonCap, mg.onDemandMoves)
			mg.currentODStage = od6
		case od6:
			mg.generateOfficerMoves(p, GenNonCap, mg.onDemandMoves)
			mg.currentODStage = od7
		case od7:
			mg.generateKingMoves(p, GenNonCap, mg.onDemandMoves)
			mg.currentODStage = odEnd
		}
		if mg.onDemandMoves.Len() > 0 {
			mg.onDemandMoves.SortByValue(mg.moveValue(p))
		}
	}
}

// moveValue returns a move-ordering heuristic closure over p: PV move
// sorts to the very top, captures by MVV-LVA plus positional value,
// killers above all other non-capturing moves but below captures,
// quiet moves by positional value alone. Because Move now carries its own
// moved/captured piece, the score can be computed straight from the move
// with no auxiliary bookkeeping during generation.
func (mg *Movegen) moveValue(p *position.Position) func(Move) Value {
	gamePhase := p.GamePhase()
	return func(m Move) Value {
		switch {
		case m == mg.pvMove:
			return ValueMax
		case m == mg.killerMoves[0]:
			return Value(-4000)
		case m == mg.killerMoves[1]:
			return Value(-4001)
		}
		switch m.MoveType() {
		case Castling:
			return Value(-5000)
		case Promotion:
			base := Value(-10_000)
			if m.IsCapture() {
				base = m.CapturedPiece().ValueOf() - m.Piece().ValueOf()
			}
			base += PosValue(m.Piece(), m.To(), gamePhase)
			switch m.PromotionType() {
			case Queen:
				return base + Queen.ValueOf()
			case Knight:
				return base + Knight.ValueOf()
			case Rook:
				return base + Rook.ValueOf() - Value(2000)
			default:
				return base + Bishop.ValueOf() - Value(2000)
			}
		case EnPassant:
			return PosValue(m.Piece(), m.To(), gamePhase)
		default:
			if m.IsCapture() {
				return m.CapturedPiece().ValueOf() - m.Piece().ValueOf() + PosValue(m.Piece(), m.To(), gamePhase)
			}
			return Value(-10_000) + PosValue(m.Piece(), m.To(), gamePhase)
		}
	}
}

func (mg *Movegen) generatePawnMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	myPawns := p.PiecesBb(us, Pawn)
	oppPieces := p.OccupiedBb(us.Flip())
	piece := MakePiece(us, Pawn)

	if mode&GenCap != 0 {
		for _, dir := range [2]Direction{West, East} {
			caps := ShiftBitboard(myPawns, us.MoveDirection()+dir) & oppPieces
			promCaps := caps & us.PromotionRankBb()
			for promCaps != 0 {
				to := promCaps.PopLsb()
				from := to.To(us.Flip().MoveDirection() - dir)
				captured := p.GetPiece(to)
				ml.PushBack(NewPromotionMove(from, to, piece, captured, Queen))
				ml.PushBack(NewPromotionMove(from, to, piece, captured, Knight))
				ml.PushBack(NewPromotionMove(from, to, piece, captured, Rook))
				ml.PushBack(NewPromotionMove(from, to, piece, captured, Bishop))
			}
			normalCaps := caps &^ us.PromotionRankBb()
			for normalCaps != 0 {
				to := normalCaps.PopLsb()
				from := to.To(us.Flip().MoveDirection() - dir)
				ml.PushBack(NewCaptureMove(from, to, piece, p.GetPiece(to)))
			}
		}

		if ep := p.GetEnPassantSquare(); ep != SqNone {
			for _, dir := range [2]Direction{West, East} {
				attackers := ShiftBitboard(ep.Bb(), us.Flip().MoveDirection()-dir) & myPawns
				if attackers != 0 {
					from := attackers.PopLsb()
					ml.PushBack(NewEnPassantMove(from, ep, piece, MakePiece(us.Flip(), Pawn)))
				}
			}
		}
	}

	if mode&GenNonCap != 0 {
		occ := p.OccupiedAll()
		singleSteps := ShiftBitboard(myPawns, us.MoveDirection()) &^ occ
		doubleSteps := ShiftBitboard(singleSteps&us.PawnDoubleRank(), us.MoveDirection()) &^ occ

		promSteps := singleSteps & us.PromotionRankBb()
		for promSteps != 0 {
			to := promSteps.PopLsb()
			from := to.To(us.Flip().MoveDirection())
			ml.PushBack(NewPromotionMove(from, to, piece, PieceNone, Queen))
			ml.PushBack(NewPromotionMove(from, to, piece, PieceNone, Knight))
			ml.PushBack(NewPromotionMove(from, to, piece, PieceNone, Rook))
			ml.PushBack(NewPromotionMove(from, to, piece, PieceNone, Bishop))
		}
		for doubleSteps != 0 {
			to := doubleSteps.PopLsb()
			from := to.To(us.Flip().MoveDirection()).To(us.Flip().MoveDirection())
			ml.PushBack(NewMove(from, to, piece))
		}
		normalSteps := singleSteps &^ us.PromotionRankBb()
		for normalSteps != 0 {
			to := normalSteps.PopLsb()
			from := to.To(us.Flip().MoveDirection())
			ml.PushBack(NewMove(from, to, piece))
		}
	} else if mode&GenProm != 0 && config.Settings.Search.UsePromNonQuiet {
		// quiescence: only the non-capturing queen promotion, no other quiet moves
		occ := p.OccupiedAll()
		singleSteps := ShiftBitboard(myPawns, us.MoveDirection()) &^ occ
		promSteps := singleSteps & us.PromotionRankBb()
		for promSteps != 0 {
			to := promSteps.PopLsb()
			from := to.To(us.Flip().MoveDirection())
			ml.PushBack(NewPromotionMove(from, to, piece, PieceNone, Queen))
		}
	}
}

func (mg *Movegen) generateCastling(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	if mode&GenNonCap == 0 || p.CastlingRights() == CastlingNone {
		return
	}
	us := p.NextPlayer()
	occ := p.OccupiedAll()
	cr := p.CastlingRights()
	king := MakePiece(us, King)

	if us == White {
		if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occ == 0 {
			ml.PushBack(NewCastlingMove(SqE1, SqG1, king))
		}
		if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occ == 0 {
			ml.PushBack(NewCastlingMove(SqE1, SqC1, king))
		}
	} else {
		if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occ == 0 {
			ml.PushBack(NewCastlingMove(SqE8, SqG8, king))
		}
		if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occ == 0 {
			ml.PushBack(NewCastlingMove(SqE8, SqC8, king))
		}
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	piece := MakePiece(us, King)
	kingBb := p.PiecesBb(us, King)
	from := kingBb.PopLsb()
	pseudo := GetPseudoAttacks(King, from)

	if mode&GenCap != 0 {
		captures := pseudo & p.OccupiedBb(us.Flip())
		for captures != 0 {
			to := captures.PopLsb()
			ml.PushBack(NewCaptureMove(from, to, piece, p.GetPiece(to)))
		}
	}
	if mode&GenNonCap != 0 {
		quiet := pseudo &^ p.OccupiedAll()
		for quiet != 0 {
			to := quiet.PopLsb()
			ml.PushBack(NewMove(from, to, piece))
		}
	}
}

// generateOfficerMoves generates knight, bishop, rook and queen moves using
// the magic-bitboard attack tables, so sliding pieces need no separate
// blocked-path check.
func (mg *Movegen) generateOfficerMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	occ := p.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(us, pt)
		piece := MakePiece(us, pt)
		for pieces != 0 {
			from := pieces.PopLsb()
			moves := GetAttacksBb(pt, from, occ)

			if mode&GenCap != 0 {
				captures := moves & p.OccupiedBb(us.Flip())
				for captures != 0 {
					to := captures.PopLsb()
					ml.PushBack(NewCaptureMove(from, to, piece, p.GetPiece(to)))
				}
			}
			if mode&GenNonCap != 0 {
				quiet := moves &^ occ
				for quiet != 0 {
					to := quiet.PopLsb()
					ml.PushBack(NewMove(from, to, piece))
				}
			}
		}
	}
}
