package chess

import (
	"fmt"
	"strings"

	"github.com/chessmind/chess-backend/internal/apperror"
	"github.com/chessmind/chess-backend/internal/entity"
)

// MakeMove validates and commits a single move on the game. The checks run
// in a fixed order and nothing mutates until all of them pass, so a failed
// move leaves the game untouched.
func MakeMove(game *entity.Game, from, to string) error {
	if game.GameOver {
		return apperror.GameOver()
	}

	if !entity.IsValidPosition(from) {
		return apperror.InvalidPosition(from)
	}
	if !entity.IsValidPosition(to) {
		return apperror.InvalidPosition(to)
	}

	piece := game.Board.At(from)
	if piece == entity.EmptySquare {
		return apperror.InvalidMove(
			fmt.Sprintf("No piece at source position %s", from),
			from, to, apperror.ReasonNoPiece,
		)
	}

	if entity.PieceColor(piece) != game.Turn {
		return apperror.InvalidMove(
			fmt.Sprintf("Wrong player's turn: it is %s to move", game.Turn),
			from, to, apperror.ReasonWrongTurn,
		)
	}

	target := game.Board.At(to)
	if target != entity.EmptySquare && entity.PieceColor(target) == game.Turn {
		return apperror.InvalidMove(
			fmt.Sprintf("Cannot capture your own piece at %s", to),
			from, to, apperror.ReasonSelfCapture,
		)
	}

	if !IsLegalMove(&game.Board, piece, from, to) {
		return apperror.InvalidMove(
			fmt.Sprintf("Illegal move for %s: %s to %s", entity.PieceName(piece), from, to),
			from, to, apperror.ReasonIllegalMove,
		)
	}

	isCapture := target != entity.EmptySquare
	captured := ""
	if isCapture {
		captured = target
	}

	game.RecordMove(entity.MoveRecord{
		FromPos:           from,
		ToPos:             to,
		Piece:             piece,
		Color:             game.Turn,
		CapturedPiece:     captured,
		IsCapture:         isCapture,
		AlgebraicNotation: algebraicNotation(piece, from, to, isCapture),
	})

	game.Board.Set(to, piece)
	game.Board.Set(from, entity.EmptySquare)

	game.CheckGameOver()
	if !game.GameOver {
		game.Turn = toggleTurn(game.Turn)
	}

	return nil
}

// algebraicNotation builds the compact notation recorded per move: the
// destination square for pawns (prefixed by sourceFile+"x" on captures),
// or the piece letter plus optional "x" for every other piece.
func algebraicNotation(piece, from, to string, isCapture bool) string {
	if piece == "P" || piece == "p" {
		if isCapture {
			return string(from[0]) + "x" + to
		}
		return to
	}

	notation := strings.ToUpper(piece)
	if isCapture {
		notation += "x"
	}
	return notation + to
}

func toggleTurn(turn string) string {
	if turn == entity.ColorWhite {
		return entity.ColorBlack
	}
	return entity.ColorWhite
}
