package chess

import "github.com/chessmind/chess-backend/internal/entity"

// Move - a source and destination square pair.
type Move struct {
	From string `json:"from_pos"`
	To   string `json:"to_pos"`
}

// IsLegalMove reports whether the piece may move between two valid squares
// under per-piece movement and path-clearance rules. Pure function of the
// board: it does not look at whose turn it is, at the destination owner, or
// at check safety — MakeMove layers those checks on top.
func IsLegalMove(board *entity.Board, piece, from, to string) bool {
	df := int(to[0]) - int(from[0])
	dr := int(to[1]) - int(from[1])

	switch piece {
	case "P", "p":
		return legalPawnMove(board, piece, from, to, df, dr)
	case "N", "n":
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case "B", "b":
		return abs(df) == abs(dr) && df != 0 && isPathClear(board, from, to)
	case "R", "r":
		return (df == 0) != (dr == 0) && isPathClear(board, from, to)
	case "Q", "q":
		return ((abs(df) == abs(dr) && df != 0) || (df == 0) != (dr == 0)) && isPathClear(board, from, to)
	case "K", "k":
		return max(abs(df), abs(dr)) == 1
	default:
		return false
	}
}

// legalPawnMove handles the only piece whose legality depends on board
// contents beyond path clearance: advances need empty squares, captures
// need an enemy piece.
func legalPawnMove(board *entity.Board, piece, from, to string, df, dr int) bool {
	direction := 1
	homeRank := byte('2')
	if entity.IsBlackPiece(piece) {
		direction = -1
		homeRank = '7'
	}

	target := board.At(to)

	if df == 0 {
		if dr == direction && target == entity.EmptySquare {
			return true
		}
		if from[1] == homeRank && dr == 2*direction {
			intermediate := string(from[0]) + string(byte(int(from[1])+direction))
			return board.At(intermediate) == entity.EmptySquare && target == entity.EmptySquare
		}
		return false
	}

	return abs(df) == 1 && dr == direction &&
		target != entity.EmptySquare &&
		entity.PieceColor(target) != entity.PieceColor(piece)
}

// isPathClear walks unit steps from source toward destination, both
// endpoints excluded, and fails on the first occupied square.
func isPathClear(board *entity.Board, from, to string) bool {
	stepFile := sign(int(to[0]) - int(from[0]))
	stepRank := sign(int(to[1]) - int(from[1]))

	file := int(from[0]) + stepFile
	rank := int(from[1]) + stepRank
	for file != int(to[0]) || rank != int(to[1]) {
		pos := string(byte(file)) + string(byte(rank))
		if board.At(pos) != entity.EmptySquare {
			return false
		}
		file += stepFile
		rank += stepRank
	}

	return true
}

// LegalMoves enumerates every move the given side could make right now:
// each of its pieces paired with every other square, filtered by destination
// ownership and per-piece legality. Check safety is out of scope.
func LegalMoves(board *entity.Board, turn string) []Move {
	var moves []Move

	for fromIdx := 0; fromIdx < entity.SquareCount; fromIdx++ {
		piece := board[fromIdx]
		if piece == entity.EmptySquare || entity.PieceColor(piece) != turn {
			continue
		}

		from := entity.SquareName(fromIdx)
		for toIdx := 0; toIdx < entity.SquareCount; toIdx++ {
			if toIdx == fromIdx {
				continue
			}

			to := entity.SquareName(toIdx)
			if entity.PieceColor(board[toIdx]) == turn {
				continue
			}

			if IsLegalMove(board, piece, from, to) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}

	return moves
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
