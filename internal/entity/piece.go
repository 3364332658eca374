package entity

const (
	ColorWhite = "white"
	ColorBlack = "black"
	ColorNone  = "none"
)

// IsWhitePiece reports whether the symbol is a white piece (uppercase).
func IsWhitePiece(piece string) bool {
	return piece != EmptySquare && piece >= "A" && piece <= "Z"
}

// IsBlackPiece reports whether the symbol is a black piece (lowercase).
func IsBlackPiece(piece string) bool {
	return piece != EmptySquare && piece >= "a" && piece <= "z"
}

// PieceColor returns ColorWhite, ColorBlack or ColorNone for a symbol.
func PieceColor(piece string) string {
	switch {
	case IsWhitePiece(piece):
		return ColorWhite
	case IsBlackPiece(piece):
		return ColorBlack
	default:
		return ColorNone
	}
}

// PieceName returns a human-readable name for a piece symbol.
func PieceName(piece string) string {
	switch piece {
	case "P", "p":
		return "pawn"
	case "R", "r":
		return "rook"
	case "N", "n":
		return "knight"
	case "B", "b":
		return "bishop"
	case "Q", "q":
		return "queen"
	case "K", "k":
		return "king"
	default:
		return "piece"
	}
}
