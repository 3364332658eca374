package chess

import "strings"

// ParseMove extracts a (from, to) square pair from a free-form textual move
// suggestion. Tolerated formats, tried in order: "e7 e5" (space separated),
// "e7-e5" (dash separated), "e7e5" (no separator), each with an optional
// leading piece letter as in "Nb8 c6" or "Ng8f6". Parsing is best effort:
// the extracted codes are not checked for well-formedness here, square
// validation happens downstream.
func ParseMove(text string) (string, string, bool) {
	text = strings.TrimSpace(text)

	if strings.ContainsAny(text, " \t") {
		parts := strings.Fields(text)
		if len(parts) >= 2 {
			return stripPieceLetter(parts[0]), stripPieceLetter(parts[1]), true
		}
		return "", "", false
	}

	if strings.Contains(text, "-") {
		parts := strings.Split(text, "-")
		if len(parts) >= 2 {
			return stripPieceLetter(parts[0]), stripPieceLetter(parts[1]), true
		}
		return "", "", false
	}

	if len(text) >= 4 {
		if isPieceLetter(text[0]) {
			if len(text) < 5 {
				return "", "", false
			}
			return text[1:3], text[3:5], true
		}
		return text[0:2], text[2:4], true
	}

	return "", "", false
}

// ParseMoveList parses a comma-separated sequence of move suggestions,
// dropping segments that fail to parse.
func ParseMoveList(text string) []Move {
	var moves []Move

	for _, segment := range strings.Split(strings.TrimSpace(text), ",") {
		from, to, ok := ParseMove(segment)
		if ok {
			moves = append(moves, Move{From: from, To: to})
		}
	}

	return moves
}

// stripPieceLetter drops a leading piece letter from a token like "Nb8",
// keeping the two-character square code that follows it.
func stripPieceLetter(token string) string {
	if len(token) >= 3 && isPieceLetter(token[0]) {
		return token[1:3]
	}
	return token
}

func isPieceLetter(c byte) bool {
	switch c {
	case 'K', 'Q', 'R', 'B', 'N':
		return true
	default:
		return false
	}
}
