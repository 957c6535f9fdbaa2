// Package fen provides minimal FEN handling: parsing, mechanical application
// of UCI moves, and text rendering. It performs no legality checking; the
// corpus is trusted and verifying puzzles against the rules of chess is out
// of scope.
package fen

import (
	"fmt"
	"strconv"
	"strings"
)

// Board is a parsed FEN position.
type Board struct {
	// squares is indexed rank*8+file, rank 0 = rank 1, file 0 = the a-file.
	// Empty squares hold 0.
	squares   [64]byte
	whiteMove bool
	castling  string
	enPassant string
	halfmove  int
	fullmove  int
}

// Parse parses a FEN string into a Board.
func Parse(s string) (*Board, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return nil, fmt.Errorf("invalid FEN %q: expected at least piece placement and side to move", s)
	}

	b := &Board{castling: "-", enPassant: "-", fullmove: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN %q: expected 8 ranks", s)
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", ch):
				if file > 7 {
					return nil, fmt.Errorf("invalid FEN %q: rank %d overflows", s, rank+1)
				}
				b.squares[rank*8+file] = byte(ch)
				file++
			default:
				return nil, fmt.Errorf("invalid FEN %q: unexpected piece %q", s, ch)
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid FEN %q: rank %d has %d files", s, rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		b.whiteMove = true
	case "b":
		b.whiteMove = false
	default:
		return nil, fmt.Errorf("invalid FEN %q: bad side to move %q", s, fields[1])
	}

	if len(fields) > 2 {
		b.castling = fields[2]
	}
	if len(fields) > 3 {
		b.enPassant = fields[3]
	}
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			b.halfmove = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			b.fullmove = n
		}
	}
	return b, nil
}

// WhiteToMove reports whether white is to move.
func (b *Board) WhiteToMove() bool {
	return b.whiteMove
}

// String renders the position back to FEN.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.squares[rank*8+file]
			if piece == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "b"
	if b.whiteMove {
		side = "w"
	}
	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), side, b.castling, b.enPassant, b.halfmove, b.fullmove)
}

func square(name string) (int, error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return 0, fmt.Errorf("invalid square %q", name)
	}
	return int(name[1]-'1')*8 + int(name[0]-'a'), nil
}

func squareName(sq int) string {
	return string([]byte{byte('a' + sq%8), byte('1' + sq/8)})
}

func isWhitePiece(p byte) bool {
	return p >= 'A' && p <= 'Z'
}

// ApplyUCI applies one move in UCI coordinate notation (e2e4, e7e8q). The
// move is applied mechanically, including castling rook hops, en passant
// captures, and promotions, without checking legality.
func (b *Board) ApplyUCI(move string) error {
	if len(move) != 4 && len(move) != 5 {
		return fmt.Errorf("invalid move %q", move)
	}
	from, err := square(move[0:2])
	if err != nil {
		return fmt.Errorf("invalid move %q: %w", move, err)
	}
	to, err := square(move[2:4])
	if err != nil {
		return fmt.Errorf("invalid move %q: %w", move, err)
	}
	piece := b.squares[from]
	if piece == 0 {
		return fmt.Errorf("invalid move %q: no piece on %s", move, move[0:2])
	}

	captured := b.squares[to] != 0
	isPawn := piece == 'p' || piece == 'P'

	// En passant capture: a pawn moving diagonally onto an empty square
	// takes the pawn behind the target.
	if isPawn && !captured && from%8 != to%8 && squareName(to) == b.enPassant {
		behind := to - 8
		if !isWhitePiece(piece) {
			behind = to + 8
		}
		b.squares[behind] = 0
		captured = true
	}

	// Castling: a king moving two files drags the rook over.
	if (piece == 'k' || piece == 'K') && abs(to%8-from%8) == 2 {
		rank := from / 8 * 8
		if to%8 == 6 { // kingside
			b.squares[rank+5] = b.squares[rank+7]
			b.squares[rank+7] = 0
		} else { // queenside
			b.squares[rank+3] = b.squares[rank]
			b.squares[rank] = 0
		}
	}

	placed := piece
	if len(move) == 5 {
		promo := move[4]
		if !strings.ContainsRune("qrbn", rune(promo)) {
			return fmt.Errorf("invalid move %q: bad promotion piece", move)
		}
		placed = promo
		if isWhitePiece(piece) {
			placed = promo - 'a' + 'A'
		}
	}
	b.squares[to] = placed
	b.squares[from] = 0

	b.updateCastlingRights(piece, from, to)

	b.enPassant = "-"
	if isPawn && abs(to/8-from/8) == 2 {
		b.enPassant = squareName((from + to) / 2)
	}

	if isPawn || captured {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if !b.whiteMove {
		b.fullmove++
	}
	b.whiteMove = !b.whiteMove
	return nil
}

func (b *Board) updateCastlingRights(piece byte, from, to int) {
	drop := func(rights ...byte) {
		for _, r := range rights {
			b.castling = strings.ReplaceAll(b.castling, string(r), "")
		}
		if b.castling == "" {
			b.castling = "-"
		}
	}
	switch piece {
	case 'K':
		drop('K', 'Q')
	case 'k':
		drop('k', 'q')
	}
	for _, sq := range []int{from, to} {
		switch sq {
		case 0: // a1
			drop('Q')
		case 7: // h1
			drop('K')
		case 56: // a8
			drop('q')
		case 63: // h8
			drop('k')
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var glyphs = map[byte]rune{
	'K': '♔', 'Q': '♕', 'R': '♖', 'B': '♗', 'N': '♘', 'P': '♙',
	'k': '♚', 'q': '♛', 'r': '♜', 'b': '♝', 'n': '♞', 'p': '♟',
}

// Render draws the position as a text diagram, rank 8 first, for terminal
// display.
func (b *Board) Render() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			piece := b.squares[rank*8+file]
			if piece == 0 {
				sb.WriteRune('·')
			} else {
				sb.WriteRune(glyphs[piece])
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}

// AfterSetupMove parses a corpus FEN and applies the opponent's setup move,
// returning the position actually presented to the solver. Corpus records
// store the position before that move; moves[0] is the setup move.
func AfterSetupMove(fenStr string, moves []string) (*Board, error) {
	board, err := Parse(fenStr)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return board, nil
	}
	if err := board.ApplyUCI(moves[0]); err != nil {
		return nil, err
	}
	return board, nil
}
