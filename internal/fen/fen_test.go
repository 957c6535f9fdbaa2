package fen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const startPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestParseRoundTrip(t *testing.T) {
	for _, fenStr := range []string{
		startPos,
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 0 1",
		"8/8/8/8/8/5k2/7q/6K1 w - - 4 50",
	} {
		board, err := Parse(fenStr)
		require.NoError(t, err, fenStr)
		require.Equal(t, fenStr, board.String())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, bad := range []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1", // 7 ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"9/8/8/8/8/8/8/8 w - - 0 1",
	} {
		_, err := Parse(bad)
		require.Error(t, err, "fen %q", bad)
	}
}

func TestApplyPawnPush(t *testing.T) {
	board, err := Parse(startPos)
	require.NoError(t, err)
	require.NoError(t, board.ApplyUCI("e2e4"))
	require.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", board.String())
	require.False(t, board.WhiteToMove())
}

func TestApplyCapture(t *testing.T) {
	board, err := Parse("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)
	require.NoError(t, board.ApplyUCI("e4d5"))
	require.Equal(t, "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2", board.String())
}

func TestApplyEnPassant(t *testing.T) {
	board, err := Parse("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	require.NoError(t, err)
	require.NoError(t, board.ApplyUCI("e5f6"))
	// The f5 pawn is removed.
	require.Equal(t, "rnbqkbnr/ppp1p1pp/5P2/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3", board.String())
}

func TestApplyKingsideCastle(t *testing.T) {
	board, err := Parse("r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	require.NoError(t, err)
	require.NoError(t, board.ApplyUCI("e1g1"))
	require.Equal(t, "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 5 4", board.String())
}

func TestApplyQueensideCastle(t *testing.T) {
	board, err := Parse("r3kbnr/pppqpppp/2n5/3p1b2/3P1B2/2N5/PPPQPPPP/R3KBNR b KQkq - 6 5")
	require.NoError(t, err)
	require.NoError(t, board.ApplyUCI("e8c8"))
	require.Equal(t, "2kr1bnr/pppqpppp/2n5/3p1b2/3P1B2/2N5/PPPQPPPP/R3KBNR w KQ - 7 6", board.String())
}

func TestApplyPromotion(t *testing.T) {
	board, err := Parse("8/P7/8/8/8/5k2/8/6K1 w - - 0 60")
	require.NoError(t, err)
	require.NoError(t, board.ApplyUCI("a7a8q"))
	require.Equal(t, "Q7/8/8/8/8/5k2/8/6K1 b - - 0 60", board.String())
}

func TestApplyRookMoveDropsCastlingRight(t *testing.T) {
	board, err := Parse("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 30")
	require.NoError(t, err)
	require.NoError(t, board.ApplyUCI("h1h8"))
	// White kingside right gone with the rook, black kingside right gone
	// with the captured rook.
	require.Equal(t, "r3k2R/8/8/8/8/8/8/R3K3 b Qq - 0 30", board.String())
}

func TestApplyRejectsBadMoves(t *testing.T) {
	board, err := Parse(startPos)
	require.NoError(t, err)
	for _, bad := range []string{"", "e2", "e2e", "i2i4", "e3e4", "e7e8x"} {
		require.Error(t, board.ApplyUCI(bad), "move %q", bad)
	}
}

func TestAfterSetupMove(t *testing.T) {
	board, err := AfterSetupMove(startPos, []string{"e2e4", "e7e5"})
	require.NoError(t, err)
	require.False(t, board.WhiteToMove())
	require.True(t, strings.HasPrefix(board.String(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b"))
}

func TestRender(t *testing.T) {
	board, err := Parse("8/8/8/8/8/5k2/7q/6K1 w - - 4 50")
	require.NoError(t, err)
	rendered := board.Render()
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 9)
	require.Contains(t, lines[5], "♚")
	require.Contains(t, lines[6], "♛")
	require.Contains(t, lines[7], "♔")
	require.Equal(t, "  a b c d e f g h", lines[8])
}
