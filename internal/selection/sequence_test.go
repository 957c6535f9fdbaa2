package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"puzzlebook/internal/puzzle"
)

func TestOrderProgressiveSortsByRating(t *testing.T) {
	in := []puzzle.Record{
		{ID: "c", Rating: 1800},
		{ID: "a", Rating: 1200},
		{ID: "b", Rating: 1500},
	}
	out := Order(in, true)
	require.Equal(t, []string{"a", "b", "c"}, ids(out))
	// Input is untouched.
	require.Equal(t, "c", in[0].ID)
}

func TestOrderProgressiveTiesBrokenByID(t *testing.T) {
	in := []puzzle.Record{
		{ID: "z", Rating: 1500},
		{ID: "a", Rating: 1500},
		{ID: "m", Rating: 1500},
	}
	require.Equal(t, []string{"a", "m", "z"}, ids(Order(in, true)))
}

func TestOrderProgressiveUnratedSortLast(t *testing.T) {
	in := []puzzle.Record{
		{ID: "unrated"},
		{ID: "rated", Rating: 2400},
	}
	require.Equal(t, []string{"rated", "unrated"}, ids(Order(in, true)))
}

func TestOrderStablePreservesArrivalOrder(t *testing.T) {
	in := []puzzle.Record{
		{ID: "b", Rating: 1900},
		{ID: "a", Rating: 1100},
	}
	require.Equal(t, []string{"b", "a"}, ids(Order(in, false)))
}

func ids(records []puzzle.Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.ID
	}
	return out
}
