package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestInsertAndListRuns(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "puzzlebook.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Unix(1700000000, 0).UTC()
	for i := 0; i < 3; i++ {
		run := Run{
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			Criteria:    "mate-in-2",
			Requested:   20,
			Obtained:    20 - i,
			Shortfall:   i,
			Seed:        int64(100 + i),
			MinRating:   1200,
			MaxRating:   1800,
			Progressive: i%2 == 0,
			CorpusPath:  "corpus.csv",
			OutputPath:  "out.tex",
		}
		if _, err := st.InsertRun(ctx, run); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].Obtained != 18 || runs[1].Obtained != 19 {
		t.Fatalf("unexpected order: %+v", runs)
	}
	if !runs[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("unexpected created_at: %v", runs[0].CreatedAt)
	}
	if !runs[0].Progressive || runs[1].Progressive {
		t.Fatalf("unexpected progressive flags: %+v", runs)
	}
	if runs[0].Criteria != "mate-in-2" || runs[0].Seed != 102 {
		t.Fatalf("unexpected run fields: %+v", runs[0])
	}
}
