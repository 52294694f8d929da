package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/skunk-squad/internal/scorecode"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestAdmitIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	r := scorecode.Record{Score: 1200, LevelReached: 2, Kills: 9, Timestamp: 1760000000, ChecksumSeed: 0xFFFFFFFF}

	added, err := store.Admit(ctx, "CODE1", r)
	if err != nil {
		t.Fatalf("Admit() failed: %v", err)
	}
	if !added {
		t.Error("Admit() = false, expected true for a new code")
	}

	added, err = store.Admit(ctx, "CODE1", r)
	if err != nil {
		t.Fatalf("Admit() failed: %v", err)
	}
	if added {
		t.Error("Admit() = true, expected false for a repeated code")
	}

	entries, err := store.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Top() returned %d entries, expected 1", len(entries))
	}
	if entries[0].Record != r {
		t.Errorf("Top()[0].Record = %+v, expected %+v", entries[0].Record, r)
	}
}

func TestTopOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rows := []struct {
		code  string
		score int64
		ts    int64
	}{
		{"A", 100, 50},
		{"B", 300, 90},
		{"C", 100, 20},
		{"D", 200, 10},
		{"E", 100, 20},
	}
	for _, row := range rows {
		if _, err := store.Admit(ctx, row.code, scorecode.Record{Score: row.score, LevelReached: 1, Timestamp: row.ts}); err != nil {
			t.Fatalf("Admit(%s) failed: %v", row.code, err)
		}
	}

	entries, err := store.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}

	expected := []string{"B", "D", "C", "E", "A"}
	if len(entries) != len(expected) {
		t.Fatalf("Top() returned %d entries, expected %d", len(entries), len(expected))
	}
	for i, code := range expected {
		if entries[i].Code != code {
			t.Errorf("Top()[%d].Code = %s, expected %s", i, entries[i].Code, code)
		}
	}

	limited, err := store.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Top(2) returned %d entries, expected 2", len(limited))
	}
}

func TestBestAndClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.Best(ctx); err != nil || ok {
		t.Errorf("Best() on empty board = ok %v err %v, expected false nil", ok, err)
	}

	store.Admit(ctx, "X", scorecode.Record{Score: 10, LevelReached: 1, Kills: 1})
	store.Admit(ctx, "Y", scorecode.Record{Score: 40, LevelReached: 3, Kills: 4})

	best, ok, err := store.Best(ctx)
	if err != nil || !ok {
		t.Fatalf("Best() = ok %v err %v", ok, err)
	}
	if best.Code != "Y" {
		t.Errorf("Best().Code = %s, expected Y", best.Code)
	}

	st, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.BestScore != 40 || st.TotalKills != 5 || st.MaxLevel != 3 {
		t.Errorf("Stats() = %+v", st)
	}
	if st.AvgScore != 25 {
		t.Errorf("Stats().AvgScore = %v, expected 25", st.AvgScore)
	}

	if _, ok, _ := store.ByCode(ctx, "X"); !ok {
		t.Error("ByCode(X) not found")
	}
	if _, ok, _ := store.ByCode(ctx, "missing"); ok {
		t.Error("ByCode(missing) found")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	entries, _ := store.Top(ctx, 10)
	if len(entries) != 0 {
		t.Errorf("Top() after Clear() returned %d entries, expected 0", len(entries))
	}
}

func TestStoreAsImporterSink(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	im := &scorecode.Importer{
		Codec: scorecode.Codec{Seed: 99},
		Limits: scorecode.Limits{
			Budgets:          []int{10},
			MaxPointsPerKill: 250,
			LevelClearBonus:  500,
		},
		Sink: store,
	}
	r := scorecode.Record{Score: 750, LevelReached: 1, Kills: 3, Timestamp: 1760000000}
	code, err := im.Codec.Encode(r)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if _, err := im.Import(ctx, code); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	e, ok, err := store.ByCode(ctx, code)
	if err != nil || !ok {
		t.Fatalf("ByCode() = ok %v err %v", ok, err)
	}
	if e.Record.Score != 750 {
		t.Errorf("stored score = %d, expected 750", e.Record.Score)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.skunk/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if expected := filepath.Join(home, ".skunk", "scores.db"); got != expected {
		t.Errorf("ExpandPath() = %s, expected %s", got, expected)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandPath() = %s, expected /tmp/x.db", got)
	}
}
