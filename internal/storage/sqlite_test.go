package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveRun(Run{LevelID: "1_1", PowerUp: "regular", Power: 41.1, Target: "distance", Trials: 10})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()
	r, err := store.RunByID(id)
	if err != nil || r == nil {
		t.Fatalf("RunByID() after reopen = %v, %v", r, err)
	}
}

func TestStoreSaveAndRetrieveRun(t *testing.T) {
	store := openStore(t)

	in := Run{
		LevelID:     "3_7",
		Course:      "3",
		Level:       "7",
		PowerUp:     "sticky",
		Power:       39,
		Target:      "distance",
		Start:       -10,
		Trials:      1800,
		HasBest:     true,
		BestAngle:   42.3,
		BestScore:   1234.5,
		BestReason:  "stationary",
		Recommended: 41.1,
		Elapsed:     1500 * time.Millisecond,
	}
	id, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run id %q is not a UUID: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	in.ID = id
	got.CreatedAt = time.Time{}
	if *got != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, in)
	}
}

func TestStoreRunWithoutBest(t *testing.T) {
	store := openStore(t)

	id, err := store.SaveRun(Run{LevelID: "1_1", PowerUp: "regular", Power: 25, Target: "distance", Trials: 5})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.HasBest {
		t.Errorf("expected no best, got %+v", got)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openStore(t)

	got, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openStore(t)

	for i, lvl := range []string{"1_1", "1_2", "1_1", "2_1", "1_1"} {
		if _, err := store.SaveRun(Run{LevelID: lvl, PowerUp: "regular", Power: 25, Target: "distance", Trials: i + 1}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	if all[0].Trials != 5 || all[1].Trials != 4 || all[2].Trials != 3 {
		t.Errorf("expected newest first, got trials %d %d %d", all[0].Trials, all[1].Trials, all[2].Trials)
	}

	one, err := store.RecentRuns("1_1", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(one) != 3 {
		t.Fatalf("expected 3 runs of 1_1, got %d", len(one))
	}
	for _, r := range one {
		if r.LevelID != "1_1" {
			t.Errorf("unexpected level %s", r.LevelID)
		}
	}
}

func TestStoreSpreads(t *testing.T) {
	store := openStore(t)
	id, err := store.SaveRun(Run{LevelID: "1_1", PowerUp: "regular", Power: 25, Target: "distance"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	in := []SpreadRow{
		{RunID: id, Width: 40, Angle: 12.5, Sum: 900},
		{RunID: id, Width: 35, Angle: 12.3, Sum: 700},
	}
	if err := store.SaveSpreads(id, in); err != nil {
		t.Fatalf("SaveSpreads() failed: %v", err)
	}

	got, err := store.SpreadsForRun(id)
	if err != nil {
		t.Fatalf("SpreadsForRun() failed: %v", err)
	}
	if len(got) != 2 || got[0] != in[1] || got[1] != in[0] {
		t.Errorf("expected ascending width, got %+v", got)
	}

	other, err := store.SpreadsForRun(uuid.NewString())
	if err != nil {
		t.Fatalf("SpreadsForRun() failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no spreads for unknown run, got %d", len(other))
	}
}

func TestStoreStats(t *testing.T) {
	store := openStore(t)
	runs := []Run{
		{LevelID: "1_1", Trials: 100, HasBest: true, BestScore: 50},
		{LevelID: "1_1", Trials: 200, HasBest: true, BestScore: 20},
		{LevelID: "1_1", Trials: 300},
		{LevelID: "2_1", Trials: 10},
	}
	for _, r := range runs {
		r.PowerUp, r.Target = "regular", "distance"
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(stats))
	}
	s := stats["1_1"]
	if s.Runs != 3 || s.Trials != 600 || s.BestScore != 20 {
		t.Errorf("unexpected 1_1 stats %+v", *s)
	}
	if stats["2_1"].BestScore != 0 {
		t.Errorf("level without a best should report 0, got %v", stats["2_1"].BestScore)
	}
}
