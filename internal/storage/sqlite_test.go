package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
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

func TestStoreOpenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := OpenContext(ctx, filepath.Join(t.TempDir(), "test.db")); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestRetryWarningsUseInjectedLogger(t *testing.T) {
	prev := logger
	t.Cleanup(func() { logger = prev })

	var buf bytes.Buffer
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel}))
	SetLogger(nil) // ignored

	retryNotify("scores.db")(errors.New("database is locked"), 20*time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "database is locked") || !strings.Contains(out, "scores.db") {
		t.Errorf("retry warning not written to injected logger: %q", out)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct{ score, lines, level int }{{100, 3, 1}, {50, 1, 1}, {200, 12, 2}} {
		if _, err := store.SaveScore("blockfall", s.score, s.lines, s.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("blockfall_ai", 500, 30, 4); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("blockfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Lines != 12 || scores[0].Level != 2 {
		t.Errorf("Expected lines 12 level 2, got %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be parsed")
	}

	aiScores, err := store.TopScores("blockfall_ai", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(aiScores) != 1 {
		t.Errorf("Expected 1 autoplay score, got %d", len(aiScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, i, 1)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("blockfall", 100, 1, 1)
	store.SaveScore("blockfall", 300, 2, 1)
	store.SaveScore("blockfall", 200, 2, 1)

	high, err = store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockfall_levels", 100, 1, 1)
	store.SaveLevelResult("blockfall_levels", core.LevelResult{Level: 1, Cleared: true})
	store.SaveScore("blockfall", 300, 3, 1)

	if err := store.ClearScores("blockfall_levels"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("blockfall_levels", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if best, _ := store.BestClearedLevel("blockfall_levels"); best != 0 {
		t.Errorf("Expected level results cleared, best = %d", best)
	}
	if scores, _ := store.TopScores("blockfall", 10); len(scores) != 1 {
		t.Errorf("Other games should not be affected by clearing")
	}
}

func TestStoreLevelResults(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestClearedLevel("blockfall_levels")
	if err != nil {
		t.Fatalf("BestClearedLevel() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 with no results, got %d", best)
	}

	results := []core.LevelResult{
		{Level: 1, Cleared: true, Score: 600, Lines: 4, Moves: 18},
		{Level: 2, Cleared: true, Score: 700, Lines: 3, Moves: 20},
		{Level: 3, Cleared: false, Score: 120, Lines: 1, Moves: 25},
	}
	for _, r := range results {
		if _, err := store.SaveLevelResult("blockfall_levels", r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	best, err = store.BestClearedLevel("blockfall_levels")
	if err != nil {
		t.Fatalf("BestClearedLevel() failed: %v", err)
	}
	if best != 2 {
		t.Errorf("Expected best cleared level 2, got %d", best)
	}

	recent, err := store.RecentLevelResults("blockfall_levels", 2)
	if err != nil {
		t.Fatalf("RecentLevelResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(recent))
	}
	if recent[0].Level != 3 || recent[0].Cleared || recent[0].Moves != 25 {
		t.Errorf("Expected failed level 3 first, got %+v", recent[0])
	}
	if recent[1].Level != 2 || !recent[1].Cleared {
		t.Errorf("Expected cleared level 2 second, got %+v", recent[1])
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockfall", 100, 4, 1)
	store.SaveScore("blockfall", 300, 9, 1)

	stats, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.MostLines != 9 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %v", stats.AvgScore)
	}
	if time.Since(stats.LastPlayed) > 24*time.Hour {
		t.Errorf("LastPlayed not parsed: %v", stats.LastPlayed)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	if got := parseTimestamp("2024-05-01 12:30:00"); !got.Equal(want) {
		t.Errorf("string: got %v", got)
	}
	if got := parseTimestamp(want); !got.Equal(want) {
		t.Errorf("time: got %v", got)
	}
	if got := parseTimestamp(42); !got.IsZero() {
		t.Errorf("other: got %v", got)
	}
}
