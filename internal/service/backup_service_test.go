package service

import (
	"bytes"
	"path/filepath"
	"testing"

	"screenguess/internal/models"
	"screenguess/internal/repository"
)

func TestBackupRoundTrip(t *testing.T) {
	src := openTestDB(t)
	newTestCatalog(t, src, testCatalog())

	states := repository.NewStateRepository(src)
	if err := states.Set("p1", "endless_high_score", "42"); err != nil {
		t.Fatal(err)
	}
	if err := repository.NewShareRepository(src).Create(&models.SharedRun{
		ID: "abcdefghij", PlayerID: "p1", Nickname: "Quiet Heron", Score: 42, History: []models.HistoryEntry{},
	}); err != nil {
		t.Fatal(err)
	}
	if err := repository.NewProgressRepository(src).Save(models.LevelResult{
		PlayerID: "p1", Level: 1, GameID: 1, Status: "won", GuessesUsed: 2,
	}); err != nil {
		t.Fatal(err)
	}
	if err := repository.NewSettingsRepository(src).SetStandardOrder([]int64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewBackupService(src, nil).ExportToWriter(&buf); err != nil {
		t.Fatalf("ExportToWriter() error = %v", err)
	}

	dst := openTestDB(t)
	if err := NewBackupService(dst, nil).ImportFromReader(&buf); err != nil {
		t.Fatalf("ImportFromReader() error = %v", err)
	}

	games, _ := repository.NewGameRepository(dst).GetAll()
	if len(games) != len(testNames) {
		t.Errorf("restored %d games, want %d", len(games), len(testNames))
	}
	value, found, _ := repository.NewStateRepository(dst).Get("p1", "endless_high_score")
	if !found || value != "42" {
		t.Errorf("restored state = %q, %v", value, found)
	}
	run, err := repository.NewShareRepository(dst).GetByID("abcdefghij")
	if err != nil || run.Score != 42 {
		t.Errorf("restored share = %+v, %v", run, err)
	}
	progress, _ := repository.NewProgressRepository(dst).GetByPlayer("p1")
	if progress[1].GuessesUsed != 2 {
		t.Errorf("restored progress = %+v", progress)
	}
	order, _ := repository.NewSettingsRepository(dst).GetStandardOrder()
	if len(order) != 3 {
		t.Errorf("restored order = %v", order)
	}
}

func TestBackupFileAndClear(t *testing.T) {
	db := openTestDB(t)
	newTestCatalog(t, db, testCatalog())
	if err := repository.NewStateRepository(db).Set("p1", "endless_high_score", "7"); err != nil {
		t.Fatal(err)
	}

	svc := NewBackupService(db, nil)
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := svc.Export(path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if err := svc.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	records, _ := repository.NewStateRepository(db).All()
	if len(records) != 0 {
		t.Errorf("Clear() left %d state records", len(records))
	}
	games, _ := repository.NewGameRepository(db).GetAll()
	if len(games) != len(testNames) {
		t.Error("Clear() must keep the catalog")
	}

	if err := svc.Import(path); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	records, _ = repository.NewStateRepository(db).All()
	if len(records) != 1 {
		t.Errorf("Import() restored %d state records, want 1", len(records))
	}
}
