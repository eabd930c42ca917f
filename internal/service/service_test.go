package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"screenguess/internal/database"
	"screenguess/internal/models"
	"screenguess/internal/repository"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func testGame(id int64, name string) models.Game {
	return models.Game{
		ID:       id,
		Name:     name,
		Year:     2000 + int(id),
		Platform: "PC",
		Genre:    "Puzzle",
		Rating:   80 + int(id),
		Screenshots: []string{
			fmt.Sprintf("%d/1.jpg", id), fmt.Sprintf("%d/2.jpg", id), fmt.Sprintf("%d/3.jpg", id),
			fmt.Sprintf("%d/4.jpg", id), fmt.Sprintf("%d/5.jpg", id),
		},
		Cover:   fmt.Sprintf("%d/cover.jpg", id),
		Summary: name + " is a game about " + name + ".",
	}
}

var testNames = []string{"Portal", "Braid", "Celeste", "Hades", "Limbo", "Tetris", "Doom", "Inside"}

func testCatalog() []models.Game {
	games := make([]models.Game, len(testNames))
	for i, name := range testNames {
		games[i] = testGame(int64(i+1), name)
	}
	return games
}

// newTestCatalog stores games in db and returns a loaded catalog service
func newTestCatalog(t *testing.T, db *database.DB, games []models.Game) *CatalogService {
	t.Helper()
	repo := repository.NewGameRepository(db)
	if len(games) > 0 {
		if _, err := repo.UpsertMany(games, "test"); err != nil {
			t.Fatalf("Failed to seed games: %v", err)
		}
	}
	catalog := NewCatalogService(repo, nil)
	if err := catalog.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return catalog
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "valid", input: `[{"id":1,"name":"Portal"},{"id":2,"name":"Braid"}]`, want: 2},
		{name: "not json", input: `games`, wantErr: true},
		{name: "empty array", input: `[]`, wantErr: true},
		{name: "missing id", input: `[{"name":"Portal"}]`, wantErr: true},
		{name: "blank name", input: `[{"id":1,"name":"  "}]`, wantErr: true},
		{name: "duplicate id", input: `[{"id":1,"name":"Portal"},{"id":1,"name":"Braid"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games, err := ParseCatalog(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCatalog() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(games) != tt.want {
				t.Errorf("ParseCatalog() returned %d games, want %d", len(games), tt.want)
			}
		})
	}
}

func TestCatalogFiltersUnplayableGames(t *testing.T) {
	db := openTestDB(t)
	short := testGame(9, "Fez")
	short.Screenshots = short.Screenshots[:3]

	catalog := newTestCatalog(t, db, append(testCatalog(), short))

	if got := len(catalog.Games()); got != len(testNames) {
		t.Errorf("Games() returned %d, want %d", got, len(testNames))
	}
	if _, ok := catalog.Game(9); ok {
		t.Error("a game with three screenshots should not be playable")
	}

	summaries := catalog.Summaries()
	if summaries[0].Name != "Braid" || summaries[len(summaries)-1].Name != "Tetris" {
		t.Errorf("Summaries() not sorted by name: %+v", summaries)
	}
}

func TestCatalogImportReloads(t *testing.T) {
	db := openTestDB(t)
	catalog := newTestCatalog(t, db, nil)

	if len(catalog.Games()) != 0 {
		t.Fatal("expected an empty catalog")
	}

	body := `[{"id":42,"name":"Outer Wilds","screenshots":["a","b","c","d","e"]}]`
	n, err := catalog.Import(strings.NewReader(body), "admin")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Import() = %d, want 1", n)
	}
	if g, ok := catalog.Game(42); !ok || g.Name != "Outer Wilds" {
		t.Errorf("imported game not visible: %+v, %v", g, ok)
	}
}

func TestCatalogSeedFromFile(t *testing.T) {
	db := openTestDB(t)
	catalog := newTestCatalog(t, db, nil)
	dir := t.TempDir()

	n, err := catalog.SeedFromFile(filepath.Join(dir, "missing.json"))
	if err != nil || n != 0 {
		t.Fatalf("SeedFromFile(missing) = %d, %v", n, err)
	}

	path := filepath.Join(dir, "catalog.json")
	body := `[{"id":1,"name":"Portal","screenshots":["a","b","c","d","e"]},{"id":2,"name":"Braid","screenshots":["a","b","c","d","e"]}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err = catalog.SeedFromFile(path)
	if err != nil || n != 2 {
		t.Fatalf("SeedFromFile() = %d, %v, want 2", n, err)
	}

	n, err = catalog.SeedFromFile(path)
	if err != nil || n != 0 {
		t.Errorf("second SeedFromFile() = %d, %v, want 0 (store already seeded)", n, err)
	}
}

func TestCatalogImportRejectsEmpty(t *testing.T) {
	db := openTestDB(t)
	catalog := newTestCatalog(t, db, nil)

	if _, err := catalog.Import(strings.NewReader(`[]`), "admin"); !errors.Is(err, ErrCatalogEmpty) {
		t.Errorf("Import([]) error = %v, want ErrCatalogEmpty", err)
	}
}
