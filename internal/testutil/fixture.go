// Package testutil builds small Phamerator-shaped SQLite databases for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

const Schema = `
CREATE TABLE phage (
	phage_id TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	cluster  TEXT,
	sequence TEXT
);
CREATE TABLE gene (
	gene_id     TEXT PRIMARY KEY,
	phage_id    TEXT NOT NULL,
	name        TEXT NOT NULL,
	start       INTEGER NOT NULL,
	stop        INTEGER NOT NULL,
	orientation TEXT NOT NULL,
	translation TEXT
);
CREATE TABLE pham (
	gene_id TEXT NOT NULL,
	name    TEXT NOT NULL
);
`

type Phage struct {
	ID       string
	Name     string
	Cluster  string // empty means NULL (singleton)
	Sequence string
}

type Gene struct {
	ID          string
	PhageID     string
	Name        string
	Start, Stop int
	Orientation string
	Translation string
	Pham        string // empty means no pham row
}

// Seq100 is a 100 nt genome used by the default fixture.
var Seq100 = strings.Repeat("ACGTTGCAAC", 9) + "GGGGGTTTTT"

// DefaultPhages covers bare clusters, subclusters and a singleton.
var DefaultPhages = []Phage{
	{ID: "P01", Name: "Alpha", Cluster: "A", Sequence: "ATGAAACCCGGGTTTTAG"},
	{ID: "P02", Name: "Beta", Cluster: "A2", Sequence: "ATGCCCAAATAGGG"},
	{ID: "P03", Name: "Fox", Cluster: "F1", Sequence: "ATGGGGTAA"},
	{ID: "P04", Name: "Fern", Cluster: "F2", Sequence: "ATGTTTTAA"},
	{ID: "P05", Name: "Fig", Cluster: "F", Sequence: "ATGAAATAA"},
	{ID: "P06", Name: "Gus", Cluster: "G", Sequence: "ATGCCCTGA"},
	{ID: "P07", Name: "Solo", Sequence: Seq100},
}

// DefaultGenes are inserted out of start order on purpose.
var DefaultGenes = []Gene{
	{ID: "P01_3", PhageID: "P01", Name: "3", Start: 12, Stop: 18, Orientation: "F", Translation: "GF", Pham: "300"},
	{ID: "P01_1", PhageID: "P01", Name: "1", Start: 0, Stop: 6, Orientation: "F", Translation: "MK", Pham: "100"},
	{ID: "P01_2", PhageID: "P01", Name: "2", Start: 6, Stop: 12, Orientation: "R", Translation: "PG", Pham: "200"},
	{ID: "P02_1", PhageID: "P02", Name: "1", Start: 0, Stop: 12, Orientation: "F", Translation: "MPK", Pham: "100"},
	{ID: "P03_1", PhageID: "P03", Name: "1", Start: 0, Stop: 9, Orientation: "F", Translation: "MG", Pham: "100"},
	{ID: "P04_1", PhageID: "P04", Name: "1", Start: 0, Stop: 9, Orientation: "F", Translation: "MF", Pham: "400"},
	{ID: "P05_1", PhageID: "P05", Name: "1", Start: 0, Stop: 9, Orientation: "F", Translation: "MK", Pham: "100"},
	{ID: "P06_1", PhageID: "P06", Name: "1", Start: 0, Stop: 9, Orientation: "F", Translation: "MP", Pham: "500"},
	{ID: "P07_3", PhageID: "P07", Name: "3", Start: 50, Stop: 60, Orientation: "F", Translation: "AAA", Pham: "200"},
	{ID: "P07_1", PhageID: "P07", Name: "1", Start: 10, Stop: 30, Orientation: "R", Translation: "CCC", Pham: "100"},
	{ID: "P07_2", PhageID: "P07", Name: "2", Start: 90, Stop: 10, Orientation: "F", Translation: "DDD", Pham: "300"},
}

// NewDB writes a SQLite database into a temp dir and returns its path.
func NewDB(t testing.TB, phages []Phage, genes []Gene) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "phamerator.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	for _, p := range phages {
		var cluster any
		if p.Cluster != "" {
			cluster = p.Cluster
		}
		if _, err := db.Exec(`INSERT INTO phage (phage_id, name, cluster, sequence) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, cluster, p.Sequence); err != nil {
			t.Fatalf("insert phage %s: %v", p.ID, err)
		}
	}

	for _, g := range genes {
		if _, err := db.Exec(`INSERT INTO gene (gene_id, phage_id, name, start, stop, orientation, translation) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.PhageID, g.Name, g.Start, g.Stop, g.Orientation, g.Translation); err != nil {
			t.Fatalf("insert gene %s: %v", g.ID, err)
		}
		if g.Pham == "" {
			continue
		}
		if _, err := db.Exec(`INSERT INTO pham (gene_id, name) VALUES (?, ?)`, g.ID, g.Pham); err != nil {
			t.Fatalf("insert pham %s: %v", g.ID, err)
		}
	}

	return path
}

func DefaultDB(t testing.TB) string {
	return NewDB(t, DefaultPhages, DefaultGenes)
}
