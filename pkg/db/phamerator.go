package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yumyai/phamfasta/pkg/model"
)

var ErrNotFound = errors.New("not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func placeholders(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?,", n), ",") + ")"
}

// Clusters lists distinct assigned clusters that start with prefix.
func (s *Store) Clusters(ctx context.Context, prefix string) ([]string, error) {
	const q = `SELECT DISTINCT cluster FROM phage
		WHERE cluster IS NOT NULL AND cluster LIKE ? ESCAPE '\'
		ORDER BY cluster`

	rows, err := s.query(ctx, q, likeEscaper.Replace(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("cluster query failed: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan cluster row: %w", err)
		}
		// LIKE is case-insensitive on SQLite; keep the exact prefix semantics.
		if strings.HasPrefix(c, prefix) {
			results = append(results, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cluster rows error: %w", err)
	}
	return results, nil
}

// Genomes lists the genomes matching p, ordered by genome id.
func (s *Store) Genomes(ctx context.Context, p *model.Predicate) ([]*model.Genome, error) {
	q := `SELECT phage_id, name, cluster FROM phage`
	where, args := p.SQL("cluster", "name")
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY phage_id"

	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("genome query failed: %w", err)
	}
	defer rows.Close()

	var results []*model.Genome
	for rows.Next() {
		var (
			g       model.Genome
			cluster sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Name, &cluster); err != nil {
			return nil, fmt.Errorf("failed to scan genome row: %w", err)
		}
		if cluster.Valid {
			c := cluster.String
			g.Cluster = &c
		}
		results = append(results, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("genome rows error: %w", err)
	}
	return results, nil
}

// Genes lists (gene, family) pairs of one genome ordered by start. Genes
// without a family are not listed.
func (s *Store) Genes(ctx context.Context, genomeID string, families []string) ([]model.GeneFamily, error) {
	q := `SELECT gene.gene_id, pham.name
		FROM gene
		JOIN pham ON pham.gene_id = gene.gene_id
		WHERE gene.phage_id = ?`
	args := []any{genomeID}

	switch len(families) {
	case 0:
	case 1:
		q += " AND pham.name = ?"
		args = append(args, families[0])
	default:
		q += " AND pham.name IN " + placeholders(len(families))
		for _, f := range families {
			args = append(args, f)
		}
	}
	q += " ORDER BY gene.start, gene.gene_id"

	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("gene query failed: %w", err)
	}
	defer rows.Close()

	var results []model.GeneFamily
	for rows.Next() {
		var gf model.GeneFamily
		if err := rows.Scan(&gf.GeneID, &gf.Family); err != nil {
			return nil, fmt.Errorf("failed to scan gene row: %w", err)
		}
		results = append(results, gf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("gene rows error: %w", err)
	}
	return results, nil
}

func (s *Store) Gene(ctx context.Context, geneID string) (*model.Gene, error) {
	const q = `SELECT gene.gene_id, gene.phage_id, gene.name, gene.start, gene.stop,
			gene.orientation, gene.translation, pham.name
		FROM gene
		LEFT JOIN pham ON pham.gene_id = gene.gene_id
		WHERE gene.gene_id = ?`

	var (
		g           model.Gene
		orientation string
		translation sql.NullString
		family      sql.NullString
	)
	err := s.queryRow(ctx, q, geneID).Scan(&g.ID, &g.GenomeID, &g.Name, &g.Start, &g.Stop,
		&orientation, &translation, &family)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("gene %s: %w", geneID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan gene %s: %w", geneID, err)
	}

	g.Orientation = model.ParseOrientation(orientation)
	g.Translation = translation.String
	g.Family = family.String
	return &g, nil
}

func (s *Store) GenomeSequence(ctx context.Context, genomeID string) ([]byte, error) {
	const q = `SELECT sequence FROM phage WHERE phage_id = ?`

	var seq sql.NullString
	err := s.queryRow(ctx, q, genomeID).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("genome %s: %w", genomeID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan sequence of %s: %w", genomeID, err)
	}
	return []byte(seq.String), nil
}
