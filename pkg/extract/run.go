// Package extract runs one selection-to-archive pass: expand clusters, build
// the genome predicate, collect genes, materialize and export them.
package extract

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yumyai/phamfasta/logger"
	"github.com/yumyai/phamfasta/pkg/archive"
	"github.com/yumyai/phamfasta/pkg/db"
	"github.com/yumyai/phamfasta/pkg/model"
	"go.uber.org/zap"
)

// Repository is everything a run reads from the backing store.
type Repository interface {
	model.ClusterLister
	model.GeneLister
	model.GeneSource
	model.SequenceSource
	Genomes(ctx context.Context, p *model.Predicate) ([]*model.Genome, error)
}

type Options struct {
	ArchiveRoot string
	RunID       string // generated when empty
	Archive     archive.Options
	CacheSize   int
}

type Runner struct {
	Repo Repository
	Opts Options
}

func NewRunID() string {
	return uuid.New().String()
}

// ValidateRunID checks that id names a single directory under the archive
// root. An empty id is valid; Run generates one.
func ValidateRunID(id string) error {
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return &model.SelectionError{Field: "run_id", Value: id, Msg: "must be a plain directory name"}
	}
	return nil
}

// Select expands the criteria and returns the matching genomes together with
// the predicate that matched them.
func (r *Runner) Select(ctx context.Context, c *model.SelectionCriteria) ([]*model.Genome, *model.Predicate, error) {
	expander := &model.ClusterExpander{Source: r.Repo}
	exp, err := expander.Expand(ctx, c.Clusters)
	if err != nil {
		return nil, nil, err
	}

	pred := model.BuildPredicate(exp, len(c.Clusters), c.Names)
	genomes, err := r.Repo.Genomes(ctx, pred)
	if err != nil {
		return nil, pred, &model.RepositoryError{Op: "list genomes", Err: err}
	}
	return genomes, pred, nil
}

// Run executes one export pass. criteria is not modified and can seed the
// next run. The report is returned even when err is non-nil, listing the
// files written before the failure.
func (r *Runner) Run(ctx context.Context, c *model.SelectionCriteria, org model.Organization) (*archive.Report, error) {
	if err := ValidateRunID(r.Opts.RunID); err != nil {
		return nil, err
	}

	start := time.Now()
	crit := c.Clone()
	crit.Normalize()

	runID := r.Opts.RunID
	if runID == "" {
		runID = NewRunID()
	}
	logger.Info("Query started.",
		zap.String("run_id", runID),
		zap.Strings("phages", crit.Names),
		zap.Strings("clusters", crit.Clusters),
		zap.Strings("phams", crit.Families),
		zap.Bool("amino_acid", crit.AminoAcid),
		zap.Stringer("organization", org),
	)

	genomes, _, err := r.Select(ctx, crit)
	if err != nil {
		return nil, err
	}

	collector := &model.GeneCollector{Source: r.Repo}
	grouping, err := collector.Collect(ctx, genomes, crit.Families, org)
	if err != nil {
		return nil, err
	}
	logger.Info("Query complete.", zap.Int("genomes", len(genomes)), zap.Int("groups", grouping.Len()))

	cache, err := db.NewSequenceCache(r.Repo, r.Opts.CacheSize)
	if err != nil {
		return nil, err
	}
	materializer := &model.SequenceMaterializer{
		Genes:     r.Repo,
		Sequences: cache,
		AminoAcid: crit.AminoAcid,
	}

	exporter := archive.NewExporter(r.Opts.ArchiveRoot, runID, r.Opts.Archive)
	report, err := exporter.Export(ctx, grouping, materializer)

	logger.Info("Query exited.",
		zap.String("run_id", runID),
		zap.Int("files", len(report.Files)),
		zap.Int("records", report.Records()),
		zap.Int("cache_misses", cache.Misses),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	return report, err
}
