// Package archive writes materialized records into a run-scoped directory
// tree of FASTA files.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/klauspost/pgzip"
	"github.com/yumyai/phamfasta/internal/util"
	"github.com/yumyai/phamfasta/logger"
	"github.com/yumyai/phamfasta/pkg/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const DefaultLineWidth = 60

// Materializer turns a group's gene ids into records.
type Materializer interface {
	MaterializeAll(ctx context.Context, geneIDs []string) ([]*model.OutputRecord, error)
}

type Options struct {
	Gzip      bool
	LineWidth int
}

// FileResult is the outcome for one output file.
type FileResult struct {
	Key     string `json:"key"`
	Path    string `json:"path"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

type Report struct {
	RunID        string       `json:"run_id"`
	Dir          string       `json:"dir"`
	Organization string       `json:"organization"`
	Files        []FileResult `json:"files"`
}

func (r *Report) Records() int {
	n := 0
	for _, f := range r.Files {
		n += f.Records
	}
	return n
}

// Exporter writes one run into <root>/<runID>.
type Exporter struct {
	RunDir string
	RunID  string
	opts   Options
}

func NewExporter(root, runID string, opts Options) *Exporter {
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultLineWidth
	}
	return &Exporter{
		RunDir: filepath.Join(root, runID),
		RunID:  runID,
		opts:   opts,
	}
}

func (e *Exporter) ext() string {
	if e.opts.Gzip {
		return GzExt
	}
	return Ext
}

// Export materializes and writes every group. A repository or
// materialization error stops the run, as does a run directory that cannot
// be created. A failed file is recorded in the report and the remaining
// groups are still written. The returned error combines all of them.
func (e *Exporter) Export(ctx context.Context, grouping model.Grouping, m Materializer) (*Report, error) {
	report := &Report{
		RunID:        e.RunID,
		Dir:          e.RunDir,
		Organization: grouping.Organization().String(),
	}
	if err := util.EnsureDir(e.RunDir); err != nil {
		return report, fmt.Errorf("create run directory %s: %w", e.RunDir, err)
	}

	var fileErrs error
	write := func(key, path string, geneIDs []string) error {
		recs, err := m.MaterializeAll(ctx, geneIDs)
		if err != nil {
			return err
		}
		res := e.writeFile(key, path, recs)
		if res.Error != "" {
			fileErrs = multierr.Append(fileErrs, &model.ExportError{Key: key, Path: path, Err: errors.New(res.Error)})
		}
		report.Files = append(report.Files, res)
		return nil
	}

	switch g := grouping.(type) {
	case *model.GroupedByGenome:
		seen := make(map[string]bool)
		for _, grp := range g.Groups {
			path := GenomePath(e.RunDir, grp.Genome, e.ext())
			if seen[path] {
				path = GenomePathWithID(e.RunDir, grp.Genome, e.ext())
			}
			seen[path] = true
			if err := write(grp.Genome.Name, path, grp.GeneIDs); err != nil {
				return report, multierr.Append(fileErrs, err)
			}
		}
	case *model.GroupedByFamily:
		for _, grp := range g.Groups {
			path := FamilyPath(e.RunDir, grp.Family, e.ext())
			if err := write(grp.Family, path, grp.GeneIDs); err != nil {
				return report, multierr.Append(fileErrs, err)
			}
		}
	default:
		return report, fmt.Errorf("unknown grouping %T", grouping)
	}

	return report, fileErrs
}

func (e *Exporter) writeFile(key, path string, recs []*model.OutputRecord) FileResult {
	res := FileResult{Key: key, Path: path}

	err := util.WriteFileAtomic(path, func(w io.Writer) error {
		return e.encode(w, recs)
	})
	if err != nil {
		res.Error = err.Error()
		logger.Error("Failed to write FASTA file", zap.String("key", key), zap.String("path", path), zap.Error(err))
		return res
	}

	res.Records = len(recs)
	logger.Info("FASTA file created", zap.String("key", key), zap.String("path", path), zap.Int("records", res.Records))
	return res
}

func (e *Exporter) encode(w io.Writer, recs []*model.OutputRecord) error {
	var zw *pgzip.Writer
	if e.opts.Gzip {
		zw = pgzip.NewWriter(w)
		w = zw
	}

	if err := WriteRecords(w, recs, e.opts.LineWidth); err != nil {
		return err
	}

	if zw != nil {
		return zw.Close()
	}
	return nil
}

// WriteRecords writes recs as FASTA, wrapping sequence lines at width. Every
// record, the last included, ends with a newline.
func WriteRecords(w io.Writer, recs []*model.OutputRecord, width int) error {
	var buf bytes.Buffer
	fw := fasta.NewWriter(&buf, width)
	for _, rec := range recs {
		buf.Reset()
		if _, err := fw.Write(ToSeq(rec)); err != nil {
			return fmt.Errorf("write record %s: %w", rec.ID, err)
		}
		if !bytes.HasSuffix(buf.Bytes(), []byte{'\n'}) {
			buf.WriteByte('\n')
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func ToSeq(rec *model.OutputRecord) *linear.Seq {
	alpha := alphabet.Alphabet(alphabet.DNAredundant)
	if rec.AminoAcid {
		alpha = alphabet.Protein
	}
	s := linear.NewSeq(rec.ID, alphabet.BytesToLetters(rec.Sequence), alpha)
	s.Desc = rec.Description
	return s
}
