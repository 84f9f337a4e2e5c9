// Turning collected gene ids into sequence records

package model

import (
	"context"
	"fmt"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

type GeneSource interface {
	Gene(ctx context.Context, geneID string) (*Gene, error)
}

type SequenceSource interface {
	GenomeSequence(ctx context.Context, genomeID string) ([]byte, error)
}

// ExtractRegion copies [start, stop) out of a circular genome. When start is
// past stop the region wraps the origin: genome[start:] + genome[:stop].
func ExtractRegion(genome []byte, start, stop int) ([]byte, error) {
	n := len(genome)
	if start < 0 || stop < 0 || start > n || stop > n {
		return nil, fmt.Errorf("coordinates %d..%d outside genome of length %d", start, stop, n)
	}
	if start <= stop {
		return append(make([]byte, 0, stop-start), genome[start:stop]...), nil
	}
	out := make([]byte, 0, n-start+stop)
	out = append(out, genome[start:]...)
	return append(out, genome[:stop]...), nil
}

// ReverseComplement returns the reverse complement of a nucleotide sequence
// using the IUPAC-redundant DNA alphabet, either case. b is not modified. A
// byte outside the alphabet is an error: the complement table has no entry
// for it.
func ReverseComplement(b []byte) ([]byte, error) {
	for i, c := range b {
		if !alphabet.DNAredundant.IsValid(alphabet.Letter(c)) {
			return nil, fmt.Errorf("invalid nucleotide %q at offset %d", c, i)
		}
	}
	s := linear.NewSeq("", alphabet.BytesToLetters(append([]byte(nil), b...)), alphabet.DNAredundant)
	s.RevComp()
	return append([]byte(nil), alphabet.LettersToBytes(s.Seq)...), nil
}

// SequenceMaterializer resolves gene ids to records. In nucleotide mode,
// Sequences should cache genomes for the duration of one export pass.
type SequenceMaterializer struct {
	Genes     GeneSource
	Sequences SequenceSource
	AminoAcid bool
}

func (m *SequenceMaterializer) Materialize(ctx context.Context, geneID string) (*OutputRecord, error) {
	gene, err := m.Genes.Gene(ctx, geneID)
	if err != nil {
		return nil, &RepositoryError{Op: "fetch gene " + geneID, Err: err}
	}

	rec := &OutputRecord{
		ID:        gene.Name + "|",
		Name:      gene.GenomeID,
		AminoAcid: m.AminoAcid,
	}

	if m.AminoAcid {
		// Translations are stored in coding orientation already.
		rec.Description = fmt.Sprintf("Amino acid sequence of gene %s from phage %s|%s|%d|%d",
			gene.Name, gene.GenomeID, gene.Orientation, gene.Start, gene.Stop)
		rec.Sequence = []byte(gene.Translation)
		return rec, nil
	}

	if !gene.Orientation.Valid() {
		return nil, &MaterializationError{GeneID: geneID, Reason: fmt.Sprintf("unknown orientation %q", gene.Orientation)}
	}

	genome, err := m.Sequences.GenomeSequence(ctx, gene.GenomeID)
	if err != nil {
		return nil, &RepositoryError{Op: "fetch sequence of " + gene.GenomeID, Err: err}
	}

	region, err := ExtractRegion(genome, gene.Start, gene.Stop)
	if err != nil {
		return nil, &MaterializationError{GeneID: geneID, Reason: err.Error()}
	}
	if gene.Orientation == Reverse {
		if region, err = ReverseComplement(region); err != nil {
			return nil, &MaterializationError{GeneID: geneID, Reason: err.Error()}
		}
	}

	rec.Description = fmt.Sprintf("Nucleotide sequence of gene %s from %s|%s|%d|%d",
		gene.Name, gene.GenomeID, gene.Orientation, gene.Start, gene.Stop)
	rec.Sequence = region
	return rec, nil
}

// MaterializeAll stops at the first failing gene.
func (m *SequenceMaterializer) MaterializeAll(ctx context.Context, geneIDs []string) ([]*OutputRecord, error) {
	recs := make([]*OutputRecord, 0, len(geneIDs))
	for _, id := range geneIDs {
		rec, err := m.Materialize(ctx, id)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
