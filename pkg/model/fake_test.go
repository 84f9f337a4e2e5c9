package model

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
)

var errNotFound = errors.New("not found")

// fakeRepo is an in-memory repository for component tests.
type fakeRepo struct {
	genomes   []*Genome
	genes     []*Gene
	sequences map[string]string

	seqFetches map[string]int
	failGenes  error
}

func strPtr(s string) *string { return &s }

func (f *fakeRepo) Clusters(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	for _, g := range f.genomes {
		if g.Cluster != nil && strings.HasPrefix(*g.Cluster, prefix) && !slices.Contains(out, *g.Cluster) {
			out = append(out, *g.Cluster)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeRepo) Genomes(ctx context.Context, p *Predicate) ([]*Genome, error) {
	var out []*Genome
	for _, g := range f.genomes {
		if p.Match(g) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) Genes(ctx context.Context, genomeID string, families []string) ([]GeneFamily, error) {
	if f.failGenes != nil {
		return nil, f.failGenes
	}
	var genes []*Gene
	for _, g := range f.genes {
		if g.GenomeID != genomeID {
			continue
		}
		if len(families) > 0 && !slices.Contains(families, g.Family) {
			continue
		}
		genes = append(genes, g)
	}
	sort.SliceStable(genes, func(i, j int) bool { return genes[i].Start < genes[j].Start })

	out := make([]GeneFamily, 0, len(genes))
	for _, g := range genes {
		out = append(out, GeneFamily{GeneID: g.ID, Family: g.Family})
	}
	return out, nil
}

func (f *fakeRepo) Gene(ctx context.Context, geneID string) (*Gene, error) {
	for _, g := range f.genes {
		if g.ID == geneID {
			return g, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) GenomeSequence(ctx context.Context, genomeID string) ([]byte, error) {
	if f.seqFetches == nil {
		f.seqFetches = make(map[string]int)
	}
	f.seqFetches[genomeID]++
	s, ok := f.sequences[genomeID]
	if !ok {
		return nil, errNotFound
	}
	return []byte(s), nil
}
