package model

import (
	"context"
	"strings"

	"github.com/yumyai/phamfasta/logger"
	"go.uber.org/zap"
)

// Organization is the run-wide grouping axis for output files.
type Organization int

const (
	ByGenome Organization = iota
	ByFamily
)

func (o Organization) String() string {
	switch o {
	case ByGenome:
		return "genome"
	case ByFamily:
		return "family"
	default:
		return "unknown"
	}
}

// ParseOrganization accepts "genome"/"phage"/"0" and "family"/"pham"/"1".
func ParseOrganization(s string) (Organization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "genome", "phage", "0", "":
		return ByGenome, nil
	case "family", "pham", "1":
		return ByFamily, nil
	default:
		return ByGenome, &SelectionError{Field: "organization", Value: s, Msg: "expected genome or family"}
	}
}

// Grouping is either *GroupedByGenome or *GroupedByFamily.
type Grouping interface {
	Organization() Organization
	Len() int
	grouping()
}

type GenomeGroup struct {
	Genome  *Genome
	GeneIDs []string
}

// GroupedByGenome keeps groups in the order genomes were matched. Groups are
// keyed by genome id, so genomes sharing a name stay apart.
type GroupedByGenome struct {
	Groups []*GenomeGroup
	index  map[string]*GenomeGroup
	names  map[string]string
}

func (g *GroupedByGenome) Organization() Organization { return ByGenome }
func (g *GroupedByGenome) Len() int                   { return len(g.Groups) }
func (g *GroupedByGenome) grouping()                  {}

func (g *GroupedByGenome) add(genome *Genome, geneID string) {
	if g.index == nil {
		g.index = make(map[string]*GenomeGroup)
		g.names = make(map[string]string)
	}
	grp, ok := g.index[genome.ID]
	if !ok {
		if other, dup := g.names[genome.Name]; dup {
			logger.Warn("Genome name is not unique",
				zap.String("name", genome.Name), zap.String("genome", genome.ID), zap.String("first", other))
		} else {
			g.names[genome.Name] = genome.ID
		}
		grp = &GenomeGroup{Genome: genome}
		g.index[genome.ID] = grp
		g.Groups = append(g.Groups, grp)
	}
	grp.GeneIDs = append(grp.GeneIDs, geneID)
}

type FamilyGroup struct {
	Family  string
	GeneIDs []string
}

// GroupedByFamily keeps groups in the order families were first seen.
type GroupedByFamily struct {
	Groups []*FamilyGroup
	index  map[string]*FamilyGroup
}

func (g *GroupedByFamily) Organization() Organization { return ByFamily }
func (g *GroupedByFamily) Len() int                   { return len(g.Groups) }
func (g *GroupedByFamily) grouping()                  {}

func (g *GroupedByFamily) add(family, geneID string) {
	if g.index == nil {
		g.index = make(map[string]*FamilyGroup)
	}
	grp, ok := g.index[family]
	if !ok {
		grp = &FamilyGroup{Family: family}
		g.index[family] = grp
		g.Groups = append(g.Groups, grp)
	}
	grp.GeneIDs = append(grp.GeneIDs, geneID)
}

// GeneLister lists a genome's genes ordered by ascending start, restricted to
// families when non-empty.
type GeneLister interface {
	Genes(ctx context.Context, genomeID string, families []string) ([]GeneFamily, error)
}

type GeneCollector struct {
	Source GeneLister
}

// Collect gathers gene ids for every genome, in genome order then start order.
func (c *GeneCollector) Collect(ctx context.Context, genomes []*Genome, families []string, org Organization) (Grouping, error) {
	var (
		byGenome = &GroupedByGenome{}
		byFamily = &GroupedByFamily{}
	)

	for _, genome := range genomes {
		genes, err := c.Source.Genes(ctx, genome.ID, families)
		if err != nil {
			return nil, &RepositoryError{Op: "list genes of " + genome.ID, Err: err}
		}
		logger.Debug("Collected genes", zap.String("genome", genome.Name), zap.Int("genes", len(genes)))

		for _, g := range genes {
			if org == ByFamily {
				byFamily.add(g.Family, g.GeneID)
			} else {
				byGenome.add(genome, g.GeneID)
			}
		}
	}

	if org == ByFamily {
		return byFamily, nil
	}
	return byGenome, nil
}
