package model

import (
	"slices"
	"strings"
)

// Predicate selects genomes. The cluster axis (Clusters OR Singleton) is OR'd
// with the name axis. With no fragment at all it matches every genome.
type Predicate struct {
	Clusters  []string
	Singleton bool
	Names     []string

	// None is set when clusters were requested, none of them resolved and no
	// names were given: the selection is valid but matches nothing.
	None bool
}

// BuildPredicate combines an expanded cluster axis with explicit names.
// requested is the number of cluster tokens the user gave.
func BuildPredicate(exp ClusterExpansion, requested int, names []string) *Predicate {
	p := &Predicate{
		Clusters:  slices.Clone(exp.Clusters),
		Singleton: exp.Singleton,
		Names:     slices.Clone(names),
	}
	if requested > 0 && exp.Empty() && len(names) == 0 {
		p.None = true
	}
	return p
}

func (p *Predicate) Unrestricted() bool {
	return !p.None && len(p.Clusters) == 0 && !p.Singleton && len(p.Names) == 0
}

func placeholders(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?,", n), ",") + ")"
}

// SQL renders the predicate as a WHERE body using ? placeholders. An empty
// clause means no restriction.
func (p *Predicate) SQL(clusterCol, nameCol string) (string, []any) {
	if p.None {
		return "1 = 0", nil
	}

	var (
		parts []string
		args  []any
	)
	if len(p.Clusters) > 0 {
		parts = append(parts, clusterCol+" IN "+placeholders(len(p.Clusters)))
		for _, c := range p.Clusters {
			args = append(args, c)
		}
	}
	if p.Singleton {
		parts = append(parts, clusterCol+" IS NULL")
	}

	switch len(p.Names) {
	case 0:
	case 1:
		parts = append(parts, nameCol+" = ?")
		args = append(args, p.Names[0])
	default:
		parts = append(parts, nameCol+" IN "+placeholders(len(p.Names)))
		for _, n := range p.Names {
			args = append(args, n)
		}
	}

	return strings.Join(parts, " OR "), args
}

// Match evaluates the predicate against a genome in memory. It agrees with
// the SQL rendering.
func (p *Predicate) Match(g *Genome) bool {
	if p.None {
		return false
	}
	if p.Unrestricted() {
		return true
	}
	if g.Cluster == nil {
		if p.Singleton {
			return true
		}
	} else if slices.Contains(p.Clusters, *g.Cluster) {
		return true
	}
	return slices.Contains(p.Names, g.Name)
}
