package model

import "strings"

// SingletonCluster is the pseudo-cluster for genomes without a cluster
// assignment. It is matched only exactly, never as a prefix.
const SingletonCluster = "Singleton"

type Orientation string

const (
	Forward Orientation = "F"
	Reverse Orientation = "R"
)

// ParseOrientation accepts the stored codes (F/R) and their long forms.
// Anything else is returned as-is and rejected during materialization.
func ParseOrientation(code string) Orientation {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "f", "forward", "+":
		return Forward
	case "r", "reverse", "-":
		return Reverse
	default:
		return Orientation(code)
	}
}

func (o Orientation) Valid() bool {
	return o == Forward || o == Reverse
}

// Genome as matched by a predicate. Cluster is nil for singletons.
type Genome struct {
	ID      string  `json:"genome_id"`
	Name    string  `json:"name"`
	Cluster *string `json:"cluster"`
}

// ClusterName returns the cluster id, or SingletonCluster when unassigned.
func (g *Genome) ClusterName() string {
	if g.Cluster == nil {
		return SingletonCluster
	}
	return *g.Cluster
}

// Gene coordinates are zero-based with an exclusive stop, relative to the
// owning genome. Start > Stop means the gene wraps the origin.
type Gene struct {
	ID          string      `json:"gene_id"`
	GenomeID    string      `json:"genome_id"`
	Name        string      `json:"name"`
	Start       int         `json:"start"`
	Stop        int         `json:"stop"`
	Orientation Orientation `json:"orientation"`
	Translation string      `json:"translation"`
	Family      string      `json:"family"`
}

// GeneFamily is one row of a per-genome gene listing.
type GeneFamily struct {
	GeneID string
	Family string
}

// OutputRecord is a materialized sequence ready for export.
type OutputRecord struct {
	ID          string
	Name        string
	Description string
	Sequence    []byte
	AminoAcid   bool
}
