package archive

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/yumyai/phamfasta/pkg/model"
)

const (
	Ext   = ".fasta"
	GzExt = ".fasta.gz"
)

var nameCleaner = strings.NewReplacer("/", "_", `\`, "_")

// fileName keeps group keys from escaping their directory.
func fileName(key, ext string) string {
	name := nameCleaner.Replace(key)
	if name == "" || name == "." || name == ".." {
		name = "_" + name
	}
	return name + ext
}

// GenomeDir is the directory for a genome's file under runDir:
// Singleton/ for unassigned genomes, <c[0]>/ for single letter clusters and
// <c[0]>/<c>/ otherwise.
func GenomeDir(runDir string, genome *model.Genome) string {
	if genome.Cluster == nil {
		return filepath.Join(runDir, model.SingletonCluster)
	}
	cluster := nameCleaner.Replace(*genome.Cluster)
	if cluster == "" {
		return filepath.Join(runDir, model.SingletonCluster)
	}
	first, size := utf8.DecodeRuneInString(cluster)
	dir := filepath.Join(runDir, string(first))
	if len(cluster) > size {
		dir = filepath.Join(dir, cluster)
	}
	return dir
}

func GenomePath(runDir string, genome *model.Genome, ext string) string {
	return filepath.Join(GenomeDir(runDir, genome), fileName(genome.Name, ext))
}

// GenomePathWithID names the file <name>_<id>, for a genome whose name is
// already taken in its directory.
func GenomePathWithID(runDir string, genome *model.Genome, ext string) string {
	return filepath.Join(GenomeDir(runDir, genome), fileName(genome.Name+"_"+genome.ID, ext))
}

func FamilyPath(runDir, family, ext string) string {
	return filepath.Join(runDir, fileName(family, ext))
}
