package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yumyai/phamfasta/pkg/archive"
	"github.com/yumyai/phamfasta/pkg/extract"
	"github.com/yumyai/phamfasta/pkg/model"
	"go.uber.org/multierr"
)

var (
	exportPhages     []string
	exportClusters   []string
	exportPhams      []string
	exportNucleotide bool
	exportBy         string
	exportRunID      string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write FASTA files for the selected phages, clusters and phams",
	Long: `Write FASTA files for the selected phages, clusters and phams.

Clusters are prefix matched: "F" selects F, F1, F2, ... "Singleton" selects
phages without a cluster. Phages selected by name are added to the cluster
selection. Phams restrict which genes are written.

With --by genome each phage gets <root>/<run>/<cluster letter>/<cluster>/<phage>.fasta
(or <root>/<run>/Singleton/<phage>.fasta). With --by family each pham gets
<root>/<run>/<pham>.fasta.`,
	Example: `  phamfasta export --cluster F,Singleton --phage Trixie
  phamfasta export --pham 12345 --nucleotide --by family`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := model.ParseOrganization(exportBy)
		if err != nil {
			return err
		}

		criteria := model.NewSelectionCriteria()
		criteria.AddNames(exportPhages...)
		criteria.AddClusters(exportClusters...)
		criteria.AddFamilies(exportPhams...)
		criteria.AminoAcid = !exportNucleotide

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current search parameters", criteria.Describe())

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		runner := &extract.Runner{
			Repo: store,
			Opts: extract.Options{
				ArchiveRoot: cfg.Archive.Root,
				RunID:       exportRunID,
				CacheSize:   cfg.Cache.Genomes,
				Archive: archive.Options{
					Gzip:      cfg.Archive.Gzip,
					LineWidth: cfg.Archive.LineWidth,
				},
			},
		}

		report, err := runner.Run(cmd.Context(), criteria, org)
		if report != nil {
			printReport(out, report)
		}
		if err != nil {
			return summarize(err)
		}
		return nil
	},
}

func printReport(w io.Writer, report *archive.Report) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)

	kind := "Phage"
	if report.Organization == model.ByFamily.String() {
		kind = "Pham"
	}

	for _, f := range report.Files {
		if f.Error != "" {
			bad.Fprintf(w, "%s %s's FASTA file could not be written to %s: %s\n", kind, f.Key, f.Path, f.Error)
			continue
		}
		ok.Fprintf(w, "%s %s's FASTA file created in %s. %d genes logged\n", kind, f.Key, f.Path, f.Records)
	}
	fmt.Fprintf(w, "Run %s: %d files, %d records in %s\n", report.RunID, len(report.Files), report.Records(), report.Dir)
}

// summarize keeps per-file failures short: they are already in the report.
func summarize(err error) error {
	errs := multierr.Errors(err)
	var fatal []error
	files := 0
	for _, e := range errs {
		var exportErr *model.ExportError
		if errors.As(e, &exportErr) {
			files++
			continue
		}
		fatal = append(fatal, e)
	}
	if len(fatal) > 0 || files == 0 {
		return multierr.Combine(fatal...)
	}
	return fmt.Errorf("%d file(s) could not be written", files)
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()
	flags.StringSliceVarP(&exportPhages, "phage", "p", nil, "phage name(s), comma separated or repeated")
	flags.StringSliceVarP(&exportClusters, "cluster", "c", nil, `cluster(s); prefix matched, "Singleton" for unclustered`)
	flags.StringSliceVarP(&exportPhams, "pham", "m", nil, "pham id(s) to restrict genes to")
	flags.BoolVarP(&exportNucleotide, "nucleotide", "n", false, "write nucleotide instead of amino acid sequences")
	flags.StringVarP(&exportBy, "by", "b", "genome", "organize files by genome (phage) or family (pham)")
	flags.StringVar(&exportRunID, "run-id", "", "name of the run directory (default: random UUID)")
	flags.Bool("gzip", false, "compress FASTA files")
	flags.Int("line-width", 60, "sequence line width")

	viper.BindPFlag("archive.gzip", flags.Lookup("gzip"))
	viper.BindPFlag("archive.line-width", flags.Lookup("line-width"))
}
