package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yumyai/phamfasta/pkg/model"
)

// clustersCmd shows what a cluster token expands to
var clustersCmd = &cobra.Command{
	Use:   "clusters [token...]",
	Short: "List the clusters a cluster token selects",
	Long: `List the clusters a cluster token selects.

Tokens are prefix matched against the clusters in the database, so "A" lists
A, A1, A2, ... Without a token every cluster is listed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{""}
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		expander := &model.ClusterExpander{Source: store}
		out := cmd.OutOrStdout()
		for _, token := range args {
			exp, err := expander.Expand(cmd.Context(), []string{token})
			if err != nil {
				return err
			}
			for _, c := range exp.Clusters {
				fmt.Fprintln(out, c)
			}
			if exp.Singleton {
				fmt.Fprintln(out, model.SingletonCluster)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clustersCmd)
}
