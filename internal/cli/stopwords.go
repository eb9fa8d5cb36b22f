package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"tokencost/internal/adapter/analyzer"
)

func newStopwordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stopwords",
		Short: "List the stop words excluded from token counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, w := range analyzer.StopWords() {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}
