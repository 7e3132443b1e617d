package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInsightsCommand(a *app) *cobra.Command {
	var (
		issuer string
		budget string
	)

	cmd := &cobra.Command{
		Use:   "insights <statement.pdf|statement.txt>",
		Short: "Parse a statement and summarize it with Gemini",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.parseFile(args[0], issuer)
			if err != nil {
				return fmt.Errorf("processing %s: %w", args[0], err)
			}

			sum, closeSum, err := a.summarizer(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSum()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sum.Summarize(cmd.Context(), res.Fields, budget))
			return err
		},
	}
	cmd.Flags().StringVar(&issuer, "issuer", "AUTO", "issuer name used to pick a parser")
	cmd.Flags().StringVar(&budget, "budget", "", "budget goal or other context for the summary")
	return cmd
}
