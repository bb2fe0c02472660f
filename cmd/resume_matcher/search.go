package main

import (
	"errors"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/ui"
	"github.com/spf13/cobra"
)

// errReported marks a failure already printed to the user.
var errReported = errors.New("request failed")

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var (
		query    string
		maxItems int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search job listings",
		Long:  "Search the job listing service and print the results.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.close()

			printer := observability.NewPrinter(cmd.OutOrStdout()).WithMaxItems(maxItems)
			unit := ui.NewJobSearch(rt.client, rt.logger)

			notice, err := unit.Submit(cmd.Context(), query)
			if err != nil {
				printer.PrintFailure(notice.Title, notice.Description)
				return errReported
			}

			printer.PrintListings(query, unit.Snapshot().Listings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Job title or keywords to search for (required)")
	cmd.Flags().IntVar(&maxItems, "max", 10, "Maximum listings to print (0 = all)")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}
