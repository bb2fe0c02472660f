package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/ui"
	"github.com/spf13/cobra"
)

func newMatchCmd(opts *globalOptions) *cobra.Command {
	var (
		resumePath string
		query      string
		maxItems   int
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score job matches for a PDF resume",
		Long:  "Upload a PDF resume with a target job title and print the scored matches.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resume, err := readResume(resumePath)
			if err != nil {
				return err
			}

			rt, err := loadRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.close()

			printer := observability.NewPrinter(cmd.OutOrStdout()).WithMaxItems(maxItems)
			unit := ui.NewResumeMatch(rt.client, rt.logger)

			notice, err := unit.Submit(cmd.Context(), query, resume)
			if err != nil {
				printer.PrintFailure(notice.Title, notice.Description)
				return errReported
			}

			printer.PrintMatches(query, unit.Snapshot().Matches)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to PDF resume (required)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Target job title (required)")
	cmd.Flags().IntVar(&maxItems, "max", 10, "Maximum matches to print (0 = all)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func readResume(path string) (*types.ResumeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	return &types.ResumeFile{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}
