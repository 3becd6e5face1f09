package main

import (
	"fmt"
	"path/filepath"

	"github.com/ludo-technologies/lintreport/app"
	"github.com/ludo-technologies/lintreport/service"
	"github.com/spf13/cobra"
)

func extendCmd() *cobra.Command {
	var req app.ExtendRequest

	cmd := &cobra.Command{
		Use:   "extend [file]",
		Short: "Build an extended record from pylint output and statistics",
		Long: `Build an extended record ({messages, stats, previous}) from the output of
"pylint -f json" plus the run's statistics and the previous run's.

Statistics files are JSON, YAML or msgpack mappings. The record is written
as JSON to stdout, or to --output in the format of its extension
(.json, .yaml, .yml, .msgpack, .mpk).

Examples:
  lintreport extend --stats stats.json pylint.json
  lintreport extend --stats stats.json --previous last.json -o run.json pylint.json
  pylint -f json mypkg | lintreport extend --stats stats.yaml -o run.msgpack`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.InputPath = inputArg(args)
			req.OutputWriter = cmd.OutOrStdout()

			reader := service.NewInputReaderWithStdin(cmd.InOrStdin())
			uc := app.NewExtendUseCase(reader, reader, service.NewRecordWriter())
			if _, err := uc.Execute(cmd.Context(), req); err != nil {
				return err
			}

			if req.OutputPath != "" {
				absPath, err := filepath.Abs(req.OutputPath)
				if err != nil {
					absPath = req.OutputPath
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Record saved to: %s\n", absPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.StatsPath, "stats", "",
		"Statistics of the current run")
	cmd.Flags().StringVar(&req.PreviousPath, "previous", "",
		"Statistics of the previous run")
	cmd.Flags().StringVarP(&req.OutputPath, "output", "o", "",
		"Output file path (default: stdout as JSON)")

	return cmd
}
