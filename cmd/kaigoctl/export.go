package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportUnitID int64
	exportDate   string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one unit's daily records and handovers to an xlsx file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if exportUnitID <= 0 {
			return fmt.Errorf("--unit is required")
		}
		date := exportDate
		if date == "" {
			date = time.Now().Format(time.DateOnly)
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		report, err := export.NewCollector(e.store, e.logger).Collect(cmd.Context(), exportUnitID, date)
		if err != nil {
			return err
		}
		body, err := export.BuildWorkbook(report)
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = export.FileName(report)
		}
		if err := os.WriteFile(out, body, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %d handovers\n", out, len(report.Records), len(report.Handovers))
		return nil
	},
}

func init() {
	exportCmd.Flags().Int64Var(&exportUnitID, "unit", 0, "unit id")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "date (YYYY-MM-DD, default today)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default kaigo_<unit>_<date>.xlsx)")
}
