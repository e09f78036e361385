package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hourdesk/output"
	"hourdesk/storage"
)

var (
	exportFormat string
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all logged hours to CSV/Excel",
	Long: `Export every hour entry with references resolved to person name, team
code, and project number, sorted by date ascending then insertion order.

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Export to CSV
  hourdesk export --output ./hours.csv

  # Export to Excel
  hourdesk export --output ./hours.xlsx

  # Force CSV format independent of extension
  hourdesk export --format csv --output ./hours.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		hours, err := store.ListHours()
		if err != nil {
			return err
		}
		people, err := store.ListPeople()
		if err != nil {
			return err
		}
		teams, err := store.ListTeams()
		if err != nil {
			return err
		}
		projects, err := store.ListProjects()
		if err != nil {
			return err
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		rows := output.BuildRows(hours, people, teams, projects)
		if err := writer.Write(exportOutput, rows); err != nil {
			return err
		}

		fmt.Printf("Export completed. Rows: %d, Format: %s, File: %s\n", len(rows), format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./hourdesk.db", "Path to local SQLite database")

	_ = exportCmd.MarkFlagRequired("output")
}
