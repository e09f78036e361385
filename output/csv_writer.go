package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	return w.WriteTo(file, rows)
}

// WriteTo streams the CSV to any destination; the web export handler uses
// this to write straight into the HTTP response.
func (w *CSVWriter) WriteTo(dst io.Writer, rows []Row) error {
	writer := csv.NewWriter(dst)
	defer writer.Flush()

	if err := writer.Write(Headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Date,
			row.Person,
			row.Team,
			row.Project,
			row.Entry,
			row.Exit,
			fmt.Sprintf("%.2f", row.WorkedHours),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
