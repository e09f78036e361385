package output

import "fmt"

type Writer interface {
	Write(path string, rows []Row) error
}

func WriterForFormat(format string) (Writer, error) {
	switch format {
	case "csv":
		return &CSVWriter{}, nil
	case "excel":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: csv, excel)", format)
	}
}
