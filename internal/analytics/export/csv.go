package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/query"
)

// Batch identifies one export run.
type Batch struct {
	ID          uuid.UUID
	GeneratedAt time.Time
}

// NewBatch stamps a fresh export batch.
func NewBatch(now time.Time) Batch {
	return Batch{ID: uuid.New(), GeneratedAt: now}
}

const cellSeparator = " | "

// WriteReportCSV serialises a report table. Two preamble rows carry the
// batch id and generation time, followed by the header and one row per record.
func WriteReportCSV(w io.Writer, report query.Report, batch Batch) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	preamble := [][]string{
		{"Batch", batch.ID.String()},
		{"Dibuat", batch.GeneratedAt.Format(time.RFC3339)},
		{"Laporan", report.Label, report.SortLabel, report.Term},
	}
	for _, record := range preamble {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	spice := report.Tab == monitoring.KindSpice
	header := []string{"ID"}
	if spice {
		header = append(header, "Lokasi")
	}
	header = append(header, report.Headers...)
	header = append(header, "Dibuat Pada")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{strconv.Itoa(row.ID)}
		if spice {
			record = append(record, row.Location)
		}
		record = append(record, row.Flatten(cellSeparator)...)
		record = append(record, formatCreated(row.CreatedAt))
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// Filename returns the download name of a report export.
func Filename(report query.Report, batch Batch, ext string) string {
	return "laporan-" + string(report.Tab) + "-" + batch.GeneratedAt.Format("20060102") + "." + ext
}
