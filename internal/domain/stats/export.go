package stats

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{"Description", "Category", "Duration (min)", "Date"}

// ExportFileName names the CSV download after the day it was produced.
func ExportFileName(now time.Time) string {
	return "exercise_history_" + Today(now).Format(dayFmt) + ".csv"
}

// WriteCSV writes every exercise as one row, in the given order.
func WriteCSV(w io.Writer, exs []entity.Exercise) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, ex := range exs {
		row := []string{
			ex.Description,
			string(ex.Category.OrOther()),
			strconv.Itoa(ex.Duration),
			ex.Day().Format(dayFmt),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
