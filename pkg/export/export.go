// Package export converts recorded samples into formats consumed by
// external analysis tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/quentinv/battrace/core/model"
)

// WriteJSON writes the samples to w as a JSON array.
func WriteJSON(w io.Writer, samples []model.Sample) error {
	enc := json.NewEncoder(w)
	return enc.Encode(samples)
}

// WriteCSV writes the samples to w with the same column layout the CSV
// log backend uses.
func WriteCSV(w io.Writer, samples []model.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "percentage", "power_plugged"}); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{
			s.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(s.Percentage, 'f', -1, 64),
			strconv.FormatBool(s.PowerPlugged),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
