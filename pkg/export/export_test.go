package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quentinv/battrace/core/model"
)

func TestWriteCSV(t *testing.T) {
	samples := []model.Sample{
		{Timestamp: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Percentage: 90, PowerPlugged: false},
		{Timestamp: time.Date(2025, 3, 10, 9, 1, 0, 0, time.UTC), Percentage: 89.5, PowerPlugged: true},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samples))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "timestamp,percentage,power_plugged", lines[0])
	require.Equal(t, "2025-03-10T09:00:00Z,90,false", lines[1])
	require.Equal(t, "2025-03-10T09:01:00Z,89.5,true", lines[2])
}

func TestWriteJSON(t *testing.T) {
	samples := []model.Sample{
		{Timestamp: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Percentage: 90},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, samples))
	require.Contains(t, buf.String(), `"percentage":90`)
}
