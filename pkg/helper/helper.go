package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormatElapsedTime renders an elapsed duration in milliseconds as
// HH:MM:SS.t, the format shown on result boards and overlays.
func FormatElapsedTime(milliseconds int64) string {
	if milliseconds < 0 {
		return "00:00:00.0"
	}
	totalSeconds := milliseconds / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	tenths := (milliseconds % 1000) / 100
	return fmt.Sprintf("%02d:%02d:%02d.%d", hours, minutes, seconds, tenths)
}

// NowISO returns the current instant in the millisecond RFC3339 UTC form
// all record timestamps use. The format orders lexicographically.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// NewID generates a record id: entity prefix plus a random unique suffix.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
