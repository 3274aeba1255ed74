package helper

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsedTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00.0"},
		{-500, "00:00:00.0"},
		{999, "00:00:00.9"},
		{1000, "00:00:01.0"},
		{61500, "00:01:01.5"},
		{3600000, "01:00:00.0"},
		{3723450, "01:02:03.4"},
		{86400000, "24:00:00.0"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatElapsedTime(tc.ms), "%d ms", tc.ms)
	}
}

func TestNowISO_FormatOrdersLexicographically(t *testing.T) {
	iso := NowISO()
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`), iso)

	later := NowISO()
	assert.LessOrEqual(t, iso, later)
}

func TestNewID(t *testing.T) {
	id := NewID("race")
	assert.True(t, strings.HasPrefix(id, "race_"))
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, NewID("race"))
}
