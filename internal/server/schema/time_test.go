package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime_AcceptedSpellings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"utc offset", "2024-03-07 15:04:05+00", time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)},
		{"fractional seconds", "2024-03-07 15:04:05.123456+00", time.Date(2024, 3, 7, 15, 4, 5, 123456000, time.UTC)},
		{"colon offset", "2024-03-07 20:34:05.000000+05:30", time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)},
		{"no zone", "2024-03-07 15:04:05", time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTime(tc.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
		})
	}
}

func TestParseTime_Rejects(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-40 99:00:00"} {
		_, err := ParseTime(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	orig := time.Date(2024, 3, 7, 15, 4, 5, 123456000, time.FixedZone("CET", 3600))

	parsed, err := ParseTime(FormatTime(orig))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(orig), "round trip changed instant: %v vs %v", parsed, orig)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestFormatNullTime(t *testing.T) {
	assert.False(t, FormatNullTime(nil).Valid)

	at := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	v := FormatNullTime(&at)
	require.True(t, v.Valid)
	assert.Equal(t, "2024-03-07 15:04:05+00", v.String)
}
