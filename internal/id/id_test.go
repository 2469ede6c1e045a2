package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVoucherID(t *testing.T) {
	tests := []struct {
		year, month, seq int
		want             string
	}{
		{2025, 1, 1, "2025-01-001"},
		{2025, 12, 99, "2025-12-099"},
		{2025, 1, 1234, "2025-01-1234"},
	}
	for _, tt := range tests {
		got := FormatVoucherID(tt.year, tt.month, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseVoucherID(t *testing.T) {
	tests := []struct {
		input               string
		wantYear, wantMonth int
		wantSeq             int
	}{
		{"2025-01-001", 2025, 1, 1},
		{"2025-12-099", 2025, 12, 99},
		{"2024-03-1234", 2024, 3, 1234},
	}
	for _, tt := range tests {
		year, month, seq, err := ParseVoucherID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantYear, year)
		assert.Equal(t, tt.wantMonth, month)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseVoucherID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"2025-01",
		"xxxx-01-001",
		"2025-13-001",
		"2025-01-abc",
	}
	for _, input := range badInputs {
		_, _, _, err := ParseVoucherID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestNext(t *testing.T) {
	jan := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-01-001", Next(nil, jan))
	assert.Equal(t, "2025-01-004", Next([]string{"2025-01-001", "2025-01-003", "2025-02-009", "junk"}, jan))
	assert.Equal(t, "2025-02-010", Next([]string{"2025-01-001", "2025-02-009"}, jan.AddDate(0, 1, 0)))
}
