package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatVoucherID returns a voucher ID like "2025-01-001".
func FormatVoucherID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseVoucherID parses "2025-01-001" into year, month, seq.
func ParseVoucherID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid voucher ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in voucher ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in voucher ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month %d out of range in voucher ID %q", month, id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in voucher ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// Next returns the ID following the highest sequence among ids for the
// month of date. IDs that do not parse or belong to other months are ignored.
func Next(ids []string, date time.Time) string {
	year, month := date.Year(), int(date.Month())
	maxSeq := 0
	for _, s := range ids {
		y, m, seq, err := ParseVoucherID(s)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatVoucherID(year, month, maxSeq+1)
}
