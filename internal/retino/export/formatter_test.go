package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeItemType(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"product", "product"},
		{"discount", "discount"},
		{"shipping", "shipping"},
		{"billing", "billing"},
		{"voucher", "product"},
		{"", "product"},
		{"PRODUCT", "product"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeItemType(tt.tag), "tag %q", tt.tag)
	}
}

func TestFormatDateTime(t *testing.T) {
	prague := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, prague)

	assert.Equal(t, "2024-01-15T10:30:00+01:00", FormatDateTime(ts))
}

func TestFormatDateTimeUTC(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-01T00:00:00Z", FormatDateTime(ts))
}
