package export

import (
	"time"

	"github.com/shopera/retino-feed/internal/retino/domain"
)

var knownItemTypes = map[string]struct{}{
	domain.ItemTypeProduct:  {},
	domain.ItemTypeDiscount: {},
	domain.ItemTypeShipping: {},
	domain.ItemTypeBilling:  {},
}

// NormalizeItemType returns the tag unchanged when it is one of the known
// item types and falls back to "product" for anything else. Total function;
// unknown tags are not an error.
func NormalizeItemType(tag string) string {
	if _, ok := knownItemTypes[tag]; ok {
		return tag
	}
	return domain.ItemTypeProduct
}

// FormatDateTime renders a timestamp as extended ISO 8601 with a timezone
// offset, e.g. "2024-01-15T10:30:00+01:00".
func FormatDateTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
