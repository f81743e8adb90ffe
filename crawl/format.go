package crawl

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/capdata"
)

// Checksum hashes a table's columns and rows with xxhash. Tables with the
// same columns and cells in the same order have the same checksum.
func Checksum(t *capdata.Table) (string, error) {
	d := xxhash.New()
	if err := json.NewEncoder(d).Encode(t); err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}
	return fmt.Sprintf("%016x", d.Sum64()), nil
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
