package crawl

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash fingerprints article text as 16 hex digits. Surrounding
// whitespace is ignored so layout-only changes keep the same hash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.TrimSpace(content)))
}

// TruncateURL shortens u to at most maxLen runes for progress output,
// keeping the tail where the article slug lives.
func TruncateURL(u string, maxLen int) string {
	runes := []rune(u)
	switch {
	case maxLen <= 0:
		return ""
	case len(runes) <= maxLen:
		return u
	case maxLen < 4:
		return string(runes[:maxLen])
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
