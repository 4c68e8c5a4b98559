package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/siteinv"
)

// contentHash fingerprints a response body as 16 hex digits of xxhash64.
func contentHash(body string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(body))
}

// TotalBytes sums the body sizes of resources.
func TotalBytes(resources []siteinv.Resource) int {
	total := 0
	for _, r := range resources {
		total += r.Bytes
	}
	return total
}

// TruncateURL shortens a URL to maxLen for display. The tail is kept since
// the last path segments tell URLs on one site apart.
func TruncateURL(url string, maxLen int) string {
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		return url[:maxLen]
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats a byte count with a binary unit suffix.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	for _, unit := range []string{"KB", "MB"} {
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1f GB", v)
}
