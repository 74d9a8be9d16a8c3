// Package imagecache stores street-level images keyed by coordinate so each
// location is fetched from the provider at most once.
package imagecache

import (
	"strconv"
	"strings"
)

const fileExt = ".jpg"

var keyReplacer = strings.NewReplacer(".", "_", "-", "m")

// CacheKey derives a filesystem- and URL-safe key from a coordinate, e.g.
// (48.8566, -2.5) becomes "gsv_48_8566_m2_5". Each value always carries a
// fractional part, so (1.5, 2) and (1, 5.2) stay apart.
func CacheKey(lat, lng float64) string {
	return "gsv_" + keyReplacer.Replace(formatCoord(lat)) + "_" + keyReplacer.Replace(formatCoord(lng))
}

// FileName is the stored object name for a coordinate.
func FileName(lat, lng float64) string {
	return CacheKey(lat, lng) + fileExt
}

func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
