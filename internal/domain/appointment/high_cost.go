package appointment

import "strings"

var DefaultHighCostMedications = []string{
	"insulina",
	"adalimumab",
	"infliximab",
	"rituximab",
	"trastuzumab",
}

// IsHighCost reports whether medication contains any watch-list entry.
func IsHighCost(medication string, watch []string) bool {
	med := NormalizeName(medication)
	for _, w := range watch {
		w = NormalizeName(w)
		if w != "" && strings.Contains(med, w) {
			return true
		}
	}
	return false
}
