package cancelflow

import (
	"regexp"
	"strconv"
	"strings"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
)

var (
	digits     = regexp.MustCompile(`\d+`)
	selectAll  = set("todas", "todos", "all", "todas las anteriores", "todo")
	abortWords = set("salir", "abortar", "ninguno", "ninguna", "nada", "exit", "abort", "stop", "no")
)

func foldReply(text string) string {
	t := domain.NormalizeName(text)
	t = strings.Trim(t, ".!¡¿? ")
	return strings.Join(strings.Fields(t), " ")
}

// ParseSelection reads a reply to a numbered list of n items. It returns the
// chosen 1-based positions in order of first appearance, without duplicates.
// Numbers outside [1, n] are ignored. An empty result means nothing valid
// was chosen.
func ParseSelection(text string, n int) []int {
	if selectAll[foldReply(text)] {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}

	out := []int{}
	seen := map[int]bool{}
	for _, m := range digits.FindAllString(text, -1) {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > n || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// IsAbort reports whether the reply abandons the selection.
func IsAbort(text string) bool {
	return abortWords[foldReply(text)]
}
