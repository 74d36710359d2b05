package extension

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggest returns the registered command closest to an unknown one.
// Candidates further than a quarter of the command's length are ignored.
func suggest(command string, candidates []string) (string, bool) {
	command = strings.ToUpper(command)
	limit := max(1, len(command)/4)

	best, bestDist := "", limit+1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(command, cand)
		if dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, best != ""
}
