package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"tfocus/internal/domain"
)

// maxSuggestDistance bounds how far a typo may be from a known action
const maxSuggestDistance = 2

// parseAction validates an action given on the command line
func parseAction(s string) (domain.Action, error) {
	a := domain.Action(strings.ToLower(strings.TrimSpace(s)))
	if a.Valid() {
		return a, nil
	}

	names := make([]string, len(domain.Actions))
	for i, known := range domain.Actions {
		names[i] = string(known)
	}
	err := &UsageError{Msg: fmt.Sprintf("unknown action %q, expected one of %s", s, strings.Join(names, ", "))}
	if suggestion := suggest(string(a), names); suggestion != "" {
		err.Hint = fmt.Sprintf("did you mean %q?", suggestion)
	}
	return "", err
}

// suggest returns the closest name within maxSuggestDistance, or ""
func suggest(input string, names []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, n := range names {
		if d := levenshtein.ComputeDistance(input, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
