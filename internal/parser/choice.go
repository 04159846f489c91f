// Package parser maps free-typed player input onto the fixed option
// list of the current prompt. The menu is the contract; the parser's
// job is forgiving spelling, not inventing choices.
package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match is one scored candidate from the prompt's option list.
type Match struct {
	Index  int
	Label  string
	Score  float64
	Source string // number, exact, prefix, keyword, lev
}

// Result is the outcome of one parse. Ambiguous holds the runners-up
// when the best match is too close to call.
type Result struct {
	Best      *Match
	Ambiguous []Match
}

const (
	acceptScore    = 0.45
	ambiguityBand  = 0.05
	minFuzzyLength = 3
)

// MatchOption resolves raw input against the option labels. A bare
// number picks by position (1-based, as displayed). Otherwise labels
// are matched exact-first, then by prefix, keyword subset, and finally
// edit distance. A nil Best means the input matched nothing.
func MatchOption(raw string, options []string) Result {
	normalised := normaliseInput(raw)
	if normalised == "" || len(options) == 0 {
		return Result{}
	}

	if n, err := strconv.Atoi(normalised); err == nil {
		if n >= 1 && n <= len(options) {
			return Result{Best: &Match{
				Index:  n - 1,
				Label:  options[n-1],
				Score:  1.0,
				Source: "number",
			}}
		}
		return Result{}
	}

	inputTokens := tokenise(normalised)
	candidates := make([]Match, 0, len(options))
	for i, label := range options {
		if m, ok := scoreOption(normalised, inputTokens, i, label); ok {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return Result{}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score == candidates[j].Score {
			return candidates[i].Index < candidates[j].Index
		}
		return candidates[i].Score > candidates[j].Score
	})

	best := candidates[0]
	if best.Score < acceptScore {
		return Result{}
	}

	var ambiguous []Match
	for _, c := range candidates[1:] {
		if best.Score-c.Score <= ambiguityBand {
			ambiguous = append(ambiguous, c)
		}
	}
	if len(ambiguous) > 0 && best.Source != "exact" && best.Source != "number" {
		return Result{Best: &best, Ambiguous: ambiguous}
	}
	return Result{Best: &best}
}

func scoreOption(input string, inputTokens []string, index int, label string) (Match, bool) {
	normalLabel := normaliseInput(label)
	if normalLabel == "" {
		return Match{}, false
	}

	if input == normalLabel {
		return Match{Index: index, Label: label, Score: 1.0, Source: "exact"}, true
	}

	labelTokens := tokenise(normalLabel)

	// Head-of-label prefix: "stead" finds "Steady travel".
	if len(input) >= 2 && strings.HasPrefix(normalLabel, input) {
		return Match{Index: index, Label: label, Score: 0.9, Source: "prefix"}, true
	}

	// Keyword subset: every input token appears somewhere in the label.
	if len(inputTokens) > 0 && tokensSubset(inputTokens, labelTokens) {
		return Match{Index: index, Label: label, Score: 0.8, Source: "keyword"}, true
	}

	if len(input) < minFuzzyLength {
		return Match{}, false
	}
	best := -1
	compare := ""
	for _, lt := range labelTokens {
		dist := levenshtein.ComputeDistance(input, lt)
		if best == -1 || dist < best {
			best, compare = dist, lt
		}
	}
	if whole := levenshtein.ComputeDistance(input, normalLabel); best == -1 || whole < best {
		best, compare = whole, normalLabel
	}
	if best < 0 || best > levenshteinLimit(len(compare)) {
		return Match{}, false
	}
	return Match{Index: index, Label: label, Score: 0.72 - 0.08*float64(best), Source: "lev"}, true
}

func tokensSubset(needles, haystack []string) bool {
	for _, needle := range needles {
		found := false
		for _, token := range haystack {
			if token == needle || (len(needle) >= 3 && strings.HasPrefix(token, needle)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
