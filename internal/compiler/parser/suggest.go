package parser

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// suggestTerms proposes the closest known name for the undefined text at
// loc, trying the longest run of words first.
func (st *State) suggestTerms(loc source.Location) []errors.Fix {
	text := loc.Text(st.Source())
	words := term.Words(text)
	if len(words) == 0 {
		return nil
	}
	candidates := st.candidateNames()
	if len(candidates) == 0 {
		return nil
	}

	ends := wordEnds(text, words)
	for n := len(words); n > 0; n-- {
		query := text[:ends[n-1]]
		if match := closestMatch(query, candidates); match != "" {
			at := source.Span(loc.Lo, loc.Lo+ends[n-1])
			st.logger.Debug("suggesting term", slog.String("query", query), slog.String("match", match))
			return []errors.Fix{&errors.SuggestingFix{
				Suggestion: "{FIX} to use ‘" + match + "’",
				Fix:        errors.Then(&errors.DeletingFix{At: at}, &errors.PrependingFix{Text: match, At: at}),
			}}
		}
	}
	return nil
}

// closestMatch ranks candidates containing query's letters in order, then
// falls back to edit distance for typos.
func closestMatch(query string, candidates []string) string {
	ranks := fuzzy.RankFindFold(query, candidates)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", len(query)/3+1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(query), strings.ToLower(c))
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

func (st *State) candidateNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			names = append(names, s)
		}
	}
	for _, t := range st.lex.Terms() {
		add(t.Name.Normalized())
	}
	for spelling := range st.cfg.Keywords {
		add(spelling)
	}
	sort.Strings(names)
	return names
}

// wordEnds returns, for each word, the offset in text just past it.
func wordEnds(text string, words []string) []int {
	ends := make([]int, len(words))
	at := 0
	for i, w := range words {
		j := strings.Index(text[at:], w)
		if j < 0 {
			ends[i] = len(text)
			continue
		}
		at += j + len(w)
		ends[i] = at
	}
	return ends
}
