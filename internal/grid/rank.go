package grid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Rank is how closely a candidate string matches a search query. Higher is
// closer; RankNoMatch never passes a threshold.
type Rank int

const (
	RankNoMatch Rank = iota
	RankMatches        // query characters appear in order, with gaps
	RankAcronym        // query is inside the candidate's word initials
	RankContains       // query is a substring
	RankWordStartsWith // a word of the candidate starts with the query
	RankStartsWith     // candidate starts with the query
	RankEqual          // equal ignoring case
	RankCaseSensitiveEqual
)

var rankNames = []string{
	RankNoMatch:            "no-match",
	RankMatches:            "matches",
	RankAcronym:            "acronym",
	RankContains:           "contains",
	RankWordStartsWith:     "word-starts-with",
	RankStartsWith:         "starts-with",
	RankEqual:              "equal",
	RankCaseSensitiveEqual: "case-sensitive-equal",
}

func (r Rank) String() string {
	if r >= 0 && int(r) < len(rankNames) {
		return rankNames[r]
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// ParseRank maps a rank name (as printed by String) back to its Rank.
func ParseRank(name string) (Rank, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	for i, s := range rankNames {
		if s == n {
			return Rank(i), nil
		}
	}
	return RankNoMatch, fmt.Errorf("%w: %q", ErrUnknownRank, name)
}

// RankNames lists the valid names in ascending order.
func RankNames() []string {
	return append([]string(nil), rankNames...)
}

// Match is the result of ranking one candidate. Score orders candidates
// within the same rank; it carries no meaning across ranks.
type Match struct {
	Rank  Rank
	Score float64
}

// Passed reports whether the match clears threshold.
func (m Match) Passed(threshold Rank) bool {
	if threshold < RankMatches {
		threshold = RankMatches
	}
	return m.Rank >= threshold
}

// Better reports whether m should order before o.
func (m Match) Better(o Match) bool {
	if m.Rank != o.Rank {
		return m.Rank > o.Rank
	}
	return m.Score > o.Score
}

// RankMatch ranks candidate against query. Exact and prefix matches rank
// highest, then word prefixes and substrings, then acronyms, then scattered
// in-order characters penalized by edit distance.
func RankMatch(candidate, query string) Match {
	if query == "" {
		return Match{Rank: RankStartsWith, Score: 1}
	}
	if utf8.RuneCountInString(query) > utf8.RuneCountInString(candidate) {
		return Match{Rank: RankNoMatch}
	}
	if candidate == query {
		return Match{Rank: RankCaseSensitiveEqual, Score: 1}
	}

	lc := strings.ToLower(candidate)
	lq := strings.ToLower(query)

	if lc == lq {
		return Match{Rank: RankEqual, Score: 1}
	}
	if strings.HasPrefix(lc, lq) {
		return Match{Rank: RankStartsWith, Score: positionScore(0, lc)}
	}
	if i := strings.Index(lc, " "+lq); i >= 0 {
		return Match{Rank: RankWordStartsWith, Score: positionScore(i+1, lc)}
	}
	if i := strings.Index(lc, lq); i >= 0 {
		return Match{Rank: RankContains, Score: positionScore(i, lc)}
	}
	if utf8.RuneCountInString(lq) == 1 {
		return Match{Rank: RankNoMatch}
	}
	if i := strings.Index(acronym(lc), lq); i >= 0 {
		return Match{Rank: RankAcronym, Score: positionScore(i, lc)}
	}
	return scattered(lc, lq)
}

// positionScore favours matches that start earlier in the candidate.
func positionScore(at int, s string) float64 {
	return 1 - float64(at)/float64(len(s)+1)
}

// acronym returns the first letter of every word of s.
func acronym(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.' || r == '@'
	})
	var sb strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		sb.WriteRune(r)
	}
	return sb.String()
}

var dmp = diffmatchpatch.New()

// scattered matches query characters in order anywhere in candidate. Both
// arguments are lowercase.
func scattered(candidate, query string) Match {
	found := fuzzy.Find(query, []string{candidate})
	if len(found) == 0 {
		return Match{Rank: RankNoMatch}
	}
	distance := dmp.DiffLevenshtein(dmp.DiffMain(query, candidate, false))
	return Match{Rank: RankMatches, Score: float64(found[0].Score) - float64(distance)}
}
