// Package keywords turns free text into a stopword-filtered keyword set used
// by the compatibility scorer. Matching is purely lexical: tokens are
// diacritic-stripped, lower-cased and frequency-counted, with first-occurrence
// order preserved so top-N selection is deterministic.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches alphanumeric sequences of length >= 3, also allowing
// the characters that show up in skill names (c++, c#, node.js).
var tokenPattern = regexp.MustCompile(`[a-z0-9+#.]{3,}`)

// stopwords is a bilingual (pt/en) blacklist of connective and generic words
// that carry no matching signal between a resume and a posting.
var stopwords = map[string]struct{}{
	"para": {}, "com": {}, "that": {}, "with": {}, "from": {},
	"sobre": {}, "onde": {}, "quando": {}, "como": {}, "have": {},
	"this": {}, "your": {}, "will": {}, "das": {}, "dos": {},
	"the": {}, "and": {}, "por": {}, "uma": {}, "mais": {},
	"than": {}, "then": {}, "elas": {}, "eles": {}, "possui": {},
	"possuir": {}, "atividades": {}, "responsabilidades": {},
	"requirements": {}, "requisitos": {}, "qualificacoes": {},
}

// asciiFold decomposes accented characters and drops combining marks and any
// remaining non-ASCII runes.
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Normalize strips diacritics via Unicode decomposition and removes any
// non-ASCII remnants. Pure function; safe for concurrent use.
func Normalize(text string) string {
	folded, _, err := transform.String(asciiFold, text)
	if err != nil {
		// The chain cannot fail on valid UTF-8; fall back to the input.
		return text
	}
	return folded
}

// Tokenize lower-cases the normalized text and returns all stopword-filtered
// token matches in order of appearance. The result is not deduplicated;
// callers that need frequencies use Extract.
func Tokenize(text string) []string {
	normalized := strings.ToLower(Normalize(text))
	matches := tokenPattern.FindAllString(normalized, -1)

	tokens := make([]string, 0, len(matches))
	for _, tok := range matches {
		if _, skip := stopwords[tok]; skip {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Set is a frequency-counted keyword set preserving first-occurrence order.
type Set struct {
	counts map[string]int
	order  []string
}

// Extract tokenizes text and builds its keyword Set.
func Extract(text string) *Set {
	s := &Set{counts: make(map[string]int)}
	for _, tok := range Tokenize(text) {
		if _, seen := s.counts[tok]; !seen {
			s.order = append(s.order, tok)
		}
		s.counts[tok]++
	}
	return s
}

// Len returns the number of distinct keywords.
func (s *Set) Len() int { return len(s.order) }

// Total returns the sum of all keyword occurrences.
func (s *Set) Total() int {
	total := 0
	for _, c := range s.counts {
		total += c
	}
	return total
}

// Count returns the occurrence count for a keyword (0 if absent).
func (s *Set) Count(keyword string) int { return s.counts[keyword] }

// Contains reports whether the keyword occurs at least once.
func (s *Set) Contains(keyword string) bool { return s.counts[keyword] > 0 }

// MostCommon returns up to n keywords ordered by descending frequency,
// breaking ties by first occurrence. n <= 0 returns all keywords.
func (s *Set) MostCommon(n int) []string {
	ranked := make([]string, len(s.order))
	copy(ranked, s.order)

	firstSeen := make(map[string]int, len(s.order))
	for i, kw := range s.order {
		firstSeen[kw] = i
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := s.counts[ranked[i]], s.counts[ranked[j]]
		if ci != cj {
			return ci > cj
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
