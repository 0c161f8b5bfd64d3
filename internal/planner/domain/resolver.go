package domain

import (
	"errors"
	"strings"
	"unicode"
)

var ErrCommitmentNotFound = errors.New("no commitment matches the query")

// AmbiguousMatchError is returned when a query that must resolve to a
// single commitment matches several. The dispatcher never guesses among
// candidates; it surfaces them for clarification.
type AmbiguousMatchError struct {
	Query      string
	Candidates []*Commitment
}

func (e *AmbiguousMatchError) Error() string {
	return "ambiguous reference: " + e.Query
}

// Resolver maps a free-text reference onto the commitment collection.
// Title matching escalates through three tiers: bidirectional substring
// containment, stop-word-filtered token overlap, and multilingual synonym
// groups. Resolution is a pure function of (query, commitment snapshot).
type Resolver struct {
	stopWords map[string]struct{}
	groups    map[string]int // token -> synonym group index
}

// NewResolver creates a resolver with the built-in stop-word and synonym
// tables.
func NewResolver() *Resolver {
	r := &Resolver{
		stopWords: make(map[string]struct{}, len(stopWords)),
		groups:    make(map[string]int),
	}
	for _, w := range stopWords {
		r.stopWords[w] = struct{}{}
	}
	for i, group := range synonymGroups {
		for _, w := range group {
			r.groups[w] = i
		}
	}
	return r
}

// Filter returns the commitments satisfying the query, preserving input
// order.
func (r *Resolver) Filter(q TaskQuery, commitments []*Commitment) []*Commitment {
	matched := make([]*Commitment, 0, len(commitments))
	for _, c := range commitments {
		if !q.matchesExact(c) {
			continue
		}
		if q.TitleContains != "" && !r.titleMatches(c.Title(), q.TitleContains) {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

// ResolveOne disambiguates the query to exactly one commitment. Zero
// matches yield ErrCommitmentNotFound; more than one yield an
// AmbiguousMatchError carrying every candidate.
func (r *Resolver) ResolveOne(q TaskQuery, commitments []*Commitment) (*Commitment, error) {
	matches := r.Filter(q, commitments)
	switch len(matches) {
	case 0:
		return nil, ErrCommitmentNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, &AmbiguousMatchError{Query: q.TitleContains, Candidates: matches}
	}
}

// titleMatches implements the three-tier matching policy.
func (r *Resolver) titleMatches(title, query string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	query = strings.ToLower(strings.TrimSpace(query))
	if title == "" || query == "" {
		return false
	}

	// Tier 1: substring containment, either direction.
	if strings.Contains(title, query) || strings.Contains(query, title) {
		return true
	}

	// Tier 2: token sub/superstring overlap after stop-word removal.
	titleTokens := r.contentTokens(title)
	queryTokens := r.contentTokens(query)
	for _, qt := range queryTokens {
		for _, tt := range titleTokens {
			if strings.Contains(tt, qt) || strings.Contains(qt, tt) {
				return true
			}
		}
	}

	// Tier 3: both tokens belong to the same synonym group.
	for _, qt := range queryTokens {
		qg, ok := r.groups[qt]
		if !ok {
			continue
		}
		for _, tt := range titleTokens {
			if tg, ok := r.groups[tt]; ok && tg == qg {
				return true
			}
		}
	}
	return false
}

// contentTokens splits text into lowercase alphanumeric runs and drops
// stop words.
func (r *Resolver) contentTokens(text string) []string {
	fields := strings.FieldsFunc(text, func(ru rune) bool {
		return !unicode.IsLetter(ru) && !unicode.IsNumber(ru)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(f)
		if _, stop := r.stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
