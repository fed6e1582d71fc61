package zodiac

import (
	"fmt"
	"sort"
	"strings"
)

// Pair is an unordered pair of distinct person names. The constructor
// canonicalizes it so the lexicographically smaller name is always A;
// (x, y) and (y, x) are therefore the same Pair and deduplicate in a
// map, making symmetry an invariant of the type.
type Pair struct {
	A, B string
}

// NewPair builds the canonical Pair for two names.
func NewPair(x, y string) Pair {
	if x > y {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Kind describes a relationship type as rendered in summary lines.
type Kind struct {
	Label  string
	Prefix rune
}

var (
	// Friend labels pairs at the best compatibility band.
	Friend = Kind{Label: "kamarád", Prefix: '+'}
	// Enemy labels pairs at the worst compatibility band.
	Enemy = Kind{Label: "nepřítel", Prefix: '-'}
)

// KindForBand returns Enemy for negative bands and Friend otherwise.
func KindForBand(band Band) Kind {
	if band < 0 {
		return Enemy
	}
	return Friend
}

// ExtractPairs walks the matrix at the given band and returns every
// unique pair of people related at that band, sorted for determinism.
// Both directions of a relationship are discovered (once from each
// member's sign column) and collapse through Pair canonicalization.
// Self-references are never recorded. Missing columns, empty registries
// and empty bands all yield an empty result, not an error.
func ExtractPairs(m *Matrix, reg Registry, band Band) []Pair {
	related := make(map[string]map[string]bool)

	for sign, names := range reg {
		column := reg.Column(sign)
		if !m.HasColumn(column) {
			continue
		}
		cell := m.Cell(band, column)
		if strings.TrimSpace(cell) == "" {
			continue
		}

		for _, name := range names {
			for _, token := range strings.Split(cell, ",") {
				token = strings.TrimSpace(token)
				if token == "" || token == name {
					continue
				}
				if related[name] == nil {
					related[name] = make(map[string]bool)
				}
				related[name][token] = true
			}
		}
	}

	unique := make(map[Pair]bool)
	for name, partners := range related {
		for partner := range partners {
			unique[NewPair(name, partner)] = true
		}
	}

	pairs := make([]Pair, 0, len(unique))
	for p := range unique {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// RenderSummary aggregates pairs by their lexicographically smaller
// member and emits one line per anchor:
//
//	+ Alice je s Bob, Cara dnes kamarád!
//
// Partners within a line are sorted and deduplicated; anchors are
// emitted in sorted order. Each pair is reported exactly once, on its
// smaller member's line.
func RenderSummary(pairs []Pair, kind Kind) []string {
	grouped := make(map[string][]string)
	for _, p := range pairs {
		grouped[p.A] = append(grouped[p.A], p.B)
	}

	anchors := make([]string, 0, len(grouped))
	for anchor := range grouped {
		anchors = append(anchors, anchor)
	}
	sort.Strings(anchors)

	lines := make([]string, 0, len(anchors))
	for _, anchor := range anchors {
		partners := grouped[anchor]
		sort.Strings(partners)
		partners = dedupe(partners)
		lines = append(lines, fmt.Sprintf("%c %s je s %s dnes %s!",
			kind.Prefix, anchor, strings.Join(partners, ", "), kind.Label))
	}
	return lines
}

// Summary runs extraction and rendering for one band and returns the
// joined text block, empty when no pairs exist at that band.
func Summary(m *Matrix, reg Registry, band Band, kind Kind) string {
	return strings.Join(RenderSummary(ExtractPairs(m, reg, band), kind), "\n")
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
