// Package utils holds small string helpers shared by the CLI.
package utils

import (
	"sort"
	"strings"
)

// ComputeDistance computes the Levenshtein distance between two strings,
// counted in runes. It is case-insensitive.
func ComputeDistance(s1, s2 string) int {
	a := []rune(strings.ToLower(s1))
	b := []rune(strings.ToLower(s2))

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Closest returns up to limit candidates within maxDist of target, nearest
// first, ties in candidate order. Duplicates are reported once.
func Closest(target string, candidates []string, maxDist, limit int) []string {
	type scored struct {
		s    string
		dist int
	}
	seen := make(map[string]bool, len(candidates))
	var matches []scored
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		if d := ComputeDistance(target, c); d <= maxDist {
			matches = append(matches, scored{c, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.s
	}
	return out
}
