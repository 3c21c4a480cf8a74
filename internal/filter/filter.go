// Package filter computes the search view over the authoritative row set.
// Matching deliberately spans every cell of every row, not just name or
// phone, so any partial value a coordinator remembers (a phone fragment,
// part of a site name) surfaces the record.
package filter

import "strings"

// Match reports whether any cell of row contains query as a
// case-insensitive substring. The empty query matches every row.
func Match(row []string, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), q) {
			return true
		}
	}
	return false
}

// Apply returns the identifiers (row positions) of every row matching
// query, in stored order. An empty query is the identity filter and
// returns every identifier, never an empty result.
func Apply(rows [][]string, query string) []int {
	ids := make([]int, 0, len(rows))
	for i, row := range rows {
		if Match(row, query) {
			ids = append(ids, i)
		}
	}
	return ids
}
